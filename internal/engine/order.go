package engine

func naturalOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// RotateOrder returns order rotated so that lead comes first. Relative order
// is kept; if lead is not in order a copy is returned unchanged.
func RotateOrder(order []int, lead int) []int {
	out := make([]int, 0, len(order))

	pos := -1
	for i, seat := range order {
		if seat == lead {
			pos = i
			break
		}
	}
	if pos < 0 {
		return append(out, order...)
	}

	out = append(out, order[pos:]...)
	return append(out, order[:pos]...)
}

// NextPlayer pops the front of the turn queue. The queue is consumed within
// a trick and rebuilt when the trick resolves; NoNextPlayer means every seat
// has had its turn.
func (g *Game) NextPlayer() int {
	if len(g.order) == 0 {
		g.current = NoSeat
		return NoNextPlayer
	}
	next := g.order[0]
	g.order = g.order[1:]
	g.current = next
	return next
}

// TurnOrder returns the seats still queued to play this trick
func (g *Game) TurnOrder() []int {
	return append([]int(nil), g.order...)
}

// LeadSeat returns the seat that leads each trick of this deal
func (g *Game) LeadSeat() int {
	return g.baseOrder[0]
}
