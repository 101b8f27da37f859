package engine

import "github.com/19506jk/briscola-server/internal/models"

// Deal hands the next HandSize cards from the front of the deck to a seat.
// A short deck aborts the round rather than dealing a truncated hand.
func (g *Game) Deal(index int) ([]models.Card, error) {
	if g.phase != models.PhaseWaiting {
		return nil, ErrInvalidPhase
	}

	s, err := g.seat(index)
	if err != nil {
		return nil, err
	}
	if len(s.Hand) > 0 {
		return nil, ErrAlreadyDealt
	}

	size := g.config.HandSize
	if len(g.deck) < size {
		g.abortRound()
		return nil, ErrDeckExhausted
	}

	hand := make([]models.Card, size)
	copy(hand, g.deck[:size])
	g.deck = g.deck[size:]
	s.Hand = hand

	lead := g.config.Catalog.LeadCard()
	for _, card := range hand {
		if card.Matches(lead) {
			g.baseOrder = RotateOrder(naturalOrder(len(g.seats)), index)
			g.order = append([]int(nil), g.baseOrder...)
			break
		}
	}

	if len(g.deck) == 0 {
		g.phase = models.PhaseBidding
	}

	out := make([]models.Card, size)
	copy(out, hand)
	return out, nil
}

// DealAll deals a hand to every seat in index order and opens the bidding.
// It needs a full table and checks the deck up front so it never deals
// partially.
func (g *Game) DealAll() ([][]models.Card, error) {
	if g.phase != models.PhaseWaiting {
		return nil, ErrInvalidPhase
	}

	for _, s := range g.seats {
		if !s.Occupied {
			return nil, ErrTableNotFull
		}
		if len(s.Hand) > 0 {
			return nil, ErrAlreadyDealt
		}
	}

	if len(g.deck) < len(g.seats)*g.config.HandSize {
		g.abortRound()
		return nil, ErrDeckExhausted
	}

	hands := make([][]models.Card, len(g.seats))
	for i := range g.seats {
		hand, err := g.Deal(i)
		if err != nil {
			g.abortRound()
			return nil, err
		}
		hands[i] = hand
	}

	return hands, nil
}
