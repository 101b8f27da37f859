package engine

import "github.com/19506jk/briscola-server/internal/models"

// AnnounceCalledCard names the card whose holder joins the caller. The
// card's suit becomes trump and play opens with the deal's base order.
func (g *Game) AnnounceCalledCard(index int, card models.Card) error {
	if g.phase != models.PhaseCalling {
		return ErrInvalidPhase
	}
	if _, err := g.seat(index); err != nil {
		return err
	}
	if index != g.callerIndex {
		return ErrNotCaller
	}

	guilty, held := g.holderOf(card)
	if guilty == NoSeat {
		return ErrCalledCardNotInPlay
	}

	g.calledCard = &held
	g.trump = held.Suit
	g.guiltyIndex = guilty
	g.order = append([]int(nil), g.baseOrder...)
	g.current = NoSeat
	g.roundCount = 0
	g.phase = models.PhasePlaying

	return nil
}

// holderOf scans occupied hands in index order
func (g *Game) holderOf(card models.Card) (int, models.Card) {
	for _, s := range g.seats {
		if !s.Occupied {
			continue
		}
		for _, c := range s.Hand {
			if c.Matches(card) {
				return s.Index, c
			}
		}
	}
	return NoSeat, models.Card{}
}

// CalledCard returns the announced card, nil before the announcement
func (g *Game) CalledCard() *models.Card {
	if g.calledCard == nil {
		return nil
	}
	card := *g.calledCard
	return &card
}

// Trump returns the trump suit, empty before the called card is announced
func (g *Game) Trump() models.Suit {
	return g.trump
}

// GuiltyPlayer returns the seat holding the called card. It is hidden from
// the table until the deal is scored.
func (g *Game) GuiltyPlayer() (int, bool) {
	return g.guiltyIndex, g.guiltyIndex != NoSeat
}
