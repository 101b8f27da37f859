package engine

import "github.com/19506jk/briscola-server/internal/models"

// PlayCard puts a card on the table for a seat. Without StrictRules any card
// is accepted from any seat, there is no obligation to follow suit either way.
func (g *Game) PlayCard(index int, card models.Card) error {
	if g.phase != models.PhasePlaying {
		return ErrInvalidPhase
	}

	s, err := g.seat(index)
	if err != nil {
		return err
	}
	if len(g.trick) >= len(g.seats) {
		return ErrTrickFull
	}

	held, inHand := heldCard(s, card)

	if g.config.StrictRules {
		if g.current != index || g.hasPlayed(index) {
			return ErrNotYourTurn
		}
		if !inHand || g.played[keyOf(held)] {
			return ErrCardNotInHand
		}
		card = held
	}

	g.trick = append(g.trick, models.PlayedCard{
		Card:       card,
		SeatIndex:  index,
		PlayerName: s.PlayerName,
	})
	if inHand {
		g.played[keyOf(held)] = true
	}

	return nil
}

func heldCard(s *models.Seat, card models.Card) (models.Card, bool) {
	for _, c := range s.Hand {
		if c.Matches(card) {
			return c, true
		}
	}
	return models.Card{}, false
}

func (g *Game) hasPlayed(index int) bool {
	for _, pc := range g.trick {
		if pc.SeatIndex == index {
			return true
		}
	}
	return false
}

// Trick returns the cards played so far in the current trick
func (g *Game) Trick() []models.PlayedCard {
	return append([]models.PlayedCard(nil), g.trick...)
}

// TrickComplete is true once every seat has played
func (g *Game) TrickComplete() bool {
	return len(g.trick) == len(g.seats)
}

// EvaluateTrick finds the winner of a trick and the points it carries.
// The scan is order sensitive: once a trump beats a non-trump winner the
// leading suit becomes trump for the rest of the trick. Every card's points
// go to the winner.
func EvaluateTrick(trick []models.PlayedCard, trump models.Suit) (models.PlayedCard, int, error) {
	if len(trick) == 0 {
		return models.PlayedCard{}, 0, ErrEmptyTrick
	}

	winner := trick[0]
	leading := winner.Suit
	points := winner.Point

	for _, card := range trick[1:] {
		winnerTrump := winner.Suit == trump

		switch {
		case card.Suit == trump && !winnerTrump:
			winner = card
			leading = trump
		case card.Suit == trump && winnerTrump && card.Value > winner.Value:
			winner = card
		case card.Suit == leading && !winnerTrump && card.Value > winner.Value:
			winner = card
		}

		points += card.Point
	}

	return winner, points, nil
}

// ResolveTrick scores the current trick and clears the table. The turn queue
// is rebuilt from the deal's base order, and after the last trick of the
// deal the phase moves to finished.
func (g *Game) ResolveTrick() (*models.TrickResult, error) {
	if g.phase != models.PhasePlaying {
		return nil, ErrInvalidPhase
	}

	winner, points, err := EvaluateTrick(g.trick, g.trump)
	if err != nil {
		return nil, err
	}

	g.roundPoints[winner.SeatIndex] += points
	g.seats[winner.SeatIndex].Score += points

	g.trick = nil
	g.roundCount++
	g.order = append([]int(nil), g.baseOrder...)
	g.current = NoSeat

	if g.roundCount >= g.config.HandSize {
		g.phase = models.PhaseFinished
	}

	return &models.TrickResult{
		Winner:      winner,
		Points:      points,
		Scores:      append([]int(nil), g.roundPoints...),
		TrickNumber: g.roundCount,
	}, nil
}
