package engine

import "github.com/19506jk/briscola-server/internal/models"

// RoundCount is the number of tricks resolved in the current deal
func (g *Game) RoundCount() int {
	return g.roundCount
}

// RoundPoints returns the trick points each seat won in the current deal
func (g *Game) RoundPoints() []int {
	return append([]int(nil), g.roundPoints...)
}

// IsGameOver is true once every trick of the deal has been resolved
func (g *Game) IsGameOver() bool {
	return g.roundCount == g.config.HandSize
}

// FinalResult splits the deal's points between the calling team and the
// rest of the table
func (g *Game) FinalResult() (*models.FinalResult, error) {
	if g.callerIndex == NoSeat || g.guiltyIndex == NoSeat {
		return nil, ErrNoCaller
	}

	result := &models.FinalResult{
		Bid:         g.highestBid,
		CallerIndex: g.callerIndex,
		GuiltyIndex: g.guiltyIndex,
	}

	for i, points := range g.roundPoints {
		if i == g.callerIndex || i == g.guiltyIndex {
			continue
		}
		result.NonGuiltyPoints += points
	}

	if g.callerIndex == g.guiltyIndex {
		// the caller held their own card and plays alone
		result.GuiltyPoints = g.roundPoints[g.callerIndex]
	} else {
		result.GuiltyPoints = g.roundPoints[g.callerIndex] + g.roundPoints[g.guiltyIndex]
	}

	// a deal where every seat passed has no contract to make
	result.CallingTeamWon = result.Bid > 0 && result.GuiltyPoints >= result.Bid
	return result, nil
}

// NewRound starts another deal once the current one is finished. Seats and
// cumulative scores carry over.
func (g *Game) NewRound() error {
	if !g.phase.IsFinished() {
		return ErrInvalidPhase
	}
	g.resetRound()
	return nil
}
