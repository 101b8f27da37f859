package engine

import "github.com/19506jk/briscola-server/internal/models"

// BidResolution reports where the bidding stands after a pass
type BidResolution struct {
	// Resolved is true once all but one seat passed
	Resolved bool

	// CallerIndex is the seat that won the bidding, NoSeat until resolved
	CallerIndex int

	// CallerName is the caller's display name
	CallerName string

	// Bid is the highest bid so far
	Bid int

	// PassedCount is the number of distinct seats that passed
	PassedCount int
}

// SubmitBid raises the highest bid. Any seat may bid at any time during the
// bidding; StrictRules rejects bids from passed seats and bids that do not
// top the current one.
func (g *Game) SubmitBid(index, amount int) (int, error) {
	if g.phase != models.PhaseBidding {
		return 0, ErrInvalidPhase
	}

	s, err := g.seat(index)
	if err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, ErrInvalidBid
	}

	if g.config.StrictRules {
		if s.Passed {
			return 0, ErrAlreadyPassed
		}
		if amount <= g.highestBid {
			return 0, ErrBidTooLow
		}
	}

	if amount > g.highestBid {
		g.highestBid = amount
	}
	return g.highestBid, nil
}

// SubmitPass withdraws a seat from the bidding. Passing twice is a no-op.
// When every seat but one has passed, that seat becomes the caller.
func (g *Game) SubmitPass(index int) (*BidResolution, error) {
	s, err := g.seat(index)
	if err != nil {
		return nil, err
	}
	if s.Passed {
		return g.resolution(), nil
	}
	if g.phase != models.PhaseBidding {
		return nil, ErrInvalidPhase
	}

	if g.passedCount+1 < len(g.seats)-1 {
		s.Passed = true
		g.passedCount++
		return g.resolution(), nil
	}

	// this pass settles the bidding; find the one seat left
	remaining := NoSeat
	for _, other := range g.seats {
		if other.Index != index && !other.Passed {
			remaining = other.Index
			break
		}
	}
	if remaining == NoSeat || !g.seats[remaining].Occupied {
		return nil, ErrAmbiguousResolution
	}

	s.Passed = true
	g.passedCount++
	g.callerIndex = remaining
	g.phase = models.PhaseCalling

	return g.resolution(), nil
}

// Caller returns the seat that won the bidding
func (g *Game) Caller() (int, bool) {
	return g.callerIndex, g.callerIndex != NoSeat
}

// HighestBid is the running highest bid, 0 when nobody bid
func (g *Game) HighestBid() int {
	return g.highestBid
}

func (g *Game) resolution() *BidResolution {
	r := &BidResolution{
		CallerIndex: g.callerIndex,
		Bid:         g.highestBid,
		PassedCount: g.passedCount,
	}
	if g.callerIndex != NoSeat {
		r.Resolved = true
		r.CallerName = g.seats[g.callerIndex].PlayerName
	}
	return r
}
