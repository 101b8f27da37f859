package engine

// LeaveResult describes a seat that was vacated
type LeaveResult struct {
	// SeatIndex is the vacated seat
	SeatIndex int

	// PlayerName is the name the seat held, empty for anonymous players
	PlayerName string

	// RoundAborted is true when the departure cancelled a deal in progress
	RoundAborted bool
}

// Join seats a player at the lowest free index
func (g *Game) Join(name string) (int, error) {
	for _, s := range g.seats {
		if s.Occupied {
			continue
		}
		s.Occupied = true
		s.PlayerName = name
		s.Hand = nil
		s.Ready = false
		s.Passed = false
		s.Score = 0
		return s.Index, nil
	}
	return NoSeat, ErrCapacityExceeded
}

// Leave vacates a seat without moving anyone else. Leaving after cards were
// dealt aborts the round: the deck is rebuilt and the deal's points revoked.
func (g *Game) Leave(index int) (*LeaveResult, error) {
	s, err := g.seat(index)
	if err != nil {
		return nil, err
	}

	result := &LeaveResult{
		SeatIndex:  index,
		PlayerName: s.PlayerName,
	}

	aborting := g.dealStarted() && !g.phase.IsFinished()

	s.Occupied = false
	s.PlayerName = ""
	s.Hand = nil
	s.Ready = false
	s.Passed = false

	if aborting {
		g.abortRound()
		result.RoundAborted = true
	}

	return result, nil
}

// SetReady records whether a seat wants cards dealt
func (g *Game) SetReady(index int, ready bool) error {
	s, err := g.seat(index)
	if err != nil {
		return err
	}
	s.Ready = ready
	return nil
}

// AllReady is true when no occupied seat is still not ready
func (g *Game) AllReady() bool {
	for _, s := range g.seats {
		if s.Occupied && !s.Ready {
			return false
		}
	}
	return true
}

// IsFull is true when every seat is occupied
func (g *Game) IsFull() bool {
	for _, s := range g.seats {
		if !s.Occupied {
			return false
		}
	}
	return true
}
