package models

// Seat is one of the fixed player slots at the table
type Seat struct {
	// Index is the stable position of the seat
	Index int `json:"index"`

	// Occupied indicates a player sits here
	Occupied bool `json:"occupied"`

	// PlayerName is the display name, empty for anonymous players
	PlayerName string `json:"playerName,omitempty"`

	// Hand holds the cards dealt this round
	Hand []Card `json:"-"`

	// Ready indicates the player opted into dealing
	Ready bool `json:"ready"`

	// Passed indicates the player withdrew from the current bidding
	Passed bool `json:"passed"`

	// Score accumulates trick points across rounds
	Score int `json:"score"`
}

// Clone returns a deep copy of the seat
func (s *Seat) Clone() *Seat {
	if s == nil {
		return nil
	}
	clone := *s
	if s.Hand != nil {
		clone.Hand = make([]Card, len(s.Hand))
		copy(clone.Hand, s.Hand)
	}
	return &clone
}
