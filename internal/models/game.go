package models

// Phase represents the current stage of a deal
type Phase string

const (
	// PhaseWaiting indicates players are joining and getting ready
	PhaseWaiting Phase = "waiting"

	// PhaseBidding indicates cards are dealt and players bid or pass
	PhaseBidding Phase = "bidding"

	// PhaseCalling indicates a caller won the bid and must name the called card
	PhaseCalling Phase = "calling"

	// PhasePlaying indicates tricks are being played
	PhasePlaying Phase = "playing"

	// PhaseFinished indicates every trick of the deal has been resolved
	PhaseFinished Phase = "finished"
)

// IsWaiting returns true if the phase is waiting
func (p Phase) IsWaiting() bool {
	return p == PhaseWaiting
}

// IsDealt returns true while a dealt round is in progress
func (p Phase) IsDealt() bool {
	return p == PhaseBidding || p == PhaseCalling || p == PhasePlaying
}

// IsFinished returns true if the phase is finished
func (p Phase) IsFinished() bool {
	return p == PhaseFinished
}

// GameState is the public view of a game, without hands or the guilty player
type GameState struct {
	// GameID identifies the game instance
	GameID string `json:"gameId"`

	// Phase is the current stage of the deal
	Phase Phase `json:"phase"`

	// Seats are the table slots in index order
	Seats []*Seat `json:"seats"`

	// DeckSize is the number of undealt cards
	DeckSize int `json:"deckSize"`

	// HighestBid is the running highest bid, 0 when nobody bid
	HighestBid int `json:"highestBid"`

	// PassedCount is the number of seats that passed this bidding
	PassedCount int `json:"passedCount"`

	// CallerIndex is the seat that won the bidding, -1 if none yet
	CallerIndex int `json:"callerIndex"`

	// Trump is the suit of the called card once announced
	Trump Suit `json:"trump,omitempty"`

	// CalledCard is the card named by the caller
	CalledCard *Card `json:"calledCard,omitempty"`

	// Trick holds the cards played in the current trick
	Trick []PlayedCard `json:"trick"`

	// RoundCount is the number of tricks resolved this deal
	RoundCount int `json:"roundCount"`

	// RoundPoints are this deal's trick points per seat
	RoundPoints []int `json:"roundPoints"`
}
