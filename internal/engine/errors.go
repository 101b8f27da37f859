package engine

// GameError is a custom error type for engine errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrCapacityExceeded    GameError = "all seats are occupied"
	ErrInvalidSeat         GameError = "seat is out of range or unoccupied"
	ErrDeckExhausted       GameError = "not enough cards left in the deck"
	ErrAmbiguousResolution GameError = "bid resolution landed on an empty seat"
	ErrInvalidPhase        GameError = "operation not allowed in the current phase"
	ErrTableNotFull        GameError = "every seat must be occupied to deal"
	ErrAlreadyDealt        GameError = "seat already holds a hand"
	ErrInvalidBid          GameError = "bid must be a positive number of points"
	ErrBidTooLow           GameError = "bid must exceed the highest bid"
	ErrAlreadyPassed       GameError = "seat already passed"
	ErrNotCaller           GameError = "only the caller can name the called card"
	ErrCalledCardNotInPlay GameError = "called card is not in any hand"
	ErrEmptyTrick          GameError = "no cards have been played in this trick"
	ErrTrickFull           GameError = "every seat has already played in this trick"
	ErrNotYourTurn         GameError = "not this seat's turn to play"
	ErrCardNotInHand       GameError = "card is not in the seat's hand"
	ErrUnknownCard         GameError = "card is not in the catalog"
	ErrNoCaller            GameError = "no caller has been resolved"
	ErrCatalogMismatch     GameError = "catalog size does not match seats times hand size"
	ErrNilConfig           GameError = "config cannot be nil"
	ErrNilCatalog          GameError = "catalog cannot be nil"
	ErrNilShuffler         GameError = "shuffler cannot be nil"
)
