package game

// GameError is a custom error type for game service errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrPersistenceDisabled GameError = "result history is not configured"
	ErrNilConfig           GameError = "config cannot be nil"
	ErrNilCatalog          GameError = "catalog cannot be nil"
	ErrNilShuffler         GameError = "shuffler cannot be nil"
	ErrNilClock            GameError = "clock cannot be nil"
	ErrNilUUIDGenerator    GameError = "UUID generator cannot be nil"
)
