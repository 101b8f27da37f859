package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/19506jk/briscola-server/internal/common/uuid Generator

// Generator hands out identifiers for games and results
type Generator interface {
	NewID() string
}

// Random generates version 4 UUIDs
type Random struct{}

func New() *Random {
	return &Random{}
}

// NewID returns a new random UUID string
func (r *Random) NewID() string {
	return uuid.NewString()
}

// Valid reports whether id parses as a UUID
func Valid(id string) bool {
	return uuid.Validate(id) == nil
}
