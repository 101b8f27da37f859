package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/19506jk/briscola-server/internal/common/clock Clock

// Clock tells the time. Results are stamped through it so tests can pin it.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in UTC
type System struct{}

// New returns the system clock
func New() *System {
	return &System{}
}

// Now returns the current UTC time
func (c *System) Now() time.Time {
	return time.Now().UTC()
}
