package shuffle

import (
	"math/rand"
	"time"

	"github.com/19506jk/briscola-server/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_shuffler.go github.com/19506jk/briscola-server/internal/shuffle Shuffler

// Shuffler orders a deck before dealing
type Shuffler interface {
	// Shuffle returns a permutation of cards; the input is left untouched
	Shuffle(cards []models.Card) []models.Card
}

// Random shuffles with a math/rand source
type Random struct {
	random *rand.Rand
}

// Config for the random shuffler
type Config struct {
	// Optional seed for reproducible deals
	Seed int64
}

// New creates a new random shuffler
func New(cfg *Config) *Random {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Random{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Shuffle returns a shuffled copy of cards
func (r *Random) Shuffle(cards []models.Card) []models.Card {
	out := make([]models.Card, len(cards))
	copy(out, cards)
	r.random.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
