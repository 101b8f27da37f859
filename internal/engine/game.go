package engine

import (
	"github.com/19506jk/briscola-server/internal/catalog"
	"github.com/19506jk/briscola-server/internal/models"
	"github.com/19506jk/briscola-server/internal/shuffle"
)

const (
	// DefaultSeats is the table capacity
	DefaultSeats = 5

	// DefaultHandSize is the number of cards dealt to each seat
	DefaultHandSize = 8

	// NoSeat marks an unset seat index
	NoSeat = -1

	// NoNextPlayer is returned once the turn queue of a trick is consumed
	NoNextPlayer = -1
)

// Config holds configuration for a game
type Config struct {
	// Catalog is the card set the deck is built from
	Catalog *catalog.Catalog

	// Shuffler orders the deck at the start of each round
	Shuffler shuffle.Shuffler

	// Seats is the table capacity, DefaultSeats when zero
	Seats int

	// HandSize is the number of cards per hand, DefaultHandSize when zero
	HandSize int

	// StrictRules enforces turn order and card ownership when playing.
	// Play is permissive by default.
	StrictRules bool
}

type cardKey struct {
	suit models.Suit
	name string
}

func keyOf(card models.Card) cardKey {
	return cardKey{suit: card.Suit, name: card.Name}
}

// Game is the state of one table. It is not safe for concurrent use;
// callers serialize access.
type Game struct {
	config Config
	seats  []*models.Seat
	deck   []models.Card
	phase  models.Phase

	// turn order
	baseOrder []int
	order     []int
	current   int

	// bidding
	highestBid  int
	passedCount int
	callerIndex int

	// round
	trump       models.Suit
	calledCard  *models.Card
	guiltyIndex int
	trick       []models.PlayedCard
	played      map[cardKey]bool
	roundPoints []int
	roundCount  int
}

// New creates a game with a freshly shuffled deck and empty seats
func New(cfg *Config) (*Game, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Catalog == nil {
		return nil, ErrNilCatalog
	}
	if cfg.Shuffler == nil {
		return nil, ErrNilShuffler
	}

	config := *cfg
	if config.Seats == 0 {
		config.Seats = DefaultSeats
	}
	if config.HandSize == 0 {
		config.HandSize = DefaultHandSize
	}
	if config.Seats < 2 || config.HandSize < 1 || config.Seats*config.HandSize != config.Catalog.Size() {
		return nil, ErrCatalogMismatch
	}

	g := &Game{
		config: config,
		seats:  make([]*models.Seat, config.Seats),
	}
	for i := range g.seats {
		g.seats[i] = &models.Seat{Index: i}
	}
	g.resetRound()

	return g, nil
}

// Reset returns a fresh game with the same configuration
func (g *Game) Reset() (*Game, error) {
	cfg := g.config
	return New(&cfg)
}

// resetRound discards the deal and reshuffles. Occupancy and scores stay.
func (g *Game) resetRound() {
	g.deck = g.config.Shuffler.Shuffle(g.config.Catalog.Cards())
	g.phase = models.PhaseWaiting

	for _, s := range g.seats {
		s.Hand = nil
		s.Ready = false
		s.Passed = false
	}

	g.baseOrder = naturalOrder(len(g.seats))
	g.order = append([]int(nil), g.baseOrder...)
	g.current = NoSeat

	g.highestBid = 0
	g.passedCount = 0
	g.callerIndex = NoSeat

	g.trump = ""
	g.calledCard = nil
	g.guiltyIndex = NoSeat
	g.trick = nil
	g.played = make(map[cardKey]bool)
	g.roundPoints = make([]int, len(g.seats))
	g.roundCount = 0
}

// abortRound drops an unfinished deal, taking back the points it awarded
func (g *Game) abortRound() {
	for i, points := range g.roundPoints {
		g.seats[i].Score -= points
	}
	g.resetRound()
}

// dealStarted reports whether any card has left the deck this round
func (g *Game) dealStarted() bool {
	return g.phase.IsDealt() || len(g.deck) < g.config.Catalog.Size()
}

func (g *Game) seat(index int) (*models.Seat, error) {
	if index < 0 || index >= len(g.seats) {
		return nil, ErrInvalidSeat
	}
	s := g.seats[index]
	if !s.Occupied {
		return nil, ErrInvalidSeat
	}
	return s, nil
}

// Phase returns the current phase
func (g *Game) Phase() models.Phase {
	return g.phase
}

// Seats is the table capacity
func (g *Game) Seats() int {
	return len(g.seats)
}

// HandSize is the number of cards per hand
func (g *Game) HandSize() int {
	return g.config.HandSize
}

// DeckSize is the number of undealt cards
func (g *Game) DeckSize() int {
	return len(g.deck)
}

// Seat returns a copy of an occupied seat
func (g *Game) Seat(index int) (*models.Seat, error) {
	s, err := g.seat(index)
	if err != nil {
		return nil, err
	}
	return s.Clone(), nil
}

// Hand returns the cards a seat still holds, in dealt order
func (g *Game) Hand(index int) ([]models.Card, error) {
	s, err := g.seat(index)
	if err != nil {
		return nil, err
	}
	hand := make([]models.Card, 0, len(s.Hand))
	for _, card := range s.Hand {
		if !g.played[keyOf(card)] {
			hand = append(hand, card)
		}
	}
	return hand, nil
}

// Scores returns the cumulative score of every seat in index order
func (g *Game) Scores() []int {
	scores := make([]int, len(g.seats))
	for i, s := range g.seats {
		scores[i] = s.Score
	}
	return scores
}

// PlayerNames returns the name of every seat in index order
func (g *Game) PlayerNames() []string {
	names := make([]string, len(g.seats))
	for i, s := range g.seats {
		names[i] = s.PlayerName
	}
	return names
}

// Snapshot returns the public state: no hands, no guilty player
func (g *Game) Snapshot() *models.GameState {
	state := &models.GameState{
		Phase:       g.phase,
		Seats:       make([]*models.Seat, len(g.seats)),
		DeckSize:    len(g.deck),
		HighestBid:  g.highestBid,
		PassedCount: g.passedCount,
		CallerIndex: g.callerIndex,
		Trump:       g.trump,
		Trick:       append([]models.PlayedCard{}, g.trick...),
		RoundCount:  g.roundCount,
		RoundPoints: append([]int(nil), g.roundPoints...),
	}
	for i, s := range g.seats {
		clone := s.Clone()
		clone.Hand = nil
		state.Seats[i] = clone
	}
	if g.calledCard != nil {
		called := *g.calledCard
		state.CalledCard = &called
	}
	return state
}
