package game

import (
	"go.uber.org/zap"

	"github.com/19506jk/briscola-server/internal/announcer"
	"github.com/19506jk/briscola-server/internal/catalog"
	"github.com/19506jk/briscola-server/internal/common/clock"
	"github.com/19506jk/briscola-server/internal/common/uuid"
	"github.com/19506jk/briscola-server/internal/engine"
	"github.com/19506jk/briscola-server/internal/models"
	resultRepo "github.com/19506jk/briscola-server/internal/repositories/result"
	"github.com/19506jk/briscola-server/internal/shuffle"
)

// Config holds configuration for the game service
type Config struct {
	// Catalog is the card set
	Catalog *catalog.Catalog

	// StrictRules enforces turn order and card ownership
	StrictRules bool

	// Repository dependencies, optional
	ResultRepo resultRepo.Repository

	// Service dependencies
	Shuffler      shuffle.Shuffler
	Clock         clock.Clock
	UUIDGenerator uuid.Generator
	Announcer     announcer.Announcer
	Logger        *zap.Logger
}

// JoinGameInput contains parameters for taking a seat
type JoinGameInput struct {
	// PlayerName may be empty for an anonymous player
	PlayerName string
}

// JoinGameOutput contains the seat that was taken
type JoinGameOutput struct {
	SeatIndex  int
	PlayerName string
}

// LeaveGameInput contains the seat to free
type LeaveGameInput struct {
	SeatIndex int
}

// LeaveGameOutput contains the result of leaving
type LeaveGameOutput struct {
	SeatIndex    int
	PlayerName   string
	RoundAborted bool
}

// SetReadyInput contains a seat's ready status
type SetReadyInput struct {
	SeatIndex int
	Ready     bool
}

// SetReadyOutput contains the result of a ready change
type SetReadyOutput struct {
	PlayerName string
	Ready      bool

	// Dealt is true when this change completed the table and cards were dealt
	Dealt bool

	// Hands are the dealt hands by seat index, private to each seat
	Hands [][]models.Card
}

// SubmitBidInput contains a bid or a pass
type SubmitBidInput struct {
	SeatIndex int

	// Passed withdraws the seat from the bidding; Points is ignored
	Passed bool

	// Points is the bid amount
	Points int
}

// SubmitBidOutput contains the state of the bidding after the action
type SubmitBidOutput struct {
	PlayerName string
	Passed     bool
	HighestBid int

	// Resolution is set for passes
	Resolution *engine.BidResolution
}

// SetCalledCardInput contains the caller's called card
type SetCalledCardInput struct {
	SeatIndex int
	Card      models.Card
}

// SetCalledCardOutput contains the opening of play
type SetCalledCardOutput struct {
	CalledCard models.Card
	Trump      models.Suit

	// FirstPlayer is the seat to lead the first trick
	FirstPlayer int
}

// PlayCardInput contains a card to play
type PlayCardInput struct {
	SeatIndex int
	Card      models.Card
}

// PlayCardOutput contains everything that followed from playing the card
type PlayCardOutput struct {
	Played models.PlayedCard

	// NextPlayer is the next seat to play, engine.NoNextPlayer after the deal
	NextPlayer int

	// TrickResult is set when the card completed a trick
	TrickResult *models.TrickResult

	// FinalResult is set when the trick completed the deal
	FinalResult *models.FinalResult

	// Record is the stored deal, set with FinalResult
	Record *models.GameRecord
}

type StartNextRoundInput struct{}

type StartNextRoundOutput struct {
	Phase models.Phase
}

type ResetGameInput struct{}

type ResetGameOutput struct {
	GameID string
}

type GetDeckInput struct{}

type GetDeckOutput struct {
	Cards []models.Card
}

type GetGameStateInput struct{}

type GetGameStateOutput struct {
	State *models.GameState
}

type GetHandInput struct {
	SeatIndex int
}

type GetHandOutput struct {
	Cards []models.Card
}

// GetStandingsInput limits the standings query
type GetStandingsInput struct {
	// Limit caps both lists, repository defaults when zero
	Limit int
}

// GetStandingsOutput contains stored standings
type GetStandingsOutput struct {
	Standings []*models.Standing   `json:"standings"`
	Recent    []*models.GameRecord `json:"recent"`
}
