package game

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/19506jk/briscola-server/internal/services/game Service

// Service defines the interface for table operations
type Service interface {
	// JoinGame seats a player at the lowest free seat
	JoinGame(ctx context.Context, input *JoinGameInput) (*JoinGameOutput, error)

	// LeaveGame frees a seat, aborting the deal if cards are out
	LeaveGame(ctx context.Context, input *LeaveGameInput) (*LeaveGameOutput, error)

	// SetReady marks a seat ready and deals once the full table is ready
	SetReady(ctx context.Context, input *SetReadyInput) (*SetReadyOutput, error)

	// SubmitBid records a bid or a pass
	SubmitBid(ctx context.Context, input *SubmitBidInput) (*SubmitBidOutput, error)

	// SetCalledCard names the called card and opens play
	SetCalledCard(ctx context.Context, input *SetCalledCardInput) (*SetCalledCardOutput, error)

	// PlayCard plays a card, resolving the trick and the deal when complete
	PlayCard(ctx context.Context, input *PlayCardInput) (*PlayCardOutput, error)

	// StartNextRound starts another deal after a finished one
	StartNextRound(ctx context.Context, input *StartNextRoundInput) (*StartNextRoundOutput, error)

	// ResetGame replaces the table with a fresh one
	ResetGame(ctx context.Context, input *ResetGameInput) (*ResetGameOutput, error)

	// GetDeck returns every card of the catalog
	GetDeck(ctx context.Context, input *GetDeckInput) (*GetDeckOutput, error)

	// GetGameState returns the public view of the table
	GetGameState(ctx context.Context, input *GetGameStateInput) (*GetGameStateOutput, error)

	// GetHand returns the cards a seat still holds
	GetHand(ctx context.Context, input *GetHandInput) (*GetHandOutput, error)

	// GetStandings returns stored standings and recent deals
	GetStandings(ctx context.Context, input *GetStandingsInput) (*GetStandingsOutput, error)
}
