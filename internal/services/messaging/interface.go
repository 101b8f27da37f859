package messaging

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/19506jk/briscola-server/internal/services/messaging Service

// Service is the interface for the messaging service
type Service interface {
	// GetJoinMessage returns the announcement for a player taking a seat
	GetJoinMessage(ctx context.Context, input *GetJoinMessageInput) (*GetJoinMessageOutput, error)

	// GetExitMessage returns the announcement for a player leaving the table
	GetExitMessage(ctx context.Context, input *GetExitMessageInput) (*GetExitMessageOutput, error)

	// GetResultMessage describes how a finished deal went
	GetResultMessage(ctx context.Context, input *GetResultMessageInput) (*GetResultMessageOutput, error)

	// GetErrorMessage returns a player-facing explanation of a failed action
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
