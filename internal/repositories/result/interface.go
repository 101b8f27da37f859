package result

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/19506jk/briscola-server/internal/repositories/result Repository

import (
	"context"

	"github.com/19506jk/briscola-server/internal/models"
)

// Repository defines the interface for finished deal persistence
type Repository interface {
	// SaveResult stores a finished deal and folds it into the standings
	SaveResult(ctx context.Context, input *SaveResultInput) error

	// GetResult retrieves a finished deal by ID
	GetResult(ctx context.Context, input *GetResultInput) (*models.GameRecord, error)

	// ListRecentResults returns the latest deals, newest first
	ListRecentResults(ctx context.Context, input *ListRecentResultsInput) (*ListRecentResultsOutput, error)

	// GetStandings returns every player's totals, best first
	GetStandings(ctx context.Context, input *GetStandingsInput) (*GetStandingsOutput, error)
}
