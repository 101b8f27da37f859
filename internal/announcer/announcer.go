package announcer

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/19506jk/briscola-server/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_announcer.go github.com/19506jk/briscola-server/internal/announcer Announcer

// Announcer publishes finished deals outside the game
type Announcer interface {
	AnnounceResult(ctx context.Context, input *AnnounceResultInput) error
}

// AnnounceResultInput contains the deal to publish
type AnnounceResultInput struct {
	Record *models.GameRecord
}

// Log writes finished deals to the process log. It is the announcer used
// when no chat integration is configured.
type Log struct {
	logger *zap.Logger
}

// NewLog creates a log announcer
func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger}
}

// AnnounceResult logs the record at info level
func (l *Log) AnnounceResult(ctx context.Context, input *AnnounceResultInput) error {
	if input == nil || input.Record == nil {
		return errors.New("input and record cannot be nil")
	}
	record := input.Record

	l.logger.Info("deal finished",
		zap.String("result_id", record.ID),
		zap.String("game_id", record.GameID),
		zap.Strings("calling_team", record.CallingTeam()),
		zap.Int("bid", record.Result.Bid),
		zap.Int("guilty_points", record.Result.GuiltyPoints),
		zap.Int("non_guilty_points", record.Result.NonGuiltyPoints),
		zap.Bool("calling_team_won", record.Result.CallingTeamWon),
	)
	return nil
}
