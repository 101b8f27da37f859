package announcer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/19506jk/briscola-server/internal/models"
)

func TestLog_AnnounceResult(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	a := NewLog(zap.New(core))

	err := a.AnnounceResult(context.Background(), &AnnounceResultInput{
		Record: &models.GameRecord{
			ID:      "result-1",
			Players: []string{"Anna", "Bruno", "Carla", "Dario", "Elena"},
			Result: models.FinalResult{
				GuiltyPoints:    75,
				NonGuiltyPoints: 45,
				Bid:             70,
				CallerIndex:     4,
				GuiltyIndex:     0,
				CallingTeamWon:  true,
			},
		},
	})
	require.NoError(t, err)

	entries := logs.FilterMessage("deal finished").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "result-1", fields["result_id"])
	assert.Equal(t, int64(70), fields["bid"])
	assert.Equal(t, true, fields["calling_team_won"])
}

func TestLog_AnnounceResult_NilRecord(t *testing.T) {
	a := NewLog(nil)
	assert.Error(t, a.AnnounceResult(context.Background(), &AnnounceResultInput{}))
}
