package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameRecord_CallingTeam(t *testing.T) {
	record := &GameRecord{
		Players: []string{"P1", "P2", "P3", "P4", "P5"},
		Result:  FinalResult{CallerIndex: 4, GuiltyIndex: 0},
	}
	assert.Equal(t, []string{"P5", "P1"}, record.CallingTeam())

	record.Result.GuiltyIndex = 4
	assert.Equal(t, []string{"P5"}, record.CallingTeam())
}

func TestGameRecord_Won(t *testing.T) {
	record := &GameRecord{
		Players: []string{"P1", "P2", "P3", "P4", "P5"},
		Result:  FinalResult{CallerIndex: 1, GuiltyIndex: 3, CallingTeamWon: true},
	}
	assert.True(t, record.Won(1))
	assert.True(t, record.Won(3))
	assert.False(t, record.Won(0))

	record.Result.CallingTeamWon = false
	assert.False(t, record.Won(1))
	assert.True(t, record.Won(2))
}
