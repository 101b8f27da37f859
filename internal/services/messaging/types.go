package messaging

import "github.com/19506jk/briscola-server/internal/models"

// MessageTone represents the tone of a flavor line
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneCelebration is used for the winning side
	ToneCelebration MessageTone = "celebration"

	// ToneSympathy is used when the calling team goes down
	ToneSympathy MessageTone = "sympathy"
)

// ServiceConfig holds configuration for the messaging service
type ServiceConfig struct {
	// Seed fixes the choice of flavor lines when non-zero
	Seed int64
}

// GetJoinMessageInput contains parameters for a join announcement
type GetJoinMessageInput struct {
	// PlayerName is the name the player submitted, empty when anonymous
	PlayerName string
}

// GetJoinMessageOutput contains a join announcement
type GetJoinMessageOutput struct {
	// Message is what every client is told
	Message string

	// Flavor is an optional extra line
	Flavor string
}

// GetExitMessageInput contains parameters for an exit announcement
type GetExitMessageInput struct {
	// PlayerName is the name the seat held, empty when anonymous
	PlayerName string

	// RoundAborted is true when the departure cancelled the deal
	RoundAborted bool
}

// GetExitMessageOutput contains an exit announcement
type GetExitMessageOutput struct {
	Message string
	Flavor  string
}

// GetResultMessageInput contains the deal to describe
type GetResultMessageInput struct {
	Record *models.GameRecord
}

// GetResultMessageOutput contains the description of a deal
type GetResultMessageOutput struct {
	Title   string
	Message string
	Flavor  string
	Tone    MessageTone
}

// GetErrorMessageInput contains the failure to explain
type GetErrorMessageInput struct {
	Err error
}

// GetErrorMessageOutput contains a player-facing explanation
type GetErrorMessageOutput struct {
	Message string
}
