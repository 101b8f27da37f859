package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/19506jk/briscola-server/internal/engine"
)

// service implements the Service interface
type service struct {
	// mu guards rand
	mu   sync.Mutex
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &service{
		rand: rand.New(rand.NewSource(seed)),
	}, nil
}

func (s *service) pick(lines []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lines[s.rand.Intn(len(lines))]
}

// GetJoinMessage returns the announcement for a player taking a seat
func (s *service) GetJoinMessage(ctx context.Context, input *GetJoinMessageInput) (*GetJoinMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	message := "A new player has joined the game"
	if input.PlayerName != "" {
		message = fmt.Sprintf("%s has joined the game", input.PlayerName)
	}

	return &GetJoinMessageOutput{
		Message: message,
		Flavor: s.pick([]string{
			"Pull up a chair, the Two of Feathers is waiting for someone.",
			"Another brave soul at the table. Mind the trump.",
			"Welcome! Keep your Aces close and your partner closer.",
			"Fresh hands at the table. Nobody trusts anybody yet.",
			"A new challenger appears! Shuffle up.",
		}),
	}, nil
}

// GetExitMessage returns the announcement for a player leaving the table
func (s *service) GetExitMessage(ctx context.Context, input *GetExitMessageInput) (*GetExitMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	message := "A player has left the game"
	if input.PlayerName != "" {
		message = fmt.Sprintf("%s has left the game", input.PlayerName)
	}

	var flavor string
	if input.RoundAborted {
		flavor = s.pick([]string{
			"The deal is off. Cards back in the box.",
			"Someone flipped the table. Redealing when everyone is ready.",
			"No partner, no game. This hand is cancelled.",
		})
	} else {
		flavor = s.pick([]string{
			"One seat opens up.",
			"And then there were fewer.",
			"The chair is still warm.",
		})
	}

	return &GetExitMessageOutput{
		Message: message,
		Flavor:  flavor,
	}, nil
}

// GetResultMessage describes how a finished deal went
func (s *service) GetResultMessage(ctx context.Context, input *GetResultMessageInput) (*GetResultMessageOutput, error) {
	if input == nil || input.Record == nil {
		return nil, errors.New("input and record cannot be nil")
	}
	record := input.Record
	result := record.Result

	team := make([]string, 0, 2)
	for _, name := range record.CallingTeam() {
		if name == "" {
			name = "an anonymous player"
		}
		team = append(team, name)
	}

	var verb string
	if len(team) == 1 {
		verb = "played alone and"
	} else {
		verb = "teamed up and"
	}

	output := &GetResultMessageOutput{
		Message: fmt.Sprintf("%s %s took %d points on a bid of %d (table: %d). The called card was the %s.",
			strings.Join(team, " and "), verb, result.GuiltyPoints, result.Bid, result.NonGuiltyPoints, record.CalledCard),
	}

	if result.CallingTeamWon {
		output.Title = "The calling team made its bid"
		output.Tone = ToneCelebration
		output.Flavor = s.pick([]string{
			"Bid it, called it, took it.",
			"The partnership held. Drinks are on the table.",
			"Never doubt a caller with a plan.",
		})
	} else {
		output.Title = "The calling team went down"
		output.Tone = ToneSympathy
		output.Flavor = s.pick([]string{
			"Ambition is a fine thing. Counting is better.",
			"The table closed ranks and it worked.",
			"Maybe bid a little lower next time.",
		})
	}

	return output, nil
}

// GetErrorMessage returns a player-facing explanation of a failed action
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil || input.Err == nil {
		return nil, errors.New("input and error cannot be nil")
	}

	var gameErr engine.GameError
	if !errors.As(input.Err, &gameErr) {
		return &GetErrorMessageOutput{
			Message: "Something went wrong, please try again.",
		}, nil
	}

	var message string
	switch gameErr {
	case engine.ErrCapacityExceeded:
		message = "The table is full. Wait for a seat to open up."
	case engine.ErrInvalidPhase:
		message = "That can't be done right now."
	case engine.ErrInvalidBid:
		message = "Bids must be a positive number of points."
	case engine.ErrBidTooLow:
		message = "You have to bid more than the current highest bid."
	case engine.ErrAlreadyPassed:
		message = "You already passed this bidding."
	case engine.ErrNotCaller:
		message = "Only the caller names the called card."
	case engine.ErrCalledCardNotInPlay:
		message = "Nobody holds that card. Pick another one."
	case engine.ErrNotYourTurn:
		message = "Wait for your turn."
	case engine.ErrCardNotInHand:
		message = "You don't hold that card."
	case engine.ErrUnknownCard:
		message = "That card isn't in the deck."
	case engine.ErrTrickFull:
		message = "Everyone has already played this trick."
	default:
		message = fmt.Sprintf("Can't do that: %s.", gameErr)
	}

	return &GetErrorMessageOutput{
		Message: message,
	}, nil
}
