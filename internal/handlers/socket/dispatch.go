package socket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/19506jk/briscola-server/internal/engine"
	"github.com/19506jk/briscola-server/internal/models"
	"github.com/19506jk/briscola-server/internal/services/game"
	"github.com/19506jk/briscola-server/internal/services/messaging"
)

var (
	// ErrNotSeated is returned for table events from a client without a seat
	ErrNotSeated = fmt.Errorf("not seated: %w", engine.ErrInvalidSeat)

	// ErrAlreadySeated is returned when a seated client submits a name again
	ErrAlreadySeated = errors.New("connection already holds a seat")
)

func (h *Hub) dispatch(ctx context.Context, c *client, msg *Message) {
	var err error
	switch msg.Event {
	case EventSubmitName:
		err = h.handleSubmitName(ctx, c, msg.Data)
	case EventReadyStatus:
		err = h.handleReadyStatus(ctx, c, msg.Data)
	case EventBid:
		err = h.handleBid(ctx, c, msg.Data)
	case EventSetCalledCard:
		err = h.handleSetCalledCard(ctx, c, msg.Data)
	case EventPlayCard:
		err = h.handlePlayCard(ctx, c, msg.Data)
	case EventNewRound:
		err = h.handleNewRound(ctx)
	case EventGetState:
		err = h.handleGetState(ctx, c)
	default:
		err = fmt.Errorf("unknown event %q", msg.Event)
	}

	if err != nil {
		h.sendError(ctx, c, msg.Event, err)
	}
}

func decode(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return errors.New("missing event data")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid event data: %w", err)
	}
	return nil
}

func (h *Hub) requireSeat(c *client) (int, error) {
	seat := h.seatOf(c)
	if seat == noSeat {
		return noSeat, ErrNotSeated
	}
	return seat, nil
}

func (h *Hub) handleSubmitName(ctx context.Context, c *client, data json.RawMessage) error {
	var name string
	if len(data) > 0 {
		if err := decode(data, &name); err != nil {
			return err
		}
	}
	output, err := h.claimSeat(ctx, c, name)
	if err != nil {
		return err
	}

	h.sendTo(c, EventSeatAssigned, SeatAssignedPayload{
		Index:      output.SeatIndex,
		PlayerName: output.PlayerName,
	})

	message, err := h.messagingService.GetJoinMessage(ctx, &messaging.GetJoinMessageInput{
		PlayerName: output.PlayerName,
	})
	if err != nil {
		return err
	}
	h.broadcast(EventPlayerJoined, message.Message)

	return nil
}

// claimSeat joins the table and records the seat before a reset can run
func (h *Hub) claimSeat(ctx context.Context, c *client, name string) (*game.JoinGameOutput, error) {
	h.tableMu.Lock()
	defer h.tableMu.Unlock()

	if h.seatOf(c) != noSeat {
		return nil, ErrAlreadySeated
	}

	output, err := h.gameService.JoinGame(ctx, &game.JoinGameInput{PlayerName: name})
	if err != nil {
		return nil, err
	}
	h.assignSeat(c, output.SeatIndex)
	return output, nil
}

func (h *Hub) handleReadyStatus(ctx context.Context, c *client, data json.RawMessage) error {
	seat, err := h.requireSeat(c)
	if err != nil {
		return err
	}
	var ready bool
	if err := decode(data, &ready); err != nil {
		return err
	}

	output, err := h.gameService.SetReady(ctx, &game.SetReadyInput{
		SeatIndex: seat,
		Ready:     ready,
	})
	if err != nil {
		return err
	}

	h.broadcast(EventPlayerReadyStatus, PlayerReadyStatusPayload{
		PlayerName: output.PlayerName,
		Ready:      output.Ready,
	})

	if output.Dealt {
		for index, hand := range output.Hands {
			h.sendToSeat(index, EventSetCards, hand)
		}
		h.broadcast(EventBiddingStarts, nil)
	}

	return nil
}

func (h *Hub) handleBid(ctx context.Context, c *client, data json.RawMessage) error {
	seat, err := h.requireSeat(c)
	if err != nil {
		return err
	}
	var payload BidPayload
	if err := decode(data, &payload); err != nil {
		return err
	}

	output, err := h.gameService.SubmitBid(ctx, &game.SubmitBidInput{
		SeatIndex: seat,
		Passed:    payload.Passed,
		Points:    payload.Points,
	})
	if err != nil {
		return err
	}

	if output.Passed {
		h.broadcast(EventPlayerPassedBid, PlayerPassedBidPayload{Player: output.PlayerName})
	} else {
		h.broadcast(EventPlayerBid, PlayerBidPayload{
			Player:     output.PlayerName,
			Bid:        payload.Points,
			HighestBid: output.HighestBid,
		})
	}

	if output.Resolution != nil && output.Resolution.Resolved {
		h.broadcast(EventSetCaller, SetCallerPayload{
			Name:  output.Resolution.CallerName,
			Index: output.Resolution.CallerIndex,
			Bid:   output.Resolution.Bid,
		})
	}

	return nil
}

func (h *Hub) handleSetCalledCard(ctx context.Context, c *client, data json.RawMessage) error {
	seat, err := h.requireSeat(c)
	if err != nil {
		return err
	}
	var card models.Card
	if err := decode(data, &card); err != nil {
		return err
	}

	output, err := h.gameService.SetCalledCard(ctx, &game.SetCalledCardInput{
		SeatIndex: seat,
		Card:      card,
	})
	if err != nil {
		return err
	}

	h.broadcast(EventGameStarts, GameStartsPayload{
		Player:     output.FirstPlayer,
		CalledCard: output.CalledCard,
		Trump:      output.Trump,
	})

	return nil
}

func (h *Hub) handlePlayCard(ctx context.Context, c *client, data json.RawMessage) error {
	seat, err := h.requireSeat(c)
	if err != nil {
		return err
	}
	var card models.Card
	if err := decode(data, &card); err != nil {
		return err
	}

	output, err := h.gameService.PlayCard(ctx, &game.PlayCardInput{
		SeatIndex: seat,
		Card:      card,
	})
	if err != nil {
		return err
	}

	h.broadcast(EventCardPlayed, output.Played)

	if output.TrickResult != nil {
		h.broadcast(EventRoundResult, RoundResultPayload{
			Winner: output.TrickResult.Winner,
			Points: output.TrickResult.Points,
			Scores: output.TrickResult.Scores,
		})
	}

	if output.FinalResult != nil {
		h.broadcast(EventFinalResult, FinalResultPayload{
			GuiltyPoints:    output.FinalResult.GuiltyPoints,
			NonGuiltyPoints: output.FinalResult.NonGuiltyPoints,
			Bid:             output.FinalResult.Bid,
		})
		return nil
	}

	h.broadcast(EventNextPlayer, output.NextPlayer)
	return nil
}

func (h *Hub) handleNewRound(ctx context.Context) error {
	output, err := h.gameService.StartNextRound(ctx, &game.StartNextRoundInput{})
	if err != nil {
		return err
	}

	h.broadcast(EventRoundStarts, RoundStartsPayload{Phase: output.Phase})
	return nil
}

func (h *Hub) handleGetState(ctx context.Context, c *client) error {
	output, err := h.gameService.GetGameState(ctx, &game.GetGameStateInput{})
	if err != nil {
		return err
	}

	h.sendTo(c, EventGameState, output.State)
	return nil
}
