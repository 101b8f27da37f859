package game

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/19506jk/briscola-server/internal/announcer"
	"github.com/19506jk/briscola-server/internal/catalog"
	"github.com/19506jk/briscola-server/internal/common/clock"
	"github.com/19506jk/briscola-server/internal/common/uuid"
	"github.com/19506jk/briscola-server/internal/engine"
	"github.com/19506jk/briscola-server/internal/models"
	resultRepo "github.com/19506jk/briscola-server/internal/repositories/result"
)

// service implements the Service interface. Every engine call happens with
// mu held; repository and announcer calls happen after it is released.
type service struct {
	catalog    *catalog.Catalog
	resultRepo resultRepo.Repository
	announcer  announcer.Announcer
	clock      clock.Clock
	uuid       uuid.Generator
	logger     *zap.Logger

	mu     sync.Mutex
	game   *engine.Game
	gameID string
}

// New creates a new game service with an empty table
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Catalog == nil {
		return nil, ErrNilCatalog
	}
	if cfg.Shuffler == nil {
		return nil, ErrNilShuffler
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	g, err := engine.New(&engine.Config{
		Catalog:     cfg.Catalog,
		Shuffler:    cfg.Shuffler,
		StrictRules: cfg.StrictRules,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	s := &service{
		catalog:    cfg.Catalog,
		resultRepo: cfg.ResultRepo,
		announcer:  cfg.Announcer,
		clock:      cfg.Clock,
		uuid:       cfg.UUIDGenerator,
		logger:     logger,
		game:       g,
		gameID:     cfg.UUIDGenerator.NewID(),
	}
	s.logger.Info("game created", zap.String("game_id", s.gameID), zap.Bool("strict_rules", cfg.StrictRules))

	return s, nil
}

// resolveCard swaps a client card for its catalog entry so clients can send
// just the suit and name. Point and value always come from the catalog.
func (s *service) resolveCard(card models.Card) (models.Card, error) {
	known, ok := s.catalog.Lookup(card.Suit, card.Name)
	if !ok {
		return models.Card{}, engine.ErrUnknownCard
	}
	return known, nil
}

// JoinGame seats a player at the lowest free seat
func (s *service) JoinGame(ctx context.Context, input *JoinGameInput) (*JoinGameOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, err := s.game.Join(input.PlayerName)
	if err != nil {
		return nil, fmt.Errorf("failed to join game: %w", err)
	}

	s.logger.Info("player joined", zap.String("game_id", s.gameID), zap.Int("seat", index), zap.String("player", input.PlayerName))

	return &JoinGameOutput{
		SeatIndex:  index,
		PlayerName: input.PlayerName,
	}, nil
}

// LeaveGame frees a seat, aborting the deal if cards are out
func (s *service) LeaveGame(ctx context.Context, input *LeaveGameInput) (*LeaveGameOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.game.Leave(input.SeatIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to leave game: %w", err)
	}

	s.logger.Info("player left",
		zap.String("game_id", s.gameID),
		zap.Int("seat", result.SeatIndex),
		zap.Bool("round_aborted", result.RoundAborted),
	)

	return &LeaveGameOutput{
		SeatIndex:    result.SeatIndex,
		PlayerName:   result.PlayerName,
		RoundAborted: result.RoundAborted,
	}, nil
}

// SetReady marks a seat ready. When the change leaves a full table all
// ready before the deal, every seat is dealt.
func (s *service) SetReady(ctx context.Context, input *SetReadyInput) (*SetReadyOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.SetReady(input.SeatIndex, input.Ready); err != nil {
		return nil, fmt.Errorf("failed to set ready: %w", err)
	}

	seat, err := s.game.Seat(input.SeatIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to set ready: %w", err)
	}

	output := &SetReadyOutput{
		PlayerName: seat.PlayerName,
		Ready:      input.Ready,
	}

	if !input.Ready || !s.game.Phase().IsWaiting() || !s.game.IsFull() || !s.game.AllReady() {
		return output, nil
	}

	hands, err := s.game.DealAll()
	if err != nil {
		return nil, fmt.Errorf("failed to deal: %w", err)
	}
	output.Dealt = true
	output.Hands = hands

	s.logger.Info("cards dealt", zap.String("game_id", s.gameID), zap.Int("lead_seat", s.game.LeadSeat()))

	return output, nil
}

// SubmitBid records a bid or a pass
func (s *service) SubmitBid(ctx context.Context, input *SubmitBidInput) (*SubmitBidOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seat, err := s.game.Seat(input.SeatIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to submit bid: %w", err)
	}

	output := &SubmitBidOutput{
		PlayerName: seat.PlayerName,
		Passed:     input.Passed,
	}

	if !input.Passed {
		highest, err := s.game.SubmitBid(input.SeatIndex, input.Points)
		if err != nil {
			return nil, fmt.Errorf("failed to submit bid: %w", err)
		}
		output.HighestBid = highest
		return output, nil
	}

	resolution, err := s.game.SubmitPass(input.SeatIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to pass: %w", err)
	}
	output.HighestBid = resolution.Bid
	output.Resolution = resolution

	if resolution.Resolved {
		s.logger.Info("bidding resolved",
			zap.String("game_id", s.gameID),
			zap.Int("caller", resolution.CallerIndex),
			zap.Int("bid", resolution.Bid),
		)
	}

	return output, nil
}

// SetCalledCard names the called card and pops the first player
func (s *service) SetCalledCard(ctx context.Context, input *SetCalledCardInput) (*SetCalledCardOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, err := s.resolveCard(input.Card)
	if err != nil {
		return nil, fmt.Errorf("failed to set called card: %w", err)
	}
	if err := s.game.AnnounceCalledCard(input.SeatIndex, card); err != nil {
		return nil, fmt.Errorf("failed to set called card: %w", err)
	}

	return &SetCalledCardOutput{
		CalledCard:  *s.game.CalledCard(),
		Trump:       s.game.Trump(),
		FirstPlayer: s.game.NextPlayer(),
	}, nil
}

// PlayCard plays a card. The card that completes a trick resolves it, and
// the trick that completes the deal produces the final result, which is
// then stored and announced.
func (s *service) PlayCard(ctx context.Context, input *PlayCardInput) (*PlayCardOutput, error) {
	output, err := s.playCard(input)
	if err != nil {
		return nil, err
	}

	if output.Record != nil {
		s.publish(ctx, output.Record)
	}

	return output, nil
}

func (s *service) playCard(input *PlayCardInput) (*PlayCardOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, err := s.resolveCard(input.Card)
	if err != nil {
		return nil, fmt.Errorf("failed to play card: %w", err)
	}
	if err := s.game.PlayCard(input.SeatIndex, card); err != nil {
		return nil, fmt.Errorf("failed to play card: %w", err)
	}

	trick := s.game.Trick()
	output := &PlayCardOutput{
		Played: trick[len(trick)-1],
	}

	if !s.game.TrickComplete() {
		output.NextPlayer = s.game.NextPlayer()
		return output, nil
	}

	trickResult, err := s.game.ResolveTrick()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve trick: %w", err)
	}
	output.TrickResult = trickResult

	s.logger.Debug("trick resolved",
		zap.String("game_id", s.gameID),
		zap.Int("trick", trickResult.TrickNumber),
		zap.Int("winner", trickResult.Winner.SeatIndex),
		zap.Int("points", trickResult.Points),
	)

	if !s.game.IsGameOver() {
		output.NextPlayer = s.game.NextPlayer()
		return output, nil
	}

	final, err := s.game.FinalResult()
	if err != nil {
		return nil, fmt.Errorf("failed to compute final result: %w", err)
	}
	output.NextPlayer = engine.NoNextPlayer
	output.FinalResult = final
	output.Record = &models.GameRecord{
		ID:          s.uuid.NewID(),
		GameID:      s.gameID,
		Players:     s.game.PlayerNames(),
		Points:      s.game.RoundPoints(),
		CalledCard:  *s.game.CalledCard(),
		Result:      *final,
		CompletedAt: s.clock.Now(),
	}

	return output, nil
}

// publish stores and announces a finished deal. The deal is already over,
// so failures are logged rather than returned.
func (s *service) publish(ctx context.Context, record *models.GameRecord) {
	if s.resultRepo != nil {
		if err := s.resultRepo.SaveResult(ctx, &resultRepo.SaveResultInput{Record: record}); err != nil {
			s.logger.Error("failed to save result", zap.String("result_id", record.ID), zap.Error(err))
		}
	}

	if s.announcer != nil {
		if err := s.announcer.AnnounceResult(ctx, &announcer.AnnounceResultInput{Record: record}); err != nil {
			s.logger.Warn("failed to announce result", zap.String("result_id", record.ID), zap.Error(err))
		}
	}
}

// StartNextRound starts another deal after a finished one
func (s *service) StartNextRound(ctx context.Context, input *StartNextRoundInput) (*StartNextRoundOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.NewRound(); err != nil {
		return nil, fmt.Errorf("failed to start next round: %w", err)
	}

	return &StartNextRoundOutput{
		Phase: s.game.Phase(),
	}, nil
}

// ResetGame replaces the table with a fresh one under a new game ID
func (s *service) ResetGame(ctx context.Context, input *ResetGameInput) (*ResetGameOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.game.Reset()
	if err != nil {
		return nil, fmt.Errorf("failed to reset game: %w", err)
	}
	s.game = g
	s.gameID = s.uuid.NewID()

	s.logger.Info("game reset", zap.String("game_id", s.gameID))

	return &ResetGameOutput{
		GameID: s.gameID,
	}, nil
}

// GetDeck returns every card of the catalog
func (s *service) GetDeck(ctx context.Context, input *GetDeckInput) (*GetDeckOutput, error) {
	return &GetDeckOutput{
		Cards: s.catalog.Cards(),
	}, nil
}

// GetGameState returns the public view of the table
func (s *service) GetGameState(ctx context.Context, input *GetGameStateInput) (*GetGameStateOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.game.Snapshot()
	state.GameID = s.gameID

	return &GetGameStateOutput{
		State: state,
	}, nil
}

// GetHand returns the cards a seat still holds
func (s *service) GetHand(ctx context.Context, input *GetHandInput) (*GetHandOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards, err := s.game.Hand(input.SeatIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to get hand: %w", err)
	}

	return &GetHandOutput{
		Cards: cards,
	}, nil
}

// GetStandings returns stored standings and recent deals
func (s *service) GetStandings(ctx context.Context, input *GetStandingsInput) (*GetStandingsOutput, error) {
	if s.resultRepo == nil {
		return nil, ErrPersistenceDisabled
	}

	standings, err := s.resultRepo.GetStandings(ctx, &resultRepo.GetStandingsInput{
		Limit: input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get standings: %w", err)
	}

	recent, err := s.resultRepo.ListRecentResults(ctx, &resultRepo.ListRecentResultsInput{
		Limit: input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent results: %w", err)
	}

	return &GetStandingsOutput{
		Standings: standings.Standings,
		Recent:    recent.Records,
	}, nil
}
