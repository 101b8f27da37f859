package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	announcerMocks "github.com/19506jk/briscola-server/internal/announcer/mocks"
	"github.com/19506jk/briscola-server/internal/catalog"
	clockMocks "github.com/19506jk/briscola-server/internal/common/clock/mocks"
	uuidMocks "github.com/19506jk/briscola-server/internal/common/uuid/mocks"
	"github.com/19506jk/briscola-server/internal/engine"
	"github.com/19506jk/briscola-server/internal/models"
	resultRepo "github.com/19506jk/briscola-server/internal/repositories/result"
	resultMocks "github.com/19506jk/briscola-server/internal/repositories/result/mocks"
	shuffleMocks "github.com/19506jk/briscola-server/internal/shuffle/mocks"
)

type GameServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockShuffler  *shuffleMocks.MockShuffler
	mockRepo      *resultMocks.MockRepository
	mockAnnouncer *announcerMocks.MockAnnouncer
	mockClock     *clockMocks.MockClock
	mockUUID      *uuidMocks.MockGenerator
	catalog       *catalog.Catalog
	logs          *observer.ObservedLogs
	gameService   Service
	ctx           context.Context

	// Test data
	testTime     time.Time
	testGameID   string
	testResultID string
	testNames    []string
}

func (s *GameServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockShuffler = shuffleMocks.NewMockShuffler(s.mockCtrl)
	s.mockRepo = resultMocks.NewMockRepository(s.mockCtrl)
	s.mockAnnouncer = announcerMocks.NewMockAnnouncer(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockGenerator(s.mockCtrl)

	s.ctx = context.Background()

	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testGameID = "test-game-id"
	s.testResultID = "test-result-id"
	s.testNames = []string{"P1", "P2", "P3", "P4", "P5"}

	cat, err := catalog.Default()
	s.Require().NoError(err)
	s.catalog = cat

	// Deck comes out in catalog order: seat 1 holds the Two of Feathers
	s.mockShuffler.EXPECT().
		Shuffle(gomock.Any()).
		DoAndReturn(func(cards []models.Card) []models.Card {
			return cards
		}).
		AnyTimes()
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	s.mockUUID.EXPECT().NewID().Return(s.testGameID)

	core, logs := observer.New(zap.DebugLevel)
	s.logs = logs

	svc, err := New(&Config{
		Catalog:       s.catalog,
		StrictRules:   true,
		ResultRepo:    s.mockRepo,
		Shuffler:      s.mockShuffler,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
		Announcer:     s.mockAnnouncer,
		Logger:        zap.New(core),
	})
	s.Require().NoError(err)
	s.gameService = svc
}

func (s *GameServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestGameServiceSuite(t *testing.T) {
	suite.Run(t, new(GameServiceTestSuite))
}

func (s *GameServiceTestSuite) seatAll() {
	for i, name := range s.testNames {
		output, err := s.gameService.JoinGame(s.ctx, &JoinGameInput{PlayerName: name})
		s.Require().NoError(err)
		s.Require().Equal(i, output.SeatIndex)
	}
}

func (s *GameServiceTestSuite) readyAll() *SetReadyOutput {
	var output *SetReadyOutput
	for i := range s.testNames {
		var err error
		output, err = s.gameService.SetReady(s.ctx, &SetReadyInput{SeatIndex: i, Ready: true})
		s.Require().NoError(err)
	}
	return output
}

// startPlay seats everyone, deals, makes seat 0 the caller with a bid of
// 70 and calls the Ace of Swords, held by seat 1
func (s *GameServiceTestSuite) startPlay() *SetCalledCardOutput {
	s.seatAll()
	s.readyAll()

	_, err := s.gameService.SubmitBid(s.ctx, &SubmitBidInput{SeatIndex: 0, Points: 70})
	s.Require().NoError(err)
	for i := 1; i < len(s.testNames); i++ {
		_, err := s.gameService.SubmitBid(s.ctx, &SubmitBidInput{SeatIndex: i, Passed: true})
		s.Require().NoError(err)
	}

	output, err := s.gameService.SetCalledCard(s.ctx, &SetCalledCardInput{
		SeatIndex: 0,
		Card:      models.Card{Suit: "Swords", Name: "Ace"},
	})
	s.Require().NoError(err)
	return output
}

// playDeal plays every seat's first remaining card until the deal ends
func (s *GameServiceTestSuite) playDeal(first int) *PlayCardOutput {
	next := first
	for plays := 0; plays < 40; plays++ {
		hand, err := s.gameService.GetHand(s.ctx, &GetHandInput{SeatIndex: next})
		s.Require().NoError(err)
		s.Require().NotEmpty(hand.Cards)

		card := hand.Cards[0]
		output, err := s.gameService.PlayCard(s.ctx, &PlayCardInput{
			SeatIndex: next,
			Card:      models.Card{Suit: card.Suit, Name: card.Name},
		})
		s.Require().NoError(err)
		s.Equal(card, output.Played.Card)

		if output.FinalResult != nil {
			return output
		}
		next = output.NextPlayer
	}
	s.FailNow("deal did not finish")
	return nil
}

func (s *GameServiceTestSuite) TestNew_Validation() {
	testCases := []struct {
		name string
		cfg  *Config
		want error
	}{
		{name: "nil config", cfg: nil, want: ErrNilConfig},
		{name: "nil catalog", cfg: &Config{Shuffler: s.mockShuffler, Clock: s.mockClock, UUIDGenerator: s.mockUUID}, want: ErrNilCatalog},
		{name: "nil shuffler", cfg: &Config{Catalog: s.catalog, Clock: s.mockClock, UUIDGenerator: s.mockUUID}, want: ErrNilShuffler},
		{name: "nil clock", cfg: &Config{Catalog: s.catalog, Shuffler: s.mockShuffler, UUIDGenerator: s.mockUUID}, want: ErrNilClock},
		{name: "nil uuid", cfg: &Config{Catalog: s.catalog, Shuffler: s.mockShuffler, Clock: s.mockClock}, want: ErrNilUUIDGenerator},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := New(tc.cfg)
			s.ErrorIs(err, tc.want)
		})
	}
}

func (s *GameServiceTestSuite) TestJoinGame_TableFull() {
	s.seatAll()

	output, err := s.gameService.JoinGame(s.ctx, &JoinGameInput{PlayerName: "P6"})
	s.ErrorIs(err, engine.ErrCapacityExceeded)
	s.Nil(output)
}

func (s *GameServiceTestSuite) TestSetReady_DealsWhenFullTableIsReady() {
	s.seatAll()

	for i := 0; i < 4; i++ {
		output, err := s.gameService.SetReady(s.ctx, &SetReadyInput{SeatIndex: i, Ready: true})
		s.Require().NoError(err)
		s.False(output.Dealt)
		s.Equal(s.testNames[i], output.PlayerName)
	}

	output, err := s.gameService.SetReady(s.ctx, &SetReadyInput{SeatIndex: 4, Ready: true})
	s.Require().NoError(err)
	s.True(output.Dealt)
	s.Require().Len(output.Hands, 5)
	for _, hand := range output.Hands {
		s.Len(hand, 8)
	}

	state, err := s.gameService.GetGameState(s.ctx, &GetGameStateInput{})
	s.Require().NoError(err)
	s.Equal(models.PhaseBidding, state.State.Phase)
	s.Equal(0, state.State.DeckSize)
	s.Equal(s.testGameID, state.State.GameID)
}

func (s *GameServiceTestSuite) TestSetReady_PartialTableDoesNotDeal() {
	_, err := s.gameService.JoinGame(s.ctx, &JoinGameInput{PlayerName: "P1"})
	s.Require().NoError(err)

	output, err := s.gameService.SetReady(s.ctx, &SetReadyInput{SeatIndex: 0, Ready: true})
	s.Require().NoError(err)
	s.False(output.Dealt)

	_, err = s.gameService.SetReady(s.ctx, &SetReadyInput{SeatIndex: 3, Ready: true})
	s.ErrorIs(err, engine.ErrInvalidSeat)
}

func (s *GameServiceTestSuite) TestSubmitBid() {
	s.seatAll()
	s.readyAll()

	output, err := s.gameService.SubmitBid(s.ctx, &SubmitBidInput{SeatIndex: 2, Points: 65})
	s.Require().NoError(err)
	s.Equal("P3", output.PlayerName)
	s.Equal(65, output.HighestBid)
	s.Nil(output.Resolution)

	_, err = s.gameService.SubmitBid(s.ctx, &SubmitBidInput{SeatIndex: 3, Points: 60})
	s.ErrorIs(err, engine.ErrBidTooLow)

	var last *SubmitBidOutput
	for _, seat := range []int{0, 1, 3, 4} {
		last, err = s.gameService.SubmitBid(s.ctx, &SubmitBidInput{SeatIndex: seat, Passed: true})
		s.Require().NoError(err)
		s.True(last.Passed)
	}
	s.Require().NotNil(last.Resolution)
	s.True(last.Resolution.Resolved)
	s.Equal(2, last.Resolution.CallerIndex)
	s.Equal("P3", last.Resolution.CallerName)
	s.Equal(65, last.HighestBid)
}

func (s *GameServiceTestSuite) TestSetCalledCard_FillsCatalogValues() {
	output := s.startPlay()

	s.Equal(models.Card{Suit: "Swords", Name: "Ace", Point: 11, Value: 10}, output.CalledCard)
	s.Equal(models.Suit("Swords"), output.Trump)
	s.Equal(1, output.FirstPlayer)
}

func (s *GameServiceTestSuite) TestSetCalledCard_NotCaller() {
	s.seatAll()
	s.readyAll()
	for i := 1; i < len(s.testNames); i++ {
		_, err := s.gameService.SubmitBid(s.ctx, &SubmitBidInput{SeatIndex: i, Passed: true})
		s.Require().NoError(err)
	}

	_, err := s.gameService.SetCalledCard(s.ctx, &SetCalledCardInput{
		SeatIndex: 3,
		Card:      models.Card{Suit: "Swords", Name: "Ace"},
	})
	s.ErrorIs(err, engine.ErrNotCaller)
}

func (s *GameServiceTestSuite) TestPlayCard_NotYourTurn() {
	s.startPlay()

	_, err := s.gameService.PlayCard(s.ctx, &PlayCardInput{
		SeatIndex: 0,
		Card:      models.Card{Suit: "Feathers", Name: "Ace"},
	})
	s.ErrorIs(err, engine.ErrNotYourTurn)
}

func (s *GameServiceTestSuite) TestSetCalledCard_UnknownCard() {
	s.seatAll()
	s.readyAll()
	for i := 1; i < len(s.testNames); i++ {
		_, err := s.gameService.SubmitBid(s.ctx, &SubmitBidInput{SeatIndex: i, Passed: true})
		s.Require().NoError(err)
	}

	_, err := s.gameService.SetCalledCard(s.ctx, &SetCalledCardInput{
		SeatIndex: 0,
		Card:      models.Card{Suit: "Swords", Name: "Joker", Point: 50, Value: 99},
	})
	s.ErrorIs(err, engine.ErrUnknownCard)

	state, err := s.gameService.GetGameState(s.ctx, &GetGameStateInput{})
	s.Require().NoError(err)
	s.Equal(models.PhaseCalling, state.State.Phase)
	s.Nil(state.State.CalledCard)
}

func (s *GameServiceTestSuite) TestPlayCard_UnknownCardRejectedWhenPermissive() {
	s.mockUUID.EXPECT().NewID().Return(s.testGameID)
	svc, err := New(&Config{
		Catalog:       s.catalog,
		StrictRules:   false,
		Shuffler:      s.mockShuffler,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
		Logger:        zap.NewNop(),
	})
	s.Require().NoError(err)
	s.gameService = svc

	first := s.startPlay()

	bogus := models.Card{Suit: "Swords", Name: "Bogus", Point: 999, Value: 99}
	for i := 0; i < len(s.testNames); i++ {
		_, err := s.gameService.PlayCard(s.ctx, &PlayCardInput{SeatIndex: first.FirstPlayer, Card: bogus})
		s.ErrorIs(err, engine.ErrUnknownCard)
	}

	state, err := s.gameService.GetGameState(s.ctx, &GetGameStateInput{})
	s.Require().NoError(err)
	s.Empty(state.State.Trick)
	s.Equal([]int{0, 0, 0, 0, 0}, state.State.RoundPoints)
	for _, seat := range state.State.Seats {
		s.Zero(seat.Score)
	}

	// catalog cards still play normally without turn order
	output, err := s.gameService.PlayCard(s.ctx, &PlayCardInput{
		SeatIndex: 3,
		Card:      models.Card{Suit: "Swords", Name: "Two"},
	})
	s.Require().NoError(err)
	s.Equal(models.Card{Suit: "Swords", Name: "Two", Point: 0, Value: 1}, output.Played.Card)
}

func (s *GameServiceTestSuite) TestPlayCard_FullDealStoresAndAnnounces() {
	first := s.startPlay()
	s.mockUUID.EXPECT().NewID().Return(s.testResultID)

	var saved *models.GameRecord
	s.mockRepo.EXPECT().
		SaveResult(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *resultRepo.SaveResultInput) error {
			saved = input.Record
			return nil
		})
	s.mockAnnouncer.EXPECT().
		AnnounceResult(gomock.Any(), gomock.Any()).
		Return(nil)

	output := s.playDeal(first.FirstPlayer)

	s.Equal(engine.NoNextPlayer, output.NextPlayer)
	s.Require().NotNil(output.TrickResult)
	s.Equal(8, output.TrickResult.TrickNumber)
	s.Equal(120, output.FinalResult.GuiltyPoints+output.FinalResult.NonGuiltyPoints)
	s.Equal(70, output.FinalResult.Bid)

	s.Require().NotNil(saved)
	s.Same(output.Record, saved)
	s.Equal(s.testResultID, saved.ID)
	s.Equal(s.testGameID, saved.GameID)
	s.Equal(s.testNames, saved.Players)
	s.Equal(s.testTime, saved.CompletedAt)
	s.Equal(*output.FinalResult, saved.Result)

	state, err := s.gameService.GetGameState(s.ctx, &GetGameStateInput{})
	s.Require().NoError(err)
	s.Equal(models.PhaseFinished, state.State.Phase)

	next, err := s.gameService.StartNextRound(s.ctx, &StartNextRoundInput{})
	s.Require().NoError(err)
	s.Equal(models.PhaseWaiting, next.Phase)
}

func (s *GameServiceTestSuite) TestPlayCard_PublishFailuresAreLogged() {
	first := s.startPlay()
	s.mockUUID.EXPECT().NewID().Return(s.testResultID)

	s.mockRepo.EXPECT().
		SaveResult(gomock.Any(), gomock.Any()).
		Return(errors.New("redis down"))
	s.mockAnnouncer.EXPECT().
		AnnounceResult(gomock.Any(), gomock.Any()).
		Return(errors.New("discord down"))

	output := s.playDeal(first.FirstPlayer)
	s.NotNil(output.FinalResult)

	s.Equal(1, s.logs.FilterMessage("failed to save result").Len())
	s.Equal(1, s.logs.FilterMessage("failed to announce result").Len())
}

func (s *GameServiceTestSuite) TestLeaveGame_AbortsDeal() {
	s.seatAll()
	s.readyAll()

	output, err := s.gameService.LeaveGame(s.ctx, &LeaveGameInput{SeatIndex: 2})
	s.Require().NoError(err)
	s.Equal("P3", output.PlayerName)
	s.True(output.RoundAborted)

	state, err := s.gameService.GetGameState(s.ctx, &GetGameStateInput{})
	s.Require().NoError(err)
	s.Equal(models.PhaseWaiting, state.State.Phase)
	s.Equal(40, state.State.DeckSize)

	_, err = s.gameService.LeaveGame(s.ctx, &LeaveGameInput{SeatIndex: 2})
	s.ErrorIs(err, engine.ErrInvalidSeat)
}

func (s *GameServiceTestSuite) TestStartNextRound_BeforeDealEnds() {
	_, err := s.gameService.StartNextRound(s.ctx, &StartNextRoundInput{})
	s.ErrorIs(err, engine.ErrInvalidPhase)
}

func (s *GameServiceTestSuite) TestResetGame() {
	s.seatAll()
	s.mockUUID.EXPECT().NewID().Return("second-game-id")

	output, err := s.gameService.ResetGame(s.ctx, &ResetGameInput{})
	s.Require().NoError(err)
	s.Equal("second-game-id", output.GameID)

	state, err := s.gameService.GetGameState(s.ctx, &GetGameStateInput{})
	s.Require().NoError(err)
	s.Equal("second-game-id", state.State.GameID)
	for _, seat := range state.State.Seats {
		s.False(seat.Occupied)
	}
}

func (s *GameServiceTestSuite) TestGetDeck() {
	output, err := s.gameService.GetDeck(s.ctx, &GetDeckInput{})
	s.Require().NoError(err)
	s.Len(output.Cards, 40)
}

func (s *GameServiceTestSuite) TestGetStandings() {
	standings := []*models.Standing{{PlayerName: "P1", Points: 80, Games: 2, Wins: 1}}
	records := []*models.GameRecord{{ID: s.testResultID}}

	s.mockRepo.EXPECT().
		GetStandings(gomock.Any(), &resultRepo.GetStandingsInput{Limit: 5}).
		Return(&resultRepo.GetStandingsOutput{Standings: standings}, nil)
	s.mockRepo.EXPECT().
		ListRecentResults(gomock.Any(), &resultRepo.ListRecentResultsInput{Limit: 5}).
		Return(&resultRepo.ListRecentResultsOutput{Records: records}, nil)

	output, err := s.gameService.GetStandings(s.ctx, &GetStandingsInput{Limit: 5})
	s.Require().NoError(err)
	s.Equal(standings, output.Standings)
	s.Equal(records, output.Recent)
}

func (s *GameServiceTestSuite) TestGetStandings_RepositoryError() {
	s.mockRepo.EXPECT().
		GetStandings(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("redis down"))

	_, err := s.gameService.GetStandings(s.ctx, &GetStandingsInput{})
	s.ErrorContains(err, "redis down")
}

func (s *GameServiceTestSuite) TestGetStandings_PersistenceDisabled() {
	s.mockUUID.EXPECT().NewID().Return(s.testGameID)

	svc, err := New(&Config{
		Catalog:       s.catalog,
		Shuffler:      s.mockShuffler,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)

	_, err = svc.GetStandings(s.ctx, &GetStandingsInput{})
	s.ErrorIs(err, ErrPersistenceDisabled)
}
