package engine

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/19506jk/briscola-server/internal/catalog"
	"github.com/19506jk/briscola-server/internal/models"
	"github.com/19506jk/briscola-server/internal/shuffle/mocks"
)

type GameTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockShuffler *mocks.MockShuffler
	catalog      *catalog.Catalog
	game         *Game

	// Test data
	testNames []string
}

func (s *GameTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockShuffler = mocks.NewMockShuffler(s.mockCtrl)

	cat, err := catalog.Default()
	s.Require().NoError(err)
	s.catalog = cat

	s.testNames = []string{"P1", "P2", "P3", "P4", "P5"}
}

func (s *GameTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// newGame builds a game whose deck is the catalog in suit-major order.
// Seat 1 is dealt the Two of Feathers and leads.
func (s *GameTestSuite) newGame(strict bool) *Game {
	s.mockShuffler.EXPECT().
		Shuffle(gomock.Any()).
		DoAndReturn(func(cards []models.Card) []models.Card {
			return cards
		}).
		AnyTimes()

	g, err := New(&Config{
		Catalog:     s.catalog,
		Shuffler:    s.mockShuffler,
		StrictRules: strict,
	})
	s.Require().NoError(err)
	return g
}

func (s *GameTestSuite) seatAll(g *Game) {
	for i, name := range s.testNames {
		index, err := g.Join(name)
		s.Require().NoError(err)
		s.Require().Equal(i, index)
	}
}

func (s *GameTestSuite) dealAll(g *Game) [][]models.Card {
	s.seatAll(g)
	for i := range s.testNames {
		s.Require().NoError(g.SetReady(i, true))
	}
	s.Require().True(g.AllReady())

	hands, err := g.DealAll()
	s.Require().NoError(err)
	return hands
}

// resolveBidding makes every seat but caller pass
func (s *GameTestSuite) resolveBidding(g *Game, caller, bid int) *BidResolution {
	_, err := g.SubmitBid(caller, bid)
	s.Require().NoError(err)

	var resolution *BidResolution
	for i := range s.testNames {
		if i == caller {
			continue
		}
		resolution, err = g.SubmitPass(i)
		s.Require().NoError(err)
	}
	return resolution
}

func (s *GameTestSuite) card(suit models.Suit, name string) models.Card {
	c, ok := s.catalog.Lookup(suit, name)
	s.Require().True(ok)
	return c
}

func (s *GameTestSuite) assertDeckInvariant(g *Game) {
	total := len(g.deck)
	for _, seat := range g.seats {
		total += len(seat.Hand)
	}
	s.Equal(s.catalog.Size(), total)
}

func (s *GameTestSuite) TestNew_Validation() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{Shuffler: s.mockShuffler})
	s.ErrorIs(err, ErrNilCatalog)

	_, err = New(&Config{Catalog: s.catalog})
	s.ErrorIs(err, ErrNilShuffler)

	_, err = New(&Config{Catalog: s.catalog, Shuffler: s.mockShuffler, Seats: 4})
	s.ErrorIs(err, ErrCatalogMismatch)
}

func (s *GameTestSuite) TestNew_Defaults() {
	g := s.newGame(false)

	s.Equal(DefaultSeats, g.Seats())
	s.Equal(DefaultHandSize, g.HandSize())
	s.Equal(40, g.DeckSize())
	s.Equal(models.PhaseWaiting, g.Phase())
	s.Equal([]int{0, 1, 2, 3, 4}, g.TurnOrder())
}

func (s *GameTestSuite) TestJoin_FillsLowestFreeSeat() {
	g := s.newGame(false)
	s.seatAll(g)

	_, err := g.Join("P6")
	s.ErrorIs(err, ErrCapacityExceeded)

	result, err := g.Leave(2)
	s.Require().NoError(err)
	s.Equal("P3", result.PlayerName)
	s.False(result.RoundAborted)

	index, err := g.Join("")
	s.Require().NoError(err)
	s.Equal(2, index)

	seat, err := g.Seat(2)
	s.Require().NoError(err)
	s.Empty(seat.PlayerName)
	s.Equal([]string{"P1", "P2", "", "P4", "P5"}, g.PlayerNames())
}

func (s *GameTestSuite) TestLeave_InvalidSeat() {
	g := s.newGame(false)

	_, err := g.Leave(0)
	s.ErrorIs(err, ErrInvalidSeat)

	_, err = g.Leave(7)
	s.ErrorIs(err, ErrInvalidSeat)
}

func (s *GameTestSuite) TestAllReady_IgnoresEmptySeats() {
	g := s.newGame(false)
	s.True(g.AllReady())

	_, err := g.Join("P1")
	s.Require().NoError(err)
	s.False(g.AllReady())

	s.Require().NoError(g.SetReady(0, true))
	s.True(g.AllReady())
	s.False(g.IsFull())

	s.ErrorIs(g.SetReady(3, true), ErrInvalidSeat)
}

func (s *GameTestSuite) TestEndToEnd_DealAll() {
	g := s.newGame(false)
	hands := s.dealAll(g)

	s.Equal(0, g.DeckSize())
	s.Equal(models.PhaseBidding, g.Phase())
	s.Require().Len(hands, 5)

	seen := make(map[string]bool)
	for _, hand := range hands {
		s.Len(hand, 8)
		for _, c := range hand {
			s.False(seen[c.String()], "card %s dealt twice", c)
			seen[c.String()] = true
		}
	}
	s.Len(seen, 40)
	s.assertDeckInvariant(g)
}

func (s *GameTestSuite) TestDealAll_RequiresFullTable() {
	g := s.newGame(false)
	_, err := g.Join("P1")
	s.Require().NoError(err)

	_, err = g.DealAll()
	s.ErrorIs(err, ErrTableNotFull)
	s.Equal(40, g.DeckSize())
}

func (s *GameTestSuite) TestDeal_RotatesToLeadCardHolder() {
	g := s.newGame(false)
	s.seatAll(g)

	_, err := g.Deal(0)
	s.Require().NoError(err)
	s.Equal([]int{0, 1, 2, 3, 4}, g.TurnOrder())

	hand, err := g.Deal(1)
	s.Require().NoError(err)
	s.Contains(hand, s.catalog.LeadCard())
	s.Equal([]int{1, 2, 3, 4, 0}, g.TurnOrder())
	s.Equal(1, g.LeadSeat())

	_, err = g.Deal(1)
	s.ErrorIs(err, ErrAlreadyDealt)
	s.assertDeckInvariant(g)
}

func (s *GameTestSuite) TestDeal_ShortDeckAbortsRound() {
	full := s.catalog.Cards()
	gomock.InOrder(
		s.mockShuffler.EXPECT().Shuffle(gomock.Any()).Return(full[:12]),
		s.mockShuffler.EXPECT().Shuffle(gomock.Any()).Return(full),
	)

	g, err := New(&Config{Catalog: s.catalog, Shuffler: s.mockShuffler})
	s.Require().NoError(err)
	s.seatAll(g)

	_, err = g.Deal(0)
	s.Require().NoError(err)
	s.Equal(4, g.DeckSize())

	_, err = g.Deal(1)
	s.ErrorIs(err, ErrDeckExhausted)

	// round is rebuilt, nobody holds a truncated hand
	s.Equal(40, g.DeckSize())
	s.Equal(models.PhaseWaiting, g.Phase())
	hand, err := g.Hand(0)
	s.Require().NoError(err)
	s.Empty(hand)
}

func (s *GameTestSuite) TestDealAll_ShortDeckDealsNothing() {
	full := s.catalog.Cards()
	gomock.InOrder(
		s.mockShuffler.EXPECT().Shuffle(gomock.Any()).Return(full[:39]),
		s.mockShuffler.EXPECT().Shuffle(gomock.Any()).Return(full),
	)

	g, err := New(&Config{Catalog: s.catalog, Shuffler: s.mockShuffler})
	s.Require().NoError(err)
	s.seatAll(g)

	hands, err := g.DealAll()
	s.ErrorIs(err, ErrDeckExhausted)
	s.Nil(hands)
	for i := range s.testNames {
		hand, err := g.Hand(i)
		s.Require().NoError(err)
		s.Empty(hand)
	}
}

func (s *GameTestSuite) TestSubmitBid() {
	g := s.newGame(false)

	_, err := g.SubmitBid(0, 60)
	s.ErrorIs(err, ErrInvalidPhase)

	s.dealAll(g)

	_, err = g.SubmitBid(0, 0)
	s.ErrorIs(err, ErrInvalidBid)

	highest, err := g.SubmitBid(0, 61)
	s.Require().NoError(err)
	s.Equal(61, highest)

	// permissive: a lower bid is accepted but does not lower the highest
	highest, err = g.SubmitBid(1, 50)
	s.Require().NoError(err)
	s.Equal(61, highest)
	s.Equal(61, g.HighestBid())
}

func (s *GameTestSuite) TestSubmitBid_Strict() {
	g := s.newGame(true)
	s.dealAll(g)

	_, err := g.SubmitBid(0, 70)
	s.Require().NoError(err)

	_, err = g.SubmitBid(1, 70)
	s.ErrorIs(err, ErrBidTooLow)

	_, err = g.SubmitPass(2)
	s.Require().NoError(err)
	_, err = g.SubmitBid(2, 80)
	s.ErrorIs(err, ErrAlreadyPassed)
}

func (s *GameTestSuite) TestSubmitPass_Idempotent() {
	g := s.newGame(false)
	s.dealAll(g)

	_, err := g.SubmitPass(0)
	s.Require().NoError(err)
	resolution, err := g.SubmitPass(0)
	s.Require().NoError(err)

	s.Equal(1, resolution.PassedCount)
	s.False(resolution.Resolved)
	s.Equal(NoSeat, resolution.CallerIndex)
}

func (s *GameTestSuite) TestSubmitPass_ResolvesAfterFourPasses() {
	g := s.newGame(false)
	s.dealAll(g)

	_, err := g.SubmitBid(2, 65)
	s.Require().NoError(err)

	for _, seat := range []int{0, 1, 3} {
		resolution, err := g.SubmitPass(seat)
		s.Require().NoError(err)
		s.False(resolution.Resolved)
	}
	_, ok := g.Caller()
	s.False(ok)
	s.Equal(models.PhaseBidding, g.Phase())

	resolution, err := g.SubmitPass(4)
	s.Require().NoError(err)
	s.Equal(&BidResolution{
		Resolved:    true,
		CallerIndex: 2,
		CallerName:  "P3",
		Bid:         65,
		PassedCount: 4,
	}, resolution)

	caller, ok := g.Caller()
	s.True(ok)
	s.Equal(2, caller)
	s.Equal(models.PhaseCalling, g.Phase())

	// a late pass from a seat that already passed changes nothing
	resolution, err = g.SubmitPass(4)
	s.Require().NoError(err)
	s.Equal(4, resolution.PassedCount)

	_, err = g.SubmitPass(2)
	s.ErrorIs(err, ErrInvalidPhase)
}

func (s *GameTestSuite) TestSubmitPass_AmbiguousResolution() {
	g := s.newGame(false)
	s.dealAll(g)

	for _, seat := range []int{0, 1, 2} {
		_, err := g.SubmitPass(seat)
		s.Require().NoError(err)
	}
	// only reachable if a seat empties without aborting the deal
	g.seats[4].Occupied = false

	_, err := g.SubmitPass(3)
	s.ErrorIs(err, ErrAmbiguousResolution)
	s.Equal(3, g.passedCount)
	s.False(g.seats[3].Passed)
	s.Equal(models.PhaseBidding, g.Phase())
}

func (s *GameTestSuite) TestAnnounceCalledCard() {
	g := s.newGame(false)
	s.dealAll(g)
	s.resolveBidding(g, 0, 70)

	called := models.Card{Suit: "Swords", Name: "Ace"}

	s.ErrorIs(g.AnnounceCalledCard(3, called), ErrNotCaller)
	s.ErrorIs(g.AnnounceCalledCard(0, models.Card{Suit: "Coins", Name: "Ace"}), ErrCalledCardNotInPlay)
	s.Equal(models.PhaseCalling, g.Phase())
	s.Nil(g.CalledCard())

	s.Require().NoError(g.AnnounceCalledCard(0, called))

	s.Equal(models.PhasePlaying, g.Phase())
	s.Equal(models.Suit("Swords"), g.Trump())
	s.Equal(s.card("Swords", "Ace"), *g.CalledCard())

	guilty, ok := g.GuiltyPlayer()
	s.True(ok)
	s.Equal(1, guilty)
	s.Equal([]int{1, 2, 3, 4, 0}, g.TurnOrder())
}

func (s *GameTestSuite) TestPlayCard_Permissive() {
	g := s.newGame(false)
	s.dealAll(g)
	s.resolveBidding(g, 0, 70)
	s.Require().NoError(g.AnnounceCalledCard(0, s.card("Swords", "Ace")))

	// any seat, any card, in any order
	stranger := s.card("Cups", "Two")
	for i := 4; i >= 0; i-- {
		s.Require().NoError(g.PlayCard(i, stranger))
	}
	s.True(g.TrickComplete())
	s.ErrorIs(g.PlayCard(0, stranger), ErrTrickFull)
}

func (s *GameTestSuite) TestPlayCard_Strict() {
	g := s.newGame(true)
	s.dealAll(g)
	s.resolveBidding(g, 0, 70)
	s.Require().NoError(g.AnnounceCalledCard(0, s.card("Swords", "Ace")))

	s.ErrorIs(g.PlayCard(1, s.card("Feathers", "Four")), ErrNotYourTurn)

	s.Equal(1, g.NextPlayer())
	s.ErrorIs(g.PlayCard(1, s.card("Cups", "Ace")), ErrCardNotInHand)
	s.ErrorIs(g.PlayCard(2, s.card("Swords", "Six")), ErrNotYourTurn)

	s.Require().NoError(g.PlayCard(1, models.Card{Suit: "Feathers", Name: "Four"}))
	s.ErrorIs(g.PlayCard(1, s.card("Feathers", "Two")), ErrNotYourTurn)

	// the held card is used, not the payload
	trick := g.Trick()
	s.Require().Len(trick, 1)
	s.Equal(s.card("Feathers", "Four"), trick[0].Card)
	s.Equal("P2", trick[0].PlayerName)

	hand, err := g.Hand(1)
	s.Require().NoError(err)
	s.Len(hand, 7)
	s.NotContains(hand, s.card("Feathers", "Four"))
	s.assertDeckInvariant(g)
}

func (s *GameTestSuite) TestResolveTrick_EmptyTrickFails() {
	g := s.newGame(false)
	s.dealAll(g)
	s.resolveBidding(g, 0, 70)
	s.Require().NoError(g.AnnounceCalledCard(0, s.card("Swords", "Ace")))

	_, err := g.ResolveTrick()
	s.ErrorIs(err, ErrEmptyTrick)

	s.Require().NoError(g.PlayCard(0, s.card("Feathers", "Ace")))
	result, err := g.ResolveTrick()
	s.Require().NoError(err)
	s.Equal(0, result.Winner.SeatIndex)
	s.Empty(g.Trick())

	_, err = g.ResolveTrick()
	s.ErrorIs(err, ErrEmptyTrick)
	s.Equal(1, g.RoundCount())
}

func (s *GameTestSuite) TestFullDeal_Strict() {
	g := s.newGame(true)
	s.dealAll(g)
	s.resolveBidding(g, 0, 70)
	s.Require().NoError(g.AnnounceCalledCard(0, s.card("Swords", "Ace")))

	for trick := 1; trick <= g.HandSize(); trick++ {
		s.False(g.IsGameOver())
		for {
			seat := g.NextPlayer()
			if seat == NoNextPlayer {
				break
			}
			hand, err := g.Hand(seat)
			s.Require().NoError(err)
			s.Require().NoError(g.PlayCard(seat, hand[0]))
		}
		s.Require().True(g.TrickComplete())

		result, err := g.ResolveTrick()
		s.Require().NoError(err)
		s.Equal(trick, result.TrickNumber)
		s.assertDeckInvariant(g)
	}

	s.True(g.IsGameOver())
	s.Equal(models.PhaseFinished, g.Phase())

	total := 0
	for _, points := range g.RoundPoints() {
		total += points
	}
	s.Equal(120, total)
	s.Equal(g.RoundPoints(), g.Scores())

	final, err := g.FinalResult()
	s.Require().NoError(err)
	s.Equal(120, final.GuiltyPoints+final.NonGuiltyPoints)
	s.Equal(70, final.Bid)
	s.Equal(0, final.CallerIndex)
	s.Equal(1, final.GuiltyIndex)
	s.Equal(final.GuiltyPoints >= 70, final.CallingTeamWon)

	_, err = g.ResolveTrick()
	s.ErrorIs(err, ErrInvalidPhase)

	// next deal keeps seats and cumulative scores
	scores := g.Scores()
	s.Require().NoError(g.NewRound())
	s.Equal(models.PhaseWaiting, g.Phase())
	s.Equal(40, g.DeckSize())
	s.Equal(scores, g.Scores())
	s.Equal([]int{0, 0, 0, 0, 0}, g.RoundPoints())
	s.Equal(0, g.RoundCount())
	s.True(g.IsFull())
}

func (s *GameTestSuite) TestFinalResult_Split() {
	g := s.newGame(false)
	s.dealAll(g)

	_, err := g.FinalResult()
	s.ErrorIs(err, ErrNoCaller)

	g.highestBid = 61
	g.callerIndex = 4
	g.guiltyIndex = 0
	g.roundPoints = []int{15, 0, 0, 0, 0}

	final, err := g.FinalResult()
	s.Require().NoError(err)
	s.Equal(15, final.GuiltyPoints)
	s.Equal(0, final.NonGuiltyPoints)
	s.Equal(61, final.Bid)
	s.False(final.CallingTeamWon)
}

func (s *GameTestSuite) TestFinalResult_CallerHoldsCalledCard() {
	g := s.newGame(false)
	s.dealAll(g)
	s.resolveBidding(g, 0, 40)

	s.Require().NoError(g.AnnounceCalledCard(0, s.card("Feathers", "Ace")))
	guilty, _ := g.GuiltyPlayer()
	s.Equal(0, guilty)

	g.roundPoints = []int{50, 10, 20, 30, 10}

	final, err := g.FinalResult()
	s.Require().NoError(err)
	s.Equal(50, final.GuiltyPoints)
	s.Equal(70, final.NonGuiltyPoints)
	s.True(final.CallingTeamWon)
}

func (s *GameTestSuite) TestFinalResult_NoBidIsNotAWin() {
	g := s.newGame(false)
	s.dealAll(g)

	for i := 0; i < 4; i++ {
		_, err := g.SubmitPass(i)
		s.Require().NoError(err)
	}
	caller, ok := g.Caller()
	s.Require().True(ok)
	s.Equal(4, caller)
	s.Equal(0, g.HighestBid())

	s.Require().NoError(g.AnnounceCalledCard(4, s.card("Feathers", "Ace")))
	g.roundPoints = []int{50, 10, 20, 30, 10}

	final, err := g.FinalResult()
	s.Require().NoError(err)
	s.Equal(0, final.Bid)
	s.False(final.CallingTeamWon)
}

func (s *GameTestSuite) TestLeave_MidDealAbortsRound() {
	g := s.newGame(false)
	s.dealAll(g)
	s.resolveBidding(g, 0, 70)
	s.Require().NoError(g.AnnounceCalledCard(0, s.card("Swords", "Ace")))

	s.Require().NoError(g.PlayCard(0, s.card("Feathers", "Ace")))
	s.Require().NoError(g.PlayCard(1, s.card("Feathers", "Four")))
	_, err := g.ResolveTrick()
	s.Require().NoError(err)
	s.Equal(11, g.Scores()[0])

	result, err := g.Leave(3)
	s.Require().NoError(err)
	s.True(result.RoundAborted)
	s.Equal("P4", result.PlayerName)

	s.Equal(models.PhaseWaiting, g.Phase())
	s.Equal(40, g.DeckSize())
	s.Equal([]int{0, 0, 0, 0, 0}, g.Scores())
	s.Equal([]int{0, 1, 2, 3, 4}, g.TurnOrder())
	_, ok := g.Caller()
	s.False(ok)
	s.False(g.IsFull())
}

func (s *GameTestSuite) TestNewRound_RequiresFinishedDeal() {
	g := s.newGame(false)
	s.ErrorIs(g.NewRound(), ErrInvalidPhase)
}

func (s *GameTestSuite) TestReset() {
	g := s.newGame(false)
	s.dealAll(g)

	fresh, err := g.Reset()
	s.Require().NoError(err)
	s.NotSame(g, fresh)
	s.Equal(40, fresh.DeckSize())
	s.Equal([]string{"", "", "", "", ""}, fresh.PlayerNames())
	s.Equal(0, g.DeckSize())
}

func (s *GameTestSuite) TestSnapshot_HidesHandsAndGuilty() {
	g := s.newGame(false)
	s.dealAll(g)
	s.resolveBidding(g, 0, 70)
	s.Require().NoError(g.AnnounceCalledCard(0, s.card("Swords", "Ace")))

	state := g.Snapshot()
	s.Equal(models.PhasePlaying, state.Phase)
	s.Equal(0, state.CallerIndex)
	s.Equal(models.Suit("Swords"), state.Trump)
	s.Require().NotNil(state.CalledCard)
	for _, seat := range state.Seats {
		s.Nil(seat.Hand)
	}

	// the snapshot does not alias engine state
	state.Seats[0].PlayerName = "changed"
	s.Equal("P1", g.PlayerNames()[0])
}

func TestGameSuite(t *testing.T) {
	suite.Run(t, new(GameTestSuite))
}
