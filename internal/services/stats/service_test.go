package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/UzayAnil/swiftcode/internal/dependencies/keylock"
	"github.com/UzayAnil/swiftcode/internal/dependencies/mocks"
	"github.com/UzayAnil/swiftcode/internal/events"
	"github.com/UzayAnil/swiftcode/internal/model"
	"github.com/UzayAnil/swiftcode/internal/services/game"
	"github.com/UzayAnil/swiftcode/internal/storage/memory"
	"github.com/UzayAnil/swiftcode/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	timers  *mocks.MockTimers
	bus     *events.Bus
	games   *game.Controller
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	logger := testutil.NopLogger()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.timers = mocks.NewMockTimers()
	s.bus = events.NewBus(logger)
	s.games = game.NewController(s.storage, s.timers, s.bus, s.clock, keylock.New(), logger)
	s.service = New(s.storage, s.games, s.bus, s.clock, logger)
	s.ctx = context.Background()

	// 100 typeables: one minute of racing at 20 WPM
	exercise := model.NewExercise("go-hello", "go", "Hello World",
		"package main", "package main", 100, s.clock.Now())
	s.Require().NoError(s.storage.SaveExercise(s.ctx, exercise))
}

func (s *ServiceSuite) createPlayer(id string) *model.Player {
	p := &model.Player{
		ID:              model.PlayerID(id),
		Username:        id,
		IsAllowedIngame: true,
		CreatedAt:       s.clock.Now(),
	}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, p))
	return p
}

// startedGame stores a multiplayer game whose race began startedAgo before
// the current mock time
func (s *ServiceSuite) startedGame(id string, startedAgo time.Duration, players ...model.PlayerID) *model.Game {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = string(p)
	}
	g := &model.Game{
		ID:          model.GameID(id),
		Language:    "go",
		Exercise:    "go-hello",
		Status:      model.GameStatusIngame,
		MaxPlayers:  4,
		NumPlayers:  len(players),
		IsViewable:  true,
		Started:     true,
		StartTime:   s.clock.Now().Add(-startedAgo),
		Players:     players,
		PlayerNames: names,
		CreatedAt:   s.clock.Now(),
	}
	s.Require().NoError(s.storage.SaveGame(s.ctx, g))
	return g
}

func (s *ServiceSuite) TestSubmitResultComputesMetrics() {
	s.createPlayer("p1")
	s.startedGame("RACE", time.Minute, "p1")

	sub, err := s.service.SubmitResult(s.ctx, "p1", "RACE", Report{
		Time:       time.Minute,
		Keystrokes: 125,
		Mistakes:   5,
	})
	s.Require().NoError(err)

	s.Equal(time.Minute, sub.Result.Time)
	s.Equal(100, sub.Result.Typeables)
	// 100 typeables / 5 chars-per-word over one minute
	s.InDelta(20.0, sub.Result.Speed, 0.001)
	// 25 of 125 keystrokes were wasted
	s.InDelta(0.2, sub.Result.PercentUnproductive, 0.001)
}

func (s *ServiceSuite) TestSubmitResultWithinToleranceKeepsReportedTime() {
	s.createPlayer("p1")
	s.startedGame("RACE", time.Minute, "p1")

	reported := time.Minute + 50*time.Millisecond
	sub, err := s.service.SubmitResult(s.ctx, "p1", "RACE", Report{Time: reported, Keystrokes: 100})
	s.Require().NoError(err)
	s.Equal(reported, sub.Result.Time)
}

func (s *ServiceSuite) TestSubmitResultClampsDriftedTime() {
	s.createPlayer("p1")
	s.startedGame("RACE", time.Minute, "p1")

	// Client claims half the real elapsed time
	sub, err := s.service.SubmitResult(s.ctx, "p1", "RACE", Report{Time: 30 * time.Second, Keystrokes: 100})
	s.Require().NoError(err)
	s.Equal(time.Minute, sub.Result.Time)
}

func (s *ServiceSuite) TestSubmitResultSetsWinner() {
	s.createPlayer("p1")
	s.startedGame("RACE", time.Minute, "p1", "p2")

	sub, err := s.service.SubmitResult(s.ctx, "p1", "RACE", Report{Time: time.Minute, Keystrokes: 100})
	s.Require().NoError(err)

	s.Equal(model.PlayerID("p1"), sub.Game.Winner)
	s.Equal(sub.Result.Time, sub.Game.WinnerTime)
	s.InDelta(sub.Result.Speed, sub.Game.WinnerSpeed, 0.001)
}

func (s *ServiceSuite) TestFasterResultTakesWinner() {
	s.createPlayer("p1")
	s.createPlayer("p2")
	s.startedGame("RACE", 2*time.Minute, "p1", "p2")

	_, err := s.service.SubmitResult(s.ctx, "p1", "RACE", Report{Time: 2 * time.Minute, Keystrokes: 100})
	s.Require().NoError(err)

	// p2 reports faster but clamps to the same elapsed time, so p1 keeps
	// the win on the strictly-less rule
	sub, err := s.service.SubmitResult(s.ctx, "p2", "RACE", Report{Time: 2 * time.Minute, Keystrokes: 100})
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p1"), sub.Game.Winner)
}

func (s *ServiceSuite) TestSlowerResultDoesNotTakeWinner() {
	s.createPlayer("p1")
	s.createPlayer("p2")
	s.startedGame("RACE", time.Minute, "p1", "p2")

	_, err := s.service.SubmitResult(s.ctx, "p1", "RACE", Report{Time: time.Minute, Keystrokes: 100})
	s.Require().NoError(err)

	// The race clock keeps running for p2
	s.clock.Advance(time.Minute)
	sub, err := s.service.SubmitResult(s.ctx, "p2", "RACE", Report{Time: 2 * time.Minute, Keystrokes: 100})
	s.Require().NoError(err)

	s.Equal(model.PlayerID("p1"), sub.Game.Winner)
	s.Equal(time.Minute, sub.Game.WinnerTime)
}

func (s *ServiceSuite) TestLifetimeStatsFirstGame() {
	s.createPlayer("p1")
	s.startedGame("RACE", time.Minute, "p1", "p2")

	sub, err := s.service.SubmitResult(s.ctx, "p1", "RACE", Report{Time: time.Minute, Keystrokes: 100})
	s.Require().NoError(err)

	p := sub.Player
	s.Equal(1, p.TotalGames)
	s.Equal(1, p.TotalMultiplayerGames)
	s.Equal(1, p.GamesWon)
	s.Equal(time.Minute, p.BestTime)
	s.InDelta(20.0, p.BestSpeed, 0.001)
	s.Equal(time.Minute, p.AverageTime)
	s.InDelta(20.0, p.AverageSpeed, 0.001)
}

func (s *ServiceSuite) TestLifetimeStatsRunningAverages() {
	s.createPlayer("p1")
	s.startedGame("R1", time.Minute, "p1")

	_, err := s.service.SubmitResult(s.ctx, "p1", "R1", Report{Time: time.Minute, Keystrokes: 100})
	s.Require().NoError(err)

	// Second race takes three minutes
	s.startedGame("R2", 3*time.Minute, "p1")
	sub, err := s.service.SubmitResult(s.ctx, "p1", "R2", Report{Time: 3 * time.Minute, Keystrokes: 100})
	s.Require().NoError(err)

	p := sub.Player
	s.Equal(2, p.TotalGames)
	// Best time stays at the faster race
	s.Equal(time.Minute, p.BestTime)
	s.Equal(2*time.Minute, p.AverageTime)
	// (20 + 20/3) / 2
	s.InDelta((20.0+20.0/3.0)/2.0, p.AverageSpeed, 0.001)
}

func (s *ServiceSuite) TestSinglePlayerGameDoesNotCountMultiplayer() {
	s.createPlayer("p1")
	g := s.startedGame("SOLO", time.Minute, "p1")
	g.IsSinglePlayer = true
	g.MaxPlayers = 1
	s.Require().NoError(s.storage.SaveGame(s.ctx, g))

	sub, err := s.service.SubmitResult(s.ctx, "p1", "SOLO", Report{Time: time.Minute, Keystrokes: 100})
	s.Require().NoError(err)

	s.Equal(1, sub.Player.TotalGames)
	s.Equal(0, sub.Player.TotalMultiplayerGames)
}

func (s *ServiceSuite) TestSecondSubmissionForSameGameRejected() {
	s.createPlayer("p1")
	s.createPlayer("p2")
	s.startedGame("RACE", time.Minute, "p1", "p2")

	_, err := s.service.SubmitResult(s.ctx, "p1", "RACE", Report{Time: time.Minute, Keystrokes: 100})
	s.Require().NoError(err)

	_, err = s.service.SubmitResult(s.ctx, "p1", "RACE", Report{Time: time.Minute, Keystrokes: 100})
	s.ErrorIs(err, model.ErrResultExists)

	// The repeat left no trace: one result, one counted game
	results, err := s.storage.GetResultsForGame(s.ctx, "RACE")
	s.Require().NoError(err)
	s.Len(results, 1)

	p, err := s.storage.GetPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal(1, p.TotalGames)
	s.Equal(1, p.GamesWon)

	// Other players still submit normally
	_, err = s.service.SubmitResult(s.ctx, "p2", "RACE", Report{Time: time.Minute, Keystrokes: 100})
	s.NoError(err)
}

func (s *ServiceSuite) TestZeroKeystrokesAvoidsDivision() {
	s.createPlayer("p1")
	s.startedGame("RACE", time.Minute, "p1")

	sub, err := s.service.SubmitResult(s.ctx, "p1", "RACE", Report{Time: time.Minute})
	s.Require().NoError(err)
	s.Zero(sub.Result.PercentUnproductive)
}

func (s *ServiceSuite) TestSubmitResultMissingGameFails() {
	s.createPlayer("p1")
	_, err := s.service.SubmitResult(s.ctx, "p1", "NOPE", Report{Time: time.Minute})
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ServiceSuite) TestSubmitResultMissingPlayerFails() {
	s.startedGame("RACE", time.Minute, "p1")
	_, err := s.service.SubmitResult(s.ctx, "ghost", "RACE", Report{Time: time.Minute})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestResultIsPersisted() {
	s.createPlayer("p1")
	s.startedGame("RACE", time.Minute, "p1")

	sub, err := s.service.SubmitResult(s.ctx, "p1", "RACE", Report{Time: time.Minute, Keystrokes: 100})
	s.Require().NoError(err)

	results, err := s.storage.GetResultsForGame(s.ctx, "RACE")
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal(sub.Result.ID, results[0].ID)
}

func (s *ServiceSuite) TestSubmitResultPublishesPlayerUpdate() {
	s.createPlayer("p1")
	s.startedGame("RACE", time.Minute, "p1")

	ch, cancel := s.bus.Subscribe(events.TopicPlayerUpdated)
	defer cancel()

	_, err := s.service.SubmitResult(s.ctx, "p1", "RACE", Report{Time: time.Minute, Keystrokes: 100})
	s.Require().NoError(err)

	select {
	case e := <-ch:
		s.Equal(events.TopicPlayerUpdated, e.Topic)
	default:
		s.Fail("expected a player-updated event")
	}
}
