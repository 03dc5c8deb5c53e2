package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/UzayAnil/swiftcode/internal/model"
	"github.com/UzayAnil/swiftcode/internal/services/game"
	"github.com/UzayAnil/swiftcode/internal/services/membership"
	"github.com/UzayAnil/swiftcode/internal/services/stats"
)

// IntegrationSuite drives full race lifecycles through the wired app
type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
	s.Require().NoError(s.app.SeedExercises(s.ctx))
}

func (s *IntegrationSuite) guest() *model.Player {
	_, p, err := s.app.AuthService.CreateAnonymousPlayer(s.ctx)
	s.Require().NoError(err)
	return p
}

func (s *IntegrationSuite) fetchGame(id model.GameID) *model.Game {
	g, err := s.app.Storage.GetGame(s.ctx, id)
	s.Require().NoError(err)
	return g
}

func (s *IntegrationSuite) fetchPlayer(id model.PlayerID) *model.Player {
	p, err := s.app.Storage.GetPlayer(s.ctx, id)
	s.Require().NoError(err)
	return p
}

func (s *IntegrationSuite) TestMultiplayerRaceLifecycle() {
	host := s.guest()
	rival := s.guest()

	s.app.MockRandom.QueueString("RACE23")
	g, err := s.app.Membership.CreateGame(s.ctx, host.ID, membership.Options{Language: "go"})
	s.Require().NoError(err)
	s.Equal(model.GameID("RACE23"), g.ID)
	s.False(s.app.MockTimers.Pending(g.ID))

	// Quorum arms the countdown
	s.Require().NoError(s.app.Membership.Join(s.ctx, g.ID, rival.ID))
	g = s.fetchGame(g.ID)
	s.True(g.Starting)
	s.Equal(game.MultiStartDelay-game.JoinCutoff, s.app.MockTimers.Delay(g.ID))

	// The cutoff closes joining and chains the start timer
	s.app.MockClock.Advance(game.MultiStartDelay - game.JoinCutoff)
	s.Require().True(s.app.MockTimers.Fire(g.ID))
	g = s.fetchGame(g.ID)
	s.False(g.IsJoinable)
	s.False(g.Started)

	s.app.MockClock.Advance(game.JoinCutoff)
	s.Require().True(s.app.MockTimers.Fire(g.ID))
	g = s.fetchGame(g.ID)
	s.True(g.Started)
	s.Equal(model.GameStatusIngame, g.Status)
	s.Equal([]model.PlayerID{host.ID, rival.ID}, g.StartingPlayers)

	// Host finishes in a minute, rival ten seconds later
	s.app.MockClock.Advance(time.Minute)
	sub, err := s.app.StatsService.SubmitResult(s.ctx, host.ID, g.ID, stats.Report{
		Time: time.Minute, Keystrokes: 200, Mistakes: 3,
	})
	s.Require().NoError(err)
	s.Equal(host.ID, sub.Game.Winner)

	s.app.MockClock.Advance(10 * time.Second)
	sub, err = s.app.StatsService.SubmitResult(s.ctx, rival.ID, g.ID, stats.Report{
		Time: time.Minute + 10*time.Second, Keystrokes: 220, Mistakes: 8,
	})
	s.Require().NoError(err)
	s.Equal(host.ID, sub.Game.Winner)

	winner := s.fetchPlayer(host.ID)
	s.Equal(1, winner.TotalGames)
	s.Equal(1, winner.TotalMultiplayerGames)
	s.Equal(1, winner.GamesWon)
	s.Equal(time.Minute, winner.BestTime)

	loser := s.fetchPlayer(rival.ID)
	s.Equal(1, loser.TotalGames)
	s.Equal(0, loser.GamesWon)

	// Completion drops the game from view; leavers get their pointer back
	s.Require().NoError(s.app.GameController.Finish(s.ctx, g.ID))
	g = s.fetchGame(g.ID)
	s.True(g.IsComplete)
	s.False(g.IsViewable)

	s.Require().NoError(s.app.Membership.Leave(s.ctx, host.ID))
	s.Nil(s.fetchPlayer(host.ID).CurrentGame)
}

func (s *IntegrationSuite) TestSinglePlayerRaceLifecycle() {
	player := s.guest()

	s.app.MockRandom.QueueString("SOLO42")
	g, err := s.app.Membership.CreateGame(s.ctx, player.ID, membership.Options{
		Language:     "go",
		SinglePlayer: true,
	})
	s.Require().NoError(err)

	// Solo games count down from creation
	s.True(g.Starting)
	s.False(g.IsJoinable)
	s.False(g.IsViewable)
	s.Equal(game.SingleStartDelay, s.app.MockTimers.Delay(g.ID))

	s.app.MockClock.Advance(game.SingleStartDelay)
	s.Require().True(s.app.MockTimers.Fire(g.ID))
	g = s.fetchGame(g.ID)
	s.True(g.Started)

	s.app.MockClock.Advance(2 * time.Minute)
	sub, err := s.app.StatsService.SubmitResult(s.ctx, player.ID, g.ID, stats.Report{
		Time: 2 * time.Minute, Keystrokes: 150,
	})
	s.Require().NoError(err)
	s.Equal(player.ID, sub.Game.Winner)

	updated := s.fetchPlayer(player.ID)
	s.Equal(1, updated.TotalGames)
	s.Equal(0, updated.TotalMultiplayerGames)
}

func (s *IntegrationSuite) TestAbortedCountdownRearmsOnRejoin() {
	host := s.guest()
	rival := s.guest()

	s.app.MockRandom.QueueString("RACE77")
	g, err := s.app.Membership.CreateGame(s.ctx, host.ID, membership.Options{Language: "go"})
	s.Require().NoError(err)

	s.Require().NoError(s.app.Membership.Join(s.ctx, g.ID, rival.ID))
	s.Require().NoError(s.app.Membership.Leave(s.ctx, rival.ID))

	// Countdown aborted and the door reopened
	g = s.fetchGame(g.ID)
	s.False(g.Starting)
	s.True(g.IsJoinable)
	s.False(s.app.MockTimers.Pending(g.ID))

	s.Require().NoError(s.app.Membership.Join(s.ctx, g.ID, rival.ID))
	g = s.fetchGame(g.ID)
	s.True(g.Starting)
	s.True(s.app.MockTimers.Pending(g.ID))
}

func (s *IntegrationSuite) TestRecoverCleansOrphanedState() {
	_, host, err := s.app.AuthService.Register(s.ctx, "alice", "hunter2")
	s.Require().NoError(err)

	s.app.MockRandom.QueueString("RACE88")
	g, err := s.app.Membership.CreateGame(s.ctx, host.ID, membership.Options{Language: "go"})
	s.Require().NoError(err)

	s.Require().NoError(s.app.Recover(s.ctx))

	s.Nil(s.fetchPlayer(host.ID).CurrentGame)
	s.True(s.fetchGame(g.ID).IsComplete)
}

func (s *IntegrationSuite) TestRecoverDeletesAnonymousPlayers() {
	ghost := s.guest()

	s.Require().NoError(s.app.Recover(s.ctx))

	_, err := s.app.Storage.GetPlayer(s.ctx, ghost.ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}
