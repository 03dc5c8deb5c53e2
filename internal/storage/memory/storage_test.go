package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/UzayAnil/swiftcode/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{ID: "p1", Username: "alice"}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	got, err := s.storage.GetPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal("alice", got.Username)
}

func (s *StorageSuite) TestGetMissingPlayer() {
	_, err := s.storage.GetPlayer(s.ctx, "nope")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetPlayerByUsername() {
	player := &model.Player{ID: "p1", Username: "alice"}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	got, err := s.storage.GetPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p1"), got.ID)

	_, err = s.storage.GetPlayerByUsername(s.ctx, "bob")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayerRemovesUsernameIndex() {
	player := &model.Player{ID: "p1", Username: "alice"}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))
	s.Require().NoError(s.storage.DeletePlayer(s.ctx, "p1"))

	_, err := s.storage.GetPlayer(s.ctx, "p1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
	_, err = s.storage.GetPlayerByUsername(s.ctx, "alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Game tests

func (s *StorageSuite) TestSaveAndGetGame() {
	game := &model.Game{ID: "ABC234", Language: "go", NumPlayers: 1}
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	got, err := s.storage.GetGame(s.ctx, "ABC234")
	s.Require().NoError(err)
	s.Equal("go", got.Language)
}

func (s *StorageSuite) TestGetMissingGame() {
	_, err := s.storage.GetGame(s.ctx, "NOPE")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGameExists() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "ABC234"}))

	exists, err := s.storage.GameExists(s.ctx, "ABC234")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.GameExists(s.ctx, "NOPE")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestListAndDeleteGames() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "G1"}))
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "G2"}))

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Len(games, 2)

	s.Require().NoError(s.storage.DeleteGame(s.ctx, "G1"))
	games, err = s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Len(games, 1)
}

// Exercise tests

func (s *StorageSuite) TestSaveAndGetExercise() {
	exercise := model.NewExercise("go-hello", "go", "Hello",
		"package main", "package main", 12, time.Now())
	s.Require().NoError(s.storage.SaveExercise(s.ctx, exercise))

	got, err := s.storage.GetExercise(s.ctx, "go-hello")
	s.Require().NoError(err)
	s.Equal(12, got.Typeables)

	_, err = s.storage.GetExercise(s.ctx, "nope")
	s.ErrorIs(err, model.ErrExerciseNotFound)
}

func (s *StorageSuite) TestListExercisesByLanguage() {
	now := time.Now()
	s.Require().NoError(s.storage.SaveExercise(s.ctx,
		model.NewExercise("go-hello", "go", "Hello", "a", "a", 1, now)))
	s.Require().NoError(s.storage.SaveExercise(s.ctx,
		model.NewExercise("py-fizz", "python", "Fizz", "b", "b", 1, now)))

	exercises, err := s.storage.ListExercisesByLanguage(s.ctx, "go")
	s.Require().NoError(err)
	s.Require().Len(exercises, 1)
	s.Equal(model.ExerciseID("go-hello"), exercises[0].ID)
}

// Result tests

func (s *StorageSuite) TestSaveAndGetResults() {
	s.Require().NoError(s.storage.SaveResult(s.ctx, &model.Result{
		ID: "r1", Player: "p1", Game: "G1", Time: time.Minute,
	}))
	s.Require().NoError(s.storage.SaveResult(s.ctx, &model.Result{
		ID: "r2", Player: "p2", Game: "G2",
	}))

	results, err := s.storage.GetResultsForGame(s.ctx, "G1")
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal(model.ResultID("r1"), results[0].ID)
}

// Recovery tests

func (s *StorageSuite) TestClearCurrentGames() {
	gameID := model.GameID("G1")
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{
		ID: "p1", Username: "alice", CurrentGame: &gameID,
	}))

	s.Require().NoError(s.storage.ClearCurrentGames(s.ctx))

	got, err := s.storage.GetPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Nil(got.CurrentGame)
}

func (s *StorageSuite) TestDeleteAnonymousPlayers() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{
		ID: "ghost", Username: "Guest1", IsAnonymous: true,
	}))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{
		ID: "p1", Username: "alice",
	}))

	s.Require().NoError(s.storage.DeleteAnonymousPlayers(s.ctx))

	_, err := s.storage.GetPlayer(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrPlayerNotFound)
	_, err = s.storage.GetPlayerByUsername(s.ctx, "Guest1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
	_, err = s.storage.GetPlayer(s.ctx, "p1")
	s.NoError(err)
}

func (s *StorageSuite) TestCompleteStaleGames() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{
		ID: "LIVE", Status: model.GameStatusIngame, Started: true,
		IsViewable: true, IsJoinable: true, NumPlayers: 2,
	}))

	s.Require().NoError(s.storage.CompleteStaleGames(s.ctx))

	got, err := s.storage.GetGame(s.ctx, "LIVE")
	s.Require().NoError(err)
	s.True(got.IsComplete)
	s.False(got.IsViewable)
	s.False(got.IsJoinable)
}
