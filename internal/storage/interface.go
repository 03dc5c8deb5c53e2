package storage

import (
	"context"

	"github.com/UzayAnil/swiftcode/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	GameExists(ctx context.Context, id model.GameID) (bool, error)
	ListGames(ctx context.Context) ([]*model.Game, error)

	// Exercise operations
	SaveExercise(ctx context.Context, exercise *model.Exercise) error
	GetExercise(ctx context.Context, id model.ExerciseID) (*model.Exercise, error)
	ListExercisesByLanguage(ctx context.Context, language string) ([]*model.Exercise, error)

	// Result operations
	SaveResult(ctx context.Context, result *model.Result) error
	GetResultsForGame(ctx context.Context, gameID model.GameID) ([]*model.Result, error)

	// Startup recovery operations, run once before serving after a restart

	// ClearCurrentGames clears every player's current-game pointer
	ClearCurrentGames(ctx context.Context) error
	// DeleteAnonymousPlayers removes all anonymous players
	DeleteAnonymousPlayers(ctx context.Context) error
	// CompleteStaleGames marks every incomplete or viewable game complete
	CompleteStaleGames(ctx context.Context) error
}
