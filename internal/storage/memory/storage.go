package memory

import (
	"context"
	"sync"

	"github.com/UzayAnil/swiftcode/internal/model"
	"github.com/UzayAnil/swiftcode/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players       map[model.PlayerID]*model.Player
	usernameIndex map[string]model.PlayerID
	games         map[model.GameID]*model.Game
	exercises     map[model.ExerciseID]*model.Exercise
	results       map[model.ResultID]*model.Result
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:       make(map[model.PlayerID]*model.Player),
		usernameIndex: make(map[string]model.PlayerID),
		games:         make(map[model.GameID]*model.Game),
		exercises:     make(map[model.ExerciseID]*model.Exercise),
		results:       make(map[model.ResultID]*model.Result),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	if player.Username != "" {
		s.usernameIndex[player.Username] = player.ID
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if player, ok := s.players[id]; ok {
		delete(s.usernameIndex, player.Username)
	}
	delete(s.players, id)
	return nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

func (s *Storage) GameExists(ctx context.Context, id model.GameID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.games[id]
	return ok, nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.Game, 0, len(s.games))
	for _, game := range s.games {
		games = append(games, game)
	}
	return games, nil
}

// Exercise operations

func (s *Storage) SaveExercise(ctx context.Context, exercise *model.Exercise) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exercises[exercise.ID] = exercise
	return nil
}

func (s *Storage) GetExercise(ctx context.Context, id model.ExerciseID) (*model.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	exercise, ok := s.exercises[id]
	if !ok {
		return nil, model.ErrExerciseNotFound
	}
	return exercise, nil
}

func (s *Storage) ListExercisesByLanguage(ctx context.Context, language string) ([]*model.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var exercises []*model.Exercise
	for _, exercise := range s.exercises {
		if exercise.Language == language {
			exercises = append(exercises, exercise)
		}
	}
	return exercises, nil
}

// Result operations

func (s *Storage) SaveResult(ctx context.Context, result *model.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.ID] = result
	return nil
}

func (s *Storage) GetResultsForGame(ctx context.Context, gameID model.GameID) ([]*model.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var results []*model.Result
	for _, result := range s.results {
		if result.Game == gameID {
			results = append(results, result)
		}
	}
	return results, nil
}

// Startup recovery operations

func (s *Storage) ClearCurrentGames(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, player := range s.players {
		player.CurrentGame = nil
	}
	return nil
}

func (s *Storage) DeleteAnonymousPlayers(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, player := range s.players {
		if player.IsAnonymous {
			delete(s.usernameIndex, player.Username)
			delete(s.players, id)
		}
	}
	return nil
}

func (s *Storage) CompleteStaleGames(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, game := range s.games {
		if !game.IsComplete || game.IsViewable {
			game.IsComplete = true
			game.IsViewable = false
			game.IsJoinable = false
		}
	}
	return nil
}
