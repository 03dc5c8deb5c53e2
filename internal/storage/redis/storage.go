package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/UzayAnil/swiftcode/internal/model"
	"github.com/UzayAnil/swiftcode/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Apply TTL only for anonymous players
	var ttl time.Duration
	if player.IsAnonymous {
		ttl = s.cfg.AnonymousPlayerTTL
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(player.ID), data, ttl)
	pipe.SAdd(ctx, playersIndexKey(), string(player.ID))
	if player.Username != "" {
		pipe.Set(ctx, usernameIndexKey(player.Username), string(player.ID), ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error) {
	playerIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetPlayer(ctx, model.PlayerID(playerIDStr))
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, playerKey(id))
	pipe.SRem(ctx, playersIndexKey(), string(id))
	if player.Username != "" {
		pipe.Del(ctx, usernameIndexKey(player.Username))
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, gameKey(game.ID), data, s.cfg.GameTTL)
	pipe.SAdd(ctx, gamesIndexKey(), string(game.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, gameKey(id))
	pipe.SRem(ctx, gamesIndexKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) GameExists(ctx context.Context, id model.GameID) (bool, error) {
	n, err := s.client.Exists(ctx, gameKey(id)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	ids, err := s.client.SMembers(ctx, gamesIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	games := make([]*model.Game, 0, len(ids))
	for _, id := range ids {
		game, err := s.GetGame(ctx, model.GameID(id))
		if err != nil {
			if errors.Is(err, model.ErrGameNotFound) {
				// Expired behind the index; drop the stale entry
				_ = s.client.SRem(ctx, gamesIndexKey(), id).Err()
				continue
			}
			return nil, err
		}
		games = append(games, game)
	}
	return games, nil
}

// Exercise operations

func (s *Storage) SaveExercise(ctx context.Context, exercise *model.Exercise) error {
	data, err := json.Marshal(exercise)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, exerciseKey(exercise.ID), data, 0) // No TTL
	pipe.SAdd(ctx, exercisesForLanguageIndexKey(exercise.Language), string(exercise.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetExercise(ctx context.Context, id model.ExerciseID) (*model.Exercise, error) {
	data, err := s.client.Get(ctx, exerciseKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrExerciseNotFound
		}
		return nil, err
	}

	var exercise model.Exercise
	if err := json.Unmarshal(data, &exercise); err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (s *Storage) ListExercisesByLanguage(ctx context.Context, language string) ([]*model.Exercise, error) {
	ids, err := s.client.SMembers(ctx, exercisesForLanguageIndexKey(language)).Result()
	if err != nil {
		return nil, err
	}

	exercises := make([]*model.Exercise, 0, len(ids))
	for _, id := range ids {
		exercise, err := s.GetExercise(ctx, model.ExerciseID(id))
		if err != nil {
			if errors.Is(err, model.ErrExerciseNotFound) {
				continue
			}
			return nil, err
		}
		exercises = append(exercises, exercise)
	}
	return exercises, nil
}

// Result operations

func (s *Storage) SaveResult(ctx context.Context, result *model.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, resultKey(result.ID), data, s.cfg.ResultTTL)
	pipe.SAdd(ctx, resultsForGameIndexKey(result.Game), string(result.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetResultsForGame(ctx context.Context, gameID model.GameID) ([]*model.Result, error) {
	ids, err := s.client.SMembers(ctx, resultsForGameIndexKey(gameID)).Result()
	if err != nil {
		return nil, err
	}

	results := make([]*model.Result, 0, len(ids))
	for _, id := range ids {
		data, err := s.client.Get(ctx, resultKey(model.ResultID(id))).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, err
		}

		var result model.Result
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, err
		}
		results = append(results, &result)
	}
	return results, nil
}

// Startup recovery operations

func (s *Storage) ClearCurrentGames(ctx context.Context) error {
	return s.forEachPlayer(ctx, func(player *model.Player) (bool, error) {
		if player.CurrentGame == nil {
			return false, nil
		}
		player.CurrentGame = nil
		return true, nil
	})
}

func (s *Storage) DeleteAnonymousPlayers(ctx context.Context) error {
	ids, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return err
	}

	for _, id := range ids {
		player, err := s.GetPlayer(ctx, model.PlayerID(id))
		if err != nil {
			if errors.Is(err, model.ErrPlayerNotFound) {
				_ = s.client.SRem(ctx, playersIndexKey(), id).Err()
				continue
			}
			return err
		}
		if !player.IsAnonymous {
			continue
		}
		if err := s.DeletePlayer(ctx, player.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) CompleteStaleGames(ctx context.Context) error {
	ids, err := s.client.SMembers(ctx, gamesIndexKey()).Result()
	if err != nil {
		return err
	}

	for _, id := range ids {
		game, err := s.GetGame(ctx, model.GameID(id))
		if err != nil {
			if errors.Is(err, model.ErrGameNotFound) {
				_ = s.client.SRem(ctx, gamesIndexKey(), id).Err()
				continue
			}
			return err
		}
		if game.IsComplete && !game.IsViewable {
			continue
		}
		game.IsComplete = true
		game.IsViewable = false
		game.IsJoinable = false
		if err := s.SaveGame(ctx, game); err != nil {
			return err
		}
	}
	return nil
}

// forEachPlayer applies fn to every indexed player, saving those fn
// reports as modified
func (s *Storage) forEachPlayer(ctx context.Context, fn func(*model.Player) (bool, error)) error {
	ids, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return err
	}

	for _, id := range ids {
		player, err := s.GetPlayer(ctx, model.PlayerID(id))
		if err != nil {
			if errors.Is(err, model.ErrPlayerNotFound) {
				_ = s.client.SRem(ctx, playersIndexKey(), id).Err()
				continue
			}
			return err
		}

		changed, err := fn(player)
		if err != nil {
			return err
		}
		if changed {
			if err := s.SavePlayer(ctx, player); err != nil {
				return err
			}
		}
	}
	return nil
}
