package redis

import (
	"fmt"

	"github.com/UzayAnil/swiftcode/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "swiftcode"

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// playersIndexKey returns the Redis key for the SET of all player ids
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesIndexKey returns the Redis key for the SET of all game ids
func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}

// exerciseKey returns the Redis key for an Exercise
func exerciseKey(id model.ExerciseID) string {
	return fmt.Sprintf("%s:exercise:%s", keyPrefix, id)
}

// exercisesForLanguageIndexKey returns the Redis key for the SET of
// exercise ids for a language
func exercisesForLanguageIndexKey(language string) string {
	return fmt.Sprintf("%s:idx:exercises:%s", keyPrefix, language)
}

// resultKey returns the Redis key for a Result
func resultKey(id model.ResultID) string {
	return fmt.Sprintf("%s:result:%s", keyPrefix, id)
}

// resultsForGameIndexKey returns the Redis key for the SET of result ids
// for a game
func resultsForGameIndexKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:idx:results_for_game:%s", keyPrefix, gameID)
}
