package model

import "time"

// GameID is a human-readable identifier for joining games
type GameID string

// GameStatus represents the current phase of a game
type GameStatus string

const (
	GameStatusWaiting GameStatus = "waiting" // Race has not begun
	GameStatusIngame  GameStatus = "ingame"  // Race currently active
)

// Game represents a typing-race lobby, single- or multi-player
type Game struct {
	ID             GameID
	Language       string
	Exercise       ExerciseID
	IsSinglePlayer bool

	NumPlayers int
	MaxPlayers int

	Status     GameStatus
	IsJoinable bool
	IsComplete bool
	IsViewable bool
	Starting   bool
	Started    bool
	StartTime  time.Time

	Creator PlayerID

	// Players and PlayerNames are parallel, index-aligned sequences.
	// Invariant: NumPlayers == len(Players) == len(PlayerNames)
	Players     []PlayerID
	PlayerNames []string

	Winner      PlayerID
	WinnerTime  time.Duration // zero means no winner recorded yet
	WinnerSpeed float64

	// StartingPlayers is the roster snapshot captured when the race began
	StartingPlayers []PlayerID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPlayer reports whether the player id is in the roster
func (g *Game) HasPlayer(id PlayerID) bool {
	for _, p := range g.Players {
		if p == id {
			return true
		}
	}
	return false
}

// PlayerIndex returns the roster index of the player id, or -1 if absent
func (g *Game) PlayerIndex(id PlayerID) int {
	for i, p := range g.Players {
		if p == id {
			return i
		}
	}
	return -1
}
