package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// PendingActionKind identifies a deferred player intent
type PendingActionKind string

const (
	// PendingJoin resumes joining a specific game
	PendingJoin PendingActionKind = "join"
	// PendingCreateNew resumes creating a new game for a language
	PendingCreateNew PendingActionKind = "createNew"
)

// PendingAction is a player's stored "what to do once re-authenticated" intent
type PendingAction struct {
	Kind         PendingActionKind
	GameID       GameID // set for PendingJoin
	Language     string // set for PendingCreateNew
	SinglePlayer bool   // set for PendingCreateNew
}

// Player represents a game participant
type Player struct {
	ID              PlayerID
	Username        string
	PasswordHash    string // bcrypt hash; empty for anonymous players
	IsAnonymous     bool
	IsAdmin         bool
	IsAllowedIngame bool

	// Lifetime statistics. Zero values mean "no games recorded yet".
	BestTime              time.Duration
	BestSpeed             float64
	AverageTime           time.Duration
	AverageSpeed          float64
	TotalGames            int
	TotalMultiplayerGames int
	GamesWon              int

	// PendingAction holds a deferred intent resumed after re-authentication
	PendingAction *PendingAction

	// CurrentGame is set iff this player's id is in the referenced game's roster
	CurrentGame *GameID

	CreatedAt time.Time
	UpdatedAt time.Time
}
