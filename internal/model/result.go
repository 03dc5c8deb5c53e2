package model

import "time"

// ResultID uniquely identifies a race result
type ResultID string

// Result is one player's scored outcome for one game.
// Created once per (player, game) pair and never mutated after the
// statistics aggregator finalizes it.
type Result struct {
	ID     ResultID
	Player PlayerID
	Game   GameID

	Time       time.Duration
	Keystrokes int
	Mistakes   int

	Typeables           int
	Speed               float64 // words per minute, 5 chars per word
	PercentUnproductive float64 // 1 - typeables/keystrokes

	CreatedAt time.Time
}
