package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Game errors
	ErrGameNotFound    = errors.New("game not found")
	ErrAlreadyInGame   = errors.New("player is already in a game")
	ErrGameUnavailable = errors.New("game is not joinable")

	// Exercise errors
	ErrExerciseNotFound = errors.New("exercise not found")

	// Result errors
	ErrResultExists = errors.New("result already submitted for this game")

	// Pending-action errors
	ErrUnknownAction = errors.New("unknown pending action")

	// Catalog errors
	ErrUnknownLanguage = errors.New("unknown language")
)
