package model

import "time"

// ExerciseID uniquely identifies an exercise
type ExerciseID string

// Exercise is a code snippet players race to retype.
// Immutable once constructed; build one via NewExercise so the typeable
// fields are always populated.
type Exercise struct {
	ID       ExerciseID
	Language string
	Name     string

	// Code is the normalized source text shown to players
	Code string
	// TypeableCode is the character stream the player must actually type
	TypeableCode string
	// Typeables is the number of characters the player must type
	Typeables int

	CreatedAt time.Time
}

// NewExercise constructs a fully-initialized exercise from prepared text.
// The typeable fields come from the text-processing service; an Exercise
// is never valid without them.
func NewExercise(id ExerciseID, language, name, code, typeableCode string, typeables int, now time.Time) *Exercise {
	return &Exercise{
		ID:           id,
		Language:     language,
		Name:         name,
		Code:         code,
		TypeableCode: typeableCode,
		Typeables:    typeables,
		CreatedAt:    now,
	}
}
