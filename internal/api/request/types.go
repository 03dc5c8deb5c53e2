package request

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	Language     string `json:"language"`
	Exercise     string `json:"exercise,omitempty"`
	SinglePlayer bool   `json:"single_player,omitempty"`
	MaxPlayers   int    `json:"max_players,omitempty"`
}

// SubmitResultRequest is the request body for submitting a race result
type SubmitResultRequest struct {
	TimeMs     int64 `json:"time_ms"`
	Keystrokes int   `json:"keystrokes"`
	Mistakes   int   `json:"mistakes"`
}

// PendingActionRequest is the request body for storing a deferred action
type PendingActionRequest struct {
	Kind         string `json:"kind"`
	GameID       string `json:"game_id,omitempty"`
	Language     string `json:"language,omitempty"`
	SinglePlayer bool   `json:"single_player,omitempty"`
}
