package response

import (
	"time"

	"github.com/UzayAnil/swiftcode/internal/model"
	"github.com/UzayAnil/swiftcode/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	IsAnonymous bool    `json:"is_anonymous"`
	IsAdmin     bool    `json:"is_admin,omitempty"`
	CurrentGame *string `json:"current_game"`

	BestTimeMs            int64   `json:"best_time_ms"`
	BestSpeed             float64 `json:"best_speed"`
	AverageTimeMs         int64   `json:"average_time_ms"`
	AverageSpeed          float64 `json:"average_speed"`
	TotalGames            int     `json:"total_games"`
	TotalMultiplayerGames int     `json:"total_multiplayer_games"`
	GamesWon              int     `json:"games_won"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	var currentGame *string
	if p.CurrentGame != nil {
		g := string(*p.CurrentGame)
		currentGame = &g
	}
	return Player{
		ID:                    string(p.ID),
		Username:              p.Username,
		IsAnonymous:           p.IsAnonymous,
		IsAdmin:               p.IsAdmin,
		CurrentGame:           currentGame,
		BestTimeMs:            p.BestTime.Milliseconds(),
		BestSpeed:             p.BestSpeed,
		AverageTimeMs:         p.AverageTime.Milliseconds(),
		AverageSpeed:          p.AverageSpeed,
		TotalGames:            p.TotalGames,
		TotalMultiplayerGames: p.TotalMultiplayerGames,
		GamesWon:              p.GamesWon,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session and player
func AuthResponseFromSession(s *auth.Session, p *model.Player) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(p),
		SessionToken: s.Token,
	}
}

// Game represents a game in API responses
type Game struct {
	ID             string    `json:"id"`
	Language       string    `json:"language"`
	Exercise       string    `json:"exercise"`
	IsSinglePlayer bool      `json:"is_single_player"`
	Status         string    `json:"status"`
	IsJoinable     bool      `json:"is_joinable"`
	IsComplete     bool      `json:"is_complete"`
	IsViewable     bool      `json:"is_viewable"`
	Starting       bool      `json:"starting"`
	Started        bool      `json:"started"`
	StartTime      time.Time `json:"start_time"`
	NumPlayers     int       `json:"num_players"`
	MaxPlayers     int       `json:"max_players"`
	Creator        string    `json:"creator"`
	Players        []string  `json:"players"`
	PlayerNames    []string  `json:"player_names"`
	Winner         *string   `json:"winner"`
	WinnerTimeMs   int64     `json:"winner_time_ms,omitempty"`
	WinnerSpeed    float64   `json:"winner_speed,omitempty"`
}

// GameFromModel converts model.Game
func GameFromModel(g *model.Game) Game {
	players := make([]string, len(g.Players))
	for i, p := range g.Players {
		players[i] = string(p)
	}

	var winner *string
	if g.Winner != "" {
		w := string(g.Winner)
		winner = &w
	}

	return Game{
		ID:             string(g.ID),
		Language:       g.Language,
		Exercise:       string(g.Exercise),
		IsSinglePlayer: g.IsSinglePlayer,
		Status:         string(g.Status),
		IsJoinable:     g.IsJoinable,
		IsComplete:     g.IsComplete,
		IsViewable:     g.IsViewable,
		Starting:       g.Starting,
		Started:        g.Started,
		StartTime:      g.StartTime,
		NumPlayers:     g.NumPlayers,
		MaxPlayers:     g.MaxPlayers,
		Creator:        string(g.Creator),
		Players:        players,
		PlayerNames:    g.PlayerNames,
		Winner:         winner,
		WinnerTimeMs:   g.WinnerTime.Milliseconds(),
		WinnerSpeed:    g.WinnerSpeed,
	}
}

// GameList is the response for listing games
type GameList struct {
	Games []Game `json:"games"`
}

// GameListFromModels converts a slice of games
func GameListFromModels(games []*model.Game) GameList {
	list := GameList{Games: make([]Game, len(games))}
	for i, g := range games {
		list.Games[i] = GameFromModel(g)
	}
	return list
}

// Exercise represents an exercise in API responses
type Exercise struct {
	ID           string `json:"id"`
	Language     string `json:"language"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	TypeableCode string `json:"typeable_code"`
	Typeables    int    `json:"typeables"`
}

// ExerciseFromModel converts model.Exercise
func ExerciseFromModel(e *model.Exercise) Exercise {
	return Exercise{
		ID:           string(e.ID),
		Language:     e.Language,
		Name:         e.Name,
		Code:         e.Code,
		TypeableCode: e.TypeableCode,
		Typeables:    e.Typeables,
	}
}

// Result represents a finalized race result
type Result struct {
	ID                  string  `json:"id"`
	Player              string  `json:"player"`
	Game                string  `json:"game"`
	TimeMs              int64   `json:"time_ms"`
	Keystrokes          int     `json:"keystrokes"`
	Mistakes            int     `json:"mistakes"`
	Typeables           int     `json:"typeables"`
	Speed               float64 `json:"speed"`
	PercentUnproductive float64 `json:"percent_unproductive"`
}

// ResultFromModel converts model.Result
func ResultFromModel(r *model.Result) Result {
	return Result{
		ID:                  string(r.ID),
		Player:              string(r.Player),
		Game:                string(r.Game),
		TimeMs:              r.Time.Milliseconds(),
		Keystrokes:          r.Keystrokes,
		Mistakes:            r.Mistakes,
		Typeables:           r.Typeables,
		Speed:               r.Speed,
		PercentUnproductive: r.PercentUnproductive,
	}
}

// SubmitResultResponse is the response after submitting a result
type SubmitResultResponse struct {
	Result Result `json:"result"`
	Player Player `json:"player"`
	Game   Game   `json:"game"`
}

// Language represents a catalog language
type Language struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}
