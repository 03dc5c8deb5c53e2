package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Game:
		o.printGame(v)
	case GameList:
		o.printGameList(v)
	case Exercise:
		o.printExercise(v)
	case ResultList:
		o.printResultList(v)
	case SubmitResult:
		o.printSubmitResult(v)
	case LanguageList:
		o.printLanguageList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	IsAnonymous bool    `json:"is_anonymous"`
	CurrentGame *string `json:"current_game"`

	BestTimeMs            int64   `json:"best_time_ms"`
	BestSpeed             float64 `json:"best_speed"`
	AverageTimeMs         int64   `json:"average_time_ms"`
	AverageSpeed          float64 `json:"average_speed"`
	TotalGames            int     `json:"total_games"`
	TotalMultiplayerGames int     `json:"total_multiplayer_games"`
	GamesWon              int     `json:"games_won"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Game response type
type Game struct {
	ID             string    `json:"id"`
	Language       string    `json:"language"`
	Exercise       string    `json:"exercise"`
	IsSinglePlayer bool      `json:"is_single_player"`
	Status         string    `json:"status"`
	IsJoinable     bool      `json:"is_joinable"`
	IsComplete     bool      `json:"is_complete"`
	Starting       bool      `json:"starting"`
	Started        bool      `json:"started"`
	StartTime      time.Time `json:"start_time"`
	NumPlayers     int       `json:"num_players"`
	MaxPlayers     int       `json:"max_players"`
	Creator        string    `json:"creator"`
	PlayerNames    []string  `json:"player_names"`
	Winner         *string   `json:"winner"`
	WinnerTimeMs   int64     `json:"winner_time_ms,omitempty"`
	WinnerSpeed    float64   `json:"winner_speed,omitempty"`
}

// GameList response type
type GameList struct {
	Games []Game `json:"games"`
}

// Exercise response type
type Exercise struct {
	ID           string `json:"id"`
	Language     string `json:"language"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	TypeableCode string `json:"typeable_code"`
	Typeables    int    `json:"typeables"`
}

// Result response type
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

// ResultList response type
type ResultList struct {
	Results []Result `json:"results"`
}

// SubmitResult response type
type SubmitResult struct {
	Result Result `json:"result"`
	Player Player `json:"player"`
	Game   Game   `json:"game"`
}

// Language response type
type Language struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// LanguageList response type
type LanguageList struct {
	Languages []Language `json:"languages"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	anonStr := "no"
	if p.IsAnonymous {
		anonStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.Username, p.ID)
	fmt.Printf("Anonymous: %s\n", anonStr)
	if p.CurrentGame != nil {
		fmt.Printf("Current Game: %s\n", *p.CurrentGame)
	}
	if p.TotalGames > 0 {
		fmt.Printf("Games: %d (%d multiplayer, %d won)\n", p.TotalGames, p.TotalMultiplayerGames, p.GamesWon)
		fmt.Printf("Best: %s at %.1f WPM\n", time.Duration(p.BestTimeMs)*time.Millisecond, p.BestSpeed)
		fmt.Printf("Average: %s at %.1f WPM\n", time.Duration(p.AverageTimeMs)*time.Millisecond, p.AverageSpeed)
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Language: %s\n", g.Language)
	fmt.Printf("Exercise: %s\n", g.Exercise)
	fmt.Printf("Status: %s\n", g.Status)
	if g.IsSinglePlayer {
		fmt.Println("Mode: single-player")
	} else {
		fmt.Println("Mode: multiplayer")
	}
	fmt.Printf("Players (%d/%d): %s\n", g.NumPlayers, g.MaxPlayers, strings.Join(g.PlayerNames, ", "))
	switch {
	case g.IsComplete:
		fmt.Println("Complete")
	case g.Started:
		fmt.Println("In progress")
	case g.Starting:
		fmt.Printf("Starting at %s\n", g.StartTime.Format(time.RFC3339))
	case g.IsJoinable:
		fmt.Println("Waiting for players")
	}
	if g.Winner != nil {
		fmt.Printf("Winner: %s (%s at %.1f WPM)\n",
			*g.Winner, time.Duration(g.WinnerTimeMs)*time.Millisecond, g.WinnerSpeed)
	}
}

func (o *Output) printGameList(l GameList) {
	if len(l.Games) == 0 {
		fmt.Println("No games available")
		return
	}
	fmt.Printf("Games (%d):\n", len(l.Games))
	for _, g := range l.Games {
		fmt.Printf("  %s - %s [%s] %d/%d players\n", g.ID, g.Language, g.Status, g.NumPlayers, g.MaxPlayers)
	}
}

func (o *Output) printExercise(e Exercise) {
	fmt.Printf("Exercise: %s (%s)\n", e.Name, e.ID)
	fmt.Printf("Language: %s\n", e.Language)
	fmt.Printf("Typeables: %d\n", e.Typeables)
	fmt.Println()
	fmt.Println(e.TypeableCode)
}

func (o *Output) printResultList(l ResultList) {
	if len(l.Results) == 0 {
		fmt.Println("No results yet")
		return
	}
	fmt.Printf("Results (%d):\n", len(l.Results))
	for _, r := range l.Results {
		fmt.Printf("  %s: %s at %.1f WPM (%d keystrokes, %d mistakes)\n",
			r.Player, time.Duration(r.TimeMs)*time.Millisecond, r.Speed, r.Keystrokes, r.Mistakes)
	}
}

func (o *Output) printSubmitResult(s SubmitResult) {
	fmt.Printf("Time: %s\n", time.Duration(s.Result.TimeMs)*time.Millisecond)
	fmt.Printf("Speed: %.1f WPM\n", s.Result.Speed)
	fmt.Printf("Unproductive: %.1f%%\n", s.Result.PercentUnproductive*100)
	if s.Game.Winner != nil && *s.Game.Winner == s.Player.ID {
		fmt.Println("You are in the lead!")
	}
}

func (o *Output) printLanguageList(l LanguageList) {
	fmt.Printf("Languages (%d):\n", len(l.Languages))
	for _, lang := range l.Languages {
		fmt.Printf("  %s - %s\n", lang.Key, lang.Name)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
