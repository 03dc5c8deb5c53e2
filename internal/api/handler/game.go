package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/UzayAnil/swiftcode/internal/api/middleware"
	"github.com/UzayAnil/swiftcode/internal/api/request"
	"github.com/UzayAnil/swiftcode/internal/api/response"
	"github.com/UzayAnil/swiftcode/internal/catalog"
	"github.com/UzayAnil/swiftcode/internal/model"
	"github.com/UzayAnil/swiftcode/internal/services/game"
	"github.com/UzayAnil/swiftcode/internal/services/membership"
	"github.com/UzayAnil/swiftcode/internal/services/stats"
	"github.com/UzayAnil/swiftcode/internal/storage"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	games      *game.Controller
	membership *membership.Coordinator
	stats      *stats.Service
	storage    storage.Storage
	catalog    *catalog.Catalog
}

// NewGameHandler creates a new game handler
func NewGameHandler(
	games *game.Controller,
	coordinator *membership.Coordinator,
	statsService *stats.Service,
	store storage.Storage,
	cat *catalog.Catalog,
) *GameHandler {
	return &GameHandler{
		games:      games,
		membership: coordinator,
		stats:      statsService,
		storage:    store,
		catalog:    cat,
	}
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.games.ListViewable(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameListFromModels(games))
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Language == "" {
		WriteError(w, NewInvalidRequestError("language is required"))
		return
	}

	g, err := h.membership.CreateGame(r.Context(), player.ID, membership.Options{
		Language:     req.Language,
		Exercise:     model.ExerciseID(req.Exercise),
		SinglePlayer: req.SinglePlayer,
		MaxPlayers:   req.MaxPlayers,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(g))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["id"])

	g, err := h.games.GetGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Join handles POST /api/v1/games/{id}/join
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	if err := h.membership.Join(r.Context(), gameID, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.games.GetGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Leave handles POST /api/v1/games/leave
func (h *GameHandler) Leave(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	if err := h.membership.Leave(r.Context(), player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// SubmitResult handles POST /api/v1/games/{id}/results
func (h *GameHandler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	var req request.SubmitResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.TimeMs <= 0 {
		WriteError(w, NewInvalidRequestError("time_ms must be positive"))
		return
	}
	if req.Keystrokes < 0 || req.Mistakes < 0 {
		WriteError(w, NewInvalidRequestError("keystrokes and mistakes must be non-negative"))
		return
	}

	submission, err := h.stats.SubmitResult(r.Context(), player.ID, gameID, stats.Report{
		Time:       time.Duration(req.TimeMs) * time.Millisecond,
		Keystrokes: req.Keystrokes,
		Mistakes:   req.Mistakes,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SubmitResultResponse{
		Result: response.ResultFromModel(submission.Result),
		Player: response.PlayerFromModel(submission.Player),
		Game:   response.GameFromModel(submission.Game),
	})
}

// ListResults handles GET /api/v1/games/{id}/results
func (h *GameHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["id"])

	if _, err := h.games.GetGame(r.Context(), gameID); err != nil {
		WriteError(w, err)
		return
	}

	results, err := h.storage.GetResultsForGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.Result, len(results))
	for i, res := range results {
		out[i] = response.ResultFromModel(res)
	}
	response.JSON(w, http.StatusOK, map[string][]response.Result{"results": out})
}

// GetExercise handles GET /api/v1/games/{id}/exercise
func (h *GameHandler) GetExercise(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["id"])

	g, err := h.games.GetGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	exercise, err := h.storage.GetExercise(r.Context(), g.Exercise)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ExerciseFromModel(exercise))
}

// ListLanguages handles GET /api/v1/languages
func (h *GameHandler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	langs := h.catalog.Languages()
	out := make([]response.Language, len(langs))
	for i, l := range langs {
		out[i] = response.Language{Key: l.Key, Name: l.Name}
	}
	response.JSON(w, http.StatusOK, map[string][]response.Language{"languages": out})
}
