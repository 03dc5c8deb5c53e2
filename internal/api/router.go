package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/UzayAnil/swiftcode/internal/api/handler"
	"github.com/UzayAnil/swiftcode/internal/api/middleware"
	"github.com/UzayAnil/swiftcode/internal/catalog"
	"github.com/UzayAnil/swiftcode/internal/services/auth"
	"github.com/UzayAnil/swiftcode/internal/services/game"
	"github.com/UzayAnil/swiftcode/internal/services/membership"
	"github.com/UzayAnil/swiftcode/internal/services/stats"
	"github.com/UzayAnil/swiftcode/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	GameController *game.Controller
	Membership     *membership.Coordinator
	StatsService   *stats.Service
	Storage        storage.Storage
	Catalog        *catalog.Catalog
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService, cfg.Membership)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.Membership, cfg.StatsService, cfg.Storage, cfg.Catalog)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/me/pending-action", playerHandler.SetPendingAction).Methods(http.MethodPut)
	playerProtected.HandleFunc("/me/resume", playerHandler.ResumePendingAction).Methods(http.MethodPost)

	// Game routes (all require auth)
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", gameHandler.List).Methods(http.MethodGet)
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/leave", gameHandler.Leave).Methods(http.MethodPost)
	games.HandleFunc("/{id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id}/join", gameHandler.Join).Methods(http.MethodPost)
	games.HandleFunc("/{id}/exercise", gameHandler.GetExercise).Methods(http.MethodGet)
	games.HandleFunc("/{id}/results", gameHandler.SubmitResult).Methods(http.MethodPost)
	games.HandleFunc("/{id}/results", gameHandler.ListResults).Methods(http.MethodGet)

	// Catalog routes (no auth)
	api.HandleFunc("/languages", gameHandler.ListLanguages).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
