package handler

import (
	"encoding/json"
	"net/http"

	"github.com/UzayAnil/swiftcode/internal/api/middleware"
	"github.com/UzayAnil/swiftcode/internal/api/request"
	"github.com/UzayAnil/swiftcode/internal/api/response"
	"github.com/UzayAnil/swiftcode/internal/model"
	"github.com/UzayAnil/swiftcode/internal/services/auth"
	"github.com/UzayAnil/swiftcode/internal/services/membership"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	authService *auth.Service
	membership  *membership.Coordinator
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(authService *auth.Service, coordinator *membership.Coordinator) *PlayerHandler {
	return &PlayerHandler{
		authService: authService,
		membership:  coordinator,
	}
}

// CreateGuest handles POST /api/v1/players/guest
func (h *PlayerHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	session, player, err := h.authService.CreateAnonymousPlayer(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session, player))
}

// Register handles POST /api/v1/players/register
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	session, player, err := h.authService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session, player))
}

// Login handles POST /api/v1/players/login
func (h *PlayerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	session, player, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session, player))
}

// Logout handles POST /api/v1/players/logout
func (h *PlayerHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session != nil {
		h.authService.InvalidateSession(session.Token)
	}
	response.NoContent(w)
}

// GetMe handles GET /api/v1/players/me
func (h *PlayerHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// SetPendingAction handles PUT /api/v1/players/me/pending-action
func (h *PlayerHandler) SetPendingAction(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.PendingActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	kind := model.PendingActionKind(req.Kind)
	if kind != model.PendingJoin && kind != model.PendingCreateNew {
		WriteError(w, NewInvalidRequestError("kind must be 'join' or 'createNew'"))
		return
	}

	action := model.PendingAction{
		Kind:         kind,
		GameID:       model.GameID(req.GameID),
		Language:     req.Language,
		SinglePlayer: req.SinglePlayer,
	}
	if err := h.authService.SetPendingAction(r.Context(), player.ID, action); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// ResumePendingAction handles POST /api/v1/players/me/resume
func (h *PlayerHandler) ResumePendingAction(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	if err := h.membership.ResumePendingAction(r.Context(), player.ID); err != nil {
		WriteError(w, err)
		return
	}

	// Return the refreshed player so the client sees the resumed state
	refreshed, err := h.authService.GetPlayer(r.Context(), middleware.GetSession(r.Context()).Token)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(refreshed))
}
