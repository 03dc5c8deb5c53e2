package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"

	"github.com/UzayAnil/swiftcode/internal/dependencies/clock"
	"github.com/UzayAnil/swiftcode/internal/dependencies/names"
	"github.com/UzayAnil/swiftcode/internal/model"
	"github.com/UzayAnil/swiftcode/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrUsernameExists     = errors.New("username already exists")
)

// Session represents an authenticated session
type Session struct {
	Token     string
	PlayerID  model.PlayerID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles password hashing, player accounts and session management
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	names   *names.Generator

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, names *names.Generator, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		names:           names,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// HashPassword derives a storable digest from a plaintext password
func (s *Service) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches the stored digest
func (s *Service) VerifyPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

// CreateAnonymousPlayer creates an anonymous player and session
func (s *Service) CreateAnonymousPlayer(ctx context.Context) (*Session, *model.Player, error) {
	now := s.clock.Now()

	player := &model.Player{
		ID:              model.PlayerID(uuid.NewString()),
		Username:        s.names.Next(),
		IsAnonymous:     true,
		IsAllowedIngame: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, nil, err
	}

	session := s.createSession(player.ID)
	return session, player, nil
}

// Register creates a registered player account and session
func (s *Service) Register(ctx context.Context, username, password string) (*Session, *model.Player, error) {
	_, err := s.storage.GetPlayerByUsername(ctx, username)
	if err == nil {
		return nil, nil, ErrUsernameExists
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, nil, err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	now := s.clock.Now()
	player := &model.Player{
		ID:              model.PlayerID(uuid.NewString()),
		Username:        username,
		PasswordHash:    hash,
		IsAllowedIngame: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, nil, err
	}

	session := s.createSession(player.ID)
	return session, player, nil
}

// Login authenticates a registered player and creates a session
func (s *Service) Login(ctx context.Context, username, password string) (*Session, *model.Player, error) {
	player, err := s.storage.GetPlayerByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if player.IsAnonymous || !s.VerifyPassword(password, player.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	session := s.createSession(player.ID)
	return session, player, nil
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// GetPlayer returns the player behind a session token
func (s *Service) GetPlayer(ctx context.Context, token string) (*model.Player, error) {
	session, err := s.ValidateSession(token)
	if err != nil {
		return nil, err
	}
	return s.storage.GetPlayer(ctx, session.PlayerID)
}

// SetPendingAction stores a deferred intent to resume after the player
// re-authenticates
func (s *Service) SetPendingAction(ctx context.Context, playerID model.PlayerID, action model.PendingAction) error {
	player, err := s.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return err
	}
	player.PendingAction = &action
	player.UpdatedAt = s.clock.Now()
	return s.storage.SavePlayer(ctx, player)
}

// createSession creates a new session for a player
func (s *Service) createSession(playerID model.PlayerID) *Session {
	token := generateToken()
	now := s.clock.Now()

	session := &Session{
		Token:     token,
		PlayerID:  playerID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

// generateToken generates a random session token
func generateToken() string {
	b := make([]byte, 24)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}
