package membership

import (
	"context"
	"errors"
	"log/slog"

	"github.com/UzayAnil/swiftcode/internal/catalog"
	"github.com/UzayAnil/swiftcode/internal/dependencies/clock"
	"github.com/UzayAnil/swiftcode/internal/dependencies/random"
	"github.com/UzayAnil/swiftcode/internal/events"
	"github.com/UzayAnil/swiftcode/internal/model"
	"github.com/UzayAnil/swiftcode/internal/services/game"
	"github.com/UzayAnil/swiftcode/internal/storage"
)

const (
	// DefaultMaxPlayers is the multi-player roster cap unless overridden
	DefaultMaxPlayers = 4
	// GameCodeLength is the length of generated game codes
	GameCodeLength = 6
	// GameCodeAlphabet is the characters used in game codes (avoid confusing chars)
	GameCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Options configures game creation
type Options struct {
	Language     string
	Exercise     model.ExerciseID // picked at random for the language when empty
	SinglePlayer bool
	MaxPlayers   int // multi-player only; defaults to DefaultMaxPlayers
}

// Coordinator mutates a game's roster and a player's current-game pointer
// together. One game per player; every membership change re-evaluates the
// game's state machine.
type Coordinator struct {
	storage storage.Storage
	games   *game.Controller
	catalog *catalog.Catalog
	bus     *events.Bus
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewCoordinator creates a new membership Coordinator
func NewCoordinator(
	storage storage.Storage,
	games *game.Controller,
	catalog *catalog.Catalog,
	bus *events.Bus,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Coordinator {
	return &Coordinator{
		storage: storage,
		games:   games,
		catalog: catalog,
		bus:     bus,
		clock:   clock,
		random:  random,
		logger:  logger.With(slog.String("component", "membership")),
	}
}

// Join adds a player to a game
func (m *Coordinator) Join(ctx context.Context, gameID model.GameID, playerID model.PlayerID) error {
	unlock := m.games.LockGame(gameID)
	defer unlock()

	g, err := m.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	p, err := m.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return err
	}

	if p.CurrentGame != nil || g.HasPlayer(p.ID) {
		return model.ErrAlreadyInGame
	}
	if !g.IsJoinable && !g.IsSinglePlayer {
		return model.ErrGameUnavailable
	}

	before := m.games.Snapshot(g)
	m.addToRoster(g, p)

	if err := m.storage.SavePlayer(ctx, p); err != nil {
		return err
	}
	if err := m.games.ReconcileFrom(ctx, g, before, false); err != nil {
		return err
	}

	m.bus.Publish(events.TopicPlayerUpdated, p)
	return nil
}

// CreateGame constructs a new game from opts and joins the creator to it
func (m *Coordinator) CreateGame(ctx context.Context, playerID model.PlayerID, opts Options) (*model.Game, error) {
	p, err := m.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if p.CurrentGame != nil {
		return nil, model.ErrAlreadyInGame
	}

	lang, err := m.catalog.Language(opts.Language)
	if err != nil {
		return nil, err
	}

	exerciseID, err := m.pickExercise(ctx, lang.Key, opts.Exercise)
	if err != nil {
		return nil, err
	}

	// Generate a unique game code
	var id model.GameID
	for {
		id = model.GameID(m.random.String(GameCodeLength, GameCodeAlphabet))
		exists, err := m.storage.GameExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	now := m.clock.Now()
	g := &model.Game{
		ID:             id,
		Language:       lang.Key,
		Exercise:       exerciseID,
		IsSinglePlayer: opts.SinglePlayer,
		Status:         model.GameStatusWaiting,
		Creator:        p.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if opts.SinglePlayer {
		// Closed from the outset: the lone seat is the creator's
		g.MaxPlayers = 1
	} else {
		g.MaxPlayers = opts.MaxPlayers
		if g.MaxPlayers <= 0 {
			g.MaxPlayers = DefaultMaxPlayers
		}
		g.IsJoinable = true
		g.IsViewable = true
	}

	unlock := m.games.LockGame(g.ID)
	defer unlock()

	before := m.games.Snapshot(g)
	m.addToRoster(g, p)

	if err := m.storage.SavePlayer(ctx, p); err != nil {
		return nil, err
	}
	if err := m.games.ReconcileFrom(ctx, g, before, true); err != nil {
		return nil, err
	}

	m.bus.Publish(events.TopicPlayerUpdated, p)

	m.logger.Info("game created",
		slog.String("game_id", string(g.ID)),
		slog.String("language", g.Language),
		slog.Bool("single_player", g.IsSinglePlayer))

	return g, nil
}

// Leave removes a player from their current game; a no-op if they have none
func (m *Coordinator) Leave(ctx context.Context, playerID model.PlayerID) error {
	p, err := m.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return err
	}
	if p.CurrentGame == nil {
		return nil
	}
	gameID := *p.CurrentGame

	unlock := m.games.LockGame(gameID)
	defer unlock()

	g, err := m.storage.GetGame(ctx, gameID)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			// Game vanished underneath the pointer; just clear it
			p.CurrentGame = nil
			p.UpdatedAt = m.clock.Now()
			if err := m.storage.SavePlayer(ctx, p); err != nil {
				return err
			}
			m.bus.Publish(events.TopicPlayerUpdated, p)
			return nil
		}
		return err
	}

	before := m.games.Snapshot(g)

	if i := g.PlayerIndex(p.ID); i >= 0 {
		g.Players = append(g.Players[:i], g.Players[i+1:]...)
		if i < len(g.PlayerNames) {
			g.PlayerNames = append(g.PlayerNames[:i], g.PlayerNames[i+1:]...)
		}
	}
	if g.NumPlayers > 0 {
		g.NumPlayers--
	}
	p.CurrentGame = nil
	p.UpdatedAt = m.clock.Now()

	if err := m.storage.SavePlayer(ctx, p); err != nil {
		return err
	}
	if err := m.games.ReconcileFrom(ctx, g, before, false); err != nil {
		return err
	}

	m.bus.Publish(events.TopicPlayerUpdated, p)
	return nil
}

// ResumePendingAction re-executes the player's stored deferred intent
func (m *Coordinator) ResumePendingAction(ctx context.Context, playerID model.PlayerID) error {
	p, err := m.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return err
	}
	if p.PendingAction == nil {
		return nil
	}
	action := *p.PendingAction

	switch action.Kind {
	case model.PendingJoin:
		if err := m.Join(ctx, action.GameID, playerID); err != nil {
			return err
		}
	case model.PendingCreateNew:
		if _, err := m.CreateGame(ctx, playerID, Options{
			Language:     action.Language,
			SinglePlayer: action.SinglePlayer,
		}); err != nil {
			return err
		}
	default:
		return model.ErrUnknownAction
	}

	// Refetch: the action above rewrote the player record
	updated, err := m.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return err
	}
	updated.PendingAction = nil
	updated.UpdatedAt = m.clock.Now()
	return m.storage.SavePlayer(ctx, updated)
}

// addToRoster appends the player to the game's parallel roster sequences
// and points the player at the game
func (m *Coordinator) addToRoster(g *model.Game, p *model.Player) {
	g.Players = append(g.Players, p.ID)
	g.PlayerNames = append(g.PlayerNames, p.Username)
	g.NumPlayers++

	gameID := g.ID
	p.CurrentGame = &gameID
	p.UpdatedAt = m.clock.Now()
}

// pickExercise validates an explicit exercise id or selects one at random
// for the language
func (m *Coordinator) pickExercise(ctx context.Context, language string, explicit model.ExerciseID) (model.ExerciseID, error) {
	if explicit != "" {
		if _, err := m.storage.GetExercise(ctx, explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}

	exercises, err := m.storage.ListExercisesByLanguage(ctx, language)
	if err != nil {
		return "", err
	}
	if len(exercises) == 0 {
		return "", model.ErrExerciseNotFound
	}
	return exercises[m.random.Intn(len(exercises))].ID, nil
}
