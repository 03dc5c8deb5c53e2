package game

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/UzayAnil/swiftcode/internal/dependencies/clock"
	"github.com/UzayAnil/swiftcode/internal/dependencies/keylock"
	"github.com/UzayAnil/swiftcode/internal/events"
	"github.com/UzayAnil/swiftcode/internal/model"
	"github.com/UzayAnil/swiftcode/internal/services/timer"
	"github.com/UzayAnil/swiftcode/internal/storage"
)

const (
	// SingleStartDelay is the countdown before a single-player race begins
	SingleStartDelay = 5 * time.Second
	// MultiStartDelay is the countdown once a multi-player game reaches quorum
	MultiStartDelay = 20 * time.Second
	// JoinCutoff is how long before the start joining closes
	JoinCutoff = 5 * time.Second
)

// Controller owns a game's status fields and the start/finish transition
// rules. Every mutation and every timer firing funnels through the same
// re-evaluation step, which persists the game and publishes at most one
// change event per call.
type Controller struct {
	storage storage.Storage
	timers  timer.Registry
	bus     *events.Bus
	clock   clock.Clock
	locks   *keylock.KeyedMutex
	logger  *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	timers timer.Registry,
	bus *events.Bus,
	clock clock.Clock,
	locks *keylock.KeyedMutex,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		timers:  timers,
		bus:     bus,
		clock:   clock,
		locks:   locks,
		logger:  logger.With(slog.String("component", "game")),
	}
}

// LockGame serializes operations for a single game id. Join, leave,
// reconcile, result submission and timer callbacks for the same id never
// interleave; different ids proceed in parallel.
func (c *Controller) LockGame(id model.GameID) (unlock func()) {
	return c.locks.Lock(string(id))
}

// GetGame retrieves a game by id
func (c *Controller) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, id)
}

// ListViewable returns all games currently open for viewing
func (c *Controller) ListViewable(ctx context.Context) ([]*model.Game, error) {
	games, err := c.storage.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	viewable := make([]*model.Game, 0, len(games))
	for _, g := range games {
		if g.IsViewable {
			viewable = append(viewable, g)
		}
	}
	return viewable, nil
}

// Snapshot captures the observable fields used to classify a reconcile's
// change event. Callers that mutate a game take a snapshot first so the
// whole operation is judged, not just the reconcile step.
type Snapshot struct {
	status     model.GameStatus
	joinable   bool
	complete   bool
	viewable   bool
	starting   bool
	started    bool
	startTime  time.Time
	numPlayers int
	maxPlayers int
	roster     string
	winner     model.PlayerID
	winnerTime time.Duration
}

// Snapshot records the game's current observable state
func (c *Controller) Snapshot(g *model.Game) Snapshot {
	roster := make([]string, len(g.Players))
	for i, p := range g.Players {
		roster[i] = string(p)
	}
	return Snapshot{
		status:     g.Status,
		joinable:   g.IsJoinable,
		complete:   g.IsComplete,
		viewable:   g.IsViewable,
		starting:   g.Starting,
		started:    g.Started,
		startTime:  g.StartTime,
		numPlayers: g.NumPlayers,
		maxPlayers: g.MaxPlayers,
		roster:     strings.Join(roster, ","),
		winner:     g.Winner,
		winnerTime: g.WinnerTime,
	}
}

// Reconcile re-derives the game's status, flags and timer arming from its
// current membership and mode. A game that no longer exists is a benign
// no-op: timers may fire after their game has been deleted.
func (c *Controller) Reconcile(ctx context.Context, id model.GameID) error {
	unlock := c.LockGame(id)
	defer unlock()

	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			c.logger.Debug("reconcile for missing game", slog.String("game_id", string(id)))
			return nil
		}
		return err
	}

	return c.ReconcileFrom(ctx, g, c.Snapshot(g), false)
}

// ReconcileFrom runs the re-evaluation step against a game the caller has
// already fetched and possibly mutated. The caller must hold the game's
// lock (see LockGame). before is the snapshot taken prior to the caller's
// mutations; isNew marks a game not yet persisted.
func (c *Controller) ReconcileFrom(ctx context.Context, g *model.Game, before Snapshot, isNew bool) error {
	if g.NumPlayers == 0 {
		c.complete(g)
	} else if !g.IsComplete {
		if g.NumPlayers == g.MaxPlayers {
			g.IsJoinable = false
		}
		if g.IsSinglePlayer {
			c.reconcileSingle(g)
		} else {
			c.reconcileMulti(g)
		}
	}

	after := c.Snapshot(g)
	changed := isNew || before != after
	if changed {
		g.UpdatedAt = c.clock.Now()
	}

	if err := c.storage.SaveGame(ctx, g); err != nil {
		return err
	}

	switch {
	case isNew:
		c.bus.Publish(events.TopicGameCreated, g)
	case !before.complete && after.complete:
		c.bus.Publish(events.TopicGameRemoved, g)
	case changed:
		c.bus.Publish(events.TopicGameUpdated, g)
	}

	return nil
}

// Finish completes a game: no further mutation happens afterwards except
// an administrative reset
func (c *Controller) Finish(ctx context.Context, id model.GameID) error {
	unlock := c.LockGame(id)
	defer unlock()

	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			return nil
		}
		return err
	}

	before := c.Snapshot(g)
	c.complete(g)
	return c.ReconcileFrom(ctx, g, before, false)
}

// Reset is the administrative escape hatch that returns a completed game
// to the waiting state
func (c *Controller) Reset(ctx context.Context, id model.GameID) error {
	unlock := c.LockGame(id)
	defer unlock()

	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return err
	}
	if !g.IsComplete {
		return nil
	}

	before := c.Snapshot(g)
	g.IsComplete = false
	g.IsViewable = true
	g.IsJoinable = !g.IsSinglePlayer
	g.Status = model.GameStatusWaiting
	g.Starting = false
	g.Started = false
	g.StartTime = time.Time{}
	g.Winner = ""
	g.WinnerTime = 0
	g.WinnerSpeed = 0
	g.StartingPlayers = nil

	return c.ReconcileFrom(ctx, g, before, false)
}

// complete transitions a game to its terminal state and drops its timer
func (c *Controller) complete(g *model.Game) {
	g.IsComplete = true
	g.IsViewable = false
	g.IsJoinable = false
	c.timers.Cancel(g.ID)
}

// reconcileSingle applies the single-player rules: the race counts down
// from the moment the lone player joins
func (c *Controller) reconcileSingle(g *model.Game) {
	if g.Started {
		return
	}
	if !g.Starting {
		g.Starting = true
		g.StartTime = c.clock.Now().Add(SingleStartDelay)
	}
	c.armTiming(g)
}

// reconcileMulti applies the multi-player rules: the countdown arms at two
// players and aborts if membership drops back below quorum
func (c *Controller) reconcileMulti(g *model.Game) {
	switch {
	case g.Started:
		// Race underway; nothing to arm
	case g.Starting:
		if g.NumPlayers < 2 {
			g.Starting = false
			g.StartTime = time.Time{}
			g.IsJoinable = true
			c.timers.Cancel(g.ID)
		} else {
			c.armTiming(g)
		}
	default:
		if g.NumPlayers > 1 {
			g.Starting = true
			g.StartTime = c.clock.Now().Add(MultiStartDelay)
			c.armTiming(g)
		}
	}
}

// armTiming schedules the next deferred transition for a starting game.
// While the game is joinable the timer closes joining at the cutoff;
// once joining is closed the timer begins the race.
func (c *Controller) armTiming(g *model.Game) {
	id := g.ID
	remaining := g.StartTime.Sub(c.clock.Now())

	if g.IsJoinable {
		if remaining > JoinCutoff {
			c.timers.Schedule(id, remaining-JoinCutoff, func() {
				c.closeJoining(context.Background(), id)
			})
			return
		}
		g.IsJoinable = false
	}

	if remaining > 0 {
		c.timers.Schedule(id, remaining, func() {
			c.fireStart(context.Background(), id)
		})
		return
	}

	c.begin(g)
}

// begin starts the race: the roster is snapshotted so late leavers still
// appear in the starting lineup
func (c *Controller) begin(g *model.Game) {
	g.Started = true
	g.Status = model.GameStatusIngame
	g.IsJoinable = false
	g.StartingPlayers = make([]model.PlayerID, len(g.Players))
	copy(g.StartingPlayers, g.Players)
}

// closeJoining is the timer callback that shuts the door at the cutoff
func (c *Controller) closeJoining(ctx context.Context, id model.GameID) {
	unlock := c.LockGame(id)
	defer unlock()

	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			c.logger.Debug("close-joining timer for missing game", slog.String("game_id", string(id)))
			return
		}
		c.logger.Error("close-joining fetch failed",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()))
		return
	}

	if g.IsComplete || g.Started {
		return
	}

	before := c.Snapshot(g)
	g.IsJoinable = false
	if err := c.ReconcileFrom(ctx, g, before, false); err != nil {
		c.logger.Error("close-joining reconcile failed",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()))
	}
}

// fireStart is the timer callback that begins the race when the countdown
// elapses
func (c *Controller) fireStart(ctx context.Context, id model.GameID) {
	unlock := c.LockGame(id)
	defer unlock()

	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			c.logger.Debug("start timer for missing game", slog.String("game_id", string(id)))
			return
		}
		c.logger.Error("start timer fetch failed",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()))
		return
	}

	if g.IsComplete || g.Started {
		return
	}

	before := c.Snapshot(g)
	c.begin(g)
	if err := c.ReconcileFrom(ctx, g, before, false); err != nil {
		c.logger.Error("start timer reconcile failed",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()))
	}
}
