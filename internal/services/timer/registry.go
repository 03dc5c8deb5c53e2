package timer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/UzayAnil/swiftcode/internal/model"
)

// Registry holds at most one pending deferred action per game id.
// Scheduling replaces any prior pending action (only the most recent
// scheduling wins). Firing removes the entry before invoking the callback,
// so the callback may safely re-schedule.
type Registry interface {
	// Schedule arms a one-shot invocation of fn after delay, cancelling
	// and replacing any pending action for the same game id
	Schedule(id model.GameID, delay time.Duration, fn func())

	// Cancel removes and cancels any pending action; a no-op if none exists
	Cancel(id model.GameID)

	// Stop cancels every pending action
	Stop()
}

// Timers is the production Registry built on time.AfterFunc
type Timers struct {
	logger *slog.Logger

	mu      sync.Mutex
	entries map[model.GameID]*timerEntry
	gen     uint64
}

type timerEntry struct {
	timer *time.Timer
	gen   uint64
}

// New creates an empty timer registry
func New(logger *slog.Logger) *Timers {
	return &Timers{
		logger:  logger.With(slog.String("component", "timers")),
		entries: make(map[model.GameID]*timerEntry),
	}
}

var _ Registry = (*Timers)(nil)

// Schedule arms fn to run after delay, replacing any pending entry for id
func (t *Timers) Schedule(id model.GameID, delay time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if e, ok := t.entries[id]; ok {
		e.timer.Stop()
	}

	t.gen++
	gen := t.gen

	timer := time.AfterFunc(delay, func() {
		if !t.claim(id, gen) {
			// Replaced or cancelled after firing was already queued
			return
		}
		fn()
	})

	t.entries[id] = &timerEntry{timer: timer, gen: gen}
	t.logger.Debug("timer scheduled",
		slog.String("game_id", string(id)),
		slog.Duration("delay", delay))
}

// Cancel removes and stops any pending entry for id
func (t *Timers) Cancel(id model.GameID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if e, ok := t.entries[id]; ok {
		e.timer.Stop()
		delete(t.entries, id)
		t.logger.Debug("timer cancelled", slog.String("game_id", string(id)))
	}
}

// Stop cancels all pending entries
func (t *Timers) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, e := range t.entries {
		e.timer.Stop()
		delete(t.entries, id)
	}
}

// claim removes the entry for id if it still belongs to the given
// generation. A stale generation means the entry was replaced between the
// timer firing and this callback running.
func (t *Timers) claim(id model.GameID, gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[id]
	if !ok || e.gen != gen {
		return false
	}
	delete(t.entries, id)
	return true
}

// Pending reports whether an action is scheduled for id
func (t *Timers) Pending(id model.GameID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.entries[id]
	return ok
}
