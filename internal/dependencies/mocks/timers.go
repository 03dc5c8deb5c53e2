package mocks

import (
	"sync"
	"time"

	"github.com/UzayAnil/swiftcode/internal/model"
	"github.com/UzayAnil/swiftcode/internal/services/timer"
)

// MockTimers is a mock Registry for testing. Scheduled actions never fire
// on their own; tests trigger them explicitly with Fire.
type MockTimers struct {
	mu      sync.Mutex
	entries map[model.GameID]mockEntry
}

type mockEntry struct {
	delay time.Duration
	fn    func()
}

// Ensure MockTimers implements Registry
var _ timer.Registry = (*MockTimers)(nil)

// NewMockTimers creates a new MockTimers
func NewMockTimers() *MockTimers {
	return &MockTimers{
		entries: make(map[model.GameID]mockEntry),
	}
}

// Schedule records the action, replacing any pending entry for id
func (t *MockTimers) Schedule(id model.GameID, delay time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[id] = mockEntry{delay: delay, fn: fn}
}

// Cancel removes any pending entry for id
func (t *MockTimers) Cancel(id model.GameID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, id)
}

// Stop removes all pending entries
func (t *MockTimers) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[model.GameID]mockEntry)
}

// Pending reports whether an action is scheduled for id
func (t *MockTimers) Pending(id model.GameID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.entries[id]
	return ok
}

// Delay returns the delay the pending action for id was scheduled with
func (t *MockTimers) Delay(id model.GameID) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.entries[id].delay
}

// Fire removes the pending action for id and invokes it, mirroring the
// real registry's remove-before-invoke behavior. Returns false if no
// action was pending.
func (t *MockTimers) Fire(id model.GameID) bool {
	t.mu.Lock()
	e, ok := t.entries[id]
	if ok {
		delete(t.entries, id)
	}
	t.mu.Unlock()

	if !ok {
		return false
	}
	e.fn()
	return true
}
