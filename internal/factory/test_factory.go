package factory

import (
	"time"

	"github.com/UzayAnil/swiftcode/internal/dependencies/mocks"
	"github.com/UzayAnil/swiftcode/internal/services/auth"
	"github.com/UzayAnil/swiftcode/internal/storage/memory"
	"github.com/UzayAnil/swiftcode/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	MockTimers *mocks.MockTimers
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockTimers := mocks.NewMockTimers()

	app := newWithDependencies(store, mockClock, mockRandom, mockTimers, auth.DefaultConfig(), 0, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		MockTimers: mockTimers,
	}
}
