package names

import (
	"fmt"
	"sync/atomic"
)

// Generator hands out display names for anonymous players.
// Generation is monotonic under concurrent calls.
type Generator struct {
	counter atomic.Int64
}

// New creates a Generator starting from the given seed.
// The first generated name uses seed+1.
func New(seed int64) *Generator {
	g := &Generator{}
	g.counter.Store(seed)
	return g
}

// Next returns the next anonymous display name
func (g *Generator) Next() string {
	return fmt.Sprintf("Guest%d", g.counter.Add(1))
}
