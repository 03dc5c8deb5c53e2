package names

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamesAreSequential(t *testing.T) {
	gen := New(0)

	assert.Equal(t, "Guest1", gen.Next())
	assert.Equal(t, "Guest2", gen.Next())
	assert.Equal(t, "Guest3", gen.Next())
}

func TestSeedOffsetsTheSequence(t *testing.T) {
	gen := New(41)

	assert.Equal(t, "Guest42", gen.Next())
}

func TestConcurrentGenerationIsUnique(t *testing.T) {
	gen := New(0)

	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := gen.Next()
			mu.Lock()
			seen[name] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 100)
}
