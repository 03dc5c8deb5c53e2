package keylock

import "sync"

// KeyedMutex serializes operations per key while letting different keys
// proceed in parallel. Entries are reference-counted and removed when the
// last holder unlocks, so the map does not grow with dead keys.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New creates an empty KeyedMutex
func New() *KeyedMutex {
	return &KeyedMutex{
		entries: make(map[string]*entry),
	}
}

// Lock acquires the mutex for key and returns the matching unlock function
func (k *KeyedMutex) Lock(key string) (unlock func()) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.entries, key)
		}
		k.mu.Unlock()
	}
}
