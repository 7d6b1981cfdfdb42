package service

import (
	"sort"
	"sync"
)

// keyedLock serializes work per string key. Entries are reference counted and
// removed once the last holder releases, so the map stays bounded by the
// number of keys currently in use rather than every key ever seen.
type keyedLock struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedLock() *keyedLock {
	return &keyedLock{entries: make(map[string]*lockEntry)}
}

// acquire locks the given keys, deduplicated and in sorted order, and returns
// the release function. The stable order prevents deadlock when two callers
// need overlapping key sets.
func (l *keyedLock) acquire(keys ...string) func() {
	seen := map[string]bool{}
	sorted := []string{}
	for _, key := range keys {
		if !seen[key] {
			seen[key] = true
			sorted = append(sorted, key)
		}
	}
	sort.Strings(sorted)

	held := make([]*lockEntry, len(sorted))
	for i, key := range sorted {
		l.mu.Lock()
		entry, ok := l.entries[key]
		if !ok {
			entry = &lockEntry{}
			l.entries[key] = entry
		}
		entry.refs++
		l.mu.Unlock()

		entry.mu.Lock()
		held[i] = entry
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].mu.Unlock()

			l.mu.Lock()
			held[i].refs--
			if held[i].refs == 0 {
				delete(l.entries, sorted[i])
			}
			l.mu.Unlock()
		}
	}
}

// size reports how many keys currently have holders or waiters.
func (l *keyedLock) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
