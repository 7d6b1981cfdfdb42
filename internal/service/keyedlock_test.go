package service

import (
	"sync"
	"testing"
)

// TestKeyedLock tests per-key serialization and entry eviction.
//
// WHY: The lock table must bound its memory by the keys currently in use. A
// map that keeps one mutex per (owner, ticker) pair ever written grows for
// the life of the process.
func TestKeyedLock(t *testing.T) {
	t.Run("serializes holders of the same key", func(t *testing.T) {
		l := newKeyedLock()

		counter := 0
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock := l.acquire("owner/AAPL")
				defer unlock()
				counter++
			}()
		}
		wg.Wait()

		if counter != 50 {
			t.Errorf("Expected 50 serialized increments, got %d", counter)
		}
	})

	t.Run("releases entries once the last holder is done", func(t *testing.T) {
		l := newKeyedLock()

		unlock := l.acquire("owner/AAPL", "owner/MSFT")
		if got := l.size(); got != 2 {
			t.Errorf("Expected 2 held entries, got %d", got)
		}
		unlock()

		if got := l.size(); got != 0 {
			t.Errorf("Expected empty lock table after release, got %d entries", got)
		}
	})

	t.Run("duplicate keys lock once", func(t *testing.T) {
		l := newKeyedLock()

		unlock := l.acquire("owner/AAPL", "owner/AAPL")
		defer unlock()

		if got := l.size(); got != 1 {
			t.Errorf("Expected 1 entry for duplicate keys, got %d", got)
		}
	})

	t.Run("overlapping key sets do not deadlock", func(t *testing.T) {
		l := newKeyedLock()

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				unlock := l.acquire("owner/AAPL", "owner/MSFT")
				unlock()
			}()
			go func() {
				defer wg.Done()
				unlock := l.acquire("owner/MSFT", "owner/AAPL")
				unlock()
			}()
		}
		wg.Wait()

		if got := l.size(); got != 0 {
			t.Errorf("Expected empty lock table, got %d entries", got)
		}
	})
}
