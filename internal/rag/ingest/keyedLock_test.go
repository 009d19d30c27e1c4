package ingest

import (
	"fmt"
	"sync"
	"testing"
)

func TestKeyedLock_MutualExclusionPerKey(t *testing.T) {
	k := newKeyedLock()

	// counts[i] is only ever touched while holding the lock for key i, so a
	// lost update would show up as a wrong total
	var counts [3]int
	var wg sync.WaitGroup
	for i := 0; i < 300; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("doc-%d", n%3)
			k.Lock(key)
			counts[n%3]++
			k.Unlock(key)
		}(i)
	}
	wg.Wait()

	for i, got := range counts {
		if got != 100 {
			t.Errorf("key %d saw %d increments, want 100", i, got)
		}
	}
}

func TestKeyedLock_TableShrinksToZero(t *testing.T) {
	k := newKeyedLock()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("doc-%d", n)
			k.Lock(key)
			k.Unlock(key)
		}(i)
	}
	wg.Wait()

	k.mu.Lock()
	remaining := len(k.locks)
	k.mu.Unlock()
	if remaining != 0 {
		t.Errorf("lock table still holds %d entries after every key was released", remaining)
	}
}
