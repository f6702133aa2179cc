package clicks

import (
	"sync"
	"testing"
)

func TestTracker_CountsIncrements(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 7, 250} {
		tr := New()
		for i := 0; i < n; i++ {
			tr.Increment()
		}
		if got := tr.Value(); got != int64(n) {
			t.Fatalf("after %d increments Value() = %d", n, got)
		}
	}
}

func TestTracker_SharedHandle(t *testing.T) {
	t.Parallel()

	tr := New()
	exercise, news := tr, tr

	exercise.Increment()
	news.Increment()

	if got := tr.Value(); got != 2 {
		t.Fatalf("Value() = %d, want 2", got)
	}
}

func TestTracker_ConcurrentIncrement(t *testing.T) {
	t.Parallel()

	var tr Tracker
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tr.Increment()
			}
		}()
	}
	wg.Wait()

	if got := tr.Value(); got != 800 {
		t.Fatalf("Value() = %d, want 800", got)
	}
}
