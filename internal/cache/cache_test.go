package cache

import (
	"errors"
	"testing"
)

// counting returns a create func for key k and counts its calls.
func counting(calls *int, v int) func() (int, error) {
	return func() (int, error) {
		*calls++
		return v, nil
	}
}

func TestCacheGetOrCreate(t *testing.T) {
	c := New[string, int](0)
	calls := 0

	for range 3 {
		v, err := c.GetOrCreate("k", counting(&calls, 42))
		if err != nil || v != 42 {
			t.Fatalf("GetOrCreate() = (%d, %v), want (42, nil)", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 || s.Len != 1 {
		t.Errorf("Stats() = %+v, want 2 hits, 1 miss, 1 entry", s)
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, int](4)
	calls := 0
	for i := range 4 {
		_, _ = c.GetOrCreate(i, counting(&calls, i))
	}
	// Touch 0 so it becomes the most recent entry.
	_, _ = c.GetOrCreate(0, counting(&calls, 0))

	// The fifth entry pushes the cache to three quarters of its limit.
	_, _ = c.GetOrCreate(4, counting(&calls, 4))
	s := c.Stats()
	if s.Evictions != 2 {
		t.Fatalf("Stats().Evictions = %d, want 2", s.Evictions)
	}
	if s.Len != 3 {
		t.Fatalf("Stats().Len = %d, want 3", s.Len)
	}

	calls = 0
	_, _ = c.GetOrCreate(0, counting(&calls, 0))
	if calls != 0 {
		t.Error("recently used key 0 was evicted")
	}
	_, _ = c.GetOrCreate(1, counting(&calls, 1))
	if calls != 1 {
		t.Error("least recently used key 1 survived eviction")
	}
}

func TestCacheGetOrCreateErrorNotStored(t *testing.T) {
	c := New[string, int](0)
	errBoom := errors.New("boom")

	if _, err := c.GetOrCreate("k", func() (int, error) { return 0, errBoom }); !errors.Is(err, errBoom) {
		t.Fatalf("GetOrCreate() error = %v, want %v", err, errBoom)
	}
	if s := c.Stats(); s.Len != 0 {
		t.Errorf("Stats().Len = %d after failed create, want 0", s.Len)
	}

	calls := 0
	if v, _ := c.GetOrCreate("k", counting(&calls, 7)); v != 7 || calls != 1 {
		t.Errorf("GetOrCreate() after failure = %d with %d calls, want 7 with 1", v, calls)
	}
}
