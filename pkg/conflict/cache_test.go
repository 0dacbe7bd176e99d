package conflict

import "testing"

func TestCacheReusesSameGeneration(t *testing.T) {
	var c Cache
	calls := 0
	compute := func() []Group {
		calls++
		return Groups(parsedAt(100, 105), 10)
	}

	first := c.Get(1, compute)
	second := c.Get(1, compute)
	if calls != 1 {
		t.Fatalf("expected a single computation, got %d", calls)
	}
	if len(first) != len(second) || &first[0] != &second[0] {
		t.Fatalf("expected the cached slice to be returned")
	}
	if hits, misses := c.Stats(); hits != 1 || misses != 1 {
		t.Fatalf("expected 1 hit and 1 miss, got %d/%d", hits, misses)
	}
}

func TestCacheRecomputesOnNewGeneration(t *testing.T) {
	var c Cache
	events := parsedAt(100, 104, 108)

	wide := c.Get(1, func() []Group { return Groups(events, 15) })
	if len(wide) != 1 || !wide[0].HasConflict {
		t.Fatalf("expected one conflicting group at 15 minutes, got %v", groupMinutes(wide))
	}

	narrow := c.Get(2, func() []Group { return Groups(events, 5) })
	if len(narrow) != 2 {
		t.Fatalf("expected the group to split at 5 minutes, got %v", groupMinutes(narrow))
	}
}

func TestCacheInvalidate(t *testing.T) {
	var c Cache
	calls := 0
	compute := func() []Group {
		calls++
		return nil
	}
	c.Get(3, compute)
	c.Invalidate()
	c.Get(3, compute)
	if calls != 2 {
		t.Fatalf("expected recomputation after Invalidate, got %d calls", calls)
	}
}
