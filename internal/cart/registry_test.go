package cart

import (
	"testing"
	"time"
)

func TestRegistryGetCreatesOncePerSession(t *testing.T) {
	reg := NewRegistry(time.Hour)

	first := reg.Get("sess-a")
	second := reg.Get("sess-a")
	other := reg.Get("sess-b")

	if first != second {
		t.Fatal("same session returned different stores")
	}
	if first == other {
		t.Fatal("distinct sessions share a store")
	}
	if reg.Len() != 2 {
		t.Fatalf("registry size = %d, want 2", reg.Len())
	}
}

func TestRegistryPeekDoesNotCreate(t *testing.T) {
	reg := NewRegistry(time.Hour)

	if _, ok := reg.Peek("ghost"); ok {
		t.Fatal("peek created a store")
	}
	reg.Get("sess-a")
	if _, ok := reg.Peek("sess-a"); !ok {
		t.Fatal("peek missed an existing store")
	}
}

func TestRegistryDrop(t *testing.T) {
	reg := NewRegistry(time.Hour)
	reg.Get("sess-a").Add(product("1", "10.00", 5), 1)

	reg.Drop("sess-a")

	if _, ok := reg.Peek("sess-a"); ok {
		t.Fatal("store survived drop")
	}
	// A fresh store replaces the dropped one on next access.
	if reg.Get("sess-a").Len() != 0 {
		t.Fatal("recreated store carried old lines")
	}
}

func TestRegistryPruneIdle(t *testing.T) {
	reg := NewRegistry(time.Hour)
	current := time.Unix(1_700_000_000, 0)
	reg.now = func() time.Time { return current }

	reg.Get("old")
	current = current.Add(30 * time.Minute)
	reg.Get("fresh")

	current = current.Add(45 * time.Minute) // old is now 75m idle, fresh 45m
	if pruned := reg.PruneIdle(); pruned != 1 {
		t.Fatalf("pruned = %d, want 1", pruned)
	}
	if _, ok := reg.Peek("old"); ok {
		t.Fatal("idle store survived prune")
	}
	if _, ok := reg.Peek("fresh"); !ok {
		t.Fatal("active store was pruned")
	}
}

func TestRegistryPruneDisabledWithoutTTL(t *testing.T) {
	reg := NewRegistry(0)
	reg.now = func() time.Time { return time.Unix(0, 0) }
	reg.Get("sess-a")

	reg.now = func() time.Time { return time.Unix(0, 0).Add(1000 * time.Hour) }
	if pruned := reg.PruneIdle(); pruned != 0 {
		t.Fatalf("pruned = %d, want 0 with expiry disabled", pruned)
	}
}

func TestRegistryAccessRefreshesIdleClock(t *testing.T) {
	reg := NewRegistry(time.Hour)
	current := time.Unix(1_700_000_000, 0)
	reg.now = func() time.Time { return current }

	reg.Get("sess-a")
	current = current.Add(50 * time.Minute)
	reg.Get("sess-a") // touch
	current = current.Add(50 * time.Minute)

	if pruned := reg.PruneIdle(); pruned != 0 {
		t.Fatalf("recently touched store pruned (%d)", pruned)
	}
}
