package effect

import (
	"testing"
	"time"
)

func makeListEffect(t *testing.T, id string, opts *Options) (*Effect, *stubBehavior) {
	t.Helper()
	registry, sb := newStubRegistry(nil)
	if opts == nil {
		opts = testOptions()
	}
	e, err := New(id, opts, "test", newFakeTarget(), registry)
	if err != nil {
		t.Fatalf("New(%s): %v", id, err)
	}
	return e, sb
}

func TestList_Add_SameIDReplaces(t *testing.T) {
	l := NewList(0)

	old, oldSB := makeListEffect(t, "might", nil)
	l.Add(old)

	replacement, _ := makeListEffect(t, "might", nil)
	l.Add(replacement)

	if l.Len() != 1 {
		t.Fatalf("list size after replace: %d, want 1", l.Len())
	}
	if l.ByID("might") != replacement {
		t.Fatal("replacement should have taken the incumbent's slot")
	}
	if oldSB.deactivated != 1 {
		t.Fatal("incumbent should have been deactivated on replacement")
	}
}

func TestList_Add_EvictsOldestAtCap(t *testing.T) {
	l := NewList(2)

	first, firstSB := makeListEffect(t, "a", nil)
	l.Add(first)
	l.Add(mustEffect(t, "b"))
	l.Add(mustEffect(t, "c"))

	if l.Len() != 2 {
		t.Fatalf("list size after eviction: %d, want 2", l.Len())
	}
	if l.ByID("a") != nil {
		t.Fatal("oldest effect should have been evicted")
	}
	if firstSB.deactivated != 1 {
		t.Fatal("evicted effect should have been deactivated")
	}
}

func TestList_Remove(t *testing.T) {
	l := NewList(0)

	e, sb := makeListEffect(t, "haste", nil)
	l.Add(e)

	if !l.Remove("haste") {
		t.Fatal("remove should report success for an active effect")
	}
	if sb.deactivated != 1 {
		t.Fatal("removed effect should be deactivated")
	}
	if l.Remove("haste") {
		t.Fatal("second remove should report failure")
	}
}

func TestList_Prune_DropsExpired(t *testing.T) {
	clock := installFakeClock(t)
	l := NewList(0)

	shortLived, shortSB := makeListEffect(t, "short", &Options{Duration: time.Second})
	permanent, _ := makeListEffect(t, "forever", nil)

	if err := shortLived.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	l.Add(shortLived)
	l.Add(permanent)

	if removed := l.Prune(); len(removed) != 0 {
		t.Fatalf("nothing should be pruned yet, got %d", len(removed))
	}

	clock.Advance(2 * time.Second)
	removed := l.Prune()

	if len(removed) != 1 || removed[0].ID() != "short" {
		t.Fatalf("expected short-lived effect pruned, got %v", removed)
	}
	if shortSB.deactivated != 1 {
		t.Fatal("pruned effect should be deactivated")
	}
	if l.Len() != 1 || l.ByID("forever") == nil {
		t.Fatal("permanent effect should survive pruning")
	}
}

func TestList_Prune_DropsPredicateFailures(t *testing.T) {
	l := NewList(0)

	allowed := true
	gated, _ := makeListEffect(t, "gated", &Options{
		Predicate: func() bool { return allowed },
	})
	l.Add(gated)

	allowed = false
	if removed := l.Prune(); len(removed) != 1 {
		t.Fatalf("predicate failure should prune, removed %d", len(removed))
	}
}

func TestList_Snapshot(t *testing.T) {
	clock := installFakeClock(t)
	l := NewList(0)

	e, _ := makeListEffect(t, "timed", &Options{Duration: time.Minute})
	if err := e.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	l.Add(e)

	clock.Advance(5 * time.Second)
	l.Snapshot()

	if e.Options().Elapsed != 5*time.Second {
		t.Fatalf("snapshot elapsed: %v, want 5s", e.Options().Elapsed)
	}
}

func TestList_ActiveIsACopy(t *testing.T) {
	l := NewList(0)
	l.Add(mustEffect(t, "a"))

	active := l.Active()
	active[0] = nil

	if l.ByID("a") == nil {
		t.Fatal("mutating the Active copy must not affect the list")
	}
}

func mustEffect(t *testing.T, id string) *Effect {
	t.Helper()
	e, _ := makeListEffect(t, id, nil)
	return e
}
