package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/DineshDhasara/supportbot/internal/domain"
)

func observe(t *testing.T, store *MemoryStore, sessionID string, turn domain.Turn) {
	t.Helper()
	err := store.Do(context.Background(), sessionID, func(s *domain.Session) error {
		s.Observe(turn, 10)
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
}

func TestMemoryStore_HistoryCap(t *testing.T) {
	store := NewMemoryStore()

	for i := 0; i < 15; i++ {
		observe(t, store, "s1", domain.Turn{
			Message:   fmt.Sprintf("msg-%d", i),
			Intent:    "greeting",
			Timestamp: time.Now(),
		})
	}

	sess, ok := store.Get("s1")
	if !ok {
		t.Fatal("session not found")
	}
	if len(sess.Turns) != 10 {
		t.Fatalf("len(Turns) = %d, want 10", len(sess.Turns))
	}
	// Oldest five evicted; the retained window starts at msg-5.
	for i, turn := range sess.Turns {
		want := fmt.Sprintf("msg-%d", i+5)
		if turn.Message != want {
			t.Errorf("Turns[%d].Message = %q, want %q", i, turn.Message, want)
		}
	}
	if sess.Profile.MessageCount != 15 {
		t.Errorf("MessageCount = %d, want 15 (counts beyond the retained window)", sess.Profile.MessageCount)
	}
}

func TestMemoryStore_AvgConfidenceRecurrence(t *testing.T) {
	store := NewMemoryStore()

	observe(t, store, "s1", domain.Turn{Message: "a", Intent: "greeting", Confidence: 0.5, Timestamp: time.Now()})
	observe(t, store, "s1", domain.Turn{Message: "b", Intent: "greeting", Confidence: 1.0, Timestamp: time.Now()})

	sess, _ := store.Get("s1")
	// Seeded at zero: (0 + 0.5)/2 = 0.25, then (0.25 + 1.0)/2 = 0.625.
	if got := sess.Profile.AvgConfidence; got != 0.625 {
		t.Errorf("AvgConfidence = %v, want 0.625", got)
	}
}

func TestMemoryStore_GetMiss(t *testing.T) {
	store := NewMemoryStore()
	if _, ok := store.Get("nope"); ok {
		t.Error("Get on unknown session should report false")
	}
	// Get never creates sessions.
	if n := store.Count(); n != 0 {
		t.Errorf("Count = %d, want 0", n)
	}
}

func TestMemoryStore_DoCreatesLazily(t *testing.T) {
	store := NewMemoryStore()
	err := store.Do(context.Background(), "fresh", func(s *domain.Session) error {
		if s.ID != "fresh" {
			t.Errorf("session ID = %q, want fresh", s.ID)
		}
		if len(s.Turns) != 0 {
			t.Errorf("new session has %d turns, want 0", len(s.Turns))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if n := store.Count(); n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

func TestMemoryStore_FailedUpdateNotCommitted(t *testing.T) {
	store := NewMemoryStore()
	observe(t, store, "s1", domain.Turn{Message: "a", Intent: "greeting", Timestamp: time.Now()})

	boom := errors.New("boom")
	err := store.Do(context.Background(), "s1", func(s *domain.Session) error {
		s.Observe(domain.Turn{Message: "b", Intent: "greeting", Timestamp: time.Now()}, 10)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Do error = %v, want boom", err)
	}

	sess, _ := store.Get("s1")
	if len(sess.Turns) != 1 {
		t.Errorf("failed update mutated the session: %d turns, want 1", len(sess.Turns))
	}
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Do(ctx, "s1", func(s *domain.Session) error {
		t.Error("fn should not run with a cancelled context")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do error = %v, want context.Canceled", err)
	}
}

func TestMemoryStore_ConcurrentSameSession(t *testing.T) {
	store := NewMemoryStore()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.Do(context.Background(), "shared", func(s *domain.Session) error {
				s.Observe(domain.Turn{Message: "m", Intent: "greeting", Timestamp: time.Now()}, 10)
				return nil
			})
			if err != nil {
				t.Errorf("Do: %v", err)
			}
		}()
	}
	wg.Wait()

	sess, _ := store.Get("shared")
	if sess.Profile.MessageCount != n {
		t.Errorf("MessageCount = %d, want %d (lost update under concurrency)", sess.Profile.MessageCount, n)
	}
}

func TestMemoryStore_GetReturnsClone(t *testing.T) {
	store := NewMemoryStore()
	observe(t, store, "s1", domain.Turn{Message: "a", Intent: "greeting", Timestamp: time.Now()})

	snap, _ := store.Get("s1")
	snap.Turns[0].Message = "tampered"
	snap.Profile.IntentCounts["greeting"] = 99

	again, _ := store.Get("s1")
	if again.Turns[0].Message != "a" {
		t.Error("snapshot mutation leaked into the store")
	}
	if again.Profile.IntentCounts["greeting"] != 1 {
		t.Error("snapshot map mutation leaked into the store")
	}
}

func TestMemoryStore_EvictIdle(t *testing.T) {
	store := NewMemoryStore()

	old := time.Now().Add(-2 * time.Hour)
	observe(t, store, "stale", domain.Turn{Message: "a", Intent: "greeting", Timestamp: old})
	observe(t, store, "live", domain.Turn{Message: "b", Intent: "greeting", Timestamp: time.Now()})

	evicted := store.EvictIdle(time.Now().Add(-time.Hour))
	if evicted != 1 {
		t.Errorf("EvictIdle = %d, want 1", evicted)
	}
	if _, ok := store.Get("stale"); ok {
		t.Error("stale session should have been evicted")
	}
	if _, ok := store.Get("live"); !ok {
		t.Error("live session should survive eviction")
	}
}
