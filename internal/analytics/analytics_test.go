package analytics

import (
	"sync"
	"testing"
)

func TestTracker_Record(t *testing.T) {
	tr := NewTracker()
	tr.Record("greeting", 0.5)
	tr.Record("order_status", 1.0)

	snap := tr.Snapshot(3)
	if snap.TotalMessages != 2 {
		t.Errorf("TotalMessages = %d, want 2", snap.TotalMessages)
	}
	if snap.IntentCounts["greeting"] != 1 || snap.IntentCounts["order_status"] != 1 {
		t.Errorf("IntentCounts = %v", snap.IntentCounts)
	}
	// (0 + 0.5)/2 = 0.25, then (0.25 + 1.0)/2 = 0.625.
	if snap.AvgConfidence != 0.625 {
		t.Errorf("AvgConfidence = %v, want 0.625", snap.AvgConfidence)
	}
	if snap.ActiveSessions != 3 {
		t.Errorf("ActiveSessions = %d, want 3", snap.ActiveSessions)
	}
}

func TestTracker_SnapshotDoesNotMutate(t *testing.T) {
	tr := NewTracker()
	tr.Record("greeting", 0.5)

	snap := tr.Snapshot(0)
	snap.IntentCounts["greeting"] = 99

	again := tr.Snapshot(0)
	if again.IntentCounts["greeting"] != 1 {
		t.Error("snapshot map mutation leaked into the tracker")
	}
	if again.TotalMessages != 1 {
		t.Errorf("TotalMessages = %d, want 1", again.TotalMessages)
	}
}

func TestTracker_Concurrent(t *testing.T) {
	tr := NewTracker()

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Record("greeting", 0.5)
		}()
	}
	wg.Wait()

	if snap := tr.Snapshot(0); snap.TotalMessages != n {
		t.Errorf("TotalMessages = %d, want %d", snap.TotalMessages, n)
	}
}
