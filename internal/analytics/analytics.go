// Package analytics keeps aggregate counters over processed messages.
package analytics

import "sync"

// Tracker accumulates message-level counters. All methods are safe for
// concurrent use.
type Tracker struct {
	mu            sync.Mutex
	totalMessages int
	intentCounts  map[string]int
	avgConfidence float64
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{intentCounts: make(map[string]int)}
}

// Record registers one processed message. The running average uses the
// same (old+new)/2 recurrence as session profiles, which weights recent
// messages more heavily than a true mean.
func (t *Tracker) Record(intent string, confidence float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.totalMessages++
	t.intentCounts[intent]++
	t.avgConfidence = (t.avgConfidence + confidence) / 2
}

// Snapshot is a read-only view of the counters.
type Snapshot struct {
	TotalMessages  int            `json:"totalMessages"`
	IntentCounts   map[string]int `json:"intentCounts"`
	AvgConfidence  float64        `json:"avgConfidence"`
	ActiveSessions int            `json:"activeSessions"`
}

// Snapshot returns the current counters without mutating state.
// activeSessions is supplied by the caller since session lifetime is
// owned by the session store.
func (t *Tracker) Snapshot(activeSessions int) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	counts := make(map[string]int, len(t.intentCounts))
	for k, v := range t.intentCounts {
		counts[k] = v
	}
	return Snapshot{
		TotalMessages:  t.totalMessages,
		IntentCounts:   counts,
		AvgConfidence:  t.avgConfidence,
		ActiveSessions: activeSessions,
	}
}
