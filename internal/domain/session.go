package domain

import (
	"time"
)

// Turn is one processed message within a session.
type Turn struct {
	Message    string    `json:"message"`
	Intent     string    `json:"intent"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// UserProfile is derived state accumulated across a session's turns.
// MessageCount covers every processed message since session creation,
// not just the retained history window.
type UserProfile struct {
	MessageCount  int            `json:"messageCount"`
	IntentCounts  map[string]int `json:"intentCounts"`
	AvgConfidence float64        `json:"avgConfidence"`
	FirstSeen     time.Time      `json:"firstSeen"`
	LastSeen      time.Time      `json:"lastSeen"`
}

// Session holds the rolling conversation state for one caller-supplied
// session identifier. Turns are ordered most-recent-last and bounded.
type Session struct {
	ID      string      `json:"id"`
	Turns   []Turn      `json:"turns"`
	Profile UserProfile `json:"profile"`
}

// NewSession creates an empty session for the given identifier.
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID: id,
		Profile: UserProfile{
			IntentCounts: make(map[string]int),
			FirstSeen:    now,
			LastSeen:     now,
		},
	}
}

// Observe records a processed turn: appends it to the bounded history
// (oldest evicted first once cap is exceeded) and updates the derived
// profile. The average-confidence recurrence is (old+new)/2, matching
// the recurrence the rest of the system is calibrated against; it
// over-weights recent turns and is not a true mean.
func (s *Session) Observe(t Turn, historyCap int) {
	s.Turns = append(s.Turns, t)
	if historyCap > 0 && len(s.Turns) > historyCap {
		s.Turns = s.Turns[len(s.Turns)-historyCap:]
	}

	if s.Profile.IntentCounts == nil {
		s.Profile.IntentCounts = make(map[string]int)
	}
	s.Profile.MessageCount++
	s.Profile.IntentCounts[t.Intent]++
	s.Profile.AvgConfidence = (s.Profile.AvgConfidence + t.Confidence) / 2
	s.Profile.LastSeen = t.Timestamp
}

// RecentTurns returns the last n turns, oldest first.
func (s *Session) RecentTurns(n int) []Turn {
	if n >= len(s.Turns) {
		return s.Turns
	}
	return s.Turns[len(s.Turns)-n:]
}

// Clone returns a deep copy. Stores hand out clones so that callers
// never alias live session state.
func (s *Session) Clone() *Session {
	cp := *s
	cp.Turns = make([]Turn, len(s.Turns))
	copy(cp.Turns, s.Turns)
	cp.Profile.IntentCounts = make(map[string]int, len(s.Profile.IntentCounts))
	for k, v := range s.Profile.IntentCounts {
		cp.Profile.IntentCounts[k] = v
	}
	return &cp
}
