package session

import (
	"context"
	"sync"
	"time"

	"github.com/DineshDhasara/supportbot/internal/domain"
)

// MemoryStore keeps all sessions in process memory. Each session gets
// its own mutex so a rapid double-send on one session serializes while
// unrelated sessions never contend.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	mu   sync.Mutex
	sess *domain.Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*sessionEntry)}
}

// Do implements Store. The update is applied to a clone and swapped in
// only on success.
func (s *MemoryStore) Do(ctx context.Context, sessionID string, fn func(*domain.Session) error) error {
	entry := s.entryFor(sessionID)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	clone := entry.sess.Clone()
	if err := fn(clone); err != nil {
		return err
	}
	entry.sess = clone
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(sessionID string) (*domain.Session, bool) {
	s.mu.RLock()
	entry, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.sess.Clone(), true
}

// EvictIdle implements Store.
func (s *MemoryStore) EvictIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, entry := range s.sessions {
		entry.mu.Lock()
		idle := entry.sess.Profile.LastSeen.Before(cutoff)
		entry.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Count implements Store.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *MemoryStore) entryFor(sessionID string) *sessionEntry {
	s.mu.RLock()
	entry, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return entry
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok = s.sessions[sessionID]; ok {
		return entry
	}
	entry = &sessionEntry{sess: domain.NewSession(sessionID, time.Now())}
	s.sessions[sessionID] = entry
	return entry
}

var _ Store = (*MemoryStore)(nil)
