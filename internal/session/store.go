// Package session provides the per-conversation context store. Session
// identifiers are opaque and caller-supplied; sessions are created
// lazily on first use and evicted only by the idle janitor.
package session

import (
	"context"
	"time"

	"github.com/DineshDhasara/supportbot/internal/domain"
)

// Store is the session-state abstraction. The in-memory implementation
// below is the default; a persistent implementation can be swapped in
// without touching the engine.
type Store interface {
	// Do runs fn with exclusive access to the session for sessionID,
	// creating the session if it does not exist. fn receives a private
	// clone; the clone is committed only when fn returns nil, so a
	// cancelled or failed request never leaves a half-applied update.
	// Concurrent calls for the same sessionID are serialized; calls for
	// different sessionIDs proceed in parallel.
	Do(ctx context.Context, sessionID string, fn func(*domain.Session) error) error

	// Get returns a snapshot clone of the session, or false if the
	// session has never been seen.
	Get(sessionID string) (*domain.Session, bool)

	// EvictIdle removes sessions whose last activity predates cutoff
	// and reports how many were dropped.
	EvictIdle(cutoff time.Time) int

	// Count returns the number of live sessions.
	Count() int
}
