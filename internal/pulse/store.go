package pulse

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SnapshotStore keeps the most recent snapshot. Each completed refresh
// replaces the previous snapshot wholesale; there is no merging.
type SnapshotStore struct {
	mu     sync.RWMutex
	latest *Snapshot
}

// NewSnapshotStore constructs an empty store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Put installs the snapshot as the new latest, generating defaults when
// missing, and returns the stored value.
func (s *SnapshotStore) Put(snap *Snapshot) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.GeneratedAt.IsZero() {
		snap.GeneratedAt = time.Now().UTC()
	}

	s.latest = snap
	return snap
}

// Latest returns the current snapshot, or nil when no refresh has completed
// yet.
func (s *SnapshotStore) Latest() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}
