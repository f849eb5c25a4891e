package pulse

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"mindpulsebackend/internal/logger"
	"mindpulsebackend/internal/trace"
)

var (
	// ErrRefreshInFlight is returned when a refresh is triggered while
	// another one is still running.
	ErrRefreshInFlight = errors.New("pulse: refresh already in flight")
	// ErrBadDateRange marks malformed date input rejected at the boundary.
	ErrBadDateRange = errors.New("pulse: malformed date range")
	// ErrEmptySnapshot marks a source that returned no usable data.
	ErrEmptySnapshot = errors.New("pulse: source returned an empty snapshot")
)

// Refresher runs refresh cycles against a snapshot source. It guarantees at
// most one in-flight refresh and latest-snapshot-wins replacement; a failed
// refresh leaves the previously stored snapshot untouched.
type Refresher struct {
	source SnapshotSource
	store  *SnapshotStore

	mu   sync.Mutex
	busy bool
}

// NewRefresher constructs a refresher over the given source and store.
func NewRefresher(source SnapshotSource, store *SnapshotStore) (*Refresher, error) {
	if source == nil {
		return nil, errors.New("refresher requires a source")
	}
	if store == nil {
		return nil, errors.New("refresher requires a store")
	}
	return &Refresher{source: source, store: store}, nil
}

// Busy reports whether a refresh is currently running.
func (r *Refresher) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busy
}

// Refresh runs one generation cycle and stores the result. A call made while
// another refresh is running returns ErrRefreshInFlight without touching the
// store. The busy flag is cleared on both success and failure paths.
func (r *Refresher) Refresh(ctx context.Context, params QueryParams) (*Snapshot, error) {
	r.mu.Lock()
	if r.busy {
		r.mu.Unlock()
		return nil, ErrRefreshInFlight
	}
	r.busy = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.busy = false
		r.mu.Unlock()
	}()

	ctx, span := trace.StartSpan(ctx, "pulse.refresh")
	defer span.End()

	started := time.Now()
	snap, err := r.source.Fetch(ctx, params)
	if err != nil {
		logger.Get().Warnw("refresh failed, keeping previous snapshot",
			"source", r.source.Name(), "error", err)
		return nil, fmt.Errorf("refresh from %s: %w", r.source.Name(), err)
	}
	if snap == nil || len(snap.TimeSeries) == 0 {
		logger.Get().Warnw("refresh produced no data, keeping previous snapshot",
			"source", r.source.Name())
		return nil, ErrEmptySnapshot
	}

	stored := r.store.Put(snap)
	logger.Get().Infow("refresh complete",
		"snapshot_id", stored.ID,
		"days", len(stored.TimeSeries),
		"edges", len(stored.Graph.Links),
		"total_mentions", stored.Summary.TotalMentions,
		"took", time.Since(started))

	return stored, nil
}
