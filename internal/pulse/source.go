package pulse

import (
	"context"
	"errors"
	"fmt"
)

// SnapshotSource defines a pluggable provider capable of producing a
// dashboard snapshot for a requested window.
type SnapshotSource interface {
	Name() string
	Fetch(ctx context.Context, params QueryParams) (*Snapshot, error)
}

// Fallback tries sources in order and returns the first successful snapshot.
// It lets a remote backend be preferred while the mock generator keeps the
// dashboard alive when the backend is unreachable.
type Fallback struct {
	sources []SnapshotSource
}

// NewFallback builds a fallback chain over the provided sources.
func NewFallback(sources ...SnapshotSource) (*Fallback, error) {
	if len(sources) == 0 {
		return nil, errors.New("pulse: at least one source is required")
	}
	return &Fallback{sources: sources}, nil
}

// Name returns the chain identifier.
func (f *Fallback) Name() string { return "fallback" }

// Fetch walks the chain, returning the first snapshot produced. The error of
// the last failing source is returned when every source fails.
func (f *Fallback) Fetch(ctx context.Context, params QueryParams) (*Snapshot, error) {
	var lastErr error
	for _, src := range f.sources {
		snap, err := src.Fetch(ctx, params)
		if err != nil {
			lastErr = fmt.Errorf("fetch from %s: %w", src.Name(), err)
			continue
		}
		return snap, nil
	}
	return nil, lastErr
}
