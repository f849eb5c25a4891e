package pulse

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// stubSource lets tests script source behavior.
type stubSource struct {
	name  string
	fetch func(ctx context.Context, params QueryParams) (*Snapshot, error)
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(ctx context.Context, params QueryParams) (*Snapshot, error) {
	return s.fetch(ctx, params)
}

func minimalSnapshot() *Snapshot {
	return &Snapshot{
		TimeSeries: []DailyPoint{{Date: "2024-01-01", Count: 200}},
	}
}

func TestRefresherStoresSnapshot(t *testing.T) {
	store := NewSnapshotStore()
	src := &stubSource{name: "stub", fetch: func(ctx context.Context, params QueryParams) (*Snapshot, error) {
		return minimalSnapshot(), nil
	}}

	refresher, err := NewRefresher(src, store)
	if err != nil {
		t.Fatalf("refresher: %v", err)
	}

	snap, err := refresher.Refresh(context.Background(), QueryParams{})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if snap.ID == "" {
		t.Fatalf("stored snapshot should carry an id")
	}
	if store.Latest() != snap {
		t.Fatalf("store should hold the refreshed snapshot")
	}
	if refresher.Busy() {
		t.Fatalf("busy flag must clear after success")
	}
}

func TestRefresherRejectsReentrantTrigger(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var startOnce sync.Once
	src := &stubSource{name: "slow", fetch: func(ctx context.Context, params QueryParams) (*Snapshot, error) {
		startOnce.Do(func() { close(started) })
		<-release
		return minimalSnapshot(), nil
	}}

	store := NewSnapshotStore()
	refresher, err := NewRefresher(src, store)
	if err != nil {
		t.Fatalf("refresher: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := refresher.Refresh(context.Background(), QueryParams{})
		done <- err
	}()

	<-started
	if !refresher.Busy() {
		t.Fatalf("busy flag should be set while a refresh runs")
	}
	if _, err := refresher.Refresh(context.Background(), QueryParams{}); !errors.Is(err, ErrRefreshInFlight) {
		t.Fatalf("expected ErrRefreshInFlight, got %v", err)
	}

	close(release)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("first refresh: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("first refresh did not finish")
	}

	// Once the first cycle finishes, a new refresh is accepted again.
	if _, err := refresher.Refresh(context.Background(), QueryParams{}); err != nil {
		t.Fatalf("follow-up refresh: %v", err)
	}
}

func TestRefresherKeepsPreviousSnapshotOnFailure(t *testing.T) {
	store := NewSnapshotStore()
	previous := store.Put(minimalSnapshot())

	src := &stubSource{name: "broken", fetch: func(ctx context.Context, params QueryParams) (*Snapshot, error) {
		return nil, errors.New("upstream exploded")
	}}

	refresher, err := NewRefresher(src, store)
	if err != nil {
		t.Fatalf("refresher: %v", err)
	}

	if _, err := refresher.Refresh(context.Background(), QueryParams{}); err == nil {
		t.Fatalf("expected refresh error")
	}
	if store.Latest() != previous {
		t.Fatalf("failed refresh must not replace the previous snapshot")
	}
	if refresher.Busy() {
		t.Fatalf("busy flag must clear after failure")
	}
}

func TestRefresherRejectsEmptySnapshot(t *testing.T) {
	store := NewSnapshotStore()
	previous := store.Put(minimalSnapshot())

	src := &stubSource{name: "hollow", fetch: func(ctx context.Context, params QueryParams) (*Snapshot, error) {
		return &Snapshot{}, nil
	}}

	refresher, err := NewRefresher(src, store)
	if err != nil {
		t.Fatalf("refresher: %v", err)
	}

	if _, err := refresher.Refresh(context.Background(), QueryParams{}); !errors.Is(err, ErrEmptySnapshot) {
		t.Fatalf("expected ErrEmptySnapshot, got %v", err)
	}
	if store.Latest() != previous {
		t.Fatalf("empty refresh must not replace the previous snapshot")
	}
}
