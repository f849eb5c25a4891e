package pulse

import (
	"context"
	"errors"
	"testing"
)

func TestFallbackPrefersFirstHealthySource(t *testing.T) {
	broken := &stubSource{name: "remote", fetch: func(ctx context.Context, params QueryParams) (*Snapshot, error) {
		return nil, errors.New("connection refused")
	}}
	healthy := &stubSource{name: "mock", fetch: func(ctx context.Context, params QueryParams) (*Snapshot, error) {
		return minimalSnapshot(), nil
	}}

	chain, err := NewFallback(broken, healthy)
	if err != nil {
		t.Fatalf("fallback: %v", err)
	}

	snap, err := chain.Fetch(context.Background(), QueryParams{})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(snap.TimeSeries) != 1 {
		t.Fatalf("expected fallback snapshot, got %+v", snap)
	}
}

func TestFallbackReturnsLastErrorWhenAllFail(t *testing.T) {
	first := &stubSource{name: "remote", fetch: func(ctx context.Context, params QueryParams) (*Snapshot, error) {
		return nil, errors.New("timeout")
	}}
	sentinel := errors.New("mock down")
	second := &stubSource{name: "mock", fetch: func(ctx context.Context, params QueryParams) (*Snapshot, error) {
		return nil, sentinel
	}}

	chain, err := NewFallback(first, second)
	if err != nil {
		t.Fatalf("fallback: %v", err)
	}

	if _, err := chain.Fetch(context.Background(), QueryParams{}); !errors.Is(err, sentinel) {
		t.Fatalf("expected last source error, got %v", err)
	}
}

func TestFallbackRequiresSources(t *testing.T) {
	if _, err := NewFallback(); err == nil {
		t.Fatalf("expected error for empty source list")
	}
}
