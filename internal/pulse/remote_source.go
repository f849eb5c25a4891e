package pulse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RemoteSource fetches a ready-made snapshot from a real analytics backend
// exposing the same dashboard contract. It exists as the substitution seam
// for whenever mock generation is replaced with genuine signal processing.
type RemoteSource struct {
	name       string
	baseURL    string
	httpClient *http.Client
}

// NewRemoteSource constructs a remote source with sane defaults.
func NewRemoteSource(name, baseURL string, opts ...func(*RemoteSource)) (*RemoteSource, error) {
	if name == "" {
		return nil, errors.New("remote source requires a name")
	}
	if baseURL == "" {
		return nil, errors.New("remote source requires a base URL")
	}
	s := &RemoteSource{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// WithHTTPClient overrides the internal HTTP client (useful for tests).
func WithHTTPClient(hc *http.Client) func(*RemoteSource) {
	return func(s *RemoteSource) {
		if hc != nil {
			s.httpClient = hc
		}
	}
}

// Name returns the source identifier.
func (s *RemoteSource) Name() string { return s.name }

// Fetch requests a snapshot for the window from the remote backend.
func (s *RemoteSource) Fetch(ctx context.Context, params QueryParams) (*Snapshot, error) {
	query := url.Values{}
	query.Set("from", params.From.Format(DateLayout))
	query.Set("to", params.To.Format(DateLayout))
	query.Set("platform", params.Platform)

	endpoint := fmt.Sprintf("%s/api/dashboard?%s", s.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("remote %s: create request: %w", s.name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote %s: request failed: %w", s.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("remote %s: api error %d: %s", s.name, resp.StatusCode, string(data))
	}

	var snap Snapshot
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&snap); err != nil {
		return nil, fmt.Errorf("remote %s: decode response: %w", s.name, err)
	}

	return &snap, nil
}
