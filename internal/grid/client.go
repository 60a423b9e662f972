// Package grid pulls finished-match stats from the GRID esports data
// platform and converts them into the per-phase row format the
// analysis engine consumes.
package grid

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const maxAttempts = 3

// ErrNotConfigured is returned when the client has no API key.
var ErrNotConfigured = errors.New("grid client not configured")

// statusError marks HTTP errors so the retry loop can tell client
// mistakes (4xx, don't retry) from upstream trouble (5xx, retry).
type statusError struct {
	status int
	path   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.path, e.status)
}

// Client is a minimal GRID data API client.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient returns a GRID client authenticated with the given API key.
// An empty key yields a client whose calls fail with ErrNotConfigured.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Configured reports whether the client can reach the API.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// FetchMatch retrieves a finished match for a game ("valorant" or
// "lol") and returns the raw payload.
func (c *Client) FetchMatch(ctx context.Context, game, matchID string) (*MatchPayload, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	path := fmt.Sprintf("/%s/matches/%s", game, matchID)
	var payload MatchPayload
	if err := c.get(ctx, path, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// get performs an authenticated GET with retries. Network errors and
// 5xx responses are retried with a short backoff; 4xx responses fail
// immediately.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			backoff := time.Duration(attempt-1) * 500 * time.Millisecond
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
		err := c.getOnce(ctx, path, out)
		if err == nil {
			return nil
		}
		var se *statusError
		if errors.As(err, &se) && se.status < 500 {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("after %d attempts: %w", maxAttempts, lastErr)
}

func (c *Client) getOnce(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &statusError{status: resp.StatusCode, path: path}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
