package loadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
)

var (
	// ErrStatus reports an unexpected HTTP status.
	ErrStatus = errors.New("unexpected status")
	// ErrNotFinished reports a screening still pending after the wait.
	ErrNotFinished = errors.New("screening not finished")
)

// Client talks to the screener HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client with the given request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

// Health checks GET /healthz.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/healthz", nil, nil, http.StatusOK)
	return err
}

// Submit posts a screening. A repeated request ID answers 200 instead of 202.
func (c *Client) Submit(ctx context.Context, req Request) (Submission, error) {
	var sub Submission
	if _, err := c.do(ctx, http.MethodPost, "/screenings", req, &sub, http.StatusAccepted, http.StatusOK); err != nil {
		return Submission{}, err
	}
	return sub, nil
}

// Screening fetches the state of one screening.
func (c *Client) Screening(ctx context.Context, id string) (Screening, error) {
	var s Screening
	if _, err := c.do(ctx, http.MethodGet, "/screenings/"+url.PathEscape(id), nil, &s, http.StatusOK); err != nil {
		return Screening{}, err
	}
	return s, nil
}

// Await polls a screening with exponential backoff until it leaves the
// pending state or wait elapses.
func (c *Client) Await(ctx context.Context, id string, wait time.Duration) (Screening, error) {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = 20 * time.Millisecond
	expo.MaxInterval = time.Second
	expo.MaxElapsedTime = wait

	var out Screening
	op := func() error {
		s, err := c.Screening(ctx, id)
		if err != nil {
			if errors.Is(err, ErrStatus) {
				return backoff.Permanent(err)
			}
			return err
		}
		if s.Status == "pending" {
			return fmt.Errorf("%w: %s", ErrNotFinished, id)
		}
		out = s
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(expo, ctx)); err != nil {
		return Screening{}, fmt.Errorf("await %s: %w", id, err)
	}
	return out, nil
}

// Leaderboard fetches the best n entries of role.
func (c *Client) Leaderboard(ctx context.Context, role string, n int) ([]Entry, error) {
	q := url.Values{"role": {role}, "limit": {strconv.Itoa(n)}}
	var entries []Entry
	if _, err := c.do(ctx, http.MethodGet, "/leaderboard?"+q.Encode(), nil, &entries, http.StatusOK); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, want ...int) (int, error) {
	var body io.Reader = http.NoBody
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	ok := false
	for _, code := range want {
		if resp.StatusCode == code {
			ok = true
			break
		}
	}
	if !ok {
		return resp.StatusCode, fmt.Errorf("%w: %s %s returned %d: %s", ErrStatus, method, path, resp.StatusCode, bytes.TrimSpace(raw))
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
