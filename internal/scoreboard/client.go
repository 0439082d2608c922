package scoreboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/tui-2048/internal/scores"
)

// APIError is a non-2xx response from the score board.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("scoreboard: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("scoreboard: HTTP %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps 401 responses to ErrUnauthorized.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// ClientOptions configures a Client.
type ClientOptions struct {
	// Secret signs a submission token per request when non-empty.
	Secret string
	// Timeout applies to requests whose context has no deadline.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to a score board server. It implements scores.Board.
type Client struct {
	base   *url.URL
	http   *http.Client
	secret []byte
}

var _ scores.Board = (*Client)(nil)

// NewClient creates a client for the board at baseURL.
func NewClient(baseURL string, opts ClientOptions) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("scoreboard: invalid URL %q", baseURL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = scores.DefaultSubmitTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	c := &Client{base: u, http: hc}
	if opts.Secret != "" {
		c.secret = []byte(opts.Secret)
	}
	return c, nil
}

// Submit posts a final score.
func (c *Client) Submit(ctx context.Context, rec scores.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(submitReq{
		Nickname:  strings.TrimSpace(rec.Nickname),
		Score:     rec.Score,
		SessionID: rec.SessionID,
	})
	if err != nil {
		return fmt.Errorf("scoreboard: cannot encode score: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/scores", nil), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("scoreboard: cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if c.secret != nil {
		token, err := SignToken(c.secret, strings.TrimSpace(rec.Nickname), DefaultTokenTTL)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.do(req, nil)
}

// Top fetches the best limit records, ordered by score descending.
func (c *Client) Top(ctx context.Context, limit int) ([]scores.Record, error) {
	if limit <= 0 {
		limit = scores.DefaultRankingLimit
	}

	q := url.Values{"limit": {strconv.Itoa(limit)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/scores", q), nil)
	if err != nil {
		return nil, fmt.Errorf("scoreboard: cannot build request: %w", err)
	}

	var records []scores.Record
	if err := c.do(req, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Health checks that the board is reachable.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/health", nil), nil)
	if err != nil {
		return fmt.Errorf("scoreboard: cannot build request: %w", err)
	}
	return c.do(req, nil)
}

func (c *Client) endpoint(path string, q url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("scoreboard: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorRes
		_ = json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&e)
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("scoreboard: cannot decode response: %w", err)
	}
	return nil
}
