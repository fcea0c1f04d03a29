// Package catalogclient fetches the authoritative collection of a listing
// type from the catalog API.
package catalogclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const maxBody = 10 << 20

// ErrShape reports a response body that is neither an array nor an object holding one.
var ErrShape = errors.New("unexpected response shape")

// Client issues rate-limited GET requests against one catalog base URL.
type Client struct {
	baseURL  string
	token    string
	http     *http.Client
	limiter  *rate.Limiter
	retries  int
	backoffs []time.Duration
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithToken sends a bearer token on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithRate limits requests to r per second with the given burst.
func WithRate(r float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(r), burst) }
}

// WithRetries sets how many times 429 and 5xx responses are retried.
func WithRetries(n int, backoff time.Duration) Option {
	return func(c *Client) {
		c.retries = n
		c.backoffs = make([]time.Duration, n)
		for i := range c.backoffs {
			c.backoffs[i] = backoff << i
		}
	}
}

// New returns a client for baseURL, e.g. "http://localhost:8080/api/v1".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 2),
	}
	WithRetries(2, 500*time.Millisecond)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches path and returns the response body of a 2xx reply.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + "/" + strings.TrimLeft(path, "/")

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("catalog: rate limiter wait: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("catalog: build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("catalog: GET %s: %w", url, err)
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("catalog: read response: %w", err)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return body, nil
		}
		lastErr = fmt.Errorf("catalog: GET %s: status %d", url, resp.StatusCode)
		if !retryable(resp.StatusCode) || attempt == c.retries {
			break
		}

		wait := c.backoffs[attempt]
		if after := retryAfter(resp.Header.Get("Retry-After")); after > 0 {
			wait = after
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil, lastErr
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// Endpoint fetches one listing type. Field names the array inside an object
// response, e.g. "colleges".
type Endpoint[T any] struct {
	Client *Client
	Path   string
	Field  string
}

// FetchAll returns every item of the listing. On any failure it returns an
// empty, non-nil slice together with the error.
func (e Endpoint[T]) FetchAll(ctx context.Context) ([]T, error) {
	body, err := e.Client.Get(ctx, e.Path)
	if err != nil {
		return []T{}, err
	}
	items, err := Decode[T](body, e.Field)
	if err != nil {
		return []T{}, fmt.Errorf("catalog: decode %s: %w", e.Path, err)
	}
	return items, nil
}

// Decode accepts a bare JSON array, an object with the named array field, or
// an object with a "data" array.
func Decode[T any](body []byte, field string) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, ErrShape
	}

	var raw json.RawMessage
	switch trimmed[0] {
	case '[':
		raw = trimmed
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, err
		}
		for _, key := range []string{field, "data"} {
			if v, ok := obj[key]; ok && key != "" && isArray(v) {
				raw = v
				break
			}
		}
		if raw == nil {
			return nil, ErrShape
		}
	default:
		return nil, ErrShape
	}

	items := []T{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func isArray(v json.RawMessage) bool {
	t := bytes.TrimSpace(v)
	return len(t) > 0 && t[0] == '['
}
