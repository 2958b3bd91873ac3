package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/logging"
	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"
)

// TokenSource returns the current access token, or "" when there is none.
type TokenSource func(ctx context.Context) string

const (
	DefaultTimeout      = 15 * time.Second
	DefaultRetryBackoff = 200 * time.Millisecond

	maxResponseBody = 8 << 20
)

type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
	timeout time.Duration
	limiter *rate.Limiter
	retries uint64
	backoff time.Duration
	log     logging.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout bounds every single attempt. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = logging.Component(l, logging.ComponentAPI) }
}

// WithRateLimit caps outbound requests per second. rps <= 0 means unlimited.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithRetries sets how many times a GET is retried after a transport error
// or a 5xx response. Other methods are never retried.
func WithRetries(n uint64) Option {
	return func(c *Client) { c.retries = n }
}

func WithRetryBackoff(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.backoff = d
		}
	}
}

// New builds a client for baseURL, which includes the version prefix
// (e.g. http://localhost:8000/api/v1). tokens may be nil.
func New(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: missing host", baseURL)
	}
	if tokens == nil {
		tokens = func(context.Context) string { return "" }
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		tokens:  tokens,
		http:    &http.Client{},
		timeout: DefaultTimeout,
		backoff: DefaultRetryBackoff,
		log:     logging.Component(nil, logging.ComponentAPI),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

type request struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
}

func jsonRequest(method, path string, payload any) (request, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return request{}, fmt.Errorf("encode %s %s: %w", method, path, err)
	}
	return request{method: method, path: path, body: b, contentType: "application/json"}, nil
}

// do sends r and decodes a 2xx JSON body into out (when out is non-nil).
func (c *Client) do(ctx context.Context, r request, out any) error {
	if r.method != http.MethodGet || c.retries == 0 {
		_, err := c.attempt(ctx, r, out, 1)
		return err
	}

	attempt := 0
	b := retry.WithMaxRetries(c.retries, retry.NewExponential(c.backoff))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		retryable, err := c.attempt(ctx, r, out, attempt)
		if err != nil && retryable {
			return retry.RetryableError(err)
		}
		return err
	})
}

// attempt performs one round trip. The bool reports whether the failure is
// worth retrying.
func (c *Client) attempt(ctx context.Context, r request, out any, n int) (bool, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return false, fmt.Errorf("%s %s: %w", r.method, r.path, err)
		}
	}

	actx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(actx, r.method, target, body)
	if err != nil {
		return false, fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if tok := c.tokens(ctx); tok != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerScheme+" "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return false, fmt.Errorf("%s %s: %w", r.method, r.path, ctx.Err())
		}
		c.log.Warn(ctx, "request failed",
			logging.FieldMethod, r.method, logging.FieldPath, r.path,
			logging.FieldAttempt, n, logging.FieldError, err)
		return true, fmt.Errorf("%s %s: %w: %v", r.method, r.path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		if ctx.Err() != nil {
			return false, fmt.Errorf("%s %s: %w", r.method, r.path, ctx.Err())
		}
		return true, fmt.Errorf("%s %s: read body: %w: %v", r.method, r.path, ErrUnavailable, err)
	}

	c.log.Debug(ctx, "request done",
		logging.FieldMethod, r.method, logging.FieldPath, r.path,
		logging.FieldStatusCode, resp.StatusCode,
		logging.FieldDuration, time.Since(start).Milliseconds(),
		logging.FieldAttempt, n)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp.StatusCode, data)
		return resp.StatusCode >= 500, apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("%s %s: decode response: %w", r.method, r.path, err)
	}
	return false, nil
}

// IsUnavailable reports whether err means the backend could not be reached
// or answered with a server error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
