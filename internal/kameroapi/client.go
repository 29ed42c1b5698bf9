// Package kameroapi is the typed client for the Kamero backend REST API. The
// backend owns every entity; this package only moves JSON back and forth.
package kameroapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// AuthHeader carries the operator's identity token on every request.
const AuthHeader = "X-Firebase-Auth"

// TokenSource yields a currently valid identity token, refreshing it if
// needed.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// StaticToken is a TokenSource for tools and tests.
type StaticToken string

func (s StaticToken) Token(context.Context) (string, error) { return string(s), nil }

// Observer is told about every backend call.
type Observer interface {
	ObserveBackend(op, method string, status int, elapsed time.Duration)
}

// Client holds the transport. It is safe for concurrent use and carries no
// credentials; see As.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
	observer   Observer
}

// Option mutates client configuration.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the HTTP timeout on the underlying client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent configures a custom user agent.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger logs each call at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithObserver reports call latency and status, e.g. to metrics.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// NewClient constructs a client for the API rooted at base.
func NewClient(base string, opts ...Option) (*Client, error) {
	base = strings.TrimSpace(base)
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + strings.TrimLeft(base, "/")
	}
	parsed, err := url.Parse(strings.TrimSuffix(base, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  "kamero-super-admin",
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// As returns an API bound to one operator's session. Every call made through
// it authenticates with tokens from ts.
func (c *Client) As(ts TokenSource) *API {
	return &API{c: c, tokens: ts}
}

// API is a session-scoped view of the backend.
type API struct {
	c      *Client
	tokens TokenSource
}

func (a *API) get(ctx context.Context, op, endpoint string, q url.Values, v any) error {
	return a.do(ctx, op, http.MethodGet, endpoint, q, nil, v)
}

func (a *API) send(ctx context.Context, op, method, endpoint string, payload, v any) error {
	return a.do(ctx, op, method, endpoint, nil, payload, v)
}

func (a *API) do(ctx context.Context, op, method, endpoint string, q url.Values, payload, v any) error {
	resp, err := a.raw(ctx, op, method, endpoint, q, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if v == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	if r, ok := v.(resultCarrier); ok {
		return r.result().err(resp.StatusCode)
	}
	return nil
}

// raw performs the request and returns the response for status < 400. The
// caller owns the body.
func (a *API) raw(ctx context.Context, op, method, endpoint string, q url.Values, payload any) (*http.Response, error) {
	req, err := a.newRequest(ctx, method, endpoint, q, payload)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := a.c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		a.observe(op, method, 0, elapsed)
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s: request cancelled or timed out: %w", op, ctx.Err())
		}
		return nil, fmt.Errorf("%s: perform request: %w", op, err)
	}
	a.observe(op, method, resp.StatusCode, elapsed)
	a.c.logger.LogAttrs(ctx, slog.LevelDebug, "backend_call",
		slog.String("op", op),
		slog.String("method", method),
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", elapsed),
	)

	if resp.StatusCode >= 400 {
		return nil, parseAPIError(resp)
	}
	return resp, nil
}

func (a *API) observe(op, method string, status int, elapsed time.Duration) {
	if a.c.observer != nil {
		a.c.observer.ObserveBackend(op, method, status, elapsed)
	}
}

func (a *API) newRequest(ctx context.Context, method, endpoint string, q url.Values, payload any) (*http.Request, error) {
	// endpoint is already escaped segment by segment (see escape).
	target := *a.c.baseURL
	rawPath := strings.TrimSuffix(a.c.baseURL.EscapedPath(), "/") + "/" + strings.TrimLeft(endpoint, "/")
	unescaped, err := url.PathUnescape(rawPath)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	target.Path = unescaped
	target.RawPath = rawPath
	if len(q) > 0 {
		target.RawQuery = q.Encode()
	}

	var body io.Reader
	if payload != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.c.userAgent != "" {
		req.Header.Set("User-Agent", a.c.userAgent)
	}

	if a.tokens != nil {
		tok, err := a.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("identity token: %w", err)
		}
		req.Header.Set(AuthHeader, tok)
	}
	return req, nil
}

func escape(segment string) string { return url.PathEscape(segment) }
