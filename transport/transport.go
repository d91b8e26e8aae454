// Package transport implements the shared authenticated request pipeline of
// the dashboard client: bearer attachment, response envelope unwrapping, and
// transparent single-flight token refresh with at-most-once replay.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nfa-dashboard/go-dashboard-client/credentials"
	"github.com/nfa-dashboard/go-dashboard-client/guard"
	"github.com/nfa-dashboard/go-dashboard-client/internal/config"
	clierrors "github.com/nfa-dashboard/go-dashboard-client/internal/errors"
)

// Auth endpoint paths. The response interceptor exempts both from refresh
// recovery: a 401 from login means bad credentials, and a 401 from refresh
// must never trigger another refresh.
const (
	LoginEndpoint   = "/api/v1/auth/login"
	RefreshEndpoint = "/api/v1/auth/refresh"
	ProfileEndpoint = "/api/v1/auth/profile"
)

const defaultRequestTimeout = 10 * time.Second

// CredentialSource is the credential state the pipeline reads and updates.
// *credentials.Keeper satisfies it.
type CredentialSource interface {
	AccessToken() string
	RefreshToken() string
	Apply(grant credentials.Grant) error
	Clear() error
}

// retryKey marks a request context as already retried. Kept off the wire on
// purpose: a header could leak or be injected by an intermediary.
type retryKey struct{}

func markRetry(ctx context.Context) context.Context {
	return context.WithValue(ctx, retryKey{}, true)
}

func isRetry(ctx context.Context) bool {
	return ctx.Value(retryKey{}) != nil
}

// Client issues JSON requests against the backend. The authenticated client
// runs the full interceptor pipeline; its Bare counterpart skips bearer
// attachment and refresh recovery and exists solely to issue the refresh
// call without recursing into the interceptor.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	hooks     []RequestHook
	source    CredentialSource
	nav       guard.Navigator
	log       zerolog.Logger
	userAgent string
	authed    bool

	refresher *refresher
	bare      *Client
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRequestHook appends a pre-transmission hook to the pipeline.
func WithRequestHook(hook RequestHook) Option {
	return func(c *Client) { c.hooks = append(c.hooks, hook) }
}

// New creates the authenticated client. nav may be nil, in which case the
// redirect side effects are skipped and only errors propagate.
func New(cfg config.ClientConfig, source CredentialSource, nav guard.Navigator, options ...Option) (*Client, error) {
	base, err := url.Parse(cfg.GetBaseURL())
	if err != nil {
		return nil, clierrors.Wrapf(err, "[transport.New] parse base URL %q", cfg.GetBaseURL())
	}

	timeout := defaultRequestTimeout
	if d, err := time.ParseDuration(cfg.GetRequestTimeout()); err == nil && d > 0 {
		timeout = d
	}

	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		source:    source,
		nav:       nav,
		log:       zerolog.Nop(),
		userAgent: cfg.GetUserAgent(),
		authed:    true,
	}
	for _, opt := range options {
		opt(c)
	}

	c.hooks = append([]RequestHook{requestIDHook(), bearerHook(source)}, c.hooks...)

	c.bare = &Client{
		baseURL:   c.baseURL,
		http:      c.http,
		hooks:     []RequestHook{requestIDHook()},
		source:    source,
		log:       c.log,
		userAgent: c.userAgent,
	}
	c.refresher = newRefresher(c.bare, source, c.log)

	return c, nil
}

// Bare returns the companion client that bypasses the auth interceptor.
func (c *Client) Bare() *Client {
	return c.bare
}

// Get issues a GET request and decodes the (unwrapped) response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.call(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.call(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.call(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.call(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return clierrors.Wrapf(err, "encode %s %s body", method, path)
		}
	}
	return c.dispatch(ctx, method, path, query, payload, out)
}

// dispatch runs one request through the pipeline and applies the response
// interceptor state machine: envelope unwrap on success, forbidden redirect
// on 403, and single-flight-refresh-then-replay on a recoverable 401.
func (c *Client) dispatch(ctx context.Context, method, path string, query url.Values, payload []byte, out interface{}) error {
	status, body, err := c.send(ctx, method, path, query, payload)
	if err != nil {
		return err
	}

	if status < http.StatusBadRequest {
		return decodeBody(body, out)
	}

	apiErr := &APIError{StatusCode: status, Message: errorMessage(body)}

	switch status {
	case http.StatusForbidden:
		c.redirectForbidden()
		return apiErr

	case http.StatusUnauthorized:
		if !c.authed || isRetry(ctx) || path == LoginEndpoint || path == RefreshEndpoint {
			return apiErr
		}

		if _, err := c.refresher.refresh(ctx); err != nil {
			if clierrors.Is(err, clierrors.ErrRefreshUnavailable) || clierrors.Is(err, clierrors.ErrRefreshRejected) {
				c.handleRefreshFailure(err)
			}
			return err
		}

		// Replay once with the new bearer credential. The retry marker
		// makes a second 401 propagate instead of refreshing again.
		return c.dispatch(markRetry(ctx), method, path, query, payload, out)

	default:
		return apiErr
	}
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte) (int, []byte, error) {
	target := *c.baseURL
	target.Path = strings.TrimRight(target.Path, "/") + path
	if query != nil {
		target.RawQuery = query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return 0, nil, clierrors.Wrapf(err, "build %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req = applyHooks(req, c.hooks)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return 0, nil, clierrors.Wrapf(clierrors.ErrTransport, "%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, clierrors.Wrapf(clierrors.ErrTransport, "%s %s: read body: %v", method, path, err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(started)).
		Msg("request completed")

	return resp.StatusCode, body, nil
}

// redirectForbidden navigates to the forbidden page unless already there.
// Navigation failures are swallowed so the original error still propagates.
func (c *Client) redirectForbidden() {
	if c.nav == nil || strings.HasPrefix(c.nav.CurrentPath(), guard.ForbiddenPath) {
		return
	}
	if err := c.nav.Navigate(guard.ForbiddenPath, nil); err != nil {
		c.log.Debug().Err(err).Msg("forbidden redirect failed")
	}
}

// handleRefreshFailure clears the credential and redirects to login with the
// current location as the return target.
func (c *Client) handleRefreshFailure(cause error) {
	c.log.Warn().Err(cause).Msg("token refresh failed, clearing session")
	if err := c.source.Clear(); err != nil {
		c.log.Debug().Err(err).Msg("credential clear failed")
	}
	if c.nav == nil {
		return
	}
	current := c.nav.CurrentPath()
	if strings.HasPrefix(current, guard.LoginPath) {
		return
	}
	if err := c.nav.Navigate(guard.LoginPath, guard.LoginRedirect(current)); err != nil {
		c.log.Debug().Err(err).Msg("login redirect failed")
	}
}
