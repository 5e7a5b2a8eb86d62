// Package apiclient performs requests against the creator management backend:
// it resolves paths against the base URL, attaches the bearer token and turns
// non-2xx answers into *model.APIError values.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dtroode/creatorhub/internal/logger"
	"github.com/dtroode/creatorhub/internal/model"
	"github.com/dtroode/creatorhub/internal/observability/metrics"
)

// DefaultTimeout bounds a request when no timeout option is given.
const DefaultTimeout = 15 * time.Second

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerAccept        = "Accept"
	headerRequestID     = "X-Request-ID"
	contentTypeJSON     = "application/json"
)

// ErrNotJSON is returned by Response.Decode when the body is not JSON.
var ErrNotJSON = errors.New("response body is not JSON")

// RequestOptions describes a single request. The zero value is an
// authenticated GET with cookies.
type RequestOptions struct {
	Method string
	// Body is nil, a *Form (multipart), an io.Reader, []byte, string, or any
	// other value, which is JSON-encoded.
	Body   any
	Header http.Header
	// SkipAuth sends the request without the bearer token.
	SkipAuth bool
	// OmitCredentials sends the request without the cookie jar.
	OmitCredentials bool
}

// Response is a successful (2xx) answer.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// JSON reports whether the body holds a JSON document.
func (r *Response) JSON() bool {
	return len(bytes.TrimSpace(r.Body)) > 0 && json.Valid(r.Body)
}

// Text returns the raw body.
func (r *Response) Text() string { return string(r.Body) }

// Decode unmarshals a JSON body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	if !json.Valid(r.Body) {
		return ErrNotJSON
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Value returns the parsed JSON body, or the raw text when the body is not JSON.
func (r *Response) Value() any {
	if !r.JSON() {
		return r.Text()
	}
	var v any
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return r.Text()
	}
	return v
}

// Client is safe for concurrent use. It holds no per-call state.
type Client struct {
	baseURL    string
	tokens     model.TokenSource
	httpClient *http.Client
	bare       *http.Client
	timeout    time.Duration
	logger     *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for baseURL. tokens may be nil for anonymous use.
func New(baseURL string, tokens model.TokenSource, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		tokens:  tokens,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		c.httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Jar:       jar,
		}
	}
	bare := *c.httpClient
	bare.Jar = nil
	c.bare = &bare

	if c.logger == nil {
		c.logger = logger.NewWithWriter(io.Discard, 0)
	}

	return c, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Do performs a request against path, which is resolved relative to the base URL.
func (c *Client) Do(ctx context.Context, path string, opts RequestOptions) (*Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	path = NormalizePath(path)
	target := c.baseURL + path

	body, formType, err := encodeBody(opts.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	for key, values := range opts.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if formType != "" {
		req.Header.Set(headerContentType, formType)
	} else if req.Header.Get(headerContentType) == "" {
		req.Header.Set(headerContentType, contentTypeJSON)
	}
	if req.Header.Get(headerAccept) == "" {
		req.Header.Set(headerAccept, contentTypeJSON)
	}
	if req.Header.Get(headerRequestID) == "" {
		req.Header.Set(headerRequestID, uuid.NewString())
	}
	if !opts.SkipAuth {
		c.authorize(ctx, req)
	}

	hc := c.httpClient
	if opts.OmitCredentials {
		hc = c.bare
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		metrics.ObserveRequest(method, path, "error", time.Since(start))
		return nil, c.transportError(ctx, reqCtx, method, target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveRequest(method, path, "error", time.Since(start))
		return nil, c.transportError(ctx, reqCtx, method, target, err)
	}

	duration := time.Since(start)
	metrics.ObserveRequest(method, path, strconv.Itoa(resp.StatusCode), duration)
	c.logger.Debug("api request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
		"request_id", req.Header.Get(headerRequestID))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, resp.Status, data)
	}

	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// Get performs an authenticated GET.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, path, RequestOptions{Method: http.MethodGet})
}

// Post performs an authenticated POST with body JSON-encoded.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, path, RequestOptions{Method: http.MethodPost, Body: body})
}

// Put performs an authenticated PUT with body JSON-encoded.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, path, RequestOptions{Method: http.MethodPut, Body: body})
}

// Delete performs an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, path, RequestOptions{Method: http.MethodDelete})
}

// NormalizePath returns path with exactly one leading slash.
func NormalizePath(path string) string {
	return "/" + strings.TrimLeft(path, "/")
}

func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if c.tokens == nil {
		return
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.logger.Warn("failed to read session token, sending unauthenticated", "error", err)
		return
	}
	if token != "" {
		req.Header.Set(headerAuthorization, "Bearer "+token)
	}
}

func (c *Client) transportError(parent, reqCtx context.Context, method, target string, err error) error {
	if parent.Err() == nil && errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("%w after %s", model.ErrTimeout, c.timeout)
	}
	return &model.TransportError{Method: method, URL: target, Err: err}
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case *Form:
		if b == nil {
			return nil, "", nil
		}
		return b.encode()
	case io.Reader:
		return b, "", nil
	case []byte:
		return bytes.NewReader(b), "", nil
	case string:
		return strings.NewReader(b), "", nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "", nil
	}
}

func newAPIError(status int, statusLine string, data []byte) *model.APIError {
	text := strings.TrimSpace(string(data))

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		parsed = map[string]any{"message": text}
	}

	// Only an object's error or message field is taken as the message. Bare
	// JSON values fall back to the status text.
	message := ""
	if v, ok := parsed.(map[string]any); ok {
		message = firstString(v["error"], v["message"])
	}
	if message == "" {
		message = http.StatusText(status)
	}
	if message == "" {
		message = statusLine
	}

	return &model.APIError{Status: status, Message: message, Body: parsed}
}

func firstString(values ...any) string {
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return ""
}
