package transport

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	// apiVersion is the pinned GitHub REST API version sent with
	// every request.
	apiVersion = "2022-11-28"

	// acceptHeader is the media type GitHub expects.
	acceptHeader = "application/vnd.github+json"

	defaultBaseURL   = "https://api.github.com/"
	defaultUserAgent = "ghkit"
)

// Config holds the settings needed to create a Client.
type Config struct {
	// Token is an optional bearer token. Leave empty for
	// unauthenticated access.
	Token string

	// BaseURL overrides the API host. Leave empty for
	// https://api.github.com/.
	BaseURL string

	// UserAgent overrides the User-Agent header.
	UserAgent string

	// Timeout bounds each individual request, including each
	// retry attempt separately. Zero means no timeout.
	Timeout time.Duration

	// Retry bounds the transient-failure retry loop. The zero
	// value selects DefaultRetryPolicy.
	Retry RetryPolicy
}

// Client issues authenticated requests against the API. It is
// immutable after construction and safe for concurrent use.
type Client struct {
	inner *retryablehttp.Client
	base  *url.URL
	token string
	agent string
}

// New validates cfg and returns a ready Client.
func New(cfg Config) (*Client, error) {
	const errCtx = "creating transport client"

	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}

	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: parse base url: %w", errCtx, err,
		)
	}

	if !parsed.IsAbs() {
		return nil, fmt.Errorf(
			"%s: base url must be absolute", errCtx,
		)
	}

	agent := cfg.UserAgent
	if agent == "" {
		agent = defaultUserAgent
	}

	policy := cfg.Retry
	if policy == (RetryPolicy{}) {
		policy = DefaultRetryPolicy()
	}

	inner := retryablehttp.NewClient()
	inner.RetryMax = policy.retries()
	inner.RetryWaitMin = policy.MinWait
	inner.RetryWaitMax = policy.MaxWait
	inner.Logger = retryLogger{}

	// When a retryable status (429, 5xx) survives every attempt,
	// the last response must still reach classification instead
	// of being swallowed behind a generic giving-up error.
	inner.ErrorHandler = func(
		resp *http.Response, err error, _ int,
	) (*http.Response, error) {
		if resp != nil {
			return resp, nil
		}

		return nil, err
	}

	inner.HTTPClient = &http.Client{
		Transport: cleanhttp.DefaultPooledTransport(),
		Timeout:   cfg.Timeout,
	}

	return &Client{
		inner: inner,
		base:  parsed,
		token: cfg.Token,
		agent: agent,
	}, nil
}

// Get prepares a GET request against the given endpoint path
// (relative to the API base, e.g. "repos/org/repo").
func (c *Client) Get(endpoint string) *Request {
	return c.request(http.MethodGet, endpoint)
}

// Post prepares a POST request against the given endpoint path.
func (c *Client) Post(endpoint string) *Request {
	return c.request(http.MethodPost, endpoint)
}

// Put prepares a PUT request against the given endpoint path.
func (c *Client) Put(endpoint string) *Request {
	return c.request(http.MethodPut, endpoint)
}

// Patch prepares a PATCH request against the given endpoint path.
func (c *Client) Patch(endpoint string) *Request {
	return c.request(http.MethodPatch, endpoint)
}

// Delete prepares a DELETE request against the given endpoint path.
func (c *Client) Delete(endpoint string) *Request {
	return c.request(http.MethodDelete, endpoint)
}

func (c *Client) request(method, endpoint string) *Request {
	return &Request{
		client:   c,
		method:   method,
		endpoint: strings.TrimPrefix(endpoint, "/"),
		header:   make(http.Header),
	}
}

// retryLogger forwards retryablehttp's internal logging to slog at
// debug level so retries stay visible without polluting output.
type retryLogger struct{}

func (retryLogger) Error(msg string, kv ...interface{}) {
	slog.Error(msg, kv...)
}

func (retryLogger) Warn(msg string, kv ...interface{}) {
	slog.Debug(msg, kv...)
}

func (retryLogger) Info(msg string, kv ...interface{}) {
	slog.Debug(msg, kv...)
}

func (retryLogger) Debug(msg string, kv ...interface{}) {
	slog.Debug(msg, kv...)
}
