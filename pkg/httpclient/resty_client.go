package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultFormat    = "json"
	defaultRetryWait = 500 * time.Millisecond
)

// Options configures a RestyExecutor.
type Options struct {
	// BaseURL is the API root, e.g. https://acme.assistly.com/api/v1.
	BaseURL string
	// Format is appended to every path as an extension ("customers/1.json").
	// Empty disables the suffix.
	Format     string
	UserAgent  string
	Timeout    time.Duration
	RetryCount int
	RetryWait  time.Duration
	Auth       Auth
	Logger     Logger
}

// RestyExecutor implements Executor on top of resty.Client.
type RestyExecutor struct {
	client *resty.Client
	format string
	log    Logger
}

// NewRestyExecutor builds an authenticated executor for the given options.
func NewRestyExecutor(opts Options) (*RestyExecutor, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base url is required")
	}

	c, err := newAuthenticatedClient(opts.Auth)
	if err != nil {
		return nil, fmt.Errorf("configure auth: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c.SetBaseURL(baseURL)
	c.SetTimeout(timeout)
	c.SetHeader("Accept", "application/json")
	if ua := strings.TrimSpace(opts.UserAgent); ua != "" {
		c.SetHeader("User-Agent", ua)
	}

	if opts.RetryCount > 0 {
		wait := opts.RetryWait
		if wait <= 0 {
			wait = defaultRetryWait
		}
		c.SetRetryCount(opts.RetryCount).
			SetRetryWaitTime(wait).
			SetRetryMaxWaitTime(wait * 8).
			AddRetryCondition(retryIdempotent)
	}

	return &RestyExecutor{
		client: c,
		format: strings.TrimPrefix(strings.TrimSpace(opts.Format), "."),
		log:    ensureLogger(opts.Logger),
	}, nil
}

// NewRestyHTTPClient exposes a plain resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	c.SetTimeout(timeout)
	return c
}

// retryIdempotent retries GETs on network errors, 429 and 5xx. Writes are never replayed.
func retryIdempotent(resp *resty.Response, err error) bool {
	if resp == nil || resp.Request == nil || resp.Request.Method != resty.MethodGet {
		return false
	}
	if err != nil {
		return true
	}
	code := resp.StatusCode()
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func (r *RestyExecutor) Get(ctx context.Context, path string, params Params) (Value, error) {
	return r.do(ctx, resty.MethodGet, path, params)
}

func (r *RestyExecutor) Post(ctx context.Context, path string, params Params) (Value, error) {
	return r.do(ctx, resty.MethodPost, path, params)
}

func (r *RestyExecutor) Put(ctx context.Context, path string, params Params) (Value, error) {
	return r.do(ctx, resty.MethodPut, path, params)
}

func (r *RestyExecutor) do(ctx context.Context, method, path string, params Params) (Value, error) {
	req := r.client.R().SetContext(ctx)
	if fields := params.Strings(); len(fields) > 0 {
		if method == resty.MethodGet {
			req.SetQueryParams(fields)
		} else {
			req.SetFormData(fields)
		}
	}

	start := time.Now()
	resp, err := req.Execute(method, r.formatPath(path))
	if err != nil {
		r.log.WarnObj("assistly request failed", "http_error", map[string]any{
			"method": method,
			"path":   path,
			"error":  err.Error(),
		})
		return Value{}, fmt.Errorf("%s %s: %w", method, path, err)
	}

	r.log.DebugObj("assistly request completed", "http_request", map[string]any{
		"method":     method,
		"path":       path,
		"status":     resp.StatusCode(),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return Value{}, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: code,
			Body:       responseSnippet(resp.Body()),
		}
	}

	val, err := Parse(resp.Body())
	if err != nil {
		return Value{}, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return val, nil
}

func (r *RestyExecutor) formatPath(path string) string {
	path = strings.TrimPrefix(path, "/")
	if r.format == "" {
		return path
	}
	return path + "." + r.format
}
