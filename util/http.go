package util

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type LeveledSlog struct {
	inner *slog.Logger
}

// re-writes HTTP client ERROR to WARN level (because of retries)
func (l LeveledSlog) Error(msg string, keysAndValues ...interface{}) {
	l.inner.Warn(msg, keysAndValues...)
}

func (l LeveledSlog) Warn(msg string, keysAndValues ...interface{}) {
	l.inner.Warn(msg, keysAndValues...)
}

func (l LeveledSlog) Info(msg string, keysAndValues ...interface{}) {
	l.inner.Info(msg, keysAndValues...)
}

func (l LeveledSlog) Debug(msg string, keysAndValues ...interface{}) {
	l.inner.Debug(msg, keysAndValues...)
}

// Redirect policy which hands 3xx responses back to the caller instead of following them.
func NoRedirect(req *http.Request, via []*http.Request) error {
	return http.ErrUseLastResponse
}

// Retry policy for the Tumblr API: connection errors, 429, 500 and 503 are retried. Everything else, including other 5xx, is returned to the caller as-is.
//
// Context cancellation always stops retries.
func TumblrRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		// retryablehttp knows which transport errors are permanent (bad scheme, TLS cert, redirect loops)
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	switch resp.StatusCode {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusServiceUnavailable:
		return true, nil
	}
	return false, nil
}

// Exponential backoff which honors 'Retry-After' on 429 and 503, but never waits longer than max.
func TumblrBackoff(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration {
	d := retryablehttp.DefaultBackoff(min, max, attemptNum, resp)
	if d > max {
		return max
	}
	return d
}

// Generates an HTTP client with defaults suited to the Tumblr API. The
// returned client has the stdlib http.Client interface, but has Hashicorp
// retryablehttp logic internally.
//
// This client will retry on connection errors, 429, 500 and 503 with
// exponential backoff (respecting 'Retry-After', capped at 30 seconds), up to
// 5 retries. Each attempt has its own 60 second timeout; the caller's context
// bounds the whole call. After the
// final attempt the last response is returned unmodified, so callers see the
// real status code and body. Redirects are never followed. Requests are
// traced with OpenTelemetry, and intermediate failures are logged at WARN
// level.
func RobustHTTPClient(logger *slog.Logger) *http.Client {
	if logger == nil {
		logger = slog.Default()
	}

	inner := cleanhttp.DefaultPooledClient()
	inner.Transport = otelhttp.NewTransport(inner.Transport)
	inner.CheckRedirect = NoRedirect
	inner.Timeout = 60 * time.Second

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = inner
	retryClient.RetryMax = 5
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 30 * time.Second
	retryClient.CheckRetry = TumblrRetryPolicy
	retryClient.Backoff = TumblrBackoff
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = retryablehttp.LeveledLogger(LeveledSlog{logger.With("component", "http")})

	client := retryClient.StandardClient()
	client.CheckRedirect = NoRedirect
	return client
}
