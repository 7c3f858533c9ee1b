package util

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTumblrRetryPolicy(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	testCases := []struct {
		status int
		retry  bool
	}{
		{http.StatusOK, false},
		{http.StatusFound, false},
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
		{http.StatusNotFound, false},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusNotImplemented, false},
		{http.StatusBadGateway, false},
		{http.StatusServiceUnavailable, true},
	}

	for _, tc := range testCases {
		retry, err := TumblrRetryPolicy(ctx, &http.Response{StatusCode: tc.status}, nil)
		assert.NoError(err)
		assert.Equal(tc.retry, retry, fmt.Sprintf("status %d", tc.status))
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	retry, err := TumblrRetryPolicy(canceled, &http.Response{StatusCode: http.StatusServiceUnavailable}, nil)
	assert.False(retry)
	assert.True(errors.Is(err, context.Canceled))
}

func TestRobustHTTPClientRetries(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/flaky":
			if hits.Add(1) == 1 {
				w.Header().Set("Retry-After", "0")
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			fmt.Fprintln(w, `{"ok":true}`)
		case "/missing":
			hits.Add(1)
			http.NotFound(w, r)
		case "/redirect":
			hits.Add(1)
			w.Header().Set("Location", "https://example.com/avatar.png")
			w.WriteHeader(http.StatusFound)
		}
	}))
	defer srv.Close()

	c := RobustHTTPClient(nil)

	resp, err := c.Get(srv.URL + "/flaky")
	require.NoError(err)
	resp.Body.Close()
	assert.Equal(http.StatusOK, resp.StatusCode)
	assert.Equal(int32(2), hits.Load())

	hits.Store(0)
	resp, err = c.Get(srv.URL + "/missing")
	require.NoError(err)
	resp.Body.Close()
	assert.Equal(http.StatusNotFound, resp.StatusCode)
	assert.Equal(int32(1), hits.Load())

	hits.Store(0)
	resp, err = c.Get(srv.URL + "/redirect")
	require.NoError(err)
	resp.Body.Close()
	assert.Equal(http.StatusFound, resp.StatusCode)
	assert.Equal("https://example.com/avatar.png", resp.Header.Get("Location"))
	assert.Equal(int32(1), hits.Load())
}

func TestTumblrBackoff(t *testing.T) {
	assert := assert.New(t)

	throttled := &http.Response{StatusCode: http.StatusTooManyRequests, Header: http.Header{}}
	throttled.Header.Set("Retry-After", "3600")
	assert.Equal(30*time.Second, TumblrBackoff(time.Second, 30*time.Second, 1, throttled))

	throttled.Header.Set("Retry-After", "2")
	assert.Equal(2*time.Second, TumblrBackoff(time.Second, 30*time.Second, 1, throttled))

	// plain exponential growth is clamped as well
	assert.Equal(30*time.Second, TumblrBackoff(time.Second, 30*time.Second, 10, nil))
}

func TestRobustHTTPClientNoOverallTimeout(t *testing.T) {
	c := RobustHTTPClient(nil)
	assert.Equal(t, time.Duration(0), c.Timeout)
}

func TestLeveledSlogLevels(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	l := LeveledSlog{slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	levelOf := func(log func(string, ...interface{})) string {
		buf.Reset()
		log("msg", "k", "v")
		var rec map[string]any
		require.NoError(json.Unmarshal(buf.Bytes(), &rec))
		return rec["level"].(string)
	}

	assert.Equal("DEBUG", levelOf(l.Debug))
	assert.Equal("INFO", levelOf(l.Info))
	assert.Equal("WARN", levelOf(l.Warn))
	assert.Equal("WARN", levelOf(l.Error))
}
