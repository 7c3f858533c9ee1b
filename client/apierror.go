package client

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/atpstorages/gotumblr/api/tumblr"
)

var (
	// A successful response carried no matching result (eg, a post lookup by id returned an empty set).
	ErrNotFound = errors.New("no matching result")

	// The session expired, and was not granted the "offline_access" scope, so it can not be refreshed.
	ErrOfflineAccessRequired = errors.New("authorization scopes must include offline_access to refresh tokens")

	// A prior refresh failed permanently; a new authorization is required.
	ErrSessionInvalid = errors.New("oauth session is no longer valid")
)

// Failure of the HTTP round trip itself: connection, TLS, timeout, or context cancellation.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %s", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Non-2xx HTTP response (after any transport-level retries).
type APIError struct {
	StatusCode int

	// from the response envelope "meta" object, if one was returned
	Message string
	Errors  []tumblr.ResponseError

	// raw response body, truncated
	Body []byte

	Ratelimit *RatelimitInfo
}

func (ae *APIError) Error() string {
	detail := ae.Message
	if len(ae.Errors) > 0 {
		e := ae.Errors[0]
		if e.Detail != "" {
			detail = e.Title + ": " + e.Detail
		} else if e.Title != "" {
			detail = e.Title
		}
	}
	if ae.StatusCode == http.StatusTooManyRequests && ae.Ratelimit != nil {
		return fmt.Sprintf("API request failed (HTTP %d): %s (throttled until %s)", ae.StatusCode, detail, ae.Ratelimit.Reset().Local())
	}
	if detail != "" {
		return fmt.Sprintf("API request failed (HTTP %d): %s", ae.StatusCode, detail)
	}
	return fmt.Sprintf("API request failed (HTTP %d)", ae.StatusCode)
}

func (ae *APIError) IsThrottled() bool {
	return ae.StatusCode == http.StatusTooManyRequests
}

// Response payload did not have the expected shape.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s response: %s", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// The authorization code exchange failed. No session was created.
type OAuthInitError struct {
	// zero if no HTTP response was received
	StatusCode  int
	Description string
	Body        string
	Err         error
}

func (e *OAuthInitError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to get credentials from code grant: HTTP %d %s %q", e.StatusCode, e.Description, e.Body)
	}
	return fmt.Sprintf("failed to get credentials from code grant: %s", e.Err)
}

func (e *OAuthInitError) Unwrap() error {
	return e.Err
}

// The access token expired and could not be refreshed. The request that needed it was not sent.
type OAuthRefreshError struct {
	StatusCode  int
	Description string
	Body        string
	Err         error
}

func (e *OAuthRefreshError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to refresh credentials: HTTP %d %s %q", e.StatusCode, e.Description, e.Body)
	}
	return fmt.Sprintf("failed to refresh credentials: %s", e.Err)
}

func (e *OAuthRefreshError) Unwrap() error {
	return e.Err
}

// Per-window rate limit state, from the X-Ratelimit-* response headers.
type RatelimitWindow struct {
	Limit     int
	Remaining int
	// seconds until the window resets
	ResetIn int
}

type RatelimitInfo struct {
	PerDay  *RatelimitWindow
	PerHour *RatelimitWindow

	// when the response was received
	Observed time.Time
}

// Earliest instant at which an exhausted window resets; falls back to the hourly window.
func (ri *RatelimitInfo) Reset() time.Time {
	for _, w := range []*RatelimitWindow{ri.PerHour, ri.PerDay} {
		if w != nil && w.Remaining <= 0 {
			return ri.Observed.Add(time.Duration(w.ResetIn) * time.Second)
		}
	}
	if ri.PerHour != nil {
		return ri.Observed.Add(time.Duration(ri.PerHour.ResetIn) * time.Second)
	}
	if ri.PerDay != nil {
		return ri.Observed.Add(time.Duration(ri.PerDay.ResetIn) * time.Second)
	}
	return ri.Observed
}

func parseRatelimitWindow(hdr http.Header, window string) *RatelimitWindow {
	prefix := "X-Ratelimit-" + window + "-"
	if hdr.Get(prefix+"Limit") == "" {
		return nil
	}
	w := &RatelimitWindow{}
	if n, err := strconv.Atoi(strings.TrimSpace(hdr.Get(prefix + "Limit"))); err == nil {
		w.Limit = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(hdr.Get(prefix + "Remaining"))); err == nil {
		w.Remaining = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(hdr.Get(prefix + "Reset"))); err == nil {
		w.ResetIn = n
	}
	return w
}

func ratelimitFromHeaders(hdr http.Header, now time.Time) *RatelimitInfo {
	day := parseRatelimitWindow(hdr, "Perday")
	hour := parseRatelimitWindow(hdr, "Perhour")
	if day == nil && hour == nil {
		return nil
	}
	return &RatelimitInfo{
		PerDay:   day,
		PerHour:  hour,
		Observed: now,
	}
}
