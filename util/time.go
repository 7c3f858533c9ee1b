package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const dateOnly = "2006-01-02"

const minuteNoTZ = "2006-01-02T15:04"

const secondNoTZ = "2006-01-02T15:04:05"

// Parses a point in time as accepted on the command line: unix seconds, an RFC 3339 timestamp (with or without fractional seconds), a date-time without zone, or a plain date. Anything else is handed to dateparse. Zone-less inputs are UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return time.Time{}, fmt.Errorf("negative unix timestamp: %d", n)
		}
		return time.Unix(n, 0).UTC(), nil
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse(secondNoTZ, s)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse(minuteNoTZ, s)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse(dateOnly, s)
	if err == nil {
		return t, nil
	}

	t, err = dateparse.ParseIn(s, time.UTC)
	if err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("failed to parse %q as timestamp", s)
}

// Like [ParseTimestamp], but returns unix seconds as used by API cursors. An empty string means zero (no cursor).
func ParseUnixCursor(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return 0, err
	}
	return t.Unix(), nil
}
