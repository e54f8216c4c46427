package utils

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the calendar date form accepted alongside RFC 3339.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date, expected RFC 3339 or YYYY-MM-DD")

// ParseDate accepts an RFC 3339 timestamp or a calendar date (midnight UTC).
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}

// ParseOptionalDate returns nil for an empty value.
func ParseOptionalDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// NormalizeList trims every entry and drops empty ones. The result is never nil.
func NormalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
