package models

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// DateOf drops the clock part of t and pins it to UTC midnight so
// dates compare by calendar day only.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts "2006-01-02" and anything starting with it
// (e.g. "2006-01-02T00:00:00").
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}
