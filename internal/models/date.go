package models

import (
	"strings"
	"time"
)

// DateLayout is the ISO-8601 calendar date format used in URLs and forms.
const DateLayout = "2006-01-02"

// DateOf drops the clock part of t, keeping its calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
