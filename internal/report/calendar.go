// Package report aggregates worklog hours into the day, week and daily
// report views. Nothing is cached; every call reads the unit of work.
package report

import (
	"time"

	"worktrack/internal/models"
)

// WeekStart returns the Monday on or before d.
func WeekStart(d time.Time) time.Time {
	d = models.DateOf(d)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0 ... Sunday = 6
	return d.AddDate(0, 0, -offset)
}

// DateRange returns n consecutive dates starting at start.
func DateRange(start time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	start = models.DateOf(start)
	days := make([]time.Time, n)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}
