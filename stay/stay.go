// Package stay holds the calendar-day math shared by booking creation and
// room availability: a stay occupies the half-open range [checkIn, checkOut),
// so the check-out day itself is never blocked.
package stay

import (
	"errors"
	"time"
)

// ErrInvalidRange is returned when check-out is not strictly after check-in.
var ErrInvalidRange = errors.New("check-out must be after check-in")

const dayLayout = "2006-01-02"

// Day normalizes a timestamp to midnight UTC. Every blocked-day comparison is
// exact-match on these markers, never range overlap.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Nights returns the number of nights between check-in and check-out, rounding
// partial days up.
func Nights(checkIn, checkOut time.Time) (int, error) {
	if !checkOut.After(checkIn) {
		return 0, ErrInvalidRange
	}
	diff := checkOut.Sub(checkIn)
	nights := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		nights++
	}
	return nights, nil
}

// Expand returns the set of calendar days a stay occupies:
// {checkIn, checkIn+1, ..., checkOut-1}.
func Expand(checkIn, checkOut time.Time) ([]time.Time, error) {
	start := Day(checkIn)
	end := Day(checkOut)
	if !end.After(start) {
		return nil, ErrInvalidRange
	}

	days := make([]time.Time, 0, int(end.Sub(start)/(24*time.Hour)))
	for cursor := start; cursor.Before(end); cursor = cursor.AddDate(0, 0, 1) {
		days = append(days, cursor)
	}
	return days, nil
}

// Conflicts reports whether any requested stay day is already in the blocked
// set. An empty intersection means the room number is free for the stay.
func Conflicts(blocked, stayDays []time.Time) bool {
	if len(blocked) == 0 || len(stayDays) == 0 {
		return false
	}
	set := make(map[time.Time]struct{}, len(blocked))
	for _, d := range blocked {
		set[Day(d)] = struct{}{}
	}
	for _, d := range stayDays {
		if _, ok := set[Day(d)]; ok {
			return true
		}
	}
	return false
}

// ParseDays parses incoming date strings into normalized day markers.
// Unparseable values are dropped silently; callers decide whether an empty
// result is an error.
func ParseDays(values []string) []time.Time {
	days := make([]time.Time, 0, len(values))
	for _, v := range values {
		if t, err := time.Parse(dayLayout, v); err == nil {
			days = append(days, Day(t))
			continue
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			days = append(days, Day(t))
		}
	}
	return days
}

// ParseDay parses a single date in either date-only or RFC 3339 form.
func ParseDay(value string) (time.Time, bool) {
	if t, err := time.Parse(dayLayout, value); err == nil {
		return Day(t), true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return Day(t), true
	}
	return time.Time{}, false
}

// FormatDays renders day markers as YYYY-MM-DD strings, the form Postgres
// accepts for date[] parameters.
func FormatDays(days []time.Time) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.Format(dayLayout)
	}
	return out
}
