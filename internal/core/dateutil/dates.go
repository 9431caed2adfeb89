// Package dateutil provides calendar arithmetic and lenient parsing of
// user-typed report dates.
package dateutil

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Role says which end of a date range a parsed value belongs to.
// Month-only and year-only inputs resolve differently per end.
type Role int

const (
	// RoleFrom resolves partial dates to the first day of the period.
	RoleFrom Role = iota
	// RoleTo resolves partial dates to the last day of the period.
	RoleTo
)

// formatRule pairs an input-shape regexp with the Go layout to parse it.
type formatRule struct {
	layout  string
	pattern *regexp.Regexp
}

var dayRules = []formatRule{
	{"2006-01-02", regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)},
	{"2/1/2006", regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)},
	{"2-1-2006", regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{4}$`)},
	{"2 Jan 2006", regexp.MustCompile(`^\d{1,2}\s+[A-Za-z]{3}\s+\d{4}$`)},
	{"2 January 2006", regexp.MustCompile(`^\d{1,2}\s+[A-Za-z]+\s+\d{4}$`)},
	{"2006/1/2", regexp.MustCompile(`^\d{4}/\d{1,2}/\d{1,2}$`)},
}

var monthRules = []formatRule{
	{"2006-1", regexp.MustCompile(`^\d{4}-\d{1,2}$`)},
	{"1/2006", regexp.MustCompile(`^\d{1,2}/\d{4}$`)},
	{"Jan-2006", regexp.MustCompile(`^[A-Za-z]{3}-\d{4}$`)},
	{"January-2006", regexp.MustCompile(`^[A-Za-z]+-\d{4}$`)},
}

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths advances base by n calendar months, clamping the day into
// the target month (31 Jan + 1 month = 28/29 Feb, not 2/3 Mar).
// Non-positive n returns base unchanged.
func AddMonths(base time.Time, n int) time.Time {
	if n <= 0 {
		return base
	}
	y := base.Year() + (int(base.Month())-1+n)/12
	m := time.Month((int(base.Month())-1+n)%12 + 1)
	d := base.Day()
	if last := DaysIn(y, m); d > last {
		d = last
	}
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseUserDate parses the date formats users actually type: ISO, slash
// and dash day-first, named months, month-year and bare year. Partial
// inputs resolve to the first day (RoleFrom) or last day (RoleTo) of
// the period. Returns false when no format matches.
func ParseUserDate(text string, role Role) (time.Time, bool) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return time.Time{}, false
	}

	for _, rule := range dayRules {
		if !rule.pattern.MatchString(raw) {
			continue
		}
		if t, err := time.Parse(rule.layout, raw); err == nil {
			return t, true
		}
	}

	for _, rule := range monthRules {
		if !rule.pattern.MatchString(raw) {
			continue
		}
		t, err := time.Parse(rule.layout, raw)
		if err != nil {
			continue
		}
		if role == RoleFrom {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), true
		}
		return time.Date(t.Year(), t.Month(), DaysIn(t.Year(), t.Month()), 0, 0, 0, 0, time.UTC), true
	}

	if yearPattern.MatchString(raw) {
		y, _ := strconv.Atoi(raw)
		if role == RoleFrom {
			return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC), true
		}
		return time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}

// ClampToToday caps t at today (dates beyond now collapse silently).
func ClampToToday(t, now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if t.After(today) {
		return today
	}
	return t
}
