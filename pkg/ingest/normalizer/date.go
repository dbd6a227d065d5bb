// Package normalizer handles locale-sensitive date, amount, and label
// parsing. Statements arrive in both year-first and day-first date orders and
// in both decimal-comma and decimal-point conventions; every normalizer here
// is a pure function over text.
package normalizer

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
)

var (
	isoDateTimeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T`)
	ymdRe         = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})(?:[ T](\d{1,2}):(\d{2})(?::(\d{2}))?)?$`)
	dmyRe         = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{4})(?:[ T](\d{1,2}):(\d{2})(?::(\d{2}))?)?$`)
)

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// NormalizeDate parses heterogeneous statement date text into a UTC
// timestamp with sub-second precision zeroed. Recognized forms, in order:
// full ISO with a literal 'T'; year-first dates (YYYY-MM-DD, YYYY/MM/DD);
// day-first dates (DD.MM.YYYY, DD/MM/YYYY, DD-MM-YYYY) — each with an
// optional HH:MM[:SS] suffix. Inputs naming impossible calendar dates
// (e.g. February 30th) are rejected rather than rolled over.
func NormalizeDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, ErrInvalidDate
	}

	if isoDateTimeRe.MatchString(trimmed) {
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, trimmed); err == nil {
				return t.UTC().Truncate(time.Second), nil
			}
		}
		return time.Time{}, ErrInvalidDate
	}

	if m := ymdRe.FindStringSubmatch(trimmed); m != nil {
		return buildUTC(m[1], m[2], m[3], m[4], m[5], m[6])
	}
	if m := dmyRe.FindStringSubmatch(trimmed); m != nil {
		return buildUTC(m[3], m[2], m[1], m[4], m[5], m[6])
	}
	return time.Time{}, ErrInvalidDate
}

// buildUTC reconstructs a calendar date from numeric components and rejects
// any input whose reconstruction does not round-trip exactly. time.Date
// silently normalizes overflow (Feb 30 becomes Mar 2), so the component
// comparison is what actually validates the calendar.
func buildUTC(year, month, day, hour, minute, second string) (time.Time, error) {
	y := atoi(year)
	mo := atoi(month)
	d := atoi(day)
	h := atoi(hour)
	mi := atoi(minute)
	s := atoi(second)

	if mo < 1 || mo > 12 || d < 1 || d > 31 {
		return time.Time{}, ErrInvalidDate
	}
	if h < 0 || h > 23 || mi < 0 || mi > 59 || s < 0 || s > 59 {
		return time.Time{}, ErrInvalidDate
	}

	t := time.Date(y, time.Month(mo), d, h, mi, s, 0, time.UTC)
	if t.Year() != y || t.Month() != time.Month(mo) || t.Day() != d ||
		t.Hour() != h || t.Minute() != mi || t.Second() != s {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}
