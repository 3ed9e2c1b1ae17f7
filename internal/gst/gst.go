// Package gst anchors all business-day arithmetic to Gulf Standard Time
// (UTC+4, no daylight saving). Instants are stored and compared in UTC;
// only day and month boundaries are derived from the GST wall clock.
package gst

import (
	"fmt"
	"time"
)

var Zone = time.FixedZone("GST", 4*60*60)

func Now() time.Time {
	return time.Now().UTC()
}

// Today returns the current GST calendar date at local midnight.
func Today() time.Time {
	return StartOfDay(Now())
}

// StartOfDay returns 00:00:00.000000000 of t's GST calendar day, in UTC.
func StartOfDay(t time.Time) time.Time {
	local := t.In(Zone)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Zone).UTC()
}

// EndOfDay returns 23:59:59.999999999 of t's GST calendar day, in UTC.
func EndOfDay(t time.Time) time.Time {
	local := t.In(Zone)
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 999999999, Zone).UTC()
}

// StartOfMonth returns the first instant of the given GST month, in UTC.
// Month values outside 1..12 normalize across year boundaries, so
// (year, 0) is December of the prior year and (year, 13) is January of
// the next.
func StartOfMonth(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, Zone).UTC()
}

// EndOfMonth returns the last instant of the given GST month, in UTC.
func EndOfMonth(year, month int) time.Time {
	return time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, Zone).Add(-time.Nanosecond).UTC()
}

// DayKey returns t's GST calendar day as YYYY-MM-DD, the bucket key used
// by the calendar view.
func DayKey(t time.Time) string {
	return t.In(Zone).Format("2006-01-02")
}

// ParseDate parses a YYYY-MM-DD value as a GST calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, Zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t.UTC(), nil
}

// MonthName returns the English month name with year, e.g. "March 2026".
func MonthName(year, month int) string {
	return StartOfMonth(year, month).In(Zone).Format("January 2006")
}

func FormatDate(t time.Time) string {
	return t.In(Zone).Format("02/01/2006")
}

func FormatTime(t time.Time) string {
	return t.In(Zone).Format("3:04 PM")
}

func FormatTimestamp(t time.Time) string {
	return t.In(Zone).Format("02/01/2006 3:04 PM")
}
