package gst

import (
	"testing"
	"time"
)

func TestStartAndEndOfDay(t *testing.T) {
	// 2026-03-15 10:00 GST == 06:00 UTC.
	in := time.Date(2026, 3, 15, 6, 0, 0, 0, time.UTC)

	start := StartOfDay(in)
	if got, want := start, time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("StartOfDay = %v, want %v", got, want)
	}

	end := EndOfDay(in)
	if got, want := end, time.Date(2026, 3, 15, 19, 59, 59, 999999999, time.UTC); !got.Equal(want) {
		t.Fatalf("EndOfDay = %v, want %v", got, want)
	}
}

func TestLateUTCFallsOnNextGSTDay(t *testing.T) {
	// 22:00 UTC on the 10th is 02:00 GST on the 11th.
	in := time.Date(2026, 6, 10, 22, 0, 0, 0, time.UTC)
	if got, want := DayKey(in), "2026-06-11"; got != want {
		t.Fatalf("DayKey = %q, want %q", got, want)
	}
}

func TestDayBoundarySeparatesBuckets(t *testing.T) {
	before := time.Date(2026, 6, 10, 23, 59, 0, 0, Zone)
	after := time.Date(2026, 6, 11, 0, 1, 0, 0, Zone)
	if DayKey(before) == DayKey(after) {
		t.Fatalf("expected distinct day keys, both %q", DayKey(before))
	}
}

func TestMonthWindowNormalization(t *testing.T) {
	cases := []struct {
		year, month int
		wantStart   string
	}{
		{2026, 3, "2026-03-01"},
		{2026, 0, "2025-12-01"},
		{2026, 13, "2027-01-01"},
	}
	for _, tc := range cases {
		got := DayKey(StartOfMonth(tc.year, tc.month))
		if got != tc.wantStart {
			t.Errorf("StartOfMonth(%d, %d) = %s, want %s", tc.year, tc.month, got, tc.wantStart)
		}
	}
}

func TestEndOfMonthIsLastInstant(t *testing.T) {
	end := EndOfMonth(2026, 2)
	if got, want := DayKey(end), "2026-02-28"; got != want {
		t.Fatalf("EndOfMonth day = %q, want %q", got, want)
	}
	next := StartOfMonth(2026, 3)
	if !end.Before(next) {
		t.Fatalf("EndOfMonth %v not before next StartOfMonth %v", end, next)
	}
	if next.Sub(end) != time.Nanosecond {
		t.Fatalf("gap between months = %v, want 1ns", next.Sub(end))
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-07-04")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if key := DayKey(got); key != "2026-07-04" {
		t.Fatalf("DayKey = %q, want 2026-07-04", key)
	}
	if _, err := ParseDate("04-07-2026"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestFormats(t *testing.T) {
	in := time.Date(2026, 3, 5, 14, 30, 0, 0, Zone)
	if got := FormatDate(in); got != "05/03/2026" {
		t.Fatalf("FormatDate = %q", got)
	}
	if got := FormatTime(in); got != "2:30 PM" {
		t.Fatalf("FormatTime = %q", got)
	}
	if got := MonthName(2026, 3); got != "March 2026" {
		t.Fatalf("MonthName = %q", got)
	}
}
