package model

import (
	"testing"
	"time"
)

func TestDayOf_UsesTheTimesOwnLocation(t *testing.T) {
	hel, err := time.LoadLocation("Europe/Helsinki")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 23:30 UTC on the 10th is already the 11th in Helsinki.
	utc := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)

	if got := DayOf(utc); got != Day("2024-03-10") {
		t.Fatalf("DayOf(utc) = %q", got)
	}
	if got := DayOf(utc.In(hel)); got != Day("2024-03-11") {
		t.Fatalf("DayOf(helsinki) = %q", got)
	}
}

func TestDayTime_RoundTrips(t *testing.T) {
	d := Day("2024-03-11")
	got, ok := d.Time(time.UTC)
	if !ok {
		t.Fatalf("Time() failed for %q", d)
	}
	if DayOf(got) != d {
		t.Fatalf("round trip broke: %v -> %q", got, DayOf(got))
	}
	if _, ok := Day("not-a-day").Time(time.UTC); ok {
		t.Fatalf("malformed day must not parse")
	}
}
