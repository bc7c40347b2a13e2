package model

import "time"

// Day is the calendar day an entity belongs to: the unit of timeline
// partitioning, and the join key between sessions, entries and commits.
//
// A Day is derived exactly once, when an entity is created, from the entity's
// start time in that time's own location (the sync layer localizes wire
// timestamps before entities are built). Days compare and sort correctly as
// plain strings.
type Day string

const dayLayout = "2006-01-02"

// DayOf returns the calendar day of t in t's location.
func DayOf(t time.Time) Day {
	return Day(t.Format(dayLayout))
}

// Time returns midnight at the start of the day in loc. The boolean is false
// for a malformed Day.
func (d Day) Time(loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(dayLayout, string(d), loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (d Day) String() string { return string(d) }
