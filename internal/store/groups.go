package store

import (
	"timeclerk-cli/internal/model"
)

// DayMembers holds, per kind, the entities belonging to one calendar day, in
// load order. Order matters for positional day-container assignment but is
// never assumed to correlate across kinds.
type DayMembers struct {
	Sessions []*model.Session
	Entries  []*model.TimeEntry
	Commits  []*model.Commit
}

// Days returns the distinct calendar days present across sessions, in
// first-appearance (load) order. Sessions are the group-defining kind;
// entries and commits are matched into a day by equality of their own day,
// not by session membership.
func (s *Store) Days() []model.Day {
	seen := map[model.Day]bool{}
	var days []model.Day
	for _, sn := range s.Sessions {
		if !seen[sn.Day] {
			seen[sn.Day] = true
			days = append(days, sn.Day)
		}
	}
	return days
}

// MembersOf returns the entities whose day equals d, in load order per kind.
// This is a from-scratch projection: cheap relative to load, recomputed
// whenever the collections change.
func (s *Store) MembersOf(d model.Day) DayMembers {
	var m DayMembers
	for _, sn := range s.Sessions {
		if sn.Day == d {
			m.Sessions = append(m.Sessions, sn)
		}
	}
	for _, e := range s.Entries {
		if e.Day == d {
			m.Entries = append(m.Entries, e)
		}
	}
	for _, c := range s.Commits {
		if c.Day == d {
			m.Commits = append(m.Commits, c)
		}
	}
	return m
}
