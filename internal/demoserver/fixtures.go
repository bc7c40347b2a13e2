package demoserver

import (
	"fmt"
	"time"

	"timeclerk-cli/internal/syncapi/wire"
)

// Demo reference data. Issue keys appear in commit messages so the project
// inference path has something to match against.
var (
	demoProjects = []wire.Project{
		{ID: 7, Name: "Core", Client: "Acme"},
		{ID: 9, Name: "Website", Client: "Acme"},
	}
	demoIssues = []wire.Issue{
		{Key: "CORE-12", Summary: "Retry storm on flaky network", Project: 7},
		{Key: "CORE-19", Summary: "Timeline loads slowly", Project: 7},
		{Key: "WEB-3", Summary: "Button contrast too low", Project: 9},
	}
)

// fixtureSessions generates a deterministic two-sessions-per-weekday shape
// for the window ending at now.
func fixtureSessions(now time.Time, days int) []wire.Session {
	var out []wire.Session
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		y, m, d := day.Date()
		morning := time.Date(y, m, d, 9, 0, 0, 0, day.Location())
		out = append(out,
			wire.Session{
				StartTime: wire.At(morning),
				EndTime:   wire.At(morning.Add(90 * time.Minute)),
				Category:  "coding",
				Windows: []wire.Window{
					{Name: "editor - timeclerk", Seconds: 3100},
					{Name: "terminal", Seconds: 1500},
					{Name: "browser - CI", Seconds: 800},
				},
			},
			wire.Session{
				StartTime: wire.At(morning.Add(4 * time.Hour)),
				EndTime:   wire.At(morning.Add(6 * time.Hour)),
				Category:  "meetings",
				Windows: []wire.Window{
					{Name: "calls", Seconds: 5400},
					{Name: "notes", Seconds: 1800},
				},
			},
		)
	}
	return out
}

func fixtureLog(now time.Time, days int) []wire.Commit {
	var out []wire.Commit
	keys := []string{"CORE-12", "", "WEB-3", "CORE-19"}
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		y, m, d := day.Date()
		at := time.Date(y, m, d, 16, 30, 0, 0, day.Location())
		key := keys[i%len(keys)]
		msg := fmt.Sprintf("day %s: tighten error paths", day.Format("Jan 2"))
		if key != "" {
			msg = fmt.Sprintf("%s: %s", key, msg)
		}
		out = append(out, wire.Commit{Time: wire.At(at), Message: msg, Issue: key})
	}
	return out
}
