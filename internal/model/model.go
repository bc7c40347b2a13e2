package model

import "time"

// LocalID is a process-assigned identity, unique across every entity kind for
// the lifetime of a store. It is distinct from any id the remote service
// assigns and is never sent over the wire.
type LocalID int64

type Kind string

const (
	KindSession Kind = "session"
	KindEntry   Kind = "entry"
	KindCommit  Kind = "commit"
)

// WindowSample is one window-activity measurement inside a session.
type WindowSample struct {
	Name    string `json:"name"`
	Seconds int64  `json:"seconds"`
}

// Session is a passively recorded block of monitored activity. Sessions are
// read-mostly: they are produced by load, and only ExportedID changes
// afterwards (set by a successful export response, never guessed).
type Session struct {
	LocalID  LocalID
	RemoteID *int64
	Start    time.Time
	End      time.Time
	Day      Day
	Category string
	Windows  []WindowSample

	// ExportedID is the remote id of the time entry this session was exported
	// to, when known.
	ExportedID *int64
}

// TimeEntry is a named, reportable span of time. Entries are the only mutable
// kind: export, update, split, move and delete all target them.
type TimeEntry struct {
	LocalID     LocalID
	RemoteID    *int64
	Start       time.Time
	End         time.Time
	Description string
	Project     *int64 // remote project id
	Day         Day
	CreatedAt   time.Time
}

// Commit is a version-control event shown as a point marker on the timeline.
type Commit struct {
	LocalID  LocalID
	Time     time.Time
	Message  string
	IssueKey string // "" when the commit is not linked to an issue
	Day      Day
}

// Project is read-only reference data.
type Project struct {
	LocalID  LocalID
	RemoteID int64
	Name     string
	Client   string
}

// Issue is read-only reference data, used to infer a project from free-text
// descriptions. Issue matching is local-only and never sent to the service.
type Issue struct {
	LocalID LocalID
	Key     string
	Summary string
	Project int64 // remote project id
}
