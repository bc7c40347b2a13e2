// Package wire holds the JSON representations shared by the sync client and
// the demo server. Every timestamp crosses the boundary as epoch
// milliseconds; project identity crosses as the project's remote id.
package wire

import "time"

// Millis is a UTC epoch-millisecond timestamp.
type Millis int64

// At converts a local point in time to its wire representation.
func At(t time.Time) Millis {
	return Millis(t.UnixMilli())
}

// Time converts back to an absolute point in time in loc. Entities derive
// their calendar day from this localized time, so the location must be the
// one the user tracks time in.
func (m Millis) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(int64(m)).In(loc)
}

type Window struct {
	Name    string `json:"name"`
	Seconds int64  `json:"seconds"`
}

type Session struct {
	ID         *int64   `json:"id,omitempty"`
	StartTime  Millis   `json:"start_time"`
	EndTime    Millis   `json:"end_time"`
	Category   string   `json:"category,omitempty"`
	ExportedID *int64   `json:"exported_id,omitempty"`
	Windows    []Window `json:"windows,omitempty"`
}

type Entry struct {
	ID        *int64 `json:"id,omitempty"`
	StartTime Millis `json:"start_time"`
	EndTime   Millis `json:"end_time"`
	Name      string `json:"name"`
	Project   *int64 `json:"project,omitempty"`
	CreatedAt Millis `json:"created_at,omitempty"`
}

type Commit struct {
	Time    Millis `json:"time"`
	Message string `json:"message"`
	Issue   string `json:"issue,omitempty"`
}

type Project struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Client string `json:"client,omitempty"`
}

type Issue struct {
	Key     string `json:"key"`
	Summary string `json:"summary,omitempty"`
	Project int64  `json:"project,omitempty"`
}

// LoadPayload is the GET /sessions response.
type LoadPayload struct {
	Sessions    []Session `json:"sessions"`
	TimeEntries []Entry   `json:"time_entries"`
	Log         []Commit  `json:"log"`
	Projects    []Project `json:"projects"`
	Issues      []Issue   `json:"issues"`
}

// ExportRequest is the POST /export body. A present ID makes the operation an
// update of an existing entry instead of a create.
type ExportRequest struct {
	ID        *int64 `json:"id,omitempty"`
	StartTime Millis `json:"start_time"`
	EndTime   Millis `json:"end_time"`
	Name      string `json:"name"`
	Project   *int64 `json:"project,omitempty"`
}

// SplitRequest is the POST /split body: the full current span plus the split
// point, three timestamps in all.
type SplitRequest struct {
	ID        int64  `json:"id"`
	StartTime Millis `json:"start_time"`
	EndTime   Millis `json:"end_time"`
	SplitTime Millis `json:"split_time"`
	Name      string `json:"name"`
	Project   *int64 `json:"project,omitempty"`
}

// SplitResponse carries the rewritten original entry and the newly created
// remainder.
type SplitResponse struct {
	Entry1 Entry `json:"entry1"`
	Entry2 Entry `json:"entry2"`
}

type DeleteRequest struct {
	ID int64 `json:"id"`
}

// DeleteResponse has no defined content contract beyond acknowledgment.
type DeleteResponse struct {
	OK bool `json:"ok"`
}
