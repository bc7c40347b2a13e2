// Package rows projects domain entities into the renderable row descriptors
// consumed by the timeline widget. Projection is pure: no side effects, no
// remote calls, and identical inputs yield identical rows.
package rows

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"timeclerk-cli/internal/model"
)

// Group is the row's kind label on the widget contract. Only "entry" rows
// accept move/remove intents.
type Group string

const (
	GroupEntry   Group = "entry"
	GroupSession Group = "session"
	GroupCommit  Group = "commit"
)

// Editable describes the per-row capabilities exposed to the widget. The
// three flags toggle independently; the zero value means read-only.
type Editable struct {
	TimeDrag bool // row may be repositioned by dragging
	Remove   bool // row may be deleted
	Override bool // per-row settings take precedence over collection defaults
}

// Row is the visual projection of one entity.
type Row struct {
	ID       model.LocalID
	Content  string
	Start    time.Time
	End      *time.Time // nil for point-style rows
	Group    Group
	Class    string
	Title    string
	Editable Editable
}

// maxTitleWindows caps the session tooltip at the largest window samples.
const maxTitleWindows = 10

// IssueLookup resolves an issue key to reference data, or reports absence.
// Projection stays pure as long as the lookup does.
type IssueLookup func(key string) (*model.Issue, bool)

// Projector maps entities to rows. Issues may be nil when commit/issue
// linking is not needed.
type Projector struct {
	Issues IssueLookup
}

// Project maps an entity of a dynamically-known kind. An unknown kind or a
// mismatched entity type is a programming-contract violation, reported as an
// error and fatal to this projection call.
func (p Projector) Project(kind model.Kind, entity any) (Row, error) {
	switch kind {
	case model.KindSession:
		if sn, ok := entity.(*model.Session); ok {
			return p.Session(sn), nil
		}
	case model.KindEntry:
		if e, ok := entity.(*model.TimeEntry); ok {
			return p.Entry(e), nil
		}
	case model.KindCommit:
		if c, ok := entity.(*model.Commit); ok {
			return p.Commit(c), nil
		}
	default:
		return Row{}, fmt.Errorf("rows: unrecognized kind %q", kind)
	}
	return Row{}, fmt.Errorf("rows: entity %T does not match kind %q", entity, kind)
}

// Session rows are read-only. The tooltip lists the session's window-activity
// samples by descending duration, capped at the ten largest.
func (p Projector) Session(sn *model.Session) Row {
	end := sn.End
	return Row{
		ID:      sn.LocalID,
		Content: sn.Category,
		Start:   sn.Start,
		End:     &end,
		Group:   GroupSession,
		Class:   "session-" + sn.Category,
		Title:   sessionTitle(sn.Windows),
	}
}

func sessionTitle(windows []model.WindowSample) string {
	sorted := make([]model.WindowSample, len(windows))
	copy(sorted, windows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Seconds > sorted[j].Seconds
	})
	if len(sorted) > maxTitleWindows {
		sorted = sorted[:maxTitleWindows]
	}
	lines := make([]string, 0, len(sorted))
	for _, w := range sorted {
		lines = append(lines, fmt.Sprintf("%ds - %s", w.Seconds, w.Name))
	}
	return strings.Join(lines, "\n")
}

// Entry rows are the editable kind: draggable, removable, and flagged to let
// per-row settings override the collection defaults.
func (p Projector) Entry(e *model.TimeEntry) Row {
	end := e.End
	return Row{
		ID:      e.LocalID,
		Content: e.Description,
		Start:   e.Start,
		End:     &end,
		Group:   GroupEntry,
		Class:   "entry",
		Title:   e.Description,
		Editable: Editable{
			TimeDrag: true,
			Remove:   true,
			Override: true,
		},
	}
}

// Commit rows render as zero-duration point markers. When the commit links to
// a known issue, the issue's key and summary are appended to the tooltip.
func (p Projector) Commit(c *model.Commit) Row {
	title := c.Message
	if c.IssueKey != "" && p.Issues != nil {
		if is, ok := p.Issues(c.IssueKey); ok {
			title = fmt.Sprintf("%s\n%s %s", c.Message, is.Key, is.Summary)
		}
	}
	return Row{
		ID:      c.LocalID,
		Content: c.Message,
		Start:   c.Time,
		Group:   GroupCommit,
		Class:   "commit",
		Title:   title,
	}
}
