package timeline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"timeclerk-cli/internal/model"
	"timeclerk-cli/internal/rows"
	"timeclerk-cli/internal/store"
	"timeclerk-cli/internal/syncapi"
)

// State is the edit-panel interaction state. Exactly one selection is active
// at any time (or none); selecting anything discards unsaved panel input.
type State int

const (
	StateIdle State = iota
	StateSessionSelected
	StateEntrySelected
	StateCommitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSessionSelected:
		return "session-selected"
	case StateEntrySelected:
		return "entry-selected"
	case StateCommitting:
		return "committing"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Selection is the tagged selection variant. Last differs from First only for
// sessions, where a drag selection across several segments keeps the first
// segment's start and the last segment's end as the export range.
type Selection struct {
	Kind  model.Kind
	First model.LocalID
	Last  model.LocalID
}

// Form holds the edit panel's field values. Time fields are clock strings
// ("15:04" or "15:04:05") on the selected entity's own day.
type Form struct {
	Description string
	Project     *int64
	Start       string
	End         string
	Split       string
}

var (
	ErrNoSelection = errors.New("timeline: no applicable selection")
	ErrBadClock    = errors.New("timeline: unparsable time field")
)

// Controller is the single-selection state machine behind the edit panel. It
// prepares sync requests but performs no remote calls itself; callers
// dispatch the request and report completion through FinishCommit while the
// Reconciler lands the response, keyed by id rather than by selection.
type Controller struct {
	store  *store.Store
	state  State
	resume State
	sel    Selection
	form   Form
}

func NewController(st *store.Store) *Controller {
	return &Controller{store: st}
}

func (c *Controller) State() State         { return c.state }
func (c *Controller) Selection() Selection { return c.sel }
func (c *Controller) Form() Form           { return c.form }

// Select reacts to the widget's select event: ordered row identities plus
// their group label. Prior panel input is cleared before prefilling from the
// newly selected entity. Identities no longer present in the store make the
// event a no-op. Selecting commit rows (or nothing) clears the selection.
func (c *Controller) Select(group rows.Group, ids ...model.LocalID) State {
	if len(ids) == 0 {
		c.clear()
		return c.state
	}
	first, last := ids[0], ids[len(ids)-1]

	switch group {
	case rows.GroupSession:
		sn, ok := c.store.SessionByLocal(first)
		if !ok {
			return c.state // stale selection
		}
		c.clear()
		c.sel = Selection{Kind: model.KindSession, First: first, Last: last}
		c.state = StateSessionSelected
		c.prefillSession(sn)
	case rows.GroupEntry:
		e, ok := c.store.EntryByLocal(first)
		if !ok {
			return c.state
		}
		c.clear()
		c.sel = Selection{Kind: model.KindEntry, First: first, Last: first}
		c.state = StateEntrySelected
		c.prefillEntry(e)
	default:
		c.clear()
	}
	return c.state
}

func (c *Controller) clear() {
	c.sel = Selection{}
	c.form = Form{}
	c.state = StateIdle
}

func (c *Controller) prefillSession(sn *model.Session) {
	c.form.Start = clockText(sn.Start)
	c.form.End = clockText(c.sessionRangeEnd(sn))
	// An already-exported session prefills from the entry it produced, so
	// re-exporting edits that entry instead of starting from blank fields.
	if sn.ExportedID != nil {
		if e, ok := c.store.EntryByRemote(*sn.ExportedID); ok {
			c.form.Description = e.Description
			c.form.Project = e.Project
		}
	}
}

func (c *Controller) prefillEntry(e *model.TimeEntry) {
	c.form.Description = e.Description
	c.form.Project = e.Project
	c.form.Start = clockText(e.Start)
	c.form.End = clockText(e.End)
	c.form.Split = clockText(e.Start.Add(e.End.Sub(e.Start) / 2).Truncate(time.Minute))
}

// sessionRangeEnd is the end of the export range: the last selected
// segment's end time, falling back to the first's.
func (c *Controller) sessionRangeEnd(first *model.Session) time.Time {
	if c.sel.Last != c.sel.First {
		if last, ok := c.store.SessionByLocal(c.sel.Last); ok {
			return last.End
		}
	}
	return first.End
}

// SetDescription records the description field and infers a project by
// matching the text against known issue keys. The first match wins; the
// inference is advisory and never blocks submission.
func (c *Controller) SetDescription(text string) {
	c.form.Description = text
	for _, is := range c.store.Issues {
		if is.Key != "" && strings.Contains(text, is.Key) {
			p := is.Project
			c.form.Project = &p
			return
		}
	}
}

func (c *Controller) SetProject(id *int64) { c.form.Project = id }
func (c *Controller) SetStart(text string) { c.form.Start = text }
func (c *Controller) SetEnd(text string)   { c.form.End = text }
func (c *Controller) SetSplit(text string) { c.form.Split = text }

// BeginExport builds the export request for the current selection and moves
// the controller to Committing. For a session the request creates an entry,
// unless the session was exported before, in which case the prior entry's
// remote id turns it into an update. For an entry it is always an update.
func (c *Controller) BeginExport() (syncapi.ExportRequest, error) {
	switch c.state {
	case StateSessionSelected:
		sn, ok := c.store.SessionByLocal(c.sel.First)
		if !ok {
			return syncapi.ExportRequest{}, ErrNoSelection
		}
		start, err := clockOn(sn.Start, c.form.Start, sn.Start)
		if err != nil {
			return syncapi.ExportRequest{}, err
		}
		rangeEnd := c.sessionRangeEnd(sn)
		end, err := clockOn(rangeEnd, c.form.End, rangeEnd)
		if err != nil {
			return syncapi.ExportRequest{}, err
		}
		c.commit()
		return syncapi.ExportRequest{
			RemoteID:    sn.ExportedID,
			Start:       start,
			End:         end,
			Description: c.form.Description,
			Project:     c.form.Project,
		}, nil

	case StateEntrySelected:
		e, ok := c.store.EntryByLocal(c.sel.First)
		if !ok || e.RemoteID == nil {
			return syncapi.ExportRequest{}, ErrNoSelection
		}
		start, err := clockOn(e.Start, c.form.Start, e.Start)
		if err != nil {
			return syncapi.ExportRequest{}, err
		}
		end, err := clockOn(e.End, c.form.End, e.End)
		if err != nil {
			return syncapi.ExportRequest{}, err
		}
		c.commit()
		return syncapi.ExportRequest{
			RemoteID:    e.RemoteID,
			Start:       start,
			End:         end,
			Description: c.form.Description,
			Project:     c.form.Project,
		}, nil
	}
	return syncapi.ExportRequest{}, ErrNoSelection
}

// BeginSplit builds the three-timestamp split request for the selected entry.
func (c *Controller) BeginSplit() (syncapi.SplitRequest, error) {
	if c.state != StateEntrySelected {
		return syncapi.SplitRequest{}, ErrNoSelection
	}
	e, ok := c.store.EntryByLocal(c.sel.First)
	if !ok || e.RemoteID == nil {
		return syncapi.SplitRequest{}, ErrNoSelection
	}
	start, err := clockOn(e.Start, c.form.Start, e.Start)
	if err != nil {
		return syncapi.SplitRequest{}, err
	}
	end, err := clockOn(e.End, c.form.End, e.End)
	if err != nil {
		return syncapi.SplitRequest{}, err
	}
	split, err := clockOn(e.Start, c.form.Split, time.Time{})
	if err != nil {
		return syncapi.SplitRequest{}, err
	}
	c.commit()
	return syncapi.SplitRequest{
		RemoteID:    *e.RemoteID,
		Start:       start,
		End:         end,
		SplitAt:     split,
		Description: c.form.Description,
		Project:     c.form.Project,
	}, nil
}

// MoveIntent translates a widget drag-completion into an update request.
// Only entry rows are movable; other groups are silently rejected. The new
// span is posted together with the entry's current description.
func (c *Controller) MoveIntent(group rows.Group, id model.LocalID, newStart, newEnd time.Time) (syncapi.ExportRequest, bool) {
	if group != rows.GroupEntry {
		return syncapi.ExportRequest{}, false
	}
	e, ok := c.store.EntryByLocal(id)
	if !ok || e.RemoteID == nil {
		return syncapi.ExportRequest{}, false
	}
	return syncapi.ExportRequest{
		RemoteID:    e.RemoteID,
		Start:       newStart,
		End:         newEnd,
		Description: e.Description,
		Project:     e.Project,
	}, true
}

// RemoveIntent translates a widget remove intent into the remote id to
// delete. Only entry rows are removable.
func (c *Controller) RemoveIntent(group rows.Group, id model.LocalID) (int64, bool) {
	if group != rows.GroupEntry {
		return 0, false
	}
	e, ok := c.store.EntryByLocal(id)
	if !ok || e.RemoteID == nil {
		return 0, false
	}
	return *e.RemoteID, true
}

func (c *Controller) commit() {
	c.resume = c.state
	c.state = StateCommitting
}

// FinishCommit folds a completed mutation back into the state machine:
// success returns to Idle and hides the panel, failure restores the prior
// selection. A selection made while the call was in flight wins: the late
// completion then leaves the state machine alone (the Reconciler already
// landed the data by id).
func (c *Controller) FinishCommit(ok bool) {
	if c.state != StateCommitting {
		return
	}
	if ok {
		c.clear()
		return
	}
	c.state = c.resume
}

const clockLayout = "15:04"

func clockText(t time.Time) string {
	return t.Format(clockLayout)
}

// clockOn interprets a clock-text field on base's calendar day. An empty
// field falls back to fallback; a zero fallback makes the field required.
func clockOn(base time.Time, text string, fallback time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		if fallback.IsZero() {
			return time.Time{}, ErrBadClock
		}
		return fallback, nil
	}
	var parsed time.Time
	var err error
	for _, layout := range []string{"15:04:05", "15:04"} {
		if parsed, err = time.Parse(layout, text); err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadClock, text)
	}
	y, m, d := base.Date()
	return time.Date(y, m, d, parsed.Hour(), parsed.Minute(), parsed.Second(), 0, base.Location()), nil
}
