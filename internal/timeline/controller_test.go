package timeline

import (
	"errors"
	"testing"
	"time"

	"timeclerk-cli/internal/model"
	"timeclerk-cli/internal/rows"
	"timeclerk-cli/internal/store"
)

func i64Ptr(v int64) *int64 { return &v }

func at(day string, clock string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", day+" "+clock)
	if err != nil {
		panic(err)
	}
	return t
}

// testStore loads two sessions on the same day (a drag selection can span
// both), one already-exported session, one entry, and reference data.
func testStore() *store.Store {
	s := store.New()
	s.Load(
		[]*model.Session{
			{Start: at("2024-03-11", "08:00:00"), End: at("2024-03-11", "08:45:00"), Category: "coding"},
			{Start: at("2024-03-11", "08:50:00"), End: at("2024-03-11", "09:30:00"), Category: "coding"},
			{Start: at("2024-03-12", "10:00:00"), End: at("2024-03-12", "11:00:00"), Category: "coding", ExportedID: i64Ptr(501)},
		},
		[]*model.TimeEntry{
			{RemoteID: i64Ptr(501), Start: at("2024-03-12", "10:00:00"), End: at("2024-03-12", "11:00:00"), Description: "feature work", Project: i64Ptr(7)},
			{RemoteID: i64Ptr(502), Start: at("2024-03-11", "09:00:00"), End: at("2024-03-11", "11:00:00"), Description: "long block"},
		},
		nil,
		[]*model.Project{{RemoteID: 7, Name: "Core", Client: "Acme"}},
		[]*model.Issue{
			{Key: "CORE-12", Summary: "Retry storm", Project: 7},
			{Key: "WEB-3", Summary: "Button color", Project: 9},
		},
	)
	return s
}

func TestSelect_SessionPrefillsRangeFields(t *testing.T) {
	s := testStore()
	c := NewController(s)

	got := c.Select(rows.GroupSession, s.Sessions[0].LocalID)
	if got != StateSessionSelected {
		t.Fatalf("state = %v", got)
	}
	f := c.Form()
	if f.Start != "08:00" || f.End != "08:45" {
		t.Fatalf("prefilled range = %q..%q", f.Start, f.End)
	}
	if f.Description != "" || f.Project != nil {
		t.Fatalf("unexported session must prefill blank description/project")
	}
}

func TestSelect_ExportedSessionPrefillsFromItsEntry(t *testing.T) {
	s := testStore()
	c := NewController(s)

	c.Select(rows.GroupSession, s.Sessions[2].LocalID)
	f := c.Form()
	if f.Description != "feature work" {
		t.Fatalf("description = %q", f.Description)
	}
	if f.Project == nil || *f.Project != 7 {
		t.Fatalf("project = %v", f.Project)
	}
}

func TestSelect_DiscardsPriorPanelInput(t *testing.T) {
	s := testStore()
	c := NewController(s)

	c.Select(rows.GroupSession, s.Sessions[0].LocalID)
	c.SetDescription("half-typed note")
	c.Select(rows.GroupSession, s.Sessions[1].LocalID)
	if got := c.Form().Description; got != "" {
		t.Fatalf("unsaved input survived reselection: %q", got)
	}
}

func TestSelect_StaleIdentityIsANoOp(t *testing.T) {
	s := testStore()
	c := NewController(s)
	c.Select(rows.GroupEntry, s.Entries[0].LocalID)

	before := c.State()
	if got := c.Select(rows.GroupSession, model.LocalID(99999)); got != before {
		t.Fatalf("stale selection changed state: %v -> %v", before, got)
	}
	if c.Form().Description != "feature work" {
		t.Fatalf("stale selection clobbered the form")
	}
}

func TestSelect_CommitRowsClearSelection(t *testing.T) {
	s := testStore()
	c := NewController(s)
	c.Select(rows.GroupEntry, s.Entries[0].LocalID)

	if got := c.Select(rows.GroupCommit, 1); got != StateIdle {
		t.Fatalf("state = %v", got)
	}
}

func TestSetDescription_InfersProjectFromFirstIssueKeyMatch(t *testing.T) {
	s := testStore()
	c := NewController(s)
	c.Select(rows.GroupSession, s.Sessions[0].LocalID)

	c.SetDescription("pairing on WEB-3 tweaks")
	if p := c.Form().Project; p == nil || *p != 9 {
		t.Fatalf("project = %v", p)
	}

	// No match leaves the previous inference alone; submission is not blocked.
	c.SetDescription("misc admin")
	if p := c.Form().Project; p == nil || *p != 9 {
		t.Fatalf("advisory inference must not reset on non-match, got %v", p)
	}
}

func TestBeginExport_MultiSegmentSelectionUsesLastSegmentsEnd(t *testing.T) {
	s := testStore()
	c := NewController(s)

	c.Select(rows.GroupSession, s.Sessions[0].LocalID, s.Sessions[1].LocalID)
	c.SetDescription("morning work")

	req, err := c.BeginExport()
	if err != nil {
		t.Fatalf("BeginExport: %v", err)
	}
	if req.RemoteID != nil {
		t.Fatalf("fresh session export must be a create")
	}
	if !req.Start.Equal(at("2024-03-11", "08:00:00")) {
		t.Fatalf("range start = %v", req.Start)
	}
	if !req.End.Equal(at("2024-03-11", "09:30:00")) {
		t.Fatalf("range end must come from the last segment, got %v", req.End)
	}
	if c.State() != StateCommitting {
		t.Fatalf("state = %v", c.State())
	}
}

func TestBeginExport_ExportedSessionBecomesUpdate(t *testing.T) {
	s := testStore()
	c := NewController(s)

	c.Select(rows.GroupSession, s.Sessions[2].LocalID)
	req, err := c.BeginExport()
	if err != nil {
		t.Fatalf("BeginExport: %v", err)
	}
	if req.RemoteID == nil || *req.RemoteID != 501 {
		t.Fatalf("re-export must target the prior entry, got %v", req.RemoteID)
	}
}

func TestBeginExport_EntryUsesEditedClockFields(t *testing.T) {
	s := testStore()
	c := NewController(s)

	c.Select(rows.GroupEntry, s.Entries[0].LocalID)
	c.SetStart("10:15")
	c.SetEnd("10:45:30")

	req, err := c.BeginExport()
	if err != nil {
		t.Fatalf("BeginExport: %v", err)
	}
	if req.RemoteID == nil || *req.RemoteID != 501 {
		t.Fatalf("entry export must be an update")
	}
	if !req.Start.Equal(at("2024-03-12", "10:15:00")) || !req.End.Equal(at("2024-03-12", "10:45:30")) {
		t.Fatalf("edited span = %v..%v", req.Start, req.End)
	}
}

func TestBeginExport_RejectsGarbageClockField(t *testing.T) {
	s := testStore()
	c := NewController(s)
	c.Select(rows.GroupEntry, s.Entries[0].LocalID)
	c.SetStart("ten-ish")

	if _, err := c.BeginExport(); !errors.Is(err, ErrBadClock) {
		t.Fatalf("err = %v", err)
	}
	if c.State() != StateEntrySelected {
		t.Fatalf("failed validation must not leave the selected state, got %v", c.State())
	}
}

func TestBeginExport_WithoutSelection(t *testing.T) {
	c := NewController(testStore())
	if _, err := c.BeginExport(); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("err = %v", err)
	}
}

func TestBeginSplit_BuildsThreeTimestampRequest(t *testing.T) {
	s := testStore()
	c := NewController(s)

	c.Select(rows.GroupEntry, s.Entries[1].LocalID) // 09:00..11:00
	c.SetSplit("10:00")

	req, err := c.BeginSplit()
	if err != nil {
		t.Fatalf("BeginSplit: %v", err)
	}
	if req.RemoteID != 502 {
		t.Fatalf("remote id = %d", req.RemoteID)
	}
	if !req.SplitAt.Equal(at("2024-03-11", "10:00:00")) {
		t.Fatalf("split at = %v", req.SplitAt)
	}
	if !req.Start.Equal(at("2024-03-11", "09:00:00")) || !req.End.Equal(at("2024-03-11", "11:00:00")) {
		t.Fatalf("span = %v..%v", req.Start, req.End)
	}
}

func TestBeginSplit_PrefilledSplitDefaultsToMidpoint(t *testing.T) {
	s := testStore()
	c := NewController(s)

	c.Select(rows.GroupEntry, s.Entries[1].LocalID) // 09:00..11:00
	if got := c.Form().Split; got != "10:00" {
		t.Fatalf("prefilled split = %q", got)
	}
}

func TestBeginSplit_RequiresEntrySelection(t *testing.T) {
	s := testStore()
	c := NewController(s)
	c.Select(rows.GroupSession, s.Sessions[0].LocalID)

	if _, err := c.BeginSplit(); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("err = %v", err)
	}
}

func TestFinishCommit_SuccessReturnsToIdleFailureRestores(t *testing.T) {
	s := testStore()
	c := NewController(s)

	c.Select(rows.GroupEntry, s.Entries[0].LocalID)
	if _, err := c.BeginExport(); err != nil {
		t.Fatalf("BeginExport: %v", err)
	}
	c.FinishCommit(false)
	if c.State() != StateEntrySelected {
		t.Fatalf("failure must restore the prior state, got %v", c.State())
	}

	if _, err := c.BeginExport(); err != nil {
		t.Fatalf("BeginExport: %v", err)
	}
	c.FinishCommit(true)
	if c.State() != StateIdle {
		t.Fatalf("success must return to idle, got %v", c.State())
	}
	if c.Form() != (Form{}) {
		t.Fatalf("panel must be cleared after success")
	}
}

func TestFinishCommit_ReselectionDuringFlightWins(t *testing.T) {
	s := testStore()
	c := NewController(s)

	c.Select(rows.GroupEntry, s.Entries[0].LocalID)
	if _, err := c.BeginExport(); err != nil {
		t.Fatalf("BeginExport: %v", err)
	}
	// User selects something else before the response lands.
	c.Select(rows.GroupSession, s.Sessions[0].LocalID)

	c.FinishCommit(true)
	if c.State() != StateSessionSelected {
		t.Fatalf("late completion must not clobber the new selection, got %v", c.State())
	}
}

func TestMoveIntent_OnlyEntryRowsAreMovable(t *testing.T) {
	s := testStore()
	c := NewController(s)

	newStart := at("2024-03-12", "10:30:00")
	newEnd := at("2024-03-12", "11:30:00")

	if _, ok := c.MoveIntent(rows.GroupSession, s.Sessions[0].LocalID, newStart, newEnd); ok {
		t.Fatalf("session rows must silently reject move")
	}
	req, ok := c.MoveIntent(rows.GroupEntry, s.Entries[0].LocalID, newStart, newEnd)
	if !ok {
		t.Fatalf("entry move rejected")
	}
	if req.Description != "feature work" {
		t.Fatalf("move must post the current description, got %q", req.Description)
	}
	if !req.Start.Equal(newStart) || !req.End.Equal(newEnd) {
		t.Fatalf("move span = %v..%v", req.Start, req.End)
	}
}

func TestRemoveIntent_OnlyEntryRowsAreRemovable(t *testing.T) {
	s := testStore()
	c := NewController(s)

	if _, ok := c.RemoveIntent(rows.GroupCommit, 1); ok {
		t.Fatalf("commit rows must silently reject remove")
	}
	id, ok := c.RemoveIntent(rows.GroupEntry, s.Entries[0].LocalID)
	if !ok || id != 501 {
		t.Fatalf("remove intent = (%d, %v)", id, ok)
	}
}
