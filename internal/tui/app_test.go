package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"timeclerk-cli/internal/model"
	"timeclerk-cli/internal/rows"
	"timeclerk-cli/internal/syncapi"
	"timeclerk-cli/internal/timeline"
)

// fakeRemote answers the sync calls in memory. Responses echo the request the
// way the real service does, assigning fresh remote ids to created entries.
type fakeRemote struct {
	nextID  int64
	fail    bool
	deleted []int64
}

func (f *fakeRemote) Load(context.Context) (*syncapi.LoadResult, error) {
	if f.fail {
		return nil, errors.New("connection refused")
	}
	return fixtureLoad(), nil
}

func (f *fakeRemote) Export(_ context.Context, req syncapi.ExportRequest) (*model.TimeEntry, error) {
	if f.fail {
		return nil, errors.New("connection refused")
	}
	id := req.RemoteID
	if id == nil {
		f.nextID++
		v := 900 + f.nextID
		id = &v
	}
	return &model.TimeEntry{
		RemoteID:    id,
		Start:       req.Start,
		End:         req.End,
		Description: req.Description,
		Project:     req.Project,
	}, nil
}

func (f *fakeRemote) Split(_ context.Context, req syncapi.SplitRequest) (*syncapi.SplitResult, error) {
	if f.fail {
		return nil, errors.New("connection refused")
	}
	first := req.RemoteID
	f.nextID++
	second := 900 + f.nextID
	return &syncapi.SplitResult{
		First: &model.TimeEntry{
			RemoteID: &first, Start: req.Start, End: req.SplitAt,
			Description: req.Description, Project: req.Project,
		},
		Second: &model.TimeEntry{
			RemoteID: &second, Start: req.SplitAt, End: req.End,
			Description: req.Description, Project: req.Project,
		},
	}, nil
}

func (f *fakeRemote) Delete(_ context.Context, id int64) error {
	if f.fail {
		return errors.New("connection refused")
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func at(h, min int) time.Time {
	return time.Date(2024, 3, 12, h, min, 0, 0, time.UTC)
}

func i64(v int64) *int64 { return &v }

// One day: a session, the entry it was once exported from elsewhere, and a
// commit linking to a known issue.
func fixtureLoad() *syncapi.LoadResult {
	return &syncapi.LoadResult{
		Sessions: []*model.Session{
			{
				RemoteID: i64(1),
				Start:    at(9, 0),
				End:      at(10, 30),
				Category: "coding",
				Windows: []model.WindowSample{
					{Name: "editor", Seconds: 4200},
					{Name: "terminal", Seconds: 1200},
				},
			},
		},
		Entries: []*model.TimeEntry{
			{
				RemoteID:    i64(501),
				Start:       at(9, 0),
				End:         at(10, 0),
				Description: "fix parser CORE-12",
				Project:     i64(7),
			},
		},
		Commits: []*model.Commit{
			{Time: at(10, 15), Message: "parser: handle empty input", IssueKey: "CORE-12"},
		},
		Projects: []*model.Project{
			{RemoteID: 7, Name: "Core", Client: "Acme"},
			{RemoteID: 9, Name: "Website", Client: "Acme"},
		},
		Issues: []*model.Issue{
			{Key: "CORE-12", Summary: "Parser crashes on empty input", Project: 7},
		},
	}
}

func newTestApp(t *testing.T) (*appModel, *fakeRemote) {
	t.Helper()
	f := &fakeRemote{}
	m := newAppModel(f, Options{Location: time.UTC})
	m.width, m.height = 100, 40
	msg := m.loadCmd()()
	if _, ok := msg.(loadDoneMsg); !ok {
		t.Fatalf("load command produced %T", msg)
	}
	m.Update(msg)
	if len(m.days()) != 1 {
		t.Fatalf("expected 1 day after load, got %d", len(m.days()))
	}
	return m, f
}

func press(m *appModel, s string) tea.Cmd {
	var k tea.KeyMsg
	switch s {
	case "enter":
		k = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		k = tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		k = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		k = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	_, cmd := m.Update(k)
	return cmd
}

func TestLoadBuildsDayRows(t *testing.T) {
	m, _ := newTestApp(t)
	d := m.days()[0]
	if d.Len() != 3 {
		t.Fatalf("day rows = %d, want 3", d.Len())
	}
	want := []rows.Group{rows.GroupSession, rows.GroupEntry, rows.GroupCommit}
	for i, g := range want {
		if got := d.Rows()[i].Group; got != g {
			t.Errorf("row %d group = %q, want %q", i, got, g)
		}
	}
}

func TestSelectSessionPrefillsPanel(t *testing.T) {
	m, _ := newTestApp(t)
	press(m, "enter")
	if got := m.ctrl.State(); got != timeline.StateSessionSelected {
		t.Fatalf("state = %v, want session-selected", got)
	}
	form := m.ctrl.Form()
	if form.Start != "09:00" || form.End != "10:30" {
		t.Errorf("prefilled range = %q–%q, want 09:00–10:30", form.Start, form.End)
	}
}

func TestExportSessionCreatesEntryAndMarksExported(t *testing.T) {
	m, _ := newTestApp(t)
	press(m, "enter")
	cmd := press(m, "e")
	if cmd == nil {
		t.Fatal("export produced no command")
	}
	msg := cmd()
	if _, ok := msg.(exportDoneMsg); !ok {
		t.Fatalf("export command produced %T", msg)
	}
	m.Update(msg)

	if got := m.days()[0].Len(); got != 4 {
		t.Fatalf("day rows = %d after export, want 4", got)
	}
	sn := m.store.Sessions[0]
	if sn.ExportedID == nil {
		t.Fatal("session not marked exported")
	}
	if got := m.ctrl.State(); got != timeline.StateIdle {
		t.Errorf("state after export = %v, want idle", got)
	}
}

func TestEntryExportUpdatesInPlace(t *testing.T) {
	m, _ := newTestApp(t)
	press(m, "j")
	press(m, "enter")
	if got := m.ctrl.State(); got != timeline.StateEntrySelected {
		t.Fatalf("state = %v, want entry-selected", got)
	}
	cmd := press(m, "e")
	msg := cmd()
	m.Update(msg)

	if got := m.days()[0].Len(); got != 3 {
		t.Fatalf("day rows = %d after entry export, want 3 (no new row)", got)
	}
	if got := len(m.store.Entries); got != 1 {
		t.Fatalf("entries = %d, want 1", got)
	}
}

func TestSplitEntryAddsRemainderRow(t *testing.T) {
	m, _ := newTestApp(t)
	press(m, "j")
	press(m, "enter")
	cmd := press(m, "s")
	if cmd == nil {
		t.Fatal("split produced no command")
	}
	msg := cmd()
	if _, ok := msg.(splitDoneMsg); !ok {
		t.Fatalf("split command produced %T", msg)
	}
	m.Update(msg)

	if got := len(m.store.Entries); got != 2 {
		t.Fatalf("entries = %d after split, want 2", got)
	}
	first, ok := m.store.EntryByRemote(501)
	if !ok {
		t.Fatal("original entry lost after split")
	}
	// Prefill puts the split point at the midpoint of 09:00–10:00.
	if want := at(9, 30); !first.End.Equal(want) {
		t.Errorf("first.End = %v, want %v", first.End, want)
	}
	if got := m.days()[0].Len(); got != 4 {
		t.Errorf("day rows = %d after split, want 4", got)
	}
}

func TestDeleteFlowRemovesEntry(t *testing.T) {
	m, f := newTestApp(t)
	press(m, "j")
	press(m, "d")
	if m.modal != modalConfirmDelete {
		t.Fatal("delete did not open the confirm modal")
	}
	cmd := press(m, "y")
	if cmd == nil {
		t.Fatal("confirm produced no command")
	}
	msg := cmd()
	m.Update(msg)

	if len(f.deleted) != 1 || f.deleted[0] != 501 {
		t.Fatalf("deleted remote ids = %v, want [501]", f.deleted)
	}
	if _, ok := m.store.EntryByRemote(501); ok {
		t.Error("entry still in store after delete")
	}
	if got := m.days()[0].Len(); got != 2 {
		t.Errorf("day rows = %d after delete, want 2", got)
	}
}

func TestDeleteIgnoredOnSessionRow(t *testing.T) {
	m, _ := newTestApp(t)
	press(m, "d") // cursor on the session row
	if m.modal != modalNone {
		t.Error("delete opened the modal for a session row")
	}
}

func TestMoveKeepsLocalPositionWhenRemoteFails(t *testing.T) {
	m, f := newTestApp(t)
	f.fail = true
	press(m, "j")
	cmd := press(m, "[")
	if cmd == nil {
		t.Fatal("move produced no command")
	}
	e, _ := m.store.EntryByRemote(501)
	if want := at(8, 45); !e.Start.Equal(want) {
		t.Fatalf("entry not repositioned locally: start = %v, want %v", e.Start, want)
	}
	msg := cmd()
	m.Update(msg)
	if want := at(8, 45); !e.Start.Equal(want) {
		t.Errorf("failed move rolled back the local position: start = %v, want %v", e.Start, want)
	}
}

func TestReloadClearsSelection(t *testing.T) {
	m, _ := newTestApp(t)
	press(m, "enter")
	cmd := press(m, "r")
	if cmd == nil {
		t.Fatal("reload produced no command")
	}
	m.Update(cmd())
	if got := m.ctrl.State(); got != timeline.StateIdle {
		t.Errorf("state after reload = %v, want idle", got)
	}
}
