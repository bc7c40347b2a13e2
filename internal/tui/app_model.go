// Package tui is the interactive timeline: date-grouped rows on top, the edit
// panel below. All state changes happen on the Bubble Tea event loop; remote
// calls run as commands and come back as typed messages that reconcile by id.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"timeclerk-cli/internal/model"
	"timeclerk-cli/internal/rows"
	"timeclerk-cli/internal/store"
	"timeclerk-cli/internal/syncapi"
	"timeclerk-cli/internal/timeline"
)

// Remote is the sync surface the timeline drives. *syncapi.Client satisfies
// it; tests substitute an in-memory fake.
type Remote interface {
	Load(ctx context.Context) (*syncapi.LoadResult, error)
	Export(ctx context.Context, req syncapi.ExportRequest) (*model.TimeEntry, error)
	Split(ctx context.Context, req syncapi.SplitRequest) (*syncapi.SplitResult, error)
	Delete(ctx context.Context, remoteID int64) error
}

type Options struct {
	// Location localizes day headers. Defaults to time.Local.
	Location *time.Location
	// DebugLogPath, when set, receives one line per remote failure.
	DebugLogPath string
}

const (
	remoteCallTimeout = 30 * time.Second
	moveStep          = 15 * time.Minute
	flashDuration     = 4 * time.Second
)

type modalKind int

const (
	modalNone modalKind = iota
	modalConfirmDelete
	modalHelp
)

type appModel struct {
	keys   keyMap
	remote Remote
	loc    *time.Location

	store  *store.Store
	proj   rows.Projector
	rowSet *timeline.RowSet
	ctrl   *timeline.Controller
	rec    timeline.Reconciler

	dayIdx int
	rowIdx int

	panel        editPanel
	panelFocused bool

	modal         modalKind
	pendingLocal  model.LocalID
	pendingRemote int64

	status    string
	statusErr bool
	flashSeq  int

	loading bool
	width   int
	height  int

	debugLogPath string
}

func newAppModel(remote Remote, opts Options) *appModel {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	st := store.New()
	proj := rows.Projector{Issues: st.IssueByKey}
	rs := timeline.NewRowSet()
	return &appModel{
		keys:         defaultKeyMap(),
		remote:       remote,
		loc:          loc,
		store:        st,
		proj:         proj,
		rowSet:       rs,
		ctrl:         timeline.NewController(st),
		rec:          timeline.Reconciler{Store: st, Rows: rs, Proj: proj},
		panel:        newEditPanel(),
		loading:      true,
		debugLogPath: opts.DebugLogPath,
	}
}

// Run starts the timeline UI and blocks until the user quits.
func Run(remote Remote, opts Options) error {
	p := tea.NewProgram(newAppModel(remote, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *appModel) Init() tea.Cmd {
	return m.loadCmd()
}

// --- remote commands -------------------------------------------------------

func (m *appModel) loadCmd() tea.Cmd {
	remote := m.remote
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteCallTimeout)
		defer cancel()
		res, err := remote.Load(ctx)
		return loadDoneMsg{res: res, err: err}
	}
}

func (m *appModel) exportCmd(req syncapi.ExportRequest, sessionLocal model.LocalID, update bool) tea.Cmd {
	remote := m.remote
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteCallTimeout)
		defer cancel()
		e, err := remote.Export(ctx, req)
		return exportDoneMsg{sessionLocal: sessionLocal, update: update, entry: e, err: err}
	}
}

func (m *appModel) splitCmd(req syncapi.SplitRequest) tea.Cmd {
	remote := m.remote
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteCallTimeout)
		defer cancel()
		res, err := remote.Split(ctx, req)
		return splitDoneMsg{res: res, err: err}
	}
}

func (m *appModel) moveCmd(req syncapi.ExportRequest) tea.Cmd {
	remote := m.remote
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteCallTimeout)
		defer cancel()
		e, err := remote.Export(ctx, req)
		return moveDoneMsg{entry: e, err: err}
	}
}

func (m *appModel) deleteCmd(local model.LocalID, remoteID int64) tea.Cmd {
	remote := m.remote
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), remoteCallTimeout)
		defer cancel()
		err := remote.Delete(ctx, remoteID)
		return deleteDoneMsg{local: local, err: err}
	}
}

// --- cursor ----------------------------------------------------------------

func (m *appModel) days() []*timeline.DayRows { return m.rowSet.Days() }

func (m *appModel) currentDay() (*timeline.DayRows, bool) {
	ds := m.days()
	if m.dayIdx < 0 || m.dayIdx >= len(ds) {
		return nil, false
	}
	return ds[m.dayIdx], true
}

func (m *appModel) currentRow() (rows.Row, bool) {
	d, ok := m.currentDay()
	if !ok {
		return rows.Row{}, false
	}
	rs := d.Rows()
	if m.rowIdx < 0 || m.rowIdx >= len(rs) {
		return rows.Row{}, false
	}
	return rs[m.rowIdx], true
}

// clampCursor keeps the cursor on an existing row after rows or days change.
func (m *appModel) clampCursor() {
	ds := m.days()
	if len(ds) == 0 {
		m.dayIdx, m.rowIdx = 0, 0
		return
	}
	if m.dayIdx >= len(ds) {
		m.dayIdx = len(ds) - 1
	}
	if m.dayIdx < 0 {
		m.dayIdx = 0
	}
	n := ds[m.dayIdx].Len()
	if m.rowIdx >= n {
		m.rowIdx = n - 1
	}
	if m.rowIdx < 0 {
		m.rowIdx = 0
	}
}

func (m *appModel) cursorDown() {
	d, ok := m.currentDay()
	if !ok {
		return
	}
	if m.rowIdx < d.Len()-1 {
		m.rowIdx++
		return
	}
	if m.dayIdx < len(m.days())-1 {
		m.dayIdx++
		m.rowIdx = 0
	}
}

func (m *appModel) cursorUp() {
	if m.rowIdx > 0 {
		m.rowIdx--
		return
	}
	if m.dayIdx > 0 {
		m.dayIdx--
		if d, ok := m.currentDay(); ok && d.Len() > 0 {
			m.rowIdx = d.Len() - 1
		} else {
			m.rowIdx = 0
		}
	}
}

func (m *appModel) cursorDayBy(delta int) {
	ds := m.days()
	if len(ds) == 0 {
		return
	}
	m.dayIdx += delta
	if m.dayIdx < 0 {
		m.dayIdx = 0
	}
	if m.dayIdx >= len(ds) {
		m.dayIdx = len(ds) - 1
	}
	m.rowIdx = 0
}

// --- status flash ----------------------------------------------------------

func (m *appModel) flash(text string, isErr bool) tea.Cmd {
	m.flashSeq++
	m.status = text
	m.statusErr = isErr
	seq := m.flashSeq
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashDoneMsg{seq: seq}
	})
}

// --- project selection -----------------------------------------------------

func (m *appModel) projectName(id *int64) string {
	if id == nil {
		return ""
	}
	if p, ok := m.store.ProjectByRemote(*id); ok {
		return p.Name
	}
	return "?"
}

// cycleProject steps the form's project through (none) and the known projects.
func (m *appModel) cycleProject(delta int) {
	ps := m.store.Projects
	if len(ps) == 0 {
		return
	}
	cur := -1
	if id := m.ctrl.Form().Project; id != nil {
		for i, p := range ps {
			if p.RemoteID == *id {
				cur = i
				break
			}
		}
	}
	// -1 is the (none) slot, so the cycle length is len(ps)+1.
	next := (cur + 1 + delta + len(ps) + 1) % (len(ps) + 1)
	if next == 0 {
		m.ctrl.SetProject(nil)
		return
	}
	id := ps[next-1].RemoteID
	m.ctrl.SetProject(&id)
}
