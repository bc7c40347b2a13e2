package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"timeclerk-cli/internal/model"
	"timeclerk-cli/internal/rows"
	"timeclerk-cli/internal/timeline"
)

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case loadDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.debugLogf("load: %v", msg.err)
			return m, m.flash("load failed: "+msg.err.Error(), true)
		}
		m.store.Load(msg.res.Sessions, msg.res.Entries, msg.res.Commits, msg.res.Projects, msg.res.Issues)
		m.rowSet = timeline.BuildRows(m.store, m.proj)
		m.rec = timeline.Reconciler{Store: m.store, Rows: m.rowSet, Proj: m.proj}
		m.ctrl.Select("") // prior selection ids are gone after a reload
		m.panelFocused = false
		m.clampCursor()
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.ctrl.FinishCommit(false)
			m.debugLogf("export: %v", msg.err)
			return m, m.flash("export failed: "+msg.err.Error(), true)
		}
		if msg.update {
			m.rec.ApplyUpdate(msg.entry)
		} else {
			m.rec.ApplyCreate(msg.entry, msg.sessionLocal)
		}
		m.ctrl.FinishCommit(true)
		if m.ctrl.State() == timeline.StateIdle {
			m.panelFocused = false
		}
		m.clampCursor()
		return m, m.flash("exported", false)

	case splitDoneMsg:
		if msg.err != nil {
			m.ctrl.FinishCommit(false)
			m.debugLogf("split: %v", msg.err)
			return m, m.flash("split failed: "+msg.err.Error(), true)
		}
		m.rec.ApplySplit(msg.res)
		m.ctrl.FinishCommit(true)
		if m.ctrl.State() == timeline.StateIdle {
			m.panelFocused = false
		}
		m.clampCursor()
		return m, m.flash("split", false)

	case moveDoneMsg:
		// The entry already moved locally; a failed call only flashes and the
		// local position stands until the next reload.
		if msg.err != nil {
			m.debugLogf("move: %v", msg.err)
			return m, m.flash("move not saved remotely", true)
		}
		m.rec.ApplyUpdate(msg.entry)
		return m, nil

	case deleteDoneMsg:
		if msg.err != nil {
			m.debugLogf("delete: %v", msg.err)
			return m, m.flash("delete failed: "+msg.err.Error(), true)
		}
		sel := m.ctrl.Selection()
		m.rec.ApplyDelete(msg.local)
		if sel.First == msg.local {
			m.ctrl.Select("")
			m.panelFocused = false
		}
		m.clampCursor()
		return m, m.flash("deleted", false)

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.status = ""
		}
		return m, nil
	}
	return m, nil
}

func (m *appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.modal {
	case modalConfirmDelete:
		switch msg.String() {
		case "y", "Y", "enter":
			m.modal = modalNone
			return m, m.deleteCmd(m.pendingLocal, m.pendingRemote)
		case "n", "N", "esc", "q":
			m.modal = modalNone
		}
		return m, nil
	case modalHelp:
		m.modal = modalNone
		return m, nil
	}
	if m.panelFocused {
		return m.handlePanelKey(msg)
	}
	return m.handleTimelineKey(msg)
}

func (m *appModel) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.panelFocused = false
		m.panel.blur()
	case key.Matches(msg, m.keys.NextField):
		m.panel.next()
	case key.Matches(msg, m.keys.PrevField):
		m.panel.prev()
	case msg.String() == "enter":
		return m, m.submitExport()
	default:
		if m.panel.focus == fieldProject {
			switch msg.String() {
			case "left", "h":
				m.cycleProject(-1)
			case "right", "l", " ":
				m.cycleProject(1)
			}
			return m, nil
		}
		cmd := m.panel.updateFocused(msg)
		m.syncForm()
		return m, cmd
	}
	return m, nil
}

func (m *appModel) handleTimelineKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.modal = modalHelp
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, m.loadCmd()
	case key.Matches(msg, m.keys.Down):
		m.cursorDown()
	case key.Matches(msg, m.keys.Up):
		m.cursorUp()
	case key.Matches(msg, m.keys.PrevDay):
		m.cursorDayBy(-1)
	case key.Matches(msg, m.keys.NextDay):
		m.cursorDayBy(1)
	case key.Matches(msg, m.keys.Select):
		m.selectCurrent()
	case key.Matches(msg, m.keys.Extend):
		m.extendSelection()
	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.Select("")
		m.panelFocused = false
	case key.Matches(msg, m.keys.NextField):
		st := m.ctrl.State()
		if st == timeline.StateSessionSelected || st == timeline.StateEntrySelected {
			m.panelFocused = true
			m.panel.focusField(fieldDescription)
		}
	case key.Matches(msg, m.keys.Export):
		return m, m.submitExport()
	case key.Matches(msg, m.keys.Split):
		return m, m.submitSplit()
	case key.Matches(msg, m.keys.Delete):
		m.askDelete()
	case key.Matches(msg, m.keys.MoveEarly):
		return m, m.moveSelected(-moveStep)
	case key.Matches(msg, m.keys.MoveLate):
		return m, m.moveSelected(moveStep)
	}
	return m, nil
}

// syncForm mirrors the panel inputs into the controller, letting description
// edits run project inference.
func (m *appModel) syncForm() {
	m.ctrl.SetDescription(m.panel.desc.Value())
	m.ctrl.SetStart(m.panel.start.Value())
	m.ctrl.SetEnd(m.panel.end.Value())
	m.ctrl.SetSplit(m.panel.split.Value())
}

func (m *appModel) selectCurrent() {
	r, ok := m.currentRow()
	if !ok {
		return
	}
	st := m.ctrl.Select(r.Group, r.ID)
	if st == timeline.StateSessionSelected || st == timeline.StateEntrySelected {
		m.panel.setFrom(m.ctrl.Form(), kindOf(r.Group))
		m.panelFocused = false
	}
}

// extendSelection stretches a session selection to the row under the cursor,
// so multi-segment sessions export as one range.
func (m *appModel) extendSelection() {
	r, ok := m.currentRow()
	if !ok || r.Group != rows.GroupSession {
		return
	}
	if m.ctrl.State() != timeline.StateSessionSelected {
		return
	}
	first := m.ctrl.Selection().First
	m.ctrl.Select(rows.GroupSession, first, r.ID)
	m.panel.setFrom(m.ctrl.Form(), model.KindSession)
}

func (m *appModel) submitExport() tea.Cmd {
	st := m.ctrl.State()
	sel := m.ctrl.Selection()
	req, err := m.ctrl.BeginExport()
	if err != nil {
		return m.flashFormError(err)
	}
	var sessionLocal model.LocalID
	if st == timeline.StateSessionSelected && req.RemoteID == nil {
		sessionLocal = sel.First
	}
	m.panelFocused = false
	return m.exportCmd(req, sessionLocal, req.RemoteID != nil)
}

func (m *appModel) submitSplit() tea.Cmd {
	req, err := m.ctrl.BeginSplit()
	if err != nil {
		return m.flashFormError(err)
	}
	m.panelFocused = false
	return m.splitCmd(req)
}

func (m *appModel) askDelete() {
	r, ok := m.currentRow()
	if !ok {
		return
	}
	remoteID, ok := m.ctrl.RemoveIntent(r.Group, r.ID)
	if !ok {
		return
	}
	m.pendingLocal, m.pendingRemote = r.ID, remoteID
	m.modal = modalConfirmDelete
}

// moveSelected nudges the entry under the cursor and posts the new span. The
// local reposition happens immediately.
func (m *appModel) moveSelected(delta time.Duration) tea.Cmd {
	r, ok := m.currentRow()
	if !ok {
		return nil
	}
	e, ok := m.store.EntryByLocal(r.ID)
	if !ok {
		return nil
	}
	req, ok := m.ctrl.MoveIntent(r.Group, r.ID, e.Start.Add(delta), e.End.Add(delta))
	if !ok {
		return nil
	}
	m.rec.ApplyUpdate(&model.TimeEntry{
		RemoteID:    req.RemoteID,
		Start:       req.Start,
		End:         req.End,
		Description: req.Description,
		Project:     req.Project,
	})
	return m.moveCmd(req)
}

func (m *appModel) flashFormError(err error) tea.Cmd {
	switch {
	case errors.Is(err, timeline.ErrNoSelection):
		return m.flash("select a session or entry first", true)
	case errors.Is(err, timeline.ErrBadClock):
		return m.flash("time fields must look like 15:04", true)
	}
	return m.flash(err.Error(), true)
}

func kindOf(g rows.Group) model.Kind {
	switch g {
	case rows.GroupSession:
		return model.KindSession
	case rows.GroupEntry:
		return model.KindEntry
	}
	return model.KindCommit
}
