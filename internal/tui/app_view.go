package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"timeclerk-cli/internal/model"
	"timeclerk-cli/internal/rows"
	"timeclerk-cli/internal/timeline"
)

const helpMarkdown = `# timeclerk

Sessions, exported time entries and commits, grouped by day.

| Key | Action |
| --- | --- |
| j / k | next / previous row |
| h / l | previous / next day |
| enter | select row (opens the edit panel) |
| V | extend a session selection to the cursor |
| tab | focus the edit panel / next field |
| e / enter | export the selection |
| s | split the selected entry at the split time |
| d | delete the entry under the cursor |
| [ / ] | nudge the entry under the cursor ±15 min |
| r | reload from the server |
| esc | deselect |
| q | quit |

Typing an issue key (like CORE-12) into the description picks the
matching project automatically.
`

func (m *appModel) View() string {
	if m.width == 0 {
		return "loading…"
	}
	switch m.modal {
	case modalConfirmDelete:
		return m.viewConfirmDelete()
	case modalHelp:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			renderMarkdown(min(m.width-4, 72), helpMarkdown))
	}

	header := m.viewHeader()
	footer := styleMuted().Render("enter select · tab edit · e export · s split · d delete · ? help · q quit")

	panel := ""
	switch m.ctrl.State() {
	case timeline.StateSessionSelected, timeline.StateEntrySelected, timeline.StateCommitting:
		panel = m.panel.view(
			m.projectName(m.ctrl.Form().Project),
			m.selectionDetail(),
			m.panelFocused,
			m.ctrl.State() == timeline.StateCommitting,
		)
	}

	chrome := lipgloss.Height(header) + lipgloss.Height(footer)
	if panel != "" {
		chrome += lipgloss.Height(panel)
	}
	body := m.viewTimeline(m.height - chrome)

	parts := []string{header, body}
	if panel != "" {
		parts = append(parts, panel)
	}
	parts = append(parts, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *appModel) viewHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("timeclerk")
	status := m.status
	st := styleMuted()
	if m.statusErr {
		st = styleError()
	}
	if m.loading {
		status = "loading…"
		st = styleMuted()
	}
	if status == "" {
		return title
	}
	return title + "  " + st.Render(status)
}

// viewTimeline renders the day sections, sliced vertically so the cursor row
// stays visible.
func (m *appModel) viewTimeline(avail int) string {
	if avail < 3 {
		avail = 3
	}
	ds := m.days()
	if len(ds) == 0 {
		if m.loading {
			return styleMuted().Render("  fetching sessions…")
		}
		return styleMuted().Render("  nothing loaded. press r to reload")
	}

	var lines []string
	cursorLine := 0
	for di, d := range ds {
		if di > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, m.dayHeader(d))
		for ri, r := range d.Rows() {
			onCursor := di == m.dayIdx && ri == m.rowIdx
			if onCursor {
				cursorLine = len(lines)
			}
			lines = append(lines, m.rowLine(r, onCursor))
		}
		if d.Len() == 0 {
			lines = append(lines, styleMuted().Render("    (no rows)"))
		}
	}

	start := 0
	if cursorLine >= avail {
		start = cursorLine - avail + 1
	}
	end := start + avail
	if end > len(lines) {
		end = len(lines)
	}
	out := make([]string, 0, end-start)
	for _, ln := range lines[start:end] {
		out = append(out, ansi.Truncate(ln, m.width, "…"))
	}
	return strings.Join(out, "\n")
}

func (m *appModel) dayHeader(d *timeline.DayRows) string {
	label := d.Day().String()
	if t, ok := d.Day().Time(m.loc); ok {
		label = t.Format("Mon Jan 2 2006")
	}
	return lipgloss.NewStyle().Bold(true).Render(label)
}

func (m *appModel) rowLine(r rows.Row, onCursor bool) string {
	var ts string
	if r.End != nil {
		ts = fmt.Sprintf("%s–%s", r.Start.Format("15:04"), r.End.Format("15:04"))
	} else {
		// Point row (commit): single timestamp padded to the span width.
		ts = r.Start.Format("15:04") + "      "
	}
	content := strings.ReplaceAll(r.Content, "\n", " ")
	text := fmt.Sprintf("%s  %s", ts, content)

	prefix := "  "
	if m.isSelected(r.ID) {
		prefix = lipgloss.NewStyle().Foreground(colorAccent).Render("▌ ")
	}
	if onCursor {
		return prefix + styleSelected().Render(text)
	}
	return prefix + rowStyle(r.Class).Render(text)
}

// selectionDetail is the selected session's window-activity breakdown (the
// row title already holds it, largest samples first).
func (m *appModel) selectionDetail() string {
	sel := m.ctrl.Selection()
	if sel.Kind != model.KindSession {
		return ""
	}
	if _, r, ok := m.rowSet.Find(sel.First); ok {
		return r.Title
	}
	return ""
}

func (m *appModel) isSelected(id model.LocalID) bool {
	sel := m.ctrl.Selection()
	return sel.First != 0 && (sel.First == id || sel.Last == id)
}

func (m *appModel) viewConfirmDelete() string {
	prompt := "Delete this time entry?"
	if _, r, ok := m.rowSet.Find(m.pendingLocal); ok && r.Content != "" {
		prompt = fmt.Sprintf("Delete %q?", r.Content)
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorErrorFg).
		Padding(1, 2).
		Render(prompt + "\n\n" + styleMuted().Render("y confirm · n cancel"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
