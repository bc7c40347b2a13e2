package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"timeclerk-cli/internal/model"
	"timeclerk-cli/internal/timeline"
)

type panelField int

const (
	fieldDescription panelField = iota
	fieldProject
	fieldStart
	fieldEnd
	fieldSplit
)

// editPanel is the form under the timeline: description, project, and the
// clock fields. The split field only shows for time entries. Field values are
// mirrored into the controller after every keystroke so project inference from
// issue keys happens live.
type editPanel struct {
	desc  textinput.Model
	start textinput.Model
	end   textinput.Model
	split textinput.Model

	focus     panelField
	showSplit bool
}

func newEditPanel() editPanel {
	clock := func(ph string) textinput.Model {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = ph
		ti.CharLimit = 8
		ti.Width = 8
		return ti
	}
	desc := textinput.New()
	desc.Prompt = ""
	desc.Placeholder = "what were you doing?"
	desc.CharLimit = 200
	desc.Width = 48
	return editPanel{
		desc:  desc,
		start: clock("09:00"),
		end:   clock("17:00"),
		split: clock("12:00"),
	}
}

// setFrom loads the controller's prefilled form into the inputs and resets
// focus to the description.
func (p *editPanel) setFrom(form timeline.Form, kind model.Kind) {
	p.desc.SetValue(form.Description)
	p.start.SetValue(form.Start)
	p.end.SetValue(form.End)
	p.split.SetValue(form.Split)
	p.showSplit = kind == model.KindEntry
	p.focusField(fieldDescription)
}

func (p *editPanel) fields() []panelField {
	fs := []panelField{fieldDescription, fieldProject, fieldStart, fieldEnd}
	if p.showSplit {
		fs = append(fs, fieldSplit)
	}
	return fs
}

func (p *editPanel) focusField(f panelField) {
	p.focus = f
	p.desc.Blur()
	p.start.Blur()
	p.end.Blur()
	p.split.Blur()
	switch f {
	case fieldDescription:
		p.desc.Focus()
	case fieldStart:
		p.start.Focus()
	case fieldEnd:
		p.end.Focus()
	case fieldSplit:
		p.split.Focus()
	}
}

func (p *editPanel) blur() {
	p.desc.Blur()
	p.start.Blur()
	p.end.Blur()
	p.split.Blur()
}

func (p *editPanel) next() {
	fs := p.fields()
	for i, f := range fs {
		if f == p.focus {
			p.focusField(fs[(i+1)%len(fs)])
			return
		}
	}
	p.focusField(fieldDescription)
}

func (p *editPanel) prev() {
	fs := p.fields()
	for i, f := range fs {
		if f == p.focus {
			p.focusField(fs[(i-1+len(fs))%len(fs)])
			return
		}
	}
	p.focusField(fieldDescription)
}

// updateFocused forwards one message to whichever input owns the focus. The
// project field is not a text input; its value cycles via dedicated keys.
func (p *editPanel) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch p.focus {
	case fieldDescription:
		p.desc, cmd = p.desc.Update(msg)
	case fieldStart:
		p.start, cmd = p.start.Update(msg)
	case fieldEnd:
		p.end, cmd = p.end.Update(msg)
	case fieldSplit:
		p.split, cmd = p.split.Update(msg)
	}
	return cmd
}

// view renders the panel box. detail is extra read-only context under the
// fields (the selected session's window-activity breakdown).
func (p *editPanel) view(projectName, detail string, focused, saving bool) string {
	label := func(s string, f panelField) string {
		st := styleMuted()
		if focused && p.focus == f {
			st = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
		}
		return st.Render(s)
	}

	proj := projectName
	if proj == "" {
		proj = "(none)"
	}
	if focused && p.focus == fieldProject {
		proj = "◂ " + proj + " ▸"
	}

	lines := []string{
		label("description ", fieldDescription) + p.desc.View(),
		label("project     ", fieldProject) + proj,
		label("start       ", fieldStart) + p.start.View() +
			"   " + label("end ", fieldEnd) + p.end.View(),
	}
	if p.showSplit {
		lines = append(lines, label("split at    ", fieldSplit)+p.split.View())
	}
	if detail != "" {
		for _, dl := range strings.Split(detail, "\n") {
			lines = append(lines, styleMuted().Render(dl))
		}
	}
	if saving {
		lines = append(lines, styleMuted().Render("saving…"))
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorMuted).
		Padding(0, 1)
	if focused {
		border = border.BorderForeground(colorAccent)
	}
	return border.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
