package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette helpers.
//
// The timeline must stay readable on both light and dark terminal
// backgrounds, so everything uses lipgloss.AdaptiveColor and "faint" styling
// is applied only on dark backgrounds (faint on light terminals often becomes
// illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorSurfaceBg  lipgloss.TerminalColor = ac("255", "235")
	colorSurfaceFg  lipgloss.TerminalColor = ac("235", "252")
	colorControlBg  lipgloss.TerminalColor = ac("252", "235")
	colorAccent     lipgloss.TerminalColor = ac("27", "62") // blue
	colorErrorFg    lipgloss.TerminalColor = ac("160", "203")

	// Row colors by style class.
	colorSessionCoding   lipgloss.TerminalColor = ac("28", "77")   // green
	colorSessionMeetings lipgloss.TerminalColor = ac("130", "215") // orange
	colorSessionOther    lipgloss.TerminalColor = ac("240", "246")
	colorEntry           lipgloss.TerminalColor = ac("27", "75")   // blue
	colorCommit          lipgloss.TerminalColor = ac("90", "176")  // purple
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorErrorFg)
}

func styleSelected() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)
}

// rowStyle maps a row's style class to its bar/label style.
func rowStyle(class string) lipgloss.Style {
	var c lipgloss.TerminalColor
	switch class {
	case "entry":
		c = colorEntry
	case "commit":
		c = colorCommit
	case "session-coding":
		c = colorSessionCoding
	case "session-meetings":
		c = colorSessionMeetings
	default:
		c = colorSessionOther
	}
	return lipgloss.NewStyle().Foreground(c)
}

// hasDarkBackground is consulted once at startup; termenv queries the
// terminal and that is not safe mid-render.
func hasDarkBackground() bool {
	return termenv.HasDarkBackground()
}
