package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

var (
	mdMu        sync.Mutex
	mdRenderers = map[int]*glamour.TermRenderer{}
)

// renderMarkdown renders markdown at the given wrap width, caching renderers
// per width. Falls back to the raw text when glamour fails.
func renderMarkdown(width int, content string) string {
	if width < 20 {
		width = 20
	}
	mdMu.Lock()
	rr, ok := mdRenderers[width]
	if !ok {
		style := "light"
		if hasDarkBackground() {
			style = "dark"
		}
		var err error
		rr, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			mdMu.Unlock()
			return content
		}
		mdRenderers[width] = rr
	}
	mdMu.Unlock()

	out, err := rr.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}
