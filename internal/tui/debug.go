package tui

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// debugLogf appends one diagnostic line to the configured debug log. This is
// the only failure channel for silent errors (transport failures change no
// state and are not surfaced to the user beyond a status flash).
func (m *appModel) debugLogf(format string, args ...any) {
	if strings.TrimSpace(m.debugLogPath) == "" {
		return
	}
	f, err := os.OpenFile(m.debugLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "%s %s\n", time.Now().Format(time.RFC3339), fmt.Sprintf(format, args...))
}
