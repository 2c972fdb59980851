package ui

import (
	"io"
	"os"
	"strings"

	osc52 "github.com/aymanbagabas/go-osc52/v2"
	tea "github.com/charmbracelet/bubbletea"
)

const clipboardLimit = 100 * 1024

// copyCmd writes text to the terminal clipboard with an OSC 52 sequence,
// wrapped for tmux or screen when running inside one.
func copyCmd(w io.Writer, text string, rows int) tea.Cmd {
	return func() tea.Msg {
		seq := osc52.New(text).Limit(clipboardLimit)

		term := strings.ToLower(os.Getenv("TERM"))
		if tmux := os.Getenv("TMUX"); tmux != "" || strings.HasPrefix(term, "tmux") {
			seq = seq.Tmux()
		} else if strings.HasPrefix(term, "screen") {
			seq = seq.Screen()
		}

		_, err := seq.WriteTo(w)
		return copiedMsg{rows: rows, err: err}
	}
}
