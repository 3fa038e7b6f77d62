// Package tui runs levels in the terminal with Bubble Tea: the key mapping,
// the frame loop, the level picker, the run tables and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per frame.
type TickMsg time.Time

// tickInterval returns the frame period for tickRate, 60 Hz when unset.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd schedules the next frame.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
