// Package tui provides the Bubble Tea host for the segregation simulation.
// It handles the terminal UI loop, key bindings, grid drawing and the
// SSH server that gives each session its own world.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/schelling/internal/core"
)

// TickMsg is sent to trigger a simulation tick.
// Loop identifies the model that scheduled it, so a model that was left
// and replaced does not keep driving its successor.
type TickMsg struct {
	Loop uint64
	Time time.Time
}

var loopSeq atomic.Uint64

// nextLoop returns a fresh tick loop identifier.
func nextLoop() uint64 {
	return loopSeq.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(loop uint64, tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(core.ClampTickRate(tickRate))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Loop: loop, Time: t}
	})
}
