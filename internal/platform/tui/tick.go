// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/minigame-arcade/internal/engine"
)

// holdPoll is how often held keys are checked for a synthesized release.
const holdPoll = 30 * time.Millisecond

// FrameMsg carries the latest snapshot from a runner.
type FrameMsg struct {
	Snapshot engine.Snapshot
	runner   *engine.Runner
}

// runnerDoneMsg is sent once a runner's frame channel closes.
type runnerDoneMsg struct {
	runner *engine.Runner
}

// HoldMsg triggers a hold-window check.
type HoldMsg time.Time

// waitFrame returns a command that blocks for the next published frame.
// Messages carry their runner so a session ignores frames from a game it
// already left.
func waitFrame(r *engine.Runner) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-r.Frames()
		if !ok {
			return runnerDoneMsg{runner: r}
		}
		return FrameMsg{Snapshot: s, runner: r}
	}
}

// holdCmd schedules the next hold-window check.
func holdCmd() tea.Cmd {
	return tea.Tick(holdPoll, func(t time.Time) tea.Msg {
		return HoldMsg(t)
	})
}
