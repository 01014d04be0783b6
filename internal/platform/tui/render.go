package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorPink:          lipgloss.NewStyle().Foreground(lipgloss.Color("218")),
	core.ColorBrown:         lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// HUD styles
var (
	hudStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("236"))
	hudLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(lipgloss.Color("236"))
	hudHealthy = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Background(lipgloss.Color("236"))
	hudHurt    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Background(lipgloss.Color("236"))
	hudCue     = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Background(lipgloss.Color("236"))
	hudTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).Background(lipgloss.Color("236"))
)

const healthBarLen = 10

// healthBar draws health as a fixed-width bar of full and empty cells.
func healthBar(health, maxHealth float64) string {
	if maxHealth <= 0 {
		return ""
	}
	filled := int(math.Round(core.ClampF(health/maxHealth, 0, 1) * float64(healthBarLen)))
	return strings.Repeat("█", filled) + strings.Repeat("░", healthBarLen-filled)
}

// RenderHUD draws the status line above the playfield from a snapshot.
// lastCue is the most recent sound cue seen by the session.
func RenderHUD(title string, s engine.Snapshot, lastCue engine.Cue, width int) string {
	parts := []string{
		hudTitle.Render(title),
		hudLabel.Render("score ") + hudStyle.Render(fmt.Sprintf("%d", s.Score)),
	}

	if s.HasHealth() {
		style := hudHealthy
		if s.Health < s.MaxHealth/3 {
			style = hudHurt
		}
		parts = append(parts, hudLabel.Render("hp ")+style.Render(healthBar(s.Health, s.MaxHealth)))
	}

	parts = append(parts, hudLabel.Render("progress ")+hudStyle.Render(fmt.Sprintf("%3.0f%%", s.Progress)))

	if s.Level > 0 {
		parts = append(parts, hudLabel.Render("level ")+hudStyle.Render(fmt.Sprintf("%d", s.Level)))
	}
	if lastCue != engine.CueNone {
		parts = append(parts, hudCue.Render("♪ "+lastCue.String()))
	}

	sep := hudLabel.Render("  ")
	line := hudStyle.Render(" ") + strings.Join(parts, sep)
	return hudStyle.Width(width).MaxWidth(width).Render(line)
}

// overlay draws the phase banner for the snapshot, if any.
func overlay(dst *core.Screen, title string, s engine.Snapshot) {
	switch s.Phase {
	case engine.PhaseNotStarted:
		msg := s.Message
		if msg == "" {
			msg = "Press Space to start"
		}
		dst.DrawMessageBox(title, msg, core.ColorBrightCyan)
	case engine.PhasePaused:
		dst.DrawMessageBox("PAUSED", "Press P to resume", core.ColorBrightYellow)
	case engine.PhaseGameOver:
		dst.DrawMessageBox("GAME OVER", withRestart(s.Message), core.ColorBrightRed)
	case engine.PhaseWon:
		dst.DrawMessageBox("YOU WIN", withRestart(s.Message), core.ColorBrightGreen)
	}
}

func withRestart(msg string) string {
	if msg == "" {
		return "Press R to play again"
	}
	return msg + " - R to play again"
}
