package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
	"github.com/vovakirdan/minigame-arcade/internal/storage"
)

// Runs browser layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show game list sidebar
	sidebarWidth       = 24  // Width of game list sidebar
	maxRuns            = 100 // Max runs to load
)

// RunsKeyMap defines the key bindings for the runs browser.
type RunsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Replay   key.Binding
	Delete   key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.Replay, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Replay, k.Delete, k.Back, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev game"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next game"),
		),
		Replay: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "verify replay"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev game"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// allGames is the sidebar entry that lists every game's runs.
var allGames = registry.GameInfo{Title: "All games"}

// RunsModel is the Bubble Tea model for browsing recorded runs.
type RunsModel struct {
	games       []registry.GameInfo // Sidebar entries, "All games" first
	gameCursor  int
	store       *storage.Store
	runs        []storage.Run
	status      string
	table       table.Model
	help        help.Model
	keys        RunsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewRunsModel creates a new runs browser.
func NewRunsModel(store *storage.Store, width, height int) RunsModel {
	games := append([]registry.GameInfo{allGames}, registry.List()...)

	h := help.New()
	h.ShowAll = false

	m := RunsModel{
		games:       games,
		store:       store,
		keys:        DefaultRunsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	m.loadRuns()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Run", Width: 8},
		{Title: "Game", Width: 12},
		{Title: "Started", Width: 12},
		{Title: "Ticks", Width: 7},
		{Title: "Result", Width: 10},
		{Title: "Score", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, status, help and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// currentGame returns the game id filter, "" for all games.
func (m RunsModel) currentGame() string {
	return m.games[m.gameCursor].ID
}

// loadRuns loads runs for the selected sidebar entry.
func (m *RunsModel) loadRuns() {
	m.runs = nil
	if m.store != nil {
		runs, err := m.store.Runs(m.currentGame(), maxRuns)
		if err != nil {
			m.status = err.Error()
		} else {
			m.runs = runs
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded runs.
func (m *RunsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			shortID(r.ID),
			r.GameID,
			r.StartedAt.Format("Jan 02 15:04"),
			fmt.Sprintf("%d", r.Ticks),
			r.Phase,
			fmt.Sprintf("%d", r.Score),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// selectedRun returns the run under the table cursor.
func (m RunsModel) selectedRun() (storage.Run, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return storage.Run{}, false
	}
	return m.runs[i], true
}

// Init initializes the runs model.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the runs browser.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame), key.Matches(msg, m.keys.Right):
			m.gameCursor = (m.gameCursor + 1) % len(m.games)
			m.status = ""
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.PrevGame), key.Matches(msg, m.keys.Left):
			m.gameCursor--
			if m.gameCursor < 0 {
				m.gameCursor = len(m.games) - 1
			}
			m.status = ""
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.Replay):
			if r, ok := m.selectedRun(); ok {
				m.status = VerifyRun(m.store, r.ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if r, ok := m.selectedRun(); ok {
				if err := m.store.DeleteRun(r.ID); err != nil {
					m.status = err.Error()
				} else {
					m.status = "deleted " + shortID(r.ID)
				}
				m.loadRuns()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// VerifyRun re-simulates a stored run and reports whether it reproduces the
// recorded result.
func VerifyRun(store *storage.Store, id string) string {
	if store == nil {
		return "no database"
	}
	run, entries, err := store.LoadRun(id)
	if err != nil {
		return err.Error()
	}
	final, err := ReplayRun(run, entries)
	if err != nil {
		return err.Error()
	}
	if !run.Finished() {
		return fmt.Sprintf("%s unfinished; replay reached %s, score %d", shortID(id), final.Phase, final.Score)
	}
	if final.Phase.String() == run.Phase && final.Score == run.Score {
		return fmt.Sprintf("%s verified: %s, score %d", shortID(id), final.Phase, final.Score)
	}
	return fmt.Sprintf("%s MISMATCH: recorded %s/%d, replay %s/%d",
		shortID(id), run.Phase, run.Score, final.Phase, final.Score)
}

// ReplayRun rebuilds a run's rules and re-simulates its journal headless.
func ReplayRun(run storage.Run, entries []engine.JournalEntry) (engine.Snapshot, error) {
	game, err := registry.Create(run.GameID)
	if err != nil {
		return engine.Snapshot{}, err
	}
	cfg := core.DefaultConfig()
	cfg.Seed = run.Seed
	cfg.TickRate = run.TickRate
	cfg.Difficulty = run.Difficulty
	rules, err := game.Rules(cfg)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("tui: %s rules: %w", run.GameID, err)
	}
	opts := engine.Options{
		Game:   run.GameID,
		Seed:   run.Seed,
		Logger: log.Default().With("replay", run.ID),
	}
	return engine.Replay(rules, opts, entries, run.Ticks), nil
}

// View renders the runs browser.
func (m RunsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("RECORDED RUNS - %s", m.games[m.gameCursor].Title)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Render(m.status))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the browser with a sidebar for game selection.
func (m RunsModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Games\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, g := range m.games {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.gameCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := []rune(g.Title)
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = append(name[:maxLen-1], '.')
		}
		sidebar.WriteString(style.Render(cursor + string(name)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the browser with the current game above the table.
func (m RunsModel) renderNarrowLayout() string {
	var b strings.Builder

	b.WriteString(centerText(fmt.Sprintf("< %s >", m.games[m.gameCursor].Title), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m RunsModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nPlay with --record to keep a replay!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunsModel) IsQuitting() bool {
	return m.quitting
}
