package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
	"github.com/vovakirdan/minigame-arcade/internal/storage"
)

// hudRows is the number of terminal rows taken by the HUD and help line.
const hudRows = 2

// GameOptions configures a game session.
type GameOptions struct {
	Config core.RuntimeConfig
	Logger *log.Logger

	// Store and Record enable journaling the run for replay.
	Store  *storage.Store
	Record bool

	// InMenu makes Esc return to the caller instead of quitting.
	InMenu bool
}

// session holds the pieces of a game model that must be shared across
// Bubble Tea's value copies.
type session struct {
	loop     *engine.Loop
	runner   *engine.Runner
	audio    *engine.AsyncAudio
	recorder *storage.Recorder
	holds    *holdTracker
	logger   *log.Logger
	stopOnce sync.Once
	err      error
}

// GameModel is the Bubble Tea model for running one arcade game.
type GameModel struct {
	game    registry.Game
	sess    *session
	screen  *core.Screen
	config  core.RuntimeConfig
	keys    KeyMap
	help    help.Model
	snap    engine.Snapshot
	lastCue engine.Cue
	width   int
	inMenu  bool

	quitting bool
	back     bool
}

// NewGameModel builds a game session. The runner does not start until the
// model is initialized by Bubble Tea.
func NewGameModel(game registry.Game, opts GameOptions) (GameModel, error) {
	cfg := opts.Config
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.With("game", game.ID())

	rules, err := game.Rules(cfg)
	if err != nil {
		return GameModel{}, fmt.Errorf("tui: %s rules: %w", game.ID(), err)
	}

	sess := &session{holds: newHoldTracker(), logger: logger}
	sink := engine.AudioFunc(func(c engine.Cue) {
		logger.Debug("cue", "cue", c)
	})
	sess.audio = engine.NewAsyncAudio(sink, 16, logger)

	loopOpts := engine.Options{
		Game:   game.ID(),
		Seed:   cfg.Seed,
		Audio:  sess.audio,
		Logger: logger,
	}
	if opts.Record && opts.Store != nil {
		rec, err := opts.Store.NewRecorder(game.ID(), cfg.Seed, cfg.TickRate, cfg.Difficulty)
		if err != nil {
			sess.audio.Close()
			return GameModel{}, err
		}
		sess.recorder = rec
		loopOpts.Recorder = rec
		logger.Info("recording run", "run", rec.Run().ID, "seed", cfg.Seed)
	}

	sess.loop = engine.NewLoop(rules, loopOpts)
	sess.runner = engine.NewRunner(sess.loop, cfg.TickRate)

	playH := max(cfg.ScreenH-hudRows, 1)
	return GameModel{
		game:   game,
		sess:   sess,
		screen: core.NewScreen(cfg.ScreenW, playH),
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		snap:   sess.loop.Snapshot(),
		width:  cfg.ScreenW,
		inMenu: opts.InMenu,
	}, nil
}

// Init starts the runner and the input hold checks.
func (m GameModel) Init() tea.Cmd {
	m.sess.runner.Start(context.Background())
	return tea.Batch(waitFrame(m.sess.runner), holdCmd())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.BlurMsg:
		m.sess.holds.Reset()
		m.sess.runner.Post(core.Blur())
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		if msg.runner != m.sess.runner {
			return m, nil
		}
		m.snap = msg.Snapshot
		if n := len(m.snap.Cues); n > 0 {
			m.lastCue = m.snap.Cues[n-1]
		}
		return m, waitFrame(m.sess.runner)

	case HoldMsg:
		if m.quitting || m.back {
			return m, nil
		}
		if evs := m.sess.holds.Expire(time.Time(msg)); len(evs) > 0 {
			m.sess.runner.Post(evs...)
		}
		return m, holdCmd()

	case runnerDoneMsg:
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.Stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.Stop()
		if m.inMenu {
			m.back = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	if k := m.keys.Logical(msg); k != core.KeyNone {
		m.sess.runner.Post(m.sess.holds.Press(k, time.Now())...)
	}
	return m, nil
}

// handleResize processes window resize events. The simulation is in world
// units, so only the render target changes.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.width = msg.Width
	m.help.Width = msg.Width
	m.screen.Resize(msg.Width, max(msg.Height-hudRows, 1))
	return m, nil
}

// Stop halts the runner and closes the run journal. It is safe to call more
// than once.
func (m GameModel) Stop() {
	s := m.sess
	s.stopOnce.Do(func() {
		s.runner.Stop()
		s.audio.Close()

		final := s.loop.Snapshot()
		s.logger.Info("game ended", "phase", final.Phase, "score", final.Score, "frames", final.Frame)
		if s.recorder == nil {
			return
		}
		if err := s.recorder.Finish(final.Frame, final.Phase, final.Score); err != nil {
			s.logger.Warn("run journal incomplete", "run", s.recorder.Run().ID, "err", err)
			s.err = err
			return
		}
		s.logger.Info("run saved", "run", s.recorder.Run().ID)
	})
}

// Err returns the journal error seen while stopping, if any.
func (m GameModel) Err() error {
	return m.sess.err
}

// Back reports whether the player left the game with Esc.
func (m GameModel) Back() bool {
	return m.back
}

// RunID returns the id of the recorded run, or "" when not recording.
func (m GameModel) RunID() string {
	if m.sess.recorder == nil {
		return ""
	}
	return m.sess.recorder.Run().ID
}

// saveScreenshot saves the current playfield to a file.
func (m *GameModel) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.sess.logger.Warn("screenshot failed", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.sess.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.sess.logger.Info("screenshot saved", "path", path)
}

// draw renders the latest snapshot and its phase overlay into the screen.
func (m GameModel) draw() {
	m.screen.Clear()
	m.game.Render(m.snap, m.screen)
	overlay(m.screen, m.game.Title(), m.snap)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	m.draw()
	return lipgloss.JoinVertical(lipgloss.Left,
		RenderHUD(m.game.Title(), m.snap, m.lastCue, m.width),
		RenderScreen(m.screen),
		m.help.View(m.keys),
	)
}

// RunModel runs a prepared game model until the player quits and closes its
// journal.
func RunModel(model GameModel) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),   // Use alternate screen buffer
		tea.WithReportFocus(), // Focus loss releases held keys
	)

	_, runErr := p.Run()
	model.Stop()
	return errors.Join(runErr, model.Err())
}
