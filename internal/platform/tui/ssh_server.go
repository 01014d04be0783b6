package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
	"github.com/vovakirdan/minigame-arcade/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/host_key.
	HostKeyPath string

	// DBPath is the path to the replay journal database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate for every session.
	TickRate int

	// Record journals every session's runs.
	Record bool
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.arcade/arcade.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer wraps a Wish SSH server for the arcade.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "arcade-ssh",
		})
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open run database", "error", err)
		// Continue without recording
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".arcade", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.DefaultConfig()
	cfg.ScreenW = pty.Window.Width
	cfg.ScreenH = pty.Window.Height
	cfg.TickRate = s.config.TickRate

	logger := s.logger.With("session", uuid.NewString(), "user", sshSession.User())
	model := NewSessionModel(SessionOptions{
		Store:  s.store,
		Config: cfg,
		Logger: logger,
		Record: s.config.Record,
	})

	// A dropped connection must not leave a runner ticking.
	go func() {
		<-sshSession.Context().Done()
		model.active.stop()
	}()

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// activeGame tracks the game running in a session so it can be stopped from
// outside the Bubble Tea loop.
type activeGame struct {
	mu   sync.Mutex
	game *GameModel
}

func (a *activeGame) set(g *GameModel) {
	a.mu.Lock()
	a.game = g
	a.mu.Unlock()
}

func (a *activeGame) stop() {
	a.mu.Lock()
	g := a.game
	a.game = nil
	a.mu.Unlock()
	if g != nil {
		g.Stop()
	}
}

// SessionOptions configures a menu session.
type SessionOptions struct {
	Store  *storage.Store
	Config core.RuntimeConfig
	Logger *log.Logger
	Record bool
}

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewRuns
)

// SessionModel manages the full arcade session flow: menu -> game -> menu.
// This is the top-level model used for SSH sessions and the local menu.
type SessionModel struct {
	opts      SessionOptions
	config    core.RuntimeConfig
	view      sessionView
	menu      MenuModel
	runs      RunsModel
	gameModel *GameModel
	active    *activeGame
	status    string
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return SessionModel{
		opts:   opts,
		config: opts.Config,
		menu:   NewMenuModel(opts.Config),
		active: &activeGame{},
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewRuns:
		return m.updateRuns(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsRuns() {
		m.view = viewRuns
		m.runs = NewRunsModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		return m, m.runs.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		return m.startGame(selected.GameID)
	}

	return m, cmd
}

// startGame leaves the menu for a new game of id.
func (m SessionModel) startGame(id string) (tea.Model, tea.Cmd) {
	m.config = m.menu.Config() // Get possibly updated config from resize

	game, err := registry.Create(id)
	if err == nil {
		var gm GameModel
		gm, err = NewGameModel(game, GameOptions{
			Config: m.config,
			Logger: m.opts.Logger,
			Store:  m.opts.Store,
			Record: m.opts.Record,
			InMenu: true,
		})
		if err == nil {
			m.gameModel = &gm
			m.active.set(m.gameModel)
			m.view = viewGame
			m.status = ""
			return m, m.gameModel.Init()
		}
	}

	m.opts.Logger.Error("cannot start game", "game", id, "err", err)
	m.backToMenu()
	m.status = err.Error()
	return m, nil
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
		m.active.set(m.gameModel)
	}

	if m.gameModel.Back() {
		m.active.set(nil)
		m.backToMenu()
		return m, m.menu.Init()
	}

	if m.gameModel.quitting {
		m.active.set(nil)
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateRuns handles updates when browsing recorded runs.
func (m SessionModel) updateRuns(msg tea.Msg) (tea.Model, tea.Cmd) {
	newRuns, cmd := m.runs.Update(msg)
	if runsModel, ok := newRuns.(RunsModel); ok {
		m.runs = runsModel
	}

	if m.runs.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.runs.IsGoingBack() {
		m.backToMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

// backToMenu resets the session to a fresh menu.
func (m *SessionModel) backToMenu() {
	m.view = viewMenu
	m.gameModel = nil
	m.menu = NewMenuModel(m.config)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.gameModel.View()
	case viewRuns:
		return m.runs.View()
	}

	if m.status != "" {
		return m.menu.View() + "\n" + centerText(m.status, m.config.ScreenW)
	}
	return m.menu.View()
}

// RunSession runs the menu session in the local terminal.
func RunSession(opts SessionOptions) error {
	model := NewSessionModel(opts)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)

	_, err := p.Run()
	model.active.stop()
	return err
}
