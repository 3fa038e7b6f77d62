package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// GameRequest describes a level to start.
type GameRequest struct {
	LevelID    string
	Difficulty config.DifficultyPreset
	Player     string         // session user, empty for local play
	Store      *storage.Store // where runs are recorded, nil discards them
}

// GameFactory creates a game for a request. Sessions use it so that every
// player gets runs recorded under their own name.
type GameFactory func(req GameRequest) (registry.Game, error)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.platformer/host_key.
	HostKeyPath string

	// DBPath is the path to the runs database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Difficulty preselected in the level picker.
	Difficulty config.DifficultyPreset

	// TickRate is the frame rate of every session.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.platformer/runs.db",
		IdleTimeout: 30 * time.Minute,
		Difficulty:  config.DifficultyNormal,
		TickRate:    60,
	}
}

// SSHServer serves the level picker and the levels over SSH.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	store   *storage.Store
	factory GameFactory
	logger  *log.Logger
}

// NewSSHServer creates a server. Without a readable database sessions
// still play, but no runs are kept.
func NewSSHServer(cfg SSHServerConfig, factory GameFactory, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "platformer-ssh",
		})
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config:  cfg,
		store:   store,
		factory: factory,
		logger:  logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".platformer", "host_key")
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates the session model for each SSH connection.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}
	model := NewSessionModel(SessionOptions{
		Store:      s.store,
		Factory:    s.factory,
		Config:     cfg,
		Player:     sess.User(),
		Difficulty: s.config.Difficulty,
		Logger:     s.logger.With("user", sess.User()),
	})
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started", "user", sess.User(), "remote", sess.RemoteAddr().String())
		next(sess)
		s.logger.Info("session ended", "user", sess.User(), "remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second))
	}
}

// ListenAndServe starts the server and blocks until SIGINT or SIGTERM.
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

	if s.store != nil {
		s.store.Close()
	}
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionOptions configures a session.
type SessionOptions struct {
	Store      *storage.Store
	Factory    GameFactory
	Config     core.RuntimeConfig
	Player     string
	Difficulty config.DifficultyPreset
	Logger     *log.Logger
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel runs the whole flow of one connection inside a single
// program: picker, level, run tables and back.
type SessionModel struct {
	opts       SessionOptions
	config     core.RuntimeConfig
	screen     sessionScreen
	menu       MenuModel
	game       Model
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a session starting at the level picker.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return SessionModel{
		opts:   opts,
		config: opts.Config,
		menu:   NewMenuModel(opts.Store, opts.Config, opts.Difficulty),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		req := GameRequest{
			LevelID:    m.menu.Selected().LevelID,
			Difficulty: m.menu.Preset(),
			Player:     m.opts.Player,
		}
		game, err := m.opts.Factory(req)
		if err != nil {
			m.opts.Logger.Error("cannot start level", "level", req.LevelID, "err", err)
			return m.backToMenu()
		}
		m.opts.Logger.Info("level selected", "level", req.LevelID, "difficulty", req.Difficulty)

		m.game = NewModel(game, m.config)
		m.game.embedded = true
		m.screen = screenGame
		return m, m.game.Init()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(Model); ok {
		m.game = gm
	}
	if !m.game.Left() {
		return m, cmd
	}
	if m.game.Exit() == ExitQuit {
		m.quitting = true
		return m, tea.Quit
	}
	return m.backToMenu()
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sm
	}
	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.backToMenu()
	}
	return m, cmd
}

// backToMenu rebuilds the picker so best results are fresh.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.opts.Store, m.config, m.menu.Preset())
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scoreboard.View()
	}
	return m.menu.View()
}
