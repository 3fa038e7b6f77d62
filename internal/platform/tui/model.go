package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// Exit says why a level session ended.
type Exit int

const (
	ExitQuit     Exit = iota // user quit the program
	ExitMenu                 // user went back to the level picker
	ExitFinished             // level completed and results confirmed
)

// Model is the Bubble Tea model running one level.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	exit       Exit
	quitting   bool
	shotDir    string

	// embedded models run inside a session and leave without quitting
	// the program
	embedded bool
}

// NewModel creates a model for game.
func NewModel(game registry.Game, cfg core.RuntimeConfig) Model {
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		keys:       NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		shotDir:    filepath.Join(os.Getenv("HOME"), ".platformer", "screenshots"),
	}
}

// Init builds the level and starts the frame loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		return m.leave(ExitQuit)
	case action == core.ActionBack && !m.gameState.GameOver:
		// Leaving mid-level abandons the attempt.
		return m.leave(ExitMenu)
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize resizes the screen buffer. The level keeps running; the
// camera viewport follows the new size on the next render.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if f, ok := m.game.(registry.Finisher); ok && f.Done() {
		return m.leave(ExitFinished)
	}
	return m, tickCmd(m.config.TickRate)
}

func (m Model) leave(exit Exit) (tea.Model, tea.Cmd) {
	m.exit = exit
	m.quitting = true
	if m.embedded {
		return m, nil
	}
	return m, tea.Quit
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	//nolint:errcheck // best effort, the level keeps running
	os.MkdirAll(m.shotDir, 0o755)
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // best effort, the level keeps running
	os.WriteFile(filepath.Join(m.shotDir, name), []byte(m.screen.String()), 0o600)
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Exit returns why the session ended.
func (m Model) Exit() Exit {
	return m.exit
}

// Left reports whether the user left the level.
func (m Model) Left() bool {
	return m.quitting
}

// Run plays game until the user leaves the level or quits.
func Run(game registry.Game, cfg core.RuntimeConfig) (Exit, error) {
	p := tea.NewProgram(NewModel(game, cfg), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return ExitQuit, err
	}
	if m, ok := final.(Model); ok {
		return m.Exit(), nil
	}
	return ExitQuit, nil
}
