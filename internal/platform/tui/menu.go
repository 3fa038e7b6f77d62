package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// MenuItem is a selectable level.
type MenuItem struct {
	LevelID    string
	Title      string
	Difficulty string
	Best       string // best time or high score, empty when never played
}

// MenuModel is the level picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	preset         int // index into config.Presets
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates the picker over all registered levels. store may be
// nil, the best results column is then left empty.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, preset config.DifficultyPreset) MenuModel {
	levels := registry.List()
	items := make([]MenuItem, 0, len(levels))
	for _, l := range levels {
		items = append(items, MenuItem{
			LevelID:    l.ID,
			Title:      l.Title,
			Difficulty: l.Difficulty,
			Best:       bestResult(store, l.ID),
		})
	}

	m := MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	for i, p := range config.Presets {
		if p == preset {
			m.preset = i
		}
	}
	return m
}

// bestResult formats the best time of a level, or its high score when it
// was never completed.
func bestResult(store *storage.Store, levelID string) string {
	if store == nil {
		return ""
	}
	if ms, ok, err := store.BestTime(levelID); err == nil && ok {
		return "best " + formatDuration(ms)
	}
	if hs, err := store.HighScore(levelID); err == nil && hs > 0 {
		return fmt.Sprintf("%d pts", hs)
	}
	return ""
}

// formatDuration formats milliseconds as m:ss.t.
func formatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%d:%02d.%d", ms/60000, (ms/1000)%60, (ms/100)%10)
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case MenuActionLeft:
		m.preset = (m.preset + len(config.Presets) - 1) % len(config.Presets)
	case MenuActionRight:
		m.preset = (m.preset + 1) % len(config.Presets)
	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("P L A T F O R M E R"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a level", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = activeStyle
		}
		line := fmt.Sprintf("%s%-20s %-8s %s", cursor, item.Title, item.Difficulty, item.Best)
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	preset := fmt.Sprintf("Difficulty: < %s >", config.Presets[m.preset])
	b.WriteString(centerText(preset, m.width))
	b.WriteString("\n\n")
	controls := "Up/Down: Level  |  Left/Right: Difficulty  |  Enter: Play  |  Tab: Runs  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")
	return b.String()
}

// centerText pads text to the middle of width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// Selected returns the picked level, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the run tables.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Preset returns the chosen difficulty.
func (m MenuModel) Preset() config.DifficultyPreset {
	return config.Presets[m.preset]
}

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	LevelID         string
	Difficulty      config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Result returns what the user picked.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{
		Config:     m.config,
		Difficulty: m.Preset(),
	}
	switch {
	case m.openScoreboard:
		result.WantsScoreboard = true
	case m.selected != nil:
		result.LevelID = m.selected.LevelID
	default:
		result.Quit = true
	}
	return result
}

// RunMenu runs the picker and returns the selection.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, preset config.DifficultyPreset) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg, preset), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg, Quit: true}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
