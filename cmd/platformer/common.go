package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	logger  *log.Logger
	logFile *os.File

	// levels loaded from --levels, by id
	userLevels = map[string]*levels.Level{}
)

// interactive commands own the terminal, so they only log to --log-file.
var interactive = map[string]bool{"play": true, "menu": true}

// setup runs before every command: it builds the logger, applies the
// config to registry games and registers the user's level files.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q", flagLogLevel)
	}

	var out io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		logFile, err = os.OpenFile(expandHome(flagLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		out = logFile
	case interactive[cmd.Name()]:
		out = io.Discard
	}
	logger = log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "platformer",
	})

	cfg, preset, err := loadSettings()
	if err != nil {
		return err
	}
	platformer.SetDefaults(platformer.Options{Config: cfg, Difficulty: preset, Logger: logger})

	loadUserLevels()
	return nil
}

func closeLog() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// loadUserLevels registers the levels found under --levels. A missing
// directory is not an error.
func loadUserLevels() {
	dir := expandHome(flagLevelsDir)
	if dir == "" {
		return
	}
	if _, err := os.Stat(dir); err != nil {
		logger.Debug("no level directory", "dir", dir)
		return
	}

	ls, err := levels.LoadDir(dir)
	if err != nil {
		logger.Warn("could not load levels", "dir", dir, "err", err)
		return
	}
	for _, l := range ls {
		userLevels[l.ID] = l
	}
	for _, id := range platformer.RegisterLevels(ls) {
		logger.Warn("level id already taken, skipped", "level", id, "dir", dir)
	}
	logger.Debug("loaded levels", "dir", dir, "count", len(ls))
}

// loadSettings reads the config file and resolves --difficulty.
func loadSettings() (config.PlatformerConfig, config.DifficultyPreset, error) {
	cfg, err := config.LoadPlatformer(flagConfig)
	if err != nil {
		return cfg, "", err
	}
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return cfg, "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	return cfg, preset, nil
}

// openStore opens the runs database. Failures are logged and play goes on
// without recording.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		return nil
	}
	return store
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig(cfg config.PlatformerConfig) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.TickRate = cfg.Gameplay.FPS
	if flagFPS > 0 {
		rc.TickRate = flagFPS
	}
	return rc
}

// resolveLevel finds a level by id in the user directory, the built-ins or
// as a YAML file path.
func resolveLevel(id string) (*levels.Level, error) {
	if l, ok := userLevels[id]; ok {
		return l, nil
	}
	return levels.Get(id)
}

// gameFactory creates games that record their runs into the request's store.
func gameFactory(cfg config.PlatformerConfig, lg *log.Logger) tui.GameFactory {
	return func(req tui.GameRequest) (registry.Game, error) {
		l, err := resolveLevel(req.LevelID)
		if err != nil {
			return nil, err
		}
		return platformer.New(l, platformer.Options{
			Config:     cfg,
			Difficulty: req.Difficulty,
			Logger:     lg.With("level", l.ID),
			Recorder:   storage.Recorder{Store: req.Store, Player: req.Player},
		}), nil
	}
}

// formatMs renders milliseconds as m:ss.mmm.
func formatMs(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	return fmt.Sprintf("%d:%02d.%03d", int(d.Minutes()), int(d.Seconds())%60, ms%1000)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
