package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick levels from an interactive menu",
	Long: `Start the level picker.

Use arrow keys or j/k to navigate, Enter to select a level.
After leaving a level, you return to the picker to play again.

Controls:
  Up/Down/j/k     - Navigate levels
  Left/Right/h/l  - Change difficulty
  Enter           - Play level
  Tab             - Best runs
  Q               - Quit

Examples:
  platformer menu
  platformer menu --fps 30
  platformer menu --db ./runs.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg, preset, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	factory := gameFactory(cfg, logger)
	rc := terminalConfig(cfg)

	for {
		result, err := tui.RunMenu(store, rc, preset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Keep size and difficulty changes for the next round
		rc = result.Config
		preset = result.Difficulty

		if result.Quit {
			return
		}

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, rc.ScreenW, rc.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		game, err := factory(tui.GameRequest{LevelID: result.LevelID, Difficulty: preset, Store: store})
		if err != nil {
			logger.Error("cannot start level", "level", result.LevelID, "err", err)
			continue
		}

		exit, runErr := tui.Run(game, rc)
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running level: %v\n", runErr)
			return
		}
		if exit == tui.ExitQuit {
			return
		}
	}
}
