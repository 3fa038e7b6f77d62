package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Play a level",
	Long: `Start playing a level. The argument is a level id or a path to a
level YAML file.

Controls:
  Left/Right/A/D  - Run
  Space/Up/W      - Jump (hold for higher jumps)
  E/Down/S        - Use switches and doors
  P               - Pause
  R               - Restart the level
  Enter           - Continue after the finish
  Esc             - Leave the level
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - Full countdown, a little more jump height
  normal - Slightly shorter countdown and jumps
  hard   - Much shorter countdown and jumps
  fixed  - Plays the level exactly as written

Examples:
  platformer play meadow
  platformer play factory --difficulty hard
  platformer play ./levels/cave.yaml
  platformer play meadow --config ./my-platformer.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	levelID := args[0]

	cfg, preset, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	factory := gameFactory(cfg, logger)
	game, err := factory(tui.GameRequest{LevelID: levelID, Difficulty: preset, Store: store})
	if err != nil {
		if store != nil {
			store.Close()
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'platformer list' to see available levels.")
		os.Exit(1)
	}

	logger.Info("playing", "level", game.ID(), "difficulty", preset)
	exit, runErr := tui.Run(game, terminalConfig(cfg))
	logger.Debug("left level", "level", game.ID(), "exit", exit)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running level: %v\n", runErr)
		os.Exit(1)
	}
}
