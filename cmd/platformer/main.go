// platformer plays tile-based platformer levels in the terminal.
//
// Usage:
//
//	platformer list              - List available levels
//	platformer play <level>      - Play a level (id or YAML file)
//	platformer menu              - Pick levels interactively
//	platformer serve             - Start SSH server for remote play
//	platformer scores <level>    - Show the best runs of a level
//	platformer simulate <level>  - Run a level headless with scripted input
//	platformer kinds             - List the entity kinds levels can place
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: from config)
//	--db <path>           - Set database path (default: ~/.platformer/runs.db)
//	--config <path>       - Custom config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--levels <dir>        - Extra level directory (default: ~/.platformer/levels)
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	defer closeLog()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		closeLog()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "Platformer - jump and run in your terminal",
	Long: `Platformer is a tile-based jump and run for the terminal.

Available commands:
  list      - Show all available levels
  play      - Play a level directly
  menu      - Interactive level picker
  serve     - Start SSH server for remote play
  scores    - View the best runs of a level
  simulate  - Run a level headless and write a CSV trace
  kinds     - List entity kinds for level files

Examples:
  platformer list
  platformer play meadow
  platformer play ./my-level.yaml --difficulty hard
  platformer menu
  platformer serve --ssh :2222
  platformer simulate meadow --script "right*200" --out ./trace`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 0, "Tick rate (0 = gameplay.fps from config)")
	pf.StringVar(&flagDBPath, "db", "~/.platformer/runs.db", "Path to runs database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLevelsDir, "levels", "~/.platformer/levels", "Directory with extra level files")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(kindsCmd)
}
