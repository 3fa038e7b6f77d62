package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available levels",
	Long:  `Shows the built-in levels and the ones found in the --levels directory.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	infos := registry.List()

	if len(infos) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5
	for _, info := range infos {
		maxIDLen = max(maxIDLen, len(info.ID))
		maxTitleLen = max(maxTitleLen, len(info.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Difficulty")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "----------")

	for _, info := range infos {
		difficulty := info.Difficulty
		if difficulty == "" {
			difficulty = "-"
		}
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, info.ID, maxTitleLen, info.Title, difficulty)
	}

	fmt.Println()
	fmt.Println("Run 'platformer play <id>' to play a level.")
}
