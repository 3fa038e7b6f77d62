package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/entity"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the entity kinds levels can place",
	Long: `Shows every entity kind that can appear in the entities section of a
level file.`,
	Run: runKinds,
}

func runKinds(_ *cobra.Command, _ []string) {
	fmt.Println("Entity kinds:")
	fmt.Println()
	for _, k := range entity.Kinds() {
		fmt.Printf("  %s\n", k)
	}
}
