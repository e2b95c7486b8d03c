package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dinorun/internal/games/dino"
	"github.com/vovakirdan/dinorun/internal/games/dino/engine"
)

var charactersCmd = &cobra.Command{
	Use:     "characters",
	Aliases: []string{"list"},
	Short:   "List the playable runners",
	Args:    cobra.NoArgs,
	Run:     runCharacters,
}

func runCharacters(_ *cobra.Command, _ []string) {
	fmt.Println("Available runners:")
	fmt.Println()

	for _, c := range engine.Characters {
		skin := dino.SkinFor(c)
		fmt.Printf("  %-6s  %s\n", c, skin.Name)
		for _, row := range skin.Run1 {
			fmt.Printf("          %s\n", row)
		}
		fmt.Println()
	}

	fmt.Println("Run 'dinorun play --character <name>' to pick one.")
}
