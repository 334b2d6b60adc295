package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/colosseum/internal/registry"
)

var hazardsCmd = &cobra.Command{
	Use:   "hazards",
	Short: "List the hazards spectators can spawn",
	Long:  `Shows every hazard kind registered with the arena.`,
	Run:   runHazards,
}

func runHazards(_ *cobra.Command, _ []string) {
	hazards := registry.List()

	if len(hazards) == 0 {
		fmt.Println("No hazards available.")
		return
	}

	fmt.Println("Available hazards:")
	fmt.Println()

	maxKindLen := 4 // "Kind" header
	for _, h := range hazards {
		maxKindLen = max(maxKindLen, len(h.Kind))
	}

	fmt.Printf("  %-*s  %s\n", maxKindLen, "Kind", "Title")
	fmt.Printf("  %-*s  %s\n", maxKindLen, "----", "-----")

	for _, h := range hazards {
		fmt.Printf("  %-*s  %s\n", maxKindLen, h.Kind, h.Title)
	}

	fmt.Println()
	fmt.Println("Press F (rock) or C (car) while watching to drop one.")
}
