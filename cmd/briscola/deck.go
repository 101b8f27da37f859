package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/19506jk/briscola-server/internal/catalog"
	"github.com/19506jk/briscola-server/internal/models"
)

var suitColors = map[models.Suit]color.Attribute{
	"Feathers": color.FgCyan,
	"Swords":   color.FgBlue,
	"Suns":     color.FgYellow,
	"Cups":     color.FgRed,
}

func newDeckCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "deck",
		Short: "List the cards of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}
			printDeck(cmd.OutOrStdout(), cat)
			return nil
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "TOML catalog to list instead of the embedded deck")

	return cmd
}

// loadCatalog reads the catalog at path, or the embedded one when path is empty
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

func printDeck(w io.Writer, cat *catalog.Catalog) {
	lead := cat.LeadCard()
	bold := color.New(color.Bold)
	total := 0

	for _, suit := range cat.Suits() {
		attr, ok := suitColors[suit]
		if !ok {
			attr = color.FgWhite
		}
		color.New(attr, color.Bold).Fprintln(w, suit)

		for _, rank := range cat.Ranks() {
			card, _ := cat.Lookup(suit, rank.Name)
			total += card.Point

			line := fmt.Sprintf("  %-8s %2d pts  value %2d", card.Name, card.Point, card.Value)
			if card.Matches(lead) {
				bold.Fprintf(w, "%s  (leads)\n", line)
				continue
			}
			fmt.Fprintln(w, line)
		}
	}

	fmt.Fprintf(w, "%d cards, %d points\n", cat.Size(), total)
}
