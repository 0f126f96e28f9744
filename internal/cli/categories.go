package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

type categoryCount struct {
	Name   string `json:"name"`
	Places int    `json:"places"`
}

func (a *app) newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}
			counts := make([]categoryCount, 0, len(cat.Categories()))
			for _, name := range cat.Categories() {
				counts = append(counts, categoryCount{Name: name, Places: cat.CategorySize(name)})
			}

			w := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return writeJSON(w, counts)
			}
			for _, c := range counts {
				fmt.Fprintf(w, "%-24s %d\n", c.Name, c.Places)
			}
			return nil
		},
	}
}
