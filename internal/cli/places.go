package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/curate/internal/catalog"
	"github.com/mesh-intelligence/curate/pkg/types"
)

func (a *app) newPlacesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "places",
		Short: "Browse the place catalog",
	}
	cmd.AddCommand(a.newPlacesListCmd(), a.newPlacesSearchCmd(), a.newPlacesShowCmd())
	return cmd
}

func (a *app) newPlacesListCmd() *cobra.Command {
	var q catalog.Query
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List places, optionally filtered",
		Example: `  curate places list
  curate places list --category Museums
  curate places list --query brunch --neighborhood "Tower Grove"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}
			if q.Category != "" && q.Category != types.CategoryAll && !cat.HasCategory(q.Category) {
				return userErrorf("unknown category %q", q.Category)
			}
			return a.writePlaces(cmd, cat.Filter(q))
		},
	}
	cmd.Flags().StringVar(&q.Category, "category", "", "restrict to one category (All for every category)")
	cmd.Flags().StringVar(&q.Text, "query", "", "match name or description")
	cmd.Flags().StringVar(&q.Neighborhood, "neighborhood", "", "match part of the address")
	return cmd
}

func (a *app) newPlacesSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find places by name, category or address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}
			return a.writePlaces(cmd, cat.Search(args[0]))
		},
	}
}

func (a *app) newPlacesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Display a place with full details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}
			place, err := placeArg(cat, args[0])
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), place)
			}
			printPlace(cmd.OutOrStdout(), place)
			return nil
		},
	}
}

func (a *app) writePlaces(cmd *cobra.Command, places []types.Place) error {
	if a.flags.jsonMode {
		if places == nil {
			places = []types.Place{}
		}
		return writeJSON(cmd.OutOrStdout(), places)
	}
	printPlaces(cmd.OutOrStdout(), places)
	return nil
}

// placeArg parses a place ID argument and looks it up.
func placeArg(cat *catalog.Catalog, arg string) (types.Place, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return types.Place{}, userErrorf("invalid place id %q", arg)
	}
	place, err := cat.PlaceByID(id)
	if err != nil {
		return types.Place{}, classify(err)
	}
	return place, nil
}
