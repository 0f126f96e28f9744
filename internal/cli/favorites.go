package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/curate/pkg/types"
)

// favoriteView is a liked place joined with its catalog entry. Place is nil
// when the catalog no longer has the ID.
type favoriteView struct {
	PlaceID int          `json:"place_id"`
	Place   *types.Place `json:"place"`
	LikedAt string       `json:"liked_at"`
}

func (a *app) newFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Like and un-like places",
	}
	cmd.AddCommand(a.newFavoritesAddCmd(), a.newFavoritesRemoveCmd(), a.newFavoritesListCmd())
	return cmd
}

func (a *app) newFavoritesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <place-id>",
		Short: "Like a place",
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
			err = a.withTable(types.TableFavorites, func(t types.Table) error {
				_, err := t.Set("", &types.Favorite{PlaceID: place.ID})
				return err
			})
			if err != nil {
				return classify(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Liked %s\n", place.Name)
			return nil
		},
	}
}

func (a *app) newFavoritesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <place-id>",
		Short: "Un-like a place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.withTable(types.TableFavorites, func(t types.Table) error {
				return t.Delete(args[0])
			})
			if errors.Is(err, types.ErrNotFound) {
				return userErrorf("place %s is not a favorite", args[0])
			}
			if err != nil {
				return classify(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}

func (a *app) newFavoritesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List liked places, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}
			views := []favoriteView{}
			err = a.withTable(types.TableFavorites, func(t types.Table) error {
				entities, err := t.Fetch(nil)
				if err != nil {
					return err
				}
				for _, e := range entities {
					f := e.(*types.Favorite)
					v := favoriteView{PlaceID: f.PlaceID, LikedAt: f.CreatedAt.Format("2006-01-02")}
					if p, err := cat.PlaceByID(f.PlaceID); err == nil {
						v.Place = &p
					}
					views = append(views, v)
				}
				return nil
			})
			if err != nil {
				return classify(err)
			}

			w := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return writeJSON(w, views)
			}
			if len(views) == 0 {
				fmt.Fprintln(w, "No favorites yet.")
				return nil
			}
			for _, v := range views {
				name := "(not in catalog)"
				if v.Place != nil {
					name = v.Place.Name
				}
				fmt.Fprintf(w, "%3s  %-34s liked %s\n", strconv.Itoa(v.PlaceID), name, v.LikedAt)
			}
			return nil
		},
	}
}
