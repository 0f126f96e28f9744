package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/curate/internal/share"
	"github.com/mesh-intelligence/curate/internal/sqlite"
	"github.com/mesh-intelligence/curate/pkg/types"
)

func (a *app) newExperiencesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "experiences",
		Aliases: []string{"exp"},
		Short:   "Manage saved experiences",
	}
	cmd.AddCommand(
		a.newExperiencesListCmd(),
		a.newExperiencesShowCmd(),
		a.newExperiencesDeleteCmd(),
		a.newExperiencesPicksCmd(),
		a.newExperiencesShareCmd(),
	)
	return cmd
}

func (a *app) newExperiencesListCmd() *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved experiences, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []*types.Experience
			err := a.withTable(types.TableExperiences, func(t types.Table) error {
				filter := map[string]any{}
				if query != "" {
					filter[sqlite.FilterQuery] = query
				}
				entities, err := t.Fetch(filter)
				if err != nil {
					return err
				}
				for _, e := range entities {
					list = append(list, e.(*types.Experience))
				}
				return nil
			})
			if err != nil {
				return classify(err)
			}
			return a.writeExperiences(cmd, list, "No saved experiences.")
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "match title, description or place names")
	return cmd
}

func (a *app) newExperiencesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Display a saved experience with its itinerary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, err := a.getExperience(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return writeJSON(w, map[string]any{
					"experience": exp,
					"itinerary":  exp.Itinerary(),
				})
			}
			printExperience(w, exp)
			fmt.Fprintf(w, "\nID:      %s\nCreated: %s\n", exp.ExperienceID, exp.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func (a *app) newExperiencesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved experience",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.withTable(types.TableExperiences, func(t types.Table) error {
				return t.Delete(args[0])
			})
			if err != nil {
				return classify(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func (a *app) newExperiencesPicksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "picks",
		Short: "List the catalog's staff picks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}
			picks := cat.Picks()
			list := make([]*types.Experience, len(picks))
			for i := range picks {
				list[i] = &picks[i]
			}
			return a.writeExperiences(cmd, list, "No staff picks in this catalog.")
		},
	}
}

func (a *app) newExperiencesShareCmd() *cobra.Command {
	var asHTML bool
	cmd := &cobra.Command{
		Use:   "share <id>",
		Short: "Print a saved experience as a Markdown or HTML itinerary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, err := a.getExperience(args[0])
			if err != nil {
				return err
			}
			render := share.Markdown
			if asHTML {
				render = share.HTML
			}
			out, err := render(exp)
			if err != nil {
				return sysError(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "render HTML instead of Markdown")
	return cmd
}

// getExperience loads one saved experience by ID.
func (a *app) getExperience(id string) (*types.Experience, error) {
	var exp *types.Experience
	err := a.withTable(types.TableExperiences, func(t types.Table) error {
		entity, err := t.Get(id)
		if err != nil {
			return err
		}
		exp = entity.(*types.Experience)
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return exp, nil
}

func (a *app) writeExperiences(cmd *cobra.Command, list []*types.Experience, empty string) error {
	w := cmd.OutOrStdout()
	if a.flags.jsonMode {
		if list == nil {
			list = []*types.Experience{}
		}
		return writeJSON(w, list)
	}
	if len(list) == 0 {
		fmt.Fprintln(w, empty)
		return nil
	}
	for _, e := range list {
		printExperienceLine(w, e)
	}
	return nil
}
