package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/curate/internal/compose"
	"github.com/mesh-intelligence/curate/internal/share"
	"github.com/mesh-intelligence/curate/pkg/types"
)

type composeFlags struct {
	placeID     int
	prompt      string
	ops         []string
	title       string
	description string
	date        string
	time        string
	save        bool
}

type composeResult struct {
	Steps      []compose.StepView `json:"steps"`
	Experience *types.Experience  `json:"experience"`
	Itinerary  []types.Stop       `json:"itinerary"`
	Saved      bool               `json:"saved"`
}

func (a *app) newComposeCmd() *cobra.Command {
	var f composeFlags
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose an experience step by step",
		Long: `Compose seeds a step list from a place (--place), a free-text idea
(--prompt) or from scratch, applies each --op in order, and prints the
steps and the finalized experience.

Steps are numbered from 1. Ops:
  add              append a step for an unused category
  remove:I         delete step I
  up:I, down:I     move step I
  lock:I           toggle the lock on step I
  next:I           advance step I to its next candidate
  pick:I=N         select candidate N of step I's category
  assign:I=ID      bind step I to place ID and lock it`,
		Example: `  curate compose --place 6 --op next:2 --op lock:2
  curate compose --prompt "nature walk" --op add --title "Sunday" --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCompose(cmd, f)
		},
	}
	cmd.Flags().IntVar(&f.placeID, "place", 0, "start from this place ID")
	cmd.Flags().StringVar(&f.prompt, "prompt", "", "start from a free-text idea")
	cmd.Flags().StringArrayVar(&f.ops, "op", nil, "edit to apply (repeatable)")
	cmd.Flags().StringVar(&f.title, "title", "", "experience title")
	cmd.Flags().StringVar(&f.description, "description", "", "experience description")
	cmd.Flags().StringVar(&f.date, "date", "", "experience date")
	cmd.Flags().StringVar(&f.time, "time", "", "start time, HH:MM (default from config)")
	cmd.Flags().BoolVar(&f.save, "save", false, "save the finalized experience")
	cmd.MarkFlagsMutuallyExclusive("place", "prompt")
	return cmd
}

func (a *app) runCompose(cmd *cobra.Command, f composeFlags) error {
	// Parse every op before touching the engine so typos fail fast.
	ops, err := compose.ParseScript(f.ops)
	if err != nil {
		return userError(err)
	}

	c, cat, err := a.composer()
	if err != nil {
		return err
	}

	plan := compose.Plan{
		Entry: compose.Entry{Mode: compose.ModeScratch},
		Ops:   ops,
		Details: compose.Details{
			Title:       share.StripMarkup(f.title),
			Description: share.StripMarkup(f.description),
			Date:        share.StripMarkup(f.date),
			Time:        share.StripMarkup(f.time),
		},
	}
	switch {
	case cmd.Flags().Changed("place"):
		place, err := cat.PlaceByID(f.placeID)
		if err != nil {
			return classify(err)
		}
		plan.Entry = compose.Entry{Mode: compose.ModePlaceFirst, Place: place}
	case cmd.Flags().Changed("prompt"):
		plan.Entry = compose.Entry{Mode: compose.ModePromptFirst, Prompt: f.prompt}
	}
	if plan.Details.Time == "" {
		plan.Details.Time = a.config.GetString(cfgKeyDefaultTime)
	}

	out, err := c.Run(plan, cat)
	if err != nil {
		return classify(err)
	}
	exp := out.Experience

	saved := false
	if f.save {
		if exp.Empty() {
			return userErrorf("add at least one place to create an experience")
		}
		err := a.withTable(types.TableExperiences, func(t types.Table) error {
			_, err := t.Set("", &exp)
			return err
		})
		if err != nil {
			return classify(err)
		}
		saved = true
		a.logger.Info("experience saved",
			zap.String("experience_id", exp.ExperienceID),
			zap.Int("places", len(exp.Places)))
	}

	w := cmd.OutOrStdout()
	if a.flags.jsonMode {
		return writeJSON(w, composeResult{
			Steps:      c.Views(out.Steps),
			Experience: &exp,
			Itinerary:  exp.Itinerary(),
			Saved:      saved,
		})
	}

	printSteps(w, c.Views(out.Steps))
	fmt.Fprintln(w)
	printExperience(w, &exp)
	if saved {
		fmt.Fprintf(w, "\nSaved as %s\n", exp.ExperienceID)
	}
	return nil
}
