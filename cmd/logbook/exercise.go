package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/logbook/internal/store"
	"github.com/vmunix/logbook/pkg/fitness"
)

func newExerciseCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "Manage the exercise catalog",
	}
	cmd.AddCommand(newExerciseAddCmd(opts))
	cmd.AddCommand(newExerciseListCmd(opts))
	cmd.AddCommand(newExerciseShowCmd(opts))
	return cmd
}

func newExerciseAddCmd(opts *rootOptions) *cobra.Command {
	var name, lot string

	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add an exercise to the catalog",
		Long: `Add an exercise to the catalog.

Lots: duration, distance_and_duration, reps, reps_and_weight.

Examples:
  logbook exercise add bench-press --name "Bench Press" --lot reps_and_weight`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = args[0]
			}
			e := fitness.Exercise{ID: args[0], Name: name, Lot: fitness.ExerciseLot(lot)}
			if !e.Lot.Valid() {
				return fmt.Errorf("unknown lot %q", lot)
			}

			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if err := a.workouts.AddExercise(cmd.Context(), e); err != nil {
				return fmt.Errorf("add exercise: %w", err)
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), e)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", e.ID, e.Lot)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (default: the id)")
	cmd.Flags().StringVar(&lot, "lot", string(fitness.ExerciseLotRepsAndWeight), "What the exercise measures")
	return cmd
}

func newExerciseListCmd(opts *rootOptions) *cobra.Command {
	var lot string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog exercises",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			var f store.ExerciseFilter
			if lot != "" {
				l := fitness.ExerciseLot(lot)
				f.Lot = &l
			}
			exercises, total, err := a.workouts.Exercises(f)
			if err != nil {
				return fmt.Errorf("list exercises: %w", err)
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, exercises)
			}
			if len(exercises) == 0 {
				fmt.Fprintln(out, "No exercises")
				return nil
			}
			fmt.Fprintf(out, "Exercises (%d):\n\n", total)
			fmt.Fprintf(out, "  %-24s %-30s %s\n", "ID", "NAME", "LOT")
			fmt.Fprintln(out, "  "+strings.Repeat("-", 76))
			for _, e := range exercises {
				fmt.Fprintf(out, "  %-24s %-30s %s\n", truncate(e.ID, 24), truncate(e.Name, 30), e.Lot)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&lot, "lot", "", "Only list this lot")
	return cmd
}

// ProgressJSON is the JSON form of a user's progress on one exercise.
type ProgressJSON struct {
	Exercise  fitness.Exercise   `json:"exercise"`
	UserID    string             `json:"user_id"`
	Aggregate *fitness.Aggregate `json:"aggregate"`
}

func newExerciseShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show lifetime stats and personal bests for an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()
			if a.userID == "" {
				return errNoUser
			}

			e, agg, err := a.workouts.Progress(a.userID, args[0])
			if err != nil {
				return fmt.Errorf("exercise %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, ProgressJSON{Exercise: *e, UserID: a.userID, Aggregate: agg})
			}
			printProgress(out, e, agg)
			return nil
		},
	}
}

func printProgress(w io.Writer, e *fitness.Exercise, agg *fitness.Aggregate) {
	fmt.Fprintf(w, "%s (%s)\n", e.Name, e.Lot)
	if agg == nil {
		fmt.Fprintln(w, "  Never performed")
		return
	}

	t := agg.LifetimeStats
	fmt.Fprintf(w, "  Performed:      %d times\n", agg.NumTimesPerformed)
	fmt.Fprintf(w, "  Lifetime:       weight %s kg, reps %s, distance %s km, duration %s min\n",
		t.Weight, t.Reps, t.Distance, t.Duration)
	fmt.Fprintf(w, "  Personal bests: %d achieved\n", t.PersonalBestsAchieved)

	for _, h := range agg.PersonalBests {
		if len(h.Sets) == 0 {
			continue
		}
		best := h.Sets[0]
		value := "-"
		if v := best.Data.Statistic.Value(h.Lot); v != nil {
			value = v.StringFixed(2)
		}
		fmt.Fprintf(w, "    %-8s %-10s workout %s, set %d\n", h.Lot, value, best.WorkoutID, best.SetIdx+1)
	}
}
