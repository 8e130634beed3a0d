package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/logbook/pkg/fitness"
)

func newWorkoutCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workout",
		Short: "Commit and review workouts",
	}
	cmd.AddCommand(newWorkoutCommitCmd(opts))
	cmd.AddCommand(newWorkoutShowCmd(opts))
	cmd.AddCommand(newWorkoutListCmd(opts))
	return cmd
}

func newWorkoutCommitCmd(opts *rootOptions) *cobra.Command {
	var inputFile string

	cmd := &cobra.Command{
		Use:   "commit --file <workout.json>",
		Short: "Commit a workout from JSON",
		Long: `Commit a workout from a JSON document. Missing id and user_id are
filled in with a new UUID and the configured user.

Example document:
  {
    "name": "Push day",
    "start_time": "2026-03-01T18:00:00Z",
    "end_time": "2026-03-01T19:00:00Z",
    "exercises": [
      {"exercise_id": "bench-press", "rest_time": 90, "sets": [
        {"lot": "normal", "statistic": {"weight": "100", "reps": "5"}}
      ]}
    ]
  }`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if inputFile == "" {
				return fmt.Errorf("usage: logbook workout commit --file <workout.json> (- for stdin)")
			}
			data, err := readInput(inputFile, cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading file: %w", err)
			}
			var in fitness.WorkoutInput
			if err := json.Unmarshal(data, &in); err != nil {
				return fmt.Errorf("decode workout: %w", err)
			}

			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()
			if in.UserID == "" {
				in.UserID = a.userID
			}
			if in.UserID == "" {
				return errNoUser
			}

			w, err := a.workouts.Commit(cmd.Context(), in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, w)
			}
			printWorkout(out, w)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "Workout JSON file (- for stdin)")
	return cmd
}

func newWorkoutShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a committed workout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			w, err := a.workouts.Get(args[0])
			if err != nil {
				return fmt.Errorf("workout %s: %w", args[0], err)
			}
			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, w)
			}
			printWorkout(out, w)
			return nil
		},
	}
}

func newWorkoutListCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workouts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()
			if a.userID == "" {
				return errNoUser
			}

			workouts, total, err := a.workouts.List(a.userID, limit)
			if err != nil {
				return fmt.Errorf("list workouts: %w", err)
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, workouts)
			}
			if len(workouts) == 0 {
				fmt.Fprintln(out, "No workouts")
				return nil
			}
			fmt.Fprintf(out, "Workouts (%d of %d):\n\n", len(workouts), total)
			fmt.Fprintf(out, "  %-36s %-24s %-9s %-4s %s\n", "ID", "NAME", "EXERCISES", "PBS", "STARTED")
			fmt.Fprintln(out, "  "+strings.Repeat("-", 90))
			for _, w := range workouts {
				fmt.Fprintf(out, "  %-36s %-24s %-9d %-4d %s\n",
					w.ID, truncate(w.Name, 24), len(w.Exercises), w.Summary.Total.PersonalBestsAchieved, formatTimeAgo(w.StartTime))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum workouts to show (0 for all)")
	return cmd
}

func printWorkout(w io.Writer, wo *fitness.Workout) {
	name := wo.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(w, "Workout %s: %s\n", wo.ID, name)
	if !wo.StartTime.IsZero() {
		fmt.Fprintf(w, "  %s - %s\n", wo.StartTime.Format("2006-01-02 15:04"), wo.EndTime.Format("15:04"))
	}

	t := wo.Summary.Total
	fmt.Fprintf(w, "  Total: weight %s kg, reps %s, distance %s km, duration %s min, rest %ds\n",
		t.Weight, t.Reps, t.Distance, t.Duration, t.RestTime)
	fmt.Fprintf(w, "  Personal bests: %d\n", t.PersonalBestsAchieved)

	for _, ex := range wo.Exercises {
		fmt.Fprintf(w, "\n  %s (%d sets)\n", ex.ExerciseName, len(ex.Sets))
		for i, s := range ex.Sets {
			line := fmt.Sprintf("    %d. %s", i+1, formatStatistic(s.Statistic))
			if len(s.PersonalBests) > 0 {
				pbs := make([]string, len(s.PersonalBests))
				for j, pb := range s.PersonalBests {
					pbs[j] = string(pb)
				}
				line += "  PB: " + strings.Join(pbs, ", ")
			}
			fmt.Fprintln(w, line)
		}
	}
}

func formatStatistic(s fitness.SetStatistic) string {
	var parts []string
	if s.Weight != nil && s.Reps != nil {
		parts = append(parts, fmt.Sprintf("%s kg x %s", s.Weight.StringFixed(2), s.Reps))
	} else if s.Reps != nil {
		parts = append(parts, fmt.Sprintf("%s reps", s.Reps))
	}
	if s.Distance != nil {
		parts = append(parts, fmt.Sprintf("%s km", s.Distance.StringFixed(2)))
	}
	if s.Duration != nil {
		parts = append(parts, fmt.Sprintf("%s min", s.Duration))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}
