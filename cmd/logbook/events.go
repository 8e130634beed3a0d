package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/logbook/internal/events"
)

// EventJSON is the JSON form of a logged event.
type EventJSON struct {
	ID         int64           `json:"id"`
	Type       string          `json:"type"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

func newEventsCmd(opts *rootOptions) *cobra.Command {
	var q eventQuery

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show logged events",
		Long: `Show logged events, newest first.

Examples:
  logbook events -n 50
  logbook events --since 24h
  logbook events --type personal_best.achieved
  logbook events --entity workout/3f1c...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			raw, err := queryEvents(a.eventLog, q)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				items := make([]EventJSON, len(raw))
				for i, e := range raw {
					items[i] = EventJSON{
						ID:         e.ID,
						Type:       e.EventType,
						EntityType: e.EntityType,
						EntityID:   e.EntityID,
						OccurredAt: e.OccurredAt,
						Payload:    json.RawMessage(e.Payload),
					}
				}
				return printJSON(out, items)
			}

			if len(raw) == 0 {
				fmt.Fprintln(out, "No events")
				return nil
			}
			registry := events.DefaultRegistry()
			fmt.Fprintf(out, "Events (%d):\n\n", len(raw))
			fmt.Fprintf(out, "  %-16s %-24s %-24s %s\n", "TIME", "TYPE", "ENTITY", "DETAIL")
			fmt.Fprintln(out, "  "+strings.Repeat("-", 90))
			for _, e := range raw {
				entity := e.EntityType + "/" + truncate(e.EntityID, 16)
				fmt.Fprintf(out, "  %-16s %-24s %-24s %s\n",
					formatTimeAgo(e.OccurredAt), e.EventType, entity, describeEvent(registry, e))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&q.limit, "limit", "n", 20, "Number of events to show")
	cmd.Flags().DurationVar(&q.since, "since", 0, "Only events newer than this (e.g. 24h)")
	cmd.Flags().StringVar(&q.entity, "entity", "", "Only events for one entity, as type/id")
	cmd.Flags().StringVar(&q.eventType, "type", "", "Only events of one type (see 'logbook events types')")

	cmd.AddCommand(newEventsTypesCmd(opts))
	cmd.AddCommand(newEventsPruneCmd(opts))
	return cmd
}

type eventQuery struct {
	limit     int
	since     time.Duration
	entity    string
	eventType string
}

// queryEvents returns events newest first. entity takes precedence over
// since; the type filter and limit apply to every mode.
func queryEvents(log *events.EventLog, q eventQuery) ([]events.RawEvent, error) {
	if q.eventType != "" {
		known := events.DefaultRegistry().Types()
		if !slices.Contains(known, q.eventType) {
			return nil, fmt.Errorf("unknown event type %q, want one of: %s", q.eventType, strings.Join(known, ", "))
		}
	}

	var (
		raw []events.RawEvent
		err error
	)
	switch {
	case q.entity != "":
		entityType, entityID, ok := strings.Cut(q.entity, "/")
		if !ok || entityType == "" || entityID == "" {
			return nil, fmt.Errorf("invalid --entity %q, want type/id", q.entity)
		}
		raw, err = log.ForEntity(entityType, entityID)
	case q.since > 0:
		raw, err = log.Since(time.Now().Add(-q.since))
	case q.eventType != "":
		raw, err = log.Since(time.Time{})
	default:
		return log.Recent(q.limit)
	}
	if err != nil {
		return nil, err
	}

	if q.eventType != "" {
		raw = slices.DeleteFunc(raw, func(e events.RawEvent) bool { return e.EventType != q.eventType })
	}
	// ForEntity and Since are oldest first
	slices.Reverse(raw)
	if q.limit > 0 && len(raw) > q.limit {
		raw = raw[:q.limit]
	}
	return raw, nil
}

func newEventsTypesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List known event types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			types := events.DefaultRegistry().Types()
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), types)
			}
			for _, t := range types {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
}

// describeEvent renders a one-line summary of a decoded event.
func describeEvent(registry *events.Registry, raw events.RawEvent) string {
	e, err := registry.Unmarshal(raw)
	if err != nil {
		return ""
	}
	switch e := e.(type) {
	case *events.ExerciseAdded:
		return fmt.Sprintf("%s (%s)", e.Name, e.Lot)
	case *events.WorkoutCommitted:
		return fmt.Sprintf("%q, %d exercises, %d PBs", e.Name, len(e.ExerciseIDs), e.PersonalBestsAchieved)
	case *events.PersonalBestAchieved:
		return fmt.Sprintf("%s %s %s", e.ExerciseName, e.Dimension, e.Value)
	case *events.MediaAdded:
		return fmt.Sprintf("%s (%s)", e.Title, e.Kind)
	case *events.TitleSeen:
		if e.MediaTitle != "" {
			return fmt.Sprintf("%s -> %s %s", e.BaseTitle, e.MediaTitle, formatSeasonEpisode(e.Season, e.Episode))
		}
		return fmt.Sprintf("%s (unmatched)", e.BaseTitle)
	default:
		return ""
	}
}

func newEventsPruneCmd(opts *rootOptions) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old events",
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThan <= 0 {
				return fmt.Errorf("--older-than must be positive")
			}
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			n, err := a.eventLog.Prune(olderThan)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d events\n", n)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 90*24*time.Hour, "Delete events older than this")
	return cmd
}
