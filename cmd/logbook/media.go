package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/logbook/internal/store"
)

func newMediaCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Manage tracked media titles",
	}
	cmd.AddCommand(newMediaAddCmd(opts))
	cmd.AddCommand(newMediaListCmd(opts))
	cmd.AddCommand(newMediaRemoveCmd(opts))
	return cmd
}

func newMediaAddCmd(opts *rootOptions) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Track a series or movie title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			m, err := a.tracker.Track(cmd.Context(), args[0], store.MediaKind(kind))
			if err != nil {
				return fmt.Errorf("add media: %w", err)
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), m)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tracking %s %q (id %d)\n", m.Kind, m.Title, m.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(store.MediaKindSeries), "Media kind (series, movie)")
	return cmd
}

func newMediaListCmd(opts *rootOptions) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked media",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			var f store.MediaFilter
			if kind != "" {
				k := store.MediaKind(kind)
				f.Kind = &k
			}
			media, total, err := a.store.ListMedia(f)
			if err != nil {
				return fmt.Errorf("list media: %w", err)
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, media)
			}
			if len(media) == 0 {
				fmt.Fprintln(out, "No tracked media")
				return nil
			}
			fmt.Fprintf(out, "Tracked media (%d):\n\n", total)
			fmt.Fprintf(out, "  %-6s %-8s %-40s %s\n", "ID", "KIND", "TITLE", "ADDED")
			fmt.Fprintln(out, "  "+strings.Repeat("-", 70))
			for _, m := range media {
				fmt.Fprintf(out, "  %-6d %-8s %-40s %s\n", m.ID, m.Kind, truncate(m.Title, 40), formatTimeAgo(m.AddedAt))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Only list this kind (series, movie)")
	return cmd
}

func newMediaRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Stop tracking a media title",
		Long: `Stop tracking a media title. Seen entries linked to it are kept
and become unmatched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid media id %q", args[0])
			}

			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if err := a.store.DeleteMedia(id); err != nil {
				return fmt.Errorf("remove media %d: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed media %d\n", id)
			return nil
		},
	}
}
