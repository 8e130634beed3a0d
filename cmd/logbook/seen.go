package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/logbook/internal/store"
)

func newSeenCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seen",
		Short: "Record and list watched titles",
	}
	cmd.AddCommand(newSeenAddCmd(opts))
	cmd.AddCommand(newSeenListCmd(opts))
	return cmd
}

func newSeenAddCmd(opts *rootOptions) *cobra.Command {
	var inputFile string

	cmd := &cobra.Command{
		Use:   "add [flags] <title>...",
		Short: "Record catalog titles as watched",
		Long: `Record catalog titles as watched. Each title is parsed, matched
against tracked media and stored in input order.

Examples:
  logbook seen add "Dark: Season 1: Secrets"
  logbook seen add --file NetflixViewingHistory.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			titles := args
			if inputFile != "" {
				lines, err := readLines(inputFile, cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading file: %w", err)
				}
				titles = lines
			}
			if len(titles) == 0 {
				return fmt.Errorf("usage: logbook seen add <title>... or logbook seen add --file <filename>")
			}

			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()
			if a.userID == "" {
				return errNoUser
			}

			entries, err := a.tracker.Record(cmd.Context(), a.userID, titles)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, entries)
			}
			printSeenTable(out, entries)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "Read titles from file, one per line (- for stdin)")
	return cmd
}

func newSeenListCmd(opts *rootOptions) *cobra.Command {
	var (
		unmatched bool
		mediaID   int64
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List watched titles, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()
			if a.userID == "" {
				return errNoUser
			}

			f := store.SeenFilter{UserID: &a.userID, Unmatched: unmatched, Limit: limit}
			if mediaID > 0 {
				f.MediaID = &mediaID
			}
			entries, total, err := a.store.ListSeen(f)
			if err != nil {
				return fmt.Errorf("list seen: %w", err)
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "Nothing seen")
				return nil
			}
			fmt.Fprintf(out, "Seen (%d of %d):\n\n", len(entries), total)
			printSeenTable(out, entries)
			return nil
		},
	}

	cmd.Flags().BoolVar(&unmatched, "unmatched", false, "Only titles with no tracked media match")
	cmd.Flags().Int64Var(&mediaID, "media", 0, "Only titles matched to this media id")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum entries to show (0 for all)")
	return cmd
}

func printSeenTable(w io.Writer, entries []*store.SeenEntry) {
	fmt.Fprintf(w, "  %-36s %-8s %-7s %-6s %s\n", "BASE TITLE", "EPISODE", "MATCH", "MEDIA", "SEEN")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 72))
	for _, e := range entries {
		media := "-"
		if e.MediaID != nil {
			media = fmt.Sprint(*e.MediaID)
		}
		fmt.Fprintf(w, "  %-36s %-8s %-7s %-6s %s\n",
			truncate(e.BaseTitle, 36), formatSeasonEpisode(e.Season, e.Episode), e.Confidence, media, formatTimeAgo(e.SeenAt))
	}
}
