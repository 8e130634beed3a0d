package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vmunix/logbook/pkg/title"
)

// ParseResultJSON is the JSON form of a parsed catalog title.
type ParseResultJSON struct {
	Title         string `json:"title"`
	BaseTitle     string `json:"base_title"`
	Season        *int   `json:"season,omitempty"`
	Episode       *int   `json:"episode,omitempty"`
	EpisodeSource string `json:"episode_source"`
	GeneralSource string `json:"general_source"`
}

func parseTitles(p *title.Parser, titles []string) []ParseResultJSON {
	results := make([]ParseResultJSON, 0, len(titles))
	for _, t := range titles {
		parsed := p.Parse(t)
		r := ParseResultJSON{
			Title:         t,
			BaseTitle:     p.ExtractBaseTitle(t),
			EpisodeSource: parsed.EpisodeSource.String(),
			GeneralSource: parsed.GeneralSource.String(),
		}
		if se, ok := parsed.SeasonEpisode(); ok {
			r.Season, r.Episode = &se.Season, &se.Episode
		}
		results = append(results, r)
	}
	return results
}

func newParseCmd(opts *rootOptions) *cobra.Command {
	var inputFile string

	cmd := &cobra.Command{
		Use:   "parse [flags] <title>...",
		Short: "Parse catalog titles (no database needed)",
		Long: `Parse catalog titles into a base title and season/episode.

Examples:
  logbook parse "Stranger Things: Chapter One: The Vanishing of Will Byers"
  logbook parse --file history.txt --json`,
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
				return fmt.Errorf("usage: logbook parse <title>... or logbook parse --file <filename>")
			}

			cfg, _, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			parser, err := cfg.TitleParser()
			if err != nil {
				return fmt.Errorf("title parser: %w", err)
			}

			results := parseTitles(parser, titles)
			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				if len(results) == 1 {
					return printJSON(out, results[0])
				}
				return printJSON(out, results)
			}
			for i, r := range results {
				if i > 0 {
					fmt.Fprintln(out)
				}
				printParseResult(out, r)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "Read titles from file, one per line (- for stdin)")
	return cmd
}

func printParseResult(w io.Writer, r ParseResultJSON) {
	fmt.Fprintf(w, "Title:      %s\n", r.Title)
	fmt.Fprintf(w, "Base title: %s\n", r.BaseTitle)
	fmt.Fprintf(w, "Episode:    %s\n", formatSeasonEpisode(r.Season, r.Episode))
	fmt.Fprintf(w, "Sources:    episode=%s general=%s\n", r.EpisodeSource, r.GeneralSource)
}
