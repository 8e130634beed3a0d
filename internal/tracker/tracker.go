// Package tracker records catalog titles a user has watched. Each title is
// reduced to a base title and season/episode, matched against tracked media,
// and stored as a seen entry.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/logbook/internal/events"
	"github.com/vmunix/logbook/internal/store"
	"github.com/vmunix/logbook/pkg/title"
)

// DefaultWorkers bounds parse concurrency when Options.Workers is not positive.
const DefaultWorkers = 4

// Options configures a Tracker.
type Options struct {
	Threshold title.Confidence // minimum confidence for a media link
	Workers   int
}

// Result is the analysis of one catalog title.
type Result struct {
	Title     string
	BaseTitle string
	Season    *int // set together with Episode
	Episode   *int
	Parsed    title.Parsed
	Match     title.Match
	MediaID   *int64 // nil unless Match reached the threshold
}

// Tracker parses, matches and records seen titles.
type Tracker struct {
	store     *store.Store
	bus       events.Publisher
	parser    *title.Parser
	threshold title.Confidence
	workers   int
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a Tracker. parser defaults to title.NewParser() and bus may be nil.
func New(st *store.Store, bus events.Publisher, parser *title.Parser, opts Options, logger *slog.Logger) *Tracker {
	if parser == nil {
		parser = title.NewParser()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Workers < 1 {
		opts.Workers = DefaultWorkers
	}
	if opts.Threshold == title.ConfidenceNone {
		opts.Threshold = title.ConfidenceMedium
	}
	return &Tracker{
		store:     st,
		bus:       bus,
		parser:    parser,
		threshold: opts.Threshold,
		workers:   opts.Workers,
		logger:    logger.With("component", "tracker"),
		now:       time.Now,
	}
}

// Analyze parses and matches titles concurrently without persisting.
// Results are in input order.
func (t *Tracker) Analyze(ctx context.Context, titles []string) ([]Result, error) {
	media, _, err := t.store.ListMedia(store.MediaFilter{})
	if err != nil {
		return nil, fmt.Errorf("load media: %w", err)
	}
	candidates := make([]string, len(media))
	ids := make(map[string]int64, len(media))
	for i, m := range media {
		candidates[i] = m.Title
		ids[m.Title] = m.ID
	}

	results := make([]Result, len(titles))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(t.workers)
	for i, raw := range titles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = t.analyze(raw, candidates, ids)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (t *Tracker) analyze(raw string, candidates []string, ids map[string]int64) Result {
	parsed := t.parser.Parse(raw)
	r := Result{
		Title:     raw,
		BaseTitle: t.parser.ExtractBaseTitle(raw),
		Parsed:    parsed,
	}
	if se, ok := parsed.SeasonEpisode(); ok {
		r.Season, r.Episode = &se.Season, &se.Episode
	}

	r.Match = title.MatchTitle(r.BaseTitle, candidates)
	if r.Match.Title != "" && r.Match.Confidence >= t.threshold {
		id := ids[r.Match.Title]
		r.MediaID = &id
	}
	return r
}

// Record analyzes titles and stores one seen entry per title for userID, in
// input order. Entries are written in a single transaction: on error nothing
// is stored. A title.seen event is published per entry after commit.
func (t *Tracker) Record(ctx context.Context, userID string, titles []string) ([]*store.SeenEntry, error) {
	if userID == "" {
		return nil, fmt.Errorf("record seen: missing user id")
	}
	results, err := t.Analyze(ctx, titles)
	if err != nil {
		return nil, err
	}

	entries, err := t.recordTx(userID, results, t.now())
	if err != nil {
		t.logger.Warn("record seen failed", "user_id", userID, "titles", len(titles), "error", err)
		return nil, err
	}

	for i, e := range entries {
		r := results[i]
		t.logger.Debug("title seen",
			"user_id", userID,
			"base_title", r.BaseTitle,
			"match", r.Match.Title,
			"confidence", r.Match.Confidence,
			"score", r.Match.Score)
		t.publish(ctx, e, r)
	}

	t.logger.Info("seen titles recorded", "user_id", userID, "count", len(entries))
	return entries, nil
}

func (t *Tracker) recordTx(userID string, results []Result, seenAt time.Time) ([]*store.SeenEntry, error) {
	tx, err := t.store.Begin()
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	entries := make([]*store.SeenEntry, 0, len(results))
	for _, r := range results {
		e := &store.SeenEntry{
			UserID:     userID,
			MediaID:    r.MediaID,
			RawTitle:   r.Title,
			BaseTitle:  r.BaseTitle,
			Season:     r.Season,
			Episode:    r.Episode,
			Confidence: r.Match.Confidence.String(),
			Score:      r.Match.Score,
			SeenAt:     seenAt,
		}
		if err := tx.AddSeen(e); err != nil {
			return nil, fmt.Errorf("record %q: %w", r.Title, err)
		}
		entries = append(entries, e)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return entries, nil
}

func (t *Tracker) publish(ctx context.Context, e *store.SeenEntry, r Result) {
	if t.bus == nil {
		return
	}
	evt := &events.TitleSeen{
		BaseEvent:  events.NewBaseEventAt(events.EventTitleSeen, events.EntitySeen, fmt.Sprint(e.ID), e.SeenAt),
		UserID:     e.UserID,
		RawTitle:   e.RawTitle,
		BaseTitle:  e.BaseTitle,
		MediaID:    e.MediaID,
		Season:     e.Season,
		Episode:    e.Episode,
		Confidence: e.Confidence,
	}
	if e.MediaID != nil {
		evt.MediaTitle = r.Match.Title
	}
	if err := t.bus.Publish(ctx, evt); err != nil {
		t.logger.Warn("failed to publish event", "type", evt.EventType(), "error", err)
	}
}

// Track adds a title to the tracked media list.
func (t *Tracker) Track(ctx context.Context, name string, kind store.MediaKind) (*store.Media, error) {
	m := &store.Media{Title: name, Kind: kind}
	if err := t.store.AddMedia(m); err != nil {
		return nil, err
	}
	t.logger.Info("media tracked", "media_id", m.ID, "title", m.Title, "kind", m.Kind)
	if t.bus != nil {
		err := t.bus.Publish(ctx, &events.MediaAdded{
			BaseEvent: events.NewBaseEvent(events.EventMediaAdded, events.EntityMedia, fmt.Sprint(m.ID)),
			Title:     m.Title,
			Kind:      string(m.Kind),
		})
		if err != nil {
			t.logger.Warn("failed to publish event", "type", events.EventMediaAdded, "error", err)
		}
	}
	return m, nil
}
