package store

import (
	"fmt"
	"time"
)

// SeenEntry records one catalog title a user watched.
// Season and Episode are both set or both nil.
type SeenEntry struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	MediaID    *int64    `json:"media_id,omitempty"` // nil when no tracked title matched
	RawTitle   string    `json:"raw_title"`
	BaseTitle  string    `json:"base_title"`
	Season     *int      `json:"season,omitempty"`
	Episode    *int      `json:"episode,omitempty"`
	Confidence string    `json:"confidence"`
	Score      float64   `json:"score"`
	SeenAt     time.Time `json:"seen_at"`
}

func addSeen(q querier, e *SeenEntry) error {
	if (e.Season == nil) != (e.Episode == nil) {
		return fmt.Errorf("insert seen: season and episode must be set together: %w", ErrConstraint)
	}
	if e.SeenAt.IsZero() {
		e.SeenAt = time.Now()
	}
	result, err := q.Exec(`
		INSERT INTO seen (user_id, media_id, raw_title, base_title, season, episode, confidence, score, seen_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.UserID, e.MediaID, e.RawTitle, e.BaseTitle, e.Season, e.Episode, e.Confidence, e.Score, e.SeenAt,
	)
	if err != nil {
		return fmt.Errorf("insert seen: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	e.ID = id
	return nil
}

// AddSeen records a seen entry. Sets ID, and SeenAt when zero.
// Returns ErrConstraint if only one of season and episode is set or the
// media does not exist.
func (s *Store) AddSeen(e *SeenEntry) error { return addSeen(s.db, e) }

// AddSeen records a seen entry within a transaction.
func (t *Tx) AddSeen(e *SeenEntry) error { return addSeen(t.tx, e) }

func listSeen(q querier, f SeenFilter) ([]*SeenEntry, int, error) {
	var conditions []string
	var args []any

	if f.UserID != nil {
		conditions = append(conditions, "user_id = ?")
		args = append(args, *f.UserID)
	}
	if f.MediaID != nil {
		conditions = append(conditions, "media_id = ?")
		args = append(args, *f.MediaID)
	}
	if f.Unmatched {
		conditions = append(conditions, "media_id IS NULL")
	}
	whereClause := where(conditions)

	var total int
	if err := q.QueryRow("SELECT COUNT(*) FROM seen "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count seen: %w", err)
	}

	query := "SELECT id, user_id, media_id, raw_title, base_title, season, episode, confidence, score, seen_at FROM seen " +
		whereClause + " ORDER BY seen_at DESC, id DESC"
	rows, err := q.Query(page(query, f.Limit, f.Offset), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list seen: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*SeenEntry
	for rows.Next() {
		e := &SeenEntry{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.MediaID, &e.RawTitle, &e.BaseTitle, &e.Season, &e.Episode, &e.Confidence, &e.Score, &e.SeenAt); err != nil {
			return nil, 0, fmt.Errorf("scan seen: %w", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate seen: %w", err)
	}
	return results, total, nil
}

// ListSeen returns seen entries matching the filter, newest first.
// Returns (results, totalCount, error).
func (s *Store) ListSeen(f SeenFilter) ([]*SeenEntry, int, error) { return listSeen(s.db, f) }
