package store

import (
	"fmt"
	"time"
)

// MediaKind distinguishes series from movies.
type MediaKind string

const (
	MediaKindSeries MediaKind = "series"
	MediaKindMovie  MediaKind = "movie"
)

// Media is a tracked title seen entries are matched against.
type Media struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Kind    MediaKind `json:"kind"`
	AddedAt time.Time `json:"added_at"`
}

func addMedia(q querier, m *Media) error {
	if m.Title == "" {
		return fmt.Errorf("insert media: title required: %w", ErrConstraint)
	}
	now := time.Now()
	result, err := q.Exec(`
		INSERT INTO media (title, kind, added_at) VALUES (?, ?, ?)`,
		m.Title, m.Kind, now,
	)
	if err != nil {
		return fmt.Errorf("insert media: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	m.ID = id
	m.AddedAt = now
	return nil
}

// AddMedia inserts a tracked title. Sets ID and AddedAt on the struct.
// Returns ErrDuplicate if the title is already tracked.
func (s *Store) AddMedia(m *Media) error { return addMedia(s.db, m) }

// AddMedia inserts a tracked title within a transaction.
func (t *Tx) AddMedia(m *Media) error { return addMedia(t.tx, m) }

func getMedia(q querier, id int64) (*Media, error) {
	m := &Media{}
	err := q.QueryRow(`SELECT id, title, kind, added_at FROM media WHERE id = ?`, id).
		Scan(&m.ID, &m.Title, &m.Kind, &m.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("get media %d: %w", id, mapSQLiteError(err))
	}
	return m, nil
}

// GetMedia retrieves a tracked title by ID.
// Returns ErrNotFound if it does not exist.
func (s *Store) GetMedia(id int64) (*Media, error) { return getMedia(s.db, id) }

func listMedia(q querier, f MediaFilter) ([]*Media, int, error) {
	var conditions []string
	var args []any

	if f.Kind != nil {
		conditions = append(conditions, "kind = ?")
		args = append(args, *f.Kind)
	}
	whereClause := where(conditions)

	var total int
	if err := q.QueryRow("SELECT COUNT(*) FROM media "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count media: %w", err)
	}

	rows, err := q.Query(page("SELECT id, title, kind, added_at FROM media "+whereClause+" ORDER BY id", f.Limit, f.Offset), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list media: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Media
	for rows.Next() {
		m := &Media{}
		if err := rows.Scan(&m.ID, &m.Title, &m.Kind, &m.AddedAt); err != nil {
			return nil, 0, fmt.Errorf("scan media: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate media: %w", err)
	}
	return results, total, nil
}

// ListMedia returns tracked titles matching the filter.
// Returns (results, totalCount, error).
func (s *Store) ListMedia(f MediaFilter) ([]*Media, int, error) { return listMedia(s.db, f) }

func deleteMedia(q querier, id int64) error {
	if _, err := q.Exec("DELETE FROM media WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete media %d: %w", id, mapSQLiteError(err))
	}
	return nil
}

// DeleteMedia stops tracking a title. Seen entries keep their history with
// the media link cleared. This operation is idempotent.
func (s *Store) DeleteMedia(id int64) error { return deleteMedia(s.db, id) }
