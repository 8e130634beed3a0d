package store

import (
	"fmt"
	"strings"
)

// where joins conditions into a WHERE clause, or returns "" for none.
func where(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conditions, " AND ")
}

// page appends LIMIT/OFFSET when limit is positive.
func page(query string, limit, offset int) string {
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}
	return query
}
