package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type SnapshotRow struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Format      string `json:"format"`
	Query       string `json:"query"`
	RecordCount int    `json:"record_count"`
	CreatedAt   string `json:"created_at"`
}

// InsertSnapshot records a written export. Names are unique by
// construction (the writer never reuses one), so a conflict is a bug
// worth surfacing, not ignoring.
func InsertSnapshot(ctx context.Context, db *sql.DB, name, format, query string, count int, createdAt time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("insert snapshot: empty name")
	}
	_, err := db.ExecContext(ctx, `
INSERT INTO snapshots(name, format, query, record_count, created_at)
VALUES(?,?,?,?,?);
`, name, format, query, count, createdAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// ListSnapshots returns snapshots newest-first.
func ListSnapshots(ctx context.Context, db *sql.DB, limit int) ([]SnapshotRow, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := db.QueryContext(ctx, `
SELECT id, name, format, query, record_count, created_at
FROM snapshots
ORDER BY created_at DESC, id DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SnapshotRow
	for rows.Next() {
		var s SnapshotRow
		if err := rows.Scan(&s.ID, &s.Name, &s.Format, &s.Query, &s.RecordCount, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSnapshot looks a snapshot up by exact name. Missing yields nil, not
// an error.
func GetSnapshot(ctx context.Context, db *sql.DB, name string) (*SnapshotRow, error) {
	var s SnapshotRow
	err := db.QueryRowContext(ctx, `
SELECT id, name, format, query, record_count, created_at
FROM snapshots
WHERE name = ?
LIMIT 1;
`, name).Scan(&s.ID, &s.Name, &s.Format, &s.Query, &s.RecordCount, &s.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
