package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/corpora/pkg/corpora/internalerr"
	"github.com/cognicore/corpora/pkg/corpora/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// report_items cascade with their report
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	title TEXT,
	kind TEXT NOT NULL,
	pattern TEXT,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reports_kind ON reports(kind);

CREATE TABLE IF NOT EXISTS report_items (
	report_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	item TEXT NOT NULL,
	frequency INTEGER NOT NULL,
	PRIMARY KEY(report_id, position),
	FOREIGN KEY(report_id) REFERENCES reports(id) ON DELETE CASCADE
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveReport inserts or replaces a report and its items
func (s *sqliteStore) SaveReport(ctx context.Context, r store.Report) error {
	if r.ID == "" {
		return fmt.Errorf("%w: report id is empty", internalerr.ErrInvalidInput)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
INSERT INTO reports (id, title, kind, pattern, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	title=excluded.title,
	kind=excluded.kind,
	pattern=excluded.pattern,
	created_at=excluded.created_at;
`, r.ID, r.Title, r.Kind, r.Pattern, r.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return err
	}

	if err := replaceItems(ctx, tx, r.ID, r.Items); err != nil {
		return err
	}
	return tx.Commit()
}

func replaceItems(ctx context.Context, tx *sql.Tx, reportID string, items []store.Item) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM report_items WHERE report_id = ?`, reportID); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO report_items (report_id, position, item, frequency) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, it := range items {
		if _, err := stmt.ExecContext(ctx, reportID, i, it.Key, it.Count); err != nil {
			return err
		}
	}
	return nil
}

// GetReport retrieves a report with its items in stored order
func (s *sqliteStore) GetReport(ctx context.Context, id string) (store.Report, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, title, kind, pattern, created_at
FROM reports
WHERE id = ?;
`, id)
	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Report{}, fmt.Errorf("%w: report %s", internalerr.ErrNotFound, id)
	}
	if err != nil {
		return store.Report{}, err
	}

	r.Items, err = s.loadItems(ctx, id)
	if err != nil {
		return store.Report{}, err
	}
	return r, nil
}

// ListReports retrieves the newest reports, optionally filtered by kind
func (s *sqliteStore) ListReports(ctx context.Context, kind string, limit int) ([]store.Report, error) {
	if limit <= 0 {
		limit = store.DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, title, kind, pattern, created_at
FROM reports
WHERE ? = '' OR kind = ?
ORDER BY id DESC
LIMIT ?;
`, kind, kind, limit)
	if err != nil {
		return nil, err
	}

	var reports []store.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range reports {
		items, err := s.loadItems(ctx, reports[i].ID)
		if err != nil {
			return nil, err
		}
		reports[i].Items = items
	}
	return reports, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(sc scanner) (store.Report, error) {
	var (
		r       store.Report
		title   sql.NullString
		pattern sql.NullString
		created string
	)
	if err := sc.Scan(&r.ID, &title, &r.Kind, &pattern, &created); err != nil {
		return store.Report{}, err
	}
	r.Title = title.String
	r.Pattern = pattern.String

	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return store.Report{}, fmt.Errorf("report %s: bad created_at %q: %w", r.ID, created, err)
	}
	r.CreatedAt = t
	return r, nil
}

func (s *sqliteStore) loadItems(ctx context.Context, reportID string) ([]store.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT item, frequency
FROM report_items
WHERE report_id = ?
ORDER BY position;
`, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []store.Item
	for rows.Next() {
		var it store.Item
		if err := rows.Scan(&it.Key, &it.Count); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
