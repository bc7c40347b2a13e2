package demoserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"timeclerk-cli/internal/syncapi/wire"

	_ "modernc.org/sqlite"
)

// ErrNotFound reports an operation against an entry id the server does not
// have.
var ErrNotFound = errors.New("demoserver: entry not found")

// DB persists the demo server's time entries so exports survive restarts.
// Sessions, commits and reference data are generated fixtures and are not
// stored.
type DB struct {
	sql *sql.DB
}

func OpenDB(ctx context.Context, path string) (*DB, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}
	const schema = `
CREATE TABLE IF NOT EXISTS entries (
  id         INTEGER PRIMARY KEY AUTOINCREMENT,
  start_ms   INTEGER NOT NULL,
  end_ms     INTEGER NOT NULL,
  name       TEXT NOT NULL DEFAULT '',
  project    INTEGER,
  created_ms INTEGER NOT NULL
);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error { return d.sql.Close() }

func scanEntry(row interface{ Scan(...any) error }) (wire.Entry, error) {
	var e wire.Entry
	var id int64
	var project sql.NullInt64
	if err := row.Scan(&id, &e.StartTime, &e.EndTime, &e.Name, &project, &e.CreatedAt); err != nil {
		return wire.Entry{}, err
	}
	e.ID = &id
	if project.Valid {
		e.Project = &project.Int64
	}
	return e, nil
}

func (d *DB) ListEntries(ctx context.Context) ([]wire.Entry, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, start_ms, end_ms, name, project, created_ms FROM entries ORDER BY start_ms`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []wire.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (d *DB) GetEntry(ctx context.Context, id int64) (wire.Entry, error) {
	row := d.sql.QueryRowContext(ctx,
		`SELECT id, start_ms, end_ms, name, project, created_ms FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return wire.Entry{}, ErrNotFound
	}
	return e, err
}

func (d *DB) CreateEntry(ctx context.Context, req wire.ExportRequest) (wire.Entry, error) {
	created := wire.At(time.Now())
	res, err := d.sql.ExecContext(ctx,
		`INSERT INTO entries (start_ms, end_ms, name, project, created_ms) VALUES (?, ?, ?, ?, ?)`,
		req.StartTime, req.EndTime, req.Name, nullable(req.Project), created)
	if err != nil {
		return wire.Entry{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return wire.Entry{}, err
	}
	return d.GetEntry(ctx, id)
}

func (d *DB) UpdateEntry(ctx context.Context, id int64, req wire.ExportRequest) (wire.Entry, error) {
	res, err := d.sql.ExecContext(ctx,
		`UPDATE entries SET start_ms = ?, end_ms = ?, name = ?, project = ? WHERE id = ?`,
		req.StartTime, req.EndTime, req.Name, nullable(req.Project), id)
	if err != nil {
		return wire.Entry{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return wire.Entry{}, ErrNotFound
	}
	return d.GetEntry(ctx, id)
}

// SplitEntry rewrites the original to end at the split point and inserts the
// remainder, atomically.
func (d *DB) SplitEntry(ctx context.Context, req wire.SplitRequest) (wire.SplitResponse, error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return wire.SplitResponse{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE entries SET start_ms = ?, end_ms = ?, name = ?, project = ? WHERE id = ?`,
		req.StartTime, req.SplitTime, req.Name, nullable(req.Project), req.ID)
	if err != nil {
		return wire.SplitResponse{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return wire.SplitResponse{}, ErrNotFound
	}

	created := wire.At(time.Now())
	ins, err := tx.ExecContext(ctx,
		`INSERT INTO entries (start_ms, end_ms, name, project, created_ms) VALUES (?, ?, ?, ?, ?)`,
		req.SplitTime, req.EndTime, req.Name, nullable(req.Project), created)
	if err != nil {
		return wire.SplitResponse{}, err
	}
	secondID, err := ins.LastInsertId()
	if err != nil {
		return wire.SplitResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return wire.SplitResponse{}, err
	}

	first, err := d.GetEntry(ctx, req.ID)
	if err != nil {
		return wire.SplitResponse{}, err
	}
	second, err := d.GetEntry(ctx, secondID)
	if err != nil {
		return wire.SplitResponse{}, err
	}
	return wire.SplitResponse{Entry1: first, Entry2: second}, nil
}

func (d *DB) DeleteEntry(ctx context.Context, id int64) error {
	res, err := d.sql.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullable(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
