// Package store persists a history log of scrape runs. Nothing is ever read
// back into the pipeline; it exists for operator bookkeeping only.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"smartscrape/internal/models"
)

// ErrNotFound reports a run id with no stored row.
var ErrNotFound = eris.New("store: run not found")

type Store struct {
	db *sql.DB
}

// Open opens a SQLite database at the given path, configures WAL mode, and
// applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "store: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "store: exec %s", pragma)
		}
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	url          TEXT NOT NULL,
	content_type TEXT NOT NULL DEFAULT '',
	status       TEXT NOT NULL DEFAULT 'running',
	result       TEXT,
	error        TEXT NOT NULL DEFAULT '',
	created_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_runs_url ON runs(url);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

func (s *Store) migrate() error {
	_, err := s.db.Exec(migration)
	return eris.Wrap(err, "store: migrate")
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Create records the start of a scrape run and returns its id.
func (s *Store) Create(ctx context.Context, url string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, url, status, created_at) VALUES (?, ?, ?, ?)`,
		id, url, string(models.RunStatusRunning), time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrap(err, "store: insert run")
	}
	return id, nil
}

// Finish stores a completed result against the run.
func (s *Store) Finish(ctx context.Context, id string, result *models.ScrapeResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return eris.Wrap(err, "store: marshal result")
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, content_type = ?, result = ? WHERE id = ?`,
		string(models.RunStatusComplete), string(result.ContentType), string(resultJSON), id,
	)
	if err != nil {
		return eris.Wrapf(err, "store: finish run %s", id)
	}
	return checkRowsAffected(res, id)
}

// Fail records a failed run with its error message.
func (s *Store) Fail(ctx context.Context, id string, scrapeErr error) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, error = ? WHERE id = ?`,
		string(models.RunStatusFailed), scrapeErr.Error(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "store: fail run %s", id)
	}
	return checkRowsAffected(res, id)
}

// Get loads one run by id.
func (s *Store) Get(ctx context.Context, id string) (*models.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, url, content_type, status, result, error, created_at FROM runs WHERE id = ?`,
		id,
	)
	return scanRun(row.Scan)
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]models.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, url, content_type, status, result, error, created_at
		 FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "store: list runs")
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		r, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, eris.Wrap(rows.Err(), "store: list runs iterate")
}

func scanRun(scan func(...any) error) (*models.Run, error) {
	var (
		r          models.Run
		ct, errMsg string
		resultJSON sql.NullString
	)
	if err := scan(&r.ID, &r.URL, &ct, &r.Status, &resultJSON, &errMsg, &r.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, eris.Wrap(err, "store: scan run")
	}
	r.ContentType = models.ContentType(ct)
	r.Error = errMsg
	if resultJSON.Valid && resultJSON.String != "" {
		var res models.ScrapeResult
		if err := json.Unmarshal([]byte(resultJSON.String), &res); err != nil {
			return nil, eris.Wrap(err, "store: unmarshal result")
		}
		r.Result = &res
	}
	return &r, nil
}

func checkRowsAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "store: rows affected")
	}
	if n == 0 {
		return eris.Errorf("store: run %s not found", id)
	}
	return nil
}
