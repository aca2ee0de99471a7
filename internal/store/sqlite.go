package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/languoid-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS guess_runs (
	id         TEXT PRIMARY KEY,
	language   TEXT NOT NULL,
	method     TEXT NOT NULL,
	glottocode TEXT NOT NULL DEFAULT '',
	verified   INTEGER,
	candidates INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_guess_runs_language ON guess_runs(language);
CREATE INDEX IF NOT EXISTS idx_guess_runs_created_at ON guess_runs(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// RecordRun inserts a guess run, assigning an id and timestamp if unset.
func (s *SQLiteStore) RecordRun(ctx context.Context, run *model.GuessRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	var verified any
	if run.Verified != nil {
		verified = *run.Verified
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO guess_runs (id, language, method, glottocode, verified, candidates, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Language, run.Method, run.Glottocode, verified, run.Candidates, run.CreatedAt,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: insert guess run")
	}
	return nil
}

// ListRuns returns runs newest first, optionally filtered by language.
func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.GuessRun, error) {
	query := `SELECT id, language, method, glottocode, verified, candidates, created_at
	          FROM guess_runs`
	var args []any
	if filter.Language != "" {
		query += ` WHERE language = ?`
		args = append(args, filter.Language)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += ` LIMIT ? OFFSET ?`
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list guess runs")
	}
	defer rows.Close() //nolint:errcheck

	var runs []model.GuessRun
	for rows.Next() {
		var (
			run      model.GuessRun
			verified sql.NullBool
		)
		if err := rows.Scan(&run.ID, &run.Language, &run.Method, &run.Glottocode,
			&verified, &run.Candidates, &run.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan guess run")
		}
		if verified.Valid {
			v := verified.Bool
			run.Verified = &v
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate guess runs")
	}
	return runs, nil
}
