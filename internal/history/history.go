package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/seqan/cihelper/internal/usage"
)

// ErrNoRuns is returned when the database does not contain any run yet.
var ErrNoRuns = errors.New("no usage runs recorded")

// DB stores resource usage runs.
type DB struct {
	db   *sql.DB
	path string
}

// Options configures DB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Run is one stored invocation of the resource usage reporter.
type Run struct {
	// ID is a random UUID assigned when the run is saved.
	ID string

	// Source is the input file the records were parsed from.
	Source string

	// CreatedAt is the time the run was saved.
	CreatedAt time.Time

	// Records are the usage records of the run, sorted.
	Records []usage.Record
}

// ByLabel returns the memory of each label in the run.
func (r *Run) ByLabel() map[string]int {
	m := make(map[string]int, len(r.Records))
	for _, rec := range r.Records {
		m[rec.Label] = rec.MiB
	}
	return m
}

// Open opens or creates the history database at path.
func Open(path string, opts Options) (*DB, error) {
	if !opts.CreateIfNotExists {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("history database not found at %s", path)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check history path: %w", err)
		}
	} else if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	dsn := path + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = path + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)

	h := &DB{db: db, path: path}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := h.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return h, nil
}

// Close closes the database connection.
func (h *DB) Close() error {
	return h.db.Close()
}

// Path returns the database file path.
func (h *DB) Path() string {
	return h.path
}

func (h *DB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS usage_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		label TEXT NOT NULL,
		mib INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_run ON usage_records(run_id);
	CREATE INDEX IF NOT EXISTS idx_records_label ON usage_records(label);
	`

	_, err := h.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun stores records as a new run in a single transaction.
func (h *DB) SaveRun(ctx context.Context, source string, records []usage.Record) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		Source:    source,
		CreatedAt: time.Now().UTC(),
		Records:   records,
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, created_at) VALUES (?, ?, ?)`,
		run.ID, run.Source, run.CreatedAt.Format(time.RFC3339Nano),
	); err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO usage_records (run_id, label, mib) VALUES (?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare record insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, run.ID, rec.Label, rec.MiB); err != nil {
			return nil, fmt.Errorf("failed to insert record %s: %w", rec.Label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit run: %w", err)
	}
	return run, nil
}

// LatestRun returns the most recently saved run, or ErrNoRuns.
func (h *DB) LatestRun(ctx context.Context) (*Run, error) {
	var (
		run       Run
		createdAt string
	)
	err := h.db.QueryRowContext(ctx,
		`SELECT id, source, created_at FROM runs ORDER BY rowid DESC LIMIT 1`,
	).Scan(&run.ID, &run.Source, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRuns
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w", err)
	}
	run.CreatedAt = parseTimestamp(createdAt)

	run.Records, err = h.records(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// CountRuns returns the number of stored runs.
func (h *DB) CountRuns(ctx context.Context) (int, error) {
	var n int
	if err := h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return n, nil
}

// records loads the records of a run in insertion order.
func (h *DB) records(ctx context.Context, runID string) ([]usage.Record, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT label, mib FROM usage_records WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []usage.Record
	for rows.Next() {
		var rec usage.Record
		if err := rows.Scan(&rec.Label, &rec.MiB); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// parseTimestamp parses a stored RFC 3339 timestamp, returning the zero time
// for unparseable values.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
