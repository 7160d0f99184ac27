package runs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"newsreel/internal/config"
)

// Store manages run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// ErrNotFound indicates no run exists with the requested ID.
var ErrNotFound = errors.New("run not found")

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx = ensureContext(ctx)
	var (
		res     sql.Result
		execErr error
	)
	if err := retryOnBusy(ctx, func() error {
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return nil, err
	}
	return res, nil
}

// Open initializes or connects to the run database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.Paths.DatabasePath)
}

// OpenPath connects to a run database at an explicit location.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Create records a new pending run and returns it with a fresh ID.
func (s *Store) Create(ctx context.Context, title, wordsPath, planPath string) (*Run, error) {
	now := time.Now().UTC()
	run := &Run{
		ID:        uuid.NewString(),
		Title:     title,
		Status:    StatusPending,
		WordsPath: wordsPath,
		PlanPath:  planPath,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.execWithRetry(ctx,
		`INSERT INTO runs (id, title, status, stage, words_path, plan_path, timeline_path, error_message, created_at, updated_at)
		 VALUES (?, ?, ?, '', ?, ?, '', '', ?, ?)`,
		run.ID, run.Title, string(run.Status), run.WordsPath, run.PlanPath,
		run.CreatedAt.Format(time.RFC3339Nano), run.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// SetStatus transitions a run to a new lifecycle state. Stage names the
// pipeline step currently executing; it may be empty for terminal states.
func (s *Store) SetStatus(ctx context.Context, id string, status Status, stage string) error {
	if !status.Valid() {
		return fmt.Errorf("invalid run status %q", status)
	}
	res, err := s.execWithRetry(ctx,
		"UPDATE runs SET status = ?, stage = ?, updated_at = ? WHERE id = ?",
		string(status), stage, time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("update run status: %w", err)
	}
	return requireRowAffected(res, id)
}

// SetFailure marks a run failed with the given message.
func (s *Store) SetFailure(ctx context.Context, id, message string) error {
	res, err := s.execWithRetry(ctx,
		"UPDATE runs SET status = ?, error_message = ?, updated_at = ? WHERE id = ?",
		string(StatusFailed), message, time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("record run failure: %w", err)
	}
	return requireRowAffected(res, id)
}

// SetTimelinePath records the composed timeline artifact for a run.
func (s *Store) SetTimelinePath(ctx context.Context, id, path string) error {
	res, err := s.execWithRetry(ctx,
		"UPDATE runs SET timeline_path = ?, updated_at = ? WHERE id = ?",
		path, time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("record timeline path: %w", err)
	}
	return requireRowAffected(res, id)
}

// Get returns a single run by ID.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		selectColumns+" FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	return run, nil
}

// List returns runs newest first, optionally filtered by status.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*Run, error) {
	ctx = ensureContext(ctx)

	query := selectColumns + " FROM runs"
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, status := range statuses {
			placeholders[i] = "?"
			args = append(args, string(status))
		}
		query += " WHERE status IN (" + strings.Join(placeholders, ", ") + ")"
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var result []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		result = append(result, run)
	}
	return result, rows.Err()
}

// Clear deletes terminal runs. With all set, every run goes.
func (s *Store) Clear(ctx context.Context, all bool) (int64, error) {
	query := "DELETE FROM runs WHERE status IN (?, ?)"
	args := []any{string(StatusCompleted), string(StatusFailed)}
	if all {
		query = "DELETE FROM runs"
		args = nil
	}
	res, err := s.execWithRetry(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	return res.RowsAffected()
}

const selectColumns = "SELECT id, title, status, stage, words_path, plan_path, timeline_path, error_message, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		run        Run
		status     string
		createdRaw string
		updatedRaw string
	)
	if err := row.Scan(&run.ID, &run.Title, &status, &run.Stage,
		&run.WordsPath, &run.PlanPath, &run.TimelinePath, &run.ErrorMessage,
		&createdRaw, &updatedRaw); err != nil {
		return nil, err
	}
	run.Status = Status(status)
	created, err := time.Parse(time.RFC3339Nano, createdRaw)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	updated, err := time.Parse(time.RFC3339Nano, updatedRaw)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	run.CreatedAt = created
	run.UpdatedAt = updated
	return &run, nil
}

func requireRowAffected(res sql.Result, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
