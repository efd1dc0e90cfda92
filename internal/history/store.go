package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages build history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond

	// Fixed width so started_at sorts chronologically as text.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

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
	for attempt := range busyRetryAttempts {
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

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores run, replacing an earlier row with the same run ID.
func (s *Store) Record(ctx context.Context, run Run) error {
	if strings.TrimSpace(run.RunID) == "" {
		return errors.New("run id is required")
	}
	if run.Status == "" {
		return errors.New("run status is required")
	}
	var tiers any
	if len(run.Tiers) > 0 {
		data, err := json.Marshal(run.Tiers)
		if err != nil {
			return fmt.Errorf("marshal tiers: %w", err)
		}
		tiers = string(data)
	}

	err := retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(
			ctx,
			`INSERT OR REPLACE INTO builds (
                run_id, status, version, source, started_at, duration_ms,
                records, forms, added, replaced, unchanged, changed_species,
                tiers_json, resource_pack, data_pack, report_path, error_message
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.RunID,
			run.Status,
			nullableString(run.Version),
			nullableString(run.Source),
			run.StartedAt.UTC().Format(timeLayout),
			run.Duration.Milliseconds(),
			run.Records,
			run.Forms,
			run.Added,
			run.Replaced,
			run.Unchanged,
			run.ChangedSpecies,
			tiers,
			nullableString(run.ResourcePack),
			nullableString(run.DataPack),
			nullableString(run.ReportPath),
			nullableString(run.Error),
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("record build: %w", err)
	}
	return nil
}

const runColumns = "run_id, status, version, source, started_at, duration_ms, records, forms, added, replaced, unchanged, changed_species, tiers_json, resource_pack, data_pack, report_path, error_message"

// Get returns the build with runID, or nil when none was recorded.
func (s *Store) Get(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM builds WHERE run_id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get build: %w", err)
	}
	return run, nil
}

// List returns the most recent builds first. A limit of zero or less returns all.
func (s *Store) List(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM builds ORDER BY started_at DESC, run_id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list builds: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Prune deletes all but the newest keep builds.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM builds WHERE run_id NOT IN (
            SELECT run_id FROM builds ORDER BY started_at DESC, run_id LIMIT ?
        )`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune builds: %w", err)
	}
	return res.RowsAffected()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run          Run
		status       string
		version      sql.NullString
		source       sql.NullString
		startedRaw   string
		durationMS   int64
		tiersRaw     sql.NullString
		resourcePack sql.NullString
		dataPack     sql.NullString
		reportPath   sql.NullString
		errorMessage sql.NullString
	)
	if err := scanner.Scan(
		&run.RunID,
		&status,
		&version,
		&source,
		&startedRaw,
		&durationMS,
		&run.Records,
		&run.Forms,
		&run.Added,
		&run.Replaced,
		&run.Unchanged,
		&run.ChangedSpecies,
		&tiersRaw,
		&resourcePack,
		&dataPack,
		&reportPath,
		&errorMessage,
	); err != nil {
		return nil, err
	}

	run.Status = Status(status)
	run.Version = version.String
	run.Source = source.String
	run.Duration = time.Duration(durationMS) * time.Millisecond
	run.ResourcePack = resourcePack.String
	run.DataPack = dataPack.String
	run.ReportPath = reportPath.String
	run.Error = errorMessage.String
	if started, err := time.Parse(timeLayout, startedRaw); err == nil {
		run.StartedAt = started
	}
	if tiersRaw.Valid && tiersRaw.String != "" {
		if err := json.Unmarshal([]byte(tiersRaw.String), &run.Tiers); err != nil {
			return nil, fmt.Errorf("decode tiers for %s: %w", run.RunID, err)
		}
	}
	return &run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
