package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"work-timer/internal/errors"
	"work-timer/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// DateRange bounds ListWorkDays. Empty bounds are open; both are inclusive
// YYYY-MM-DD dates.
type DateRange struct {
	From string
	To   string
}

// Repository defines the interface for database operations
type Repository interface {
	// Write operations
	SaveWorkDay(ctx context.Context, day *WorkDay, sessions []*WorkSession) error

	// Read operations
	GetWorkDay(ctx context.Context, date string) (*WorkDay, error)
	ListWorkDays(ctx context.Context, dates DateRange) ([]*WorkDay, error)
	WorkDayExists(ctx context.Context, date string) (bool, error)
	GetWorkSession(ctx context.Context, id string) (*WorkSession, error)
	ListWorkSessionsByDate(ctx context.Context, date string) ([]*WorkSession, error)

	// Delete operations
	DeleteWorkDay(ctx context.Context, date string) error
	DeleteWorkSession(ctx context.Context, id string) error

	// Utility
	Close() error
}

// Options tunes a repository opened with NewWithConfig.
type Options struct {
	QueryTimeout   time.Duration
	WriteTimeout   time.Duration
	DirPermissions os.FileMode
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		QueryTimeout:   10 * time.Second,
		WriteTimeout:   5 * time.Second,
		DirPermissions: 0755,
	}
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
}

// New creates a new SQLite repository instance with default options
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithConfig(dbPath, DefaultOptions())
}

// NewWithConfig opens dbPath, creating its directory if needed, and runs
// pending migrations.
func NewWithConfig(dbPath string, opts Options) (*SQLiteRepository, error) {
	if dbPath != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), opts.DirPermissions); err != nil {
			return nil, errors.NewDatabaseError("create database directory", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// One connection keeps an in-memory database alive across calls and
	// serializes writers on file databases.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("enable foreign keys", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, opts: opts}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) readContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.opts.QueryTimeout)
}

func (r *SQLiteRepository) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.WriteTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.opts.WriteTimeout)
}

// SaveWorkDay upserts the day row and replaces its sessions in one transaction.
func (r *SQLiteRepository) SaveWorkDay(ctx context.Context, day *WorkDay, sessions []*WorkSession) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}
	defer tx.Rollback()

	upsert := `
	INSERT INTO work_days (date, status, pause_deduction_applied, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(date) DO UPDATE SET
		status = excluded.status,
		pause_deduction_applied = excluded.pause_deduction_applied,
		updated_at = excluded.updated_at`
	if err := Execute(ctx, tx, "save work day", upsert, day.Date, day.Status, boolToInt(day.PauseDeductionApplied), FormatTimeForDB(day.UpdatedAt)); err != nil {
		return err
	}

	if err := Execute(ctx, tx, "clear work sessions", `DELETE FROM work_sessions WHERE work_date = ?`, day.Date); err != nil {
		return err
	}

	insert := `
	INSERT INTO work_sessions (id, work_date, start_time, end_time, duration_ms, is_current, position)
	VALUES (?, ?, ?, ?, ?, ?, ?)`
	for _, s := range sessions {
		if s.WorkDate != day.Date {
			return errors.NewInvalidWorkDayError(day.Date, "session "+s.ID+" belongs to "+s.WorkDate)
		}
		if err := Execute(ctx, tx, "save work session", insert,
			s.ID, s.WorkDate, FormatTimeForDB(s.StartTime), FormatTimePtrForDB(s.EndTime), s.DurationMs, boolToInt(s.IsCurrent), s.Position); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit work day", err)
	}
	return nil
}

// GetWorkDay retrieves a work day by date
func (r *SQLiteRepository) GetWorkDay(ctx context.Context, date string) (*WorkDay, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `
	SELECT date, status, pause_deduction_applied, updated_at
	FROM work_days
	WHERE date = ?`

	return QuerySingle(ctx, r.db, query, ScanWorkDay, "work day", date, date)
}

// ListWorkDays retrieves work days within dates, oldest first
func (r *SQLiteRepository) ListWorkDays(ctx context.Context, dates DateRange) ([]*WorkDay, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `
	SELECT date, status, pause_deduction_applied, updated_at
	FROM work_days
	WHERE (? = '' OR date >= ?) AND (? = '' OR date <= ?)
	ORDER BY date ASC`

	return QueryMultiple(ctx, r.db, query, ScanWorkDays, "work days", dates.From, dates.From, dates.To, dates.To)
}

// WorkDayExists reports whether a row exists for date
func (r *SQLiteRepository) WorkDayExists(ctx context.Context, date string) (bool, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM work_days WHERE date = ?)`, date).Scan(&exists)
	if err != nil {
		return false, HandleDatabaseError("check work day", err)
	}
	return exists == 1, nil
}

// GetWorkSession retrieves a work session by id
func (r *SQLiteRepository) GetWorkSession(ctx context.Context, id string) (*WorkSession, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `
	SELECT id, work_date, start_time, end_time, duration_ms, is_current, position
	FROM work_sessions
	WHERE id = ?`

	return QuerySingle(ctx, r.db, query, ScanWorkSession, "work session", id, id)
}

// ListWorkSessionsByDate retrieves the sessions of a day in position order
func (r *SQLiteRepository) ListWorkSessionsByDate(ctx context.Context, date string) ([]*WorkSession, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `
	SELECT id, work_date, start_time, end_time, duration_ms, is_current, position
	FROM work_sessions
	WHERE work_date = ?
	ORDER BY position ASC`

	return QueryMultiple(ctx, r.db, query, ScanWorkSessions, "work sessions", date)
}

// DeleteWorkDay deletes a work day and its sessions
func (r *SQLiteRepository) DeleteWorkDay(ctx context.Context, date string) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}
	defer tx.Rollback()

	if err := Execute(ctx, tx, "delete work sessions", `DELETE FROM work_sessions WHERE work_date = ?`, date); err != nil {
		return err
	}
	if err := ExecuteWithRowsAffected(ctx, tx, `DELETE FROM work_days WHERE date = ?`, "work day", date, date); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit delete", err)
	}
	return nil
}

// DeleteWorkSession deletes a work session by id
func (r *SQLiteRepository) DeleteWorkSession(ctx context.Context, id string) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `DELETE FROM work_sessions WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "work session", id, id)
}
