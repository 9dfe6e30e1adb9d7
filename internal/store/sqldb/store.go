// Package sqldb implements store.Store on SQLite and PostgreSQL.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/cocktailapp/cocktail-server/internal/store"
)

// timeLayout has fixed-width fractions so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store provides SQL-backed persistence for the cocktail server.
type Store struct {
	db      *sqlx.DB
	dialect Dialect
	logger  *slog.Logger
	now     func() time.Time
}

var _ store.Store = (*Store)(nil)

// Open connects to the database and applies the schema.
// For SQLite dsn is a file path; for PostgreSQL it is a connection URL.
func Open(ctx context.Context, dialect Dialect, dsn string, logger *slog.Logger) (*Store, error) {
	db, err := sqlx.Open(dialect.driverName(), dialect.dsn(dsn))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}

	if dialect == SQLite {
		db.SetMaxOpenConns(4)
		db.SetMaxIdleConns(2)
	} else {
		db.SetMaxOpenConns(16)
		db.SetMaxIdleConns(4)
	}
	db.SetConnMaxLifetime(time.Hour)

	s := New(db, dialect, logger)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Info("database opened", "dialect", string(dialect))
	return s, nil
}

// New wraps an existing connection without touching the schema.
func New(db *sqlx.DB, dialect Dialect, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{db: db, dialect: dialect, logger: logger, now: time.Now}
}

// Migrate applies the schema. Every statement is idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.schema()); err != nil {
		return fmt.Errorf("exec schema: %w", err)
	}
	return nil
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dialect returns the SQL flavor in use.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

func (s *Store) get(ctx context.Context, dest any, query string, args ...any) error {
	return s.db.GetContext(ctx, dest, s.dialect.rebind(query), args...)
}

func (s *Store) selectAll(ctx context.Context, dest any, query string, args ...any) error {
	return s.db.SelectContext(ctx, dest, s.dialect.rebind(query), args...)
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.dialect.rebind(query), args...)
}

// insert runs an INSERT ... RETURNING and scans the new id.
func (s *Store) insert(ctx context.Context, query string, args ...any) (int64, error) {
	var id int64
	err := s.db.QueryRowxContext(ctx, s.dialect.rebind(query), args...).Scan(&id)
	return id, err
}

// in expands slice arguments then rebinds.
func (s *Store) in(query string, args ...any) (string, []any, error) {
	q, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return "", nil, err
	}
	return s.dialect.rebind(q), expanded, nil
}

// mustAffect turns a zero-row write into store.ErrNotFound.
func mustAffect(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// notFound maps sql.ErrNoRows to store.ErrNotFound and passes anything else through.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
