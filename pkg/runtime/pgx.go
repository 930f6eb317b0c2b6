package runtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PgxSession is a Session backed by a single pgx connection.
type PgxSession struct {
	conn *pgx.Conn
}

// ConnectPgx opens one PostgreSQL connection using a connection URL.
func ConnectPgx(ctx context.Context, url string) (*PgxSession, error) {
	config, err := pgx.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection URL: %w", err)
	}

	conn, err := pgx.ConnectConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// Test the connection
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PgxSession{conn: conn}, nil
}

// NewPgxSession wraps an already open connection.
func NewPgxSession(conn *pgx.Conn) *PgxSession {
	return &PgxSession{conn: conn}
}

// Driver implements Session.
func (s *PgxSession) Driver() string { return DriverPostgres }

// Exec executes a query without returning any rows.
func (s *PgxSession) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	if s.conn == nil {
		return 0, ErrNoConnection
	}
	return pgxExec(ctx, s.conn, sql, args...)
}

// QueryRow executes a query that returns at most one row.
func (s *PgxSession) QueryRow(ctx context.Context, sql string, args ...any) Row {
	if s.conn == nil {
		return errRow{err: ErrNoConnection}
	}
	return pgxRow{row: s.conn.QueryRow(ctx, sql, args...), sql: sql}
}

// InTx runs fn in a transaction and commits it.
func (s *PgxSession) InTx(ctx context.Context, fn func(tx Execer) error) error {
	if s.conn == nil {
		return ErrNoConnection
	}

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(pgxTx{tx: tx}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Close closes the connection. Closing twice is a no-op.
func (s *PgxSession) Close(ctx context.Context) error {
	if s.conn == nil {
		return nil
	}
	conn := s.conn
	s.conn = nil
	return conn.Close(ctx)
}

type pgxTx struct {
	tx pgx.Tx
}

func (t pgxTx) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := t.tx.Exec(ctx, sql, args...)
	if err != nil {
		return 0, &QueryError{Query: sql, Err: err}
	}
	return tag.RowsAffected(), nil
}

func pgxExec(ctx context.Context, conn *pgx.Conn, sql string, args ...any) (int64, error) {
	tag, err := conn.Exec(ctx, sql, args...)
	if err != nil {
		return 0, &QueryError{Query: sql, Err: err}
	}
	return tag.RowsAffected(), nil
}

type pgxRow struct {
	row pgx.Row
	sql string
}

func (r pgxRow) Scan(dest ...any) error {
	if err := r.row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return &QueryError{Query: r.sql, Err: err}
	}
	return nil
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error { return r.err }
