package runtime

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// SQLSession is a Session backed by one database/sql connection. It serves
// the Oracle (go-ora), SQLite (modernc) and libSQL drivers.
type SQLSession struct {
	db     *sql.DB
	conn   *sql.Conn
	driver string
}

// OpenSQL opens driverName with dsn and pins a single connection.
func OpenSQL(ctx context.Context, driverName, dsn string) (*SQLSession, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driverName, err)
	}
	db.SetMaxOpenConns(1)

	s, err := NewSQLSession(ctx, db, driverName)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLSession pins one connection of db. The session owns db and closes
// it on Close.
func NewSQLSession(ctx context.Context, db *sql.DB, driverName string) (*SQLSession, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}

	// Test the connection
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLSession{db: db, conn: conn, driver: normalizeDriver(driverName)}, nil
}

func normalizeDriver(name string) string {
	if name == "libsql" {
		return DriverSQLite
	}
	return name
}

// Driver implements Session.
func (s *SQLSession) Driver() string { return s.driver }

// Exec executes a query without returning any rows.
func (s *SQLSession) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	if s.conn == nil {
		return 0, ErrNoConnection
	}
	return sqlExec(ctx, s.conn, query, args...)
}

// QueryRow executes a query that returns at most one row.
func (s *SQLSession) QueryRow(ctx context.Context, query string, args ...any) Row {
	if s.conn == nil {
		return errRow{err: ErrNoConnection}
	}
	return sqlRow{row: s.conn.QueryRowContext(ctx, query, args...), sql: query}
}

// InTx runs fn in a transaction and commits it.
func (s *SQLSession) InTx(ctx context.Context, fn func(tx Execer) error) error {
	if s.conn == nil {
		return ErrNoConnection
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(sqlTx{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Close releases the connection and the underlying handle. Closing twice
// is a no-op.
func (s *SQLSession) Close(context.Context) error {
	if s.conn == nil {
		return nil
	}
	conn := s.conn
	s.conn = nil

	return errors.Join(conn.Close(), s.db.Close())
}

type sqlExecContext interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func sqlExec(ctx context.Context, e sqlExecContext, query string, args ...any) (int64, error) {
	result, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, &QueryError{Query: query, Err: err}
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, &QueryError{Query: query, Err: err}
	}
	return n, nil
}

type sqlTx struct {
	tx *sql.Tx
}

func (t sqlTx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return sqlExec(ctx, t.tx, query, args...)
}

type sqlRow struct {
	row *sql.Row
	sql string
}

func (r sqlRow) Scan(dest ...any) error {
	if err := r.row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return &QueryError{Query: r.sql, Err: err}
	}
	return nil
}
