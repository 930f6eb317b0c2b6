package runtime

import (
	"context"
	"fmt"
)

// Execer executes a statement that returns no rows.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
}

// Row is a single result row. Scan returns ErrNotFound when the query
// matched nothing.
type Row interface {
	Scan(dest ...any) error
}

// Querier runs a query that returns at most one row.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// Session is one open database session. It is not safe for concurrent use;
// the workload drives it from a single goroutine.
type Session interface {
	Execer
	Querier

	// InTx runs fn inside a transaction and commits when fn returns nil.
	InTx(ctx context.Context, fn func(tx Execer) error) error

	// Close releases the session.
	Close(ctx context.Context) error

	// Driver returns the driver name the session was opened with.
	Driver() string
}

// Connect opens a single session for config.
func Connect(ctx context.Context, config *Config) (Session, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Driver {
	case DriverPostgres:
		return ConnectPgx(ctx, buildConnectionString(config))
	case DriverOracle:
		return OpenSQL(ctx, "oracle", buildOracleURL(config))
	case DriverSQLite:
		return OpenSQL(ctx, sqliteDriverName(config.DSN), config.DSN)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, config.Driver)
	}
}

// TraceFunc receives every statement a traced session runs.
type TraceFunc func(sql string, args []any)

// WithTrace wraps s so that every statement is passed to fn before it runs.
func WithTrace(s Session, fn TraceFunc) Session {
	if fn == nil {
		return s
	}
	return &tracedSession{Session: s, trace: fn}
}

type tracedSession struct {
	Session
	trace TraceFunc
}

func (t *tracedSession) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	t.trace(sql, args)
	return t.Session.Exec(ctx, sql, args...)
}

func (t *tracedSession) QueryRow(ctx context.Context, sql string, args ...any) Row {
	t.trace(sql, args)
	return t.Session.QueryRow(ctx, sql, args...)
}

func (t *tracedSession) InTx(ctx context.Context, fn func(tx Execer) error) error {
	return t.Session.InTx(ctx, func(tx Execer) error {
		return fn(&tracedExecer{Execer: tx, trace: t.trace})
	})
}

type tracedExecer struct {
	Execer
	trace TraceFunc
}

func (t *tracedExecer) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	t.trace(sql, args)
	return t.Execer.Exec(ctx, sql, args...)
}
