package store

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/marshallshelly/pebble-churn/pkg/runtime"
)

// SQLiteSchema creates churn's four tables in a SQLite database.
//
//go:embed sqlite_schema.sql
var SQLiteSchema string

// InitSQLite creates any missing churn table on a SQLite session.
func InitSQLite(ctx context.Context, session runtime.Session) error {
	if session.Driver() != runtime.DriverSQLite {
		return fmt.Errorf("%w: schema bootstrap needs sqlite, got %s", runtime.ErrUnsupportedDriver, session.Driver())
	}
	if _, err := session.Exec(ctx, SQLiteSchema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}
