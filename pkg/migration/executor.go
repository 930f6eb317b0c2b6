package migration

import (
	"context"
	"fmt"

	"github.com/marshallshelly/pebble-churn/pkg/runtime"
	"github.com/marshallshelly/pebble-churn/pkg/schema"
)

// Executor applies planned DDL to a session.
type Executor struct {
	session runtime.Session
	planner *Planner
}

// NewExecutor creates an executor for tables in schemaName.
func NewExecutor(session runtime.Session, schemaName string) *Executor {
	return &Executor{
		session: session,
		planner: NewPlanner(schemaName),
	}
}

// Bootstrap creates the schema and any missing tables in one transaction.
// Only PostgreSQL is supported; other databases bring their own DDL.
func (e *Executor) Bootstrap(ctx context.Context, tables []*schema.TableMetadata) error {
	if e.session == nil {
		return runtime.ErrNoConnection
	}
	if d := e.session.Driver(); d != runtime.DriverPostgres {
		return fmt.Errorf("%w: cannot bootstrap tables on %s", runtime.ErrUnsupportedDriver, d)
	}

	stmts := e.planner.Plan(tables)
	return e.session.InTx(ctx, func(tx runtime.Execer) error {
		for _, stmt := range stmts {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("bootstrap failed: %w", err)
			}
		}
		return nil
	})
}
