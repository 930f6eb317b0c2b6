package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/marshallshelly/pebble-churn/pkg/runtime"
)

// Columns sets the selected columns.
func (q *SelectQuery) Columns(columns ...string) *SelectQuery {
	q.columns = columns
	return q
}

// Count selects COUNT(*).
func (q *SelectQuery) Count() *SelectQuery {
	q.columns = []string{"COUNT(*)"}
	return q
}

// Where adds a WHERE condition.
func (q *SelectQuery) Where(condition Condition) *SelectQuery {
	q.where = append(q.where, condition)
	return q
}

// And adds an AND condition.
func (q *SelectQuery) And(condition Condition) *SelectQuery {
	condition.Logic = LogicAnd
	return q.Where(condition)
}

// OrderRandom orders rows with the server's random function, so that
// Limit(1) samples one row uniformly.
func (q *SelectQuery) OrderRandom() *SelectQuery {
	q.orderRandom = true
	return q
}

// Limit restricts the result to n rows.
func (q *SelectQuery) Limit(n int) *SelectQuery {
	q.limit = n
	return q
}

// ToSQL generates the SELECT SQL and arguments.
func (q *SelectQuery) ToSQL() (string, []any, error) {
	if q.table == nil {
		return "", nil, fmt.Errorf("table metadata not available")
	}

	var sql strings.Builder
	var args []any

	sql.WriteString("SELECT ")
	sql.WriteString(strings.Join(q.columns, ", "))
	sql.WriteString(" FROM ")
	sql.WriteString(q.b.TableName(q.table))

	if len(q.where) > 0 {
		whereSQL, whereArgs, err := newWhereBuilderFrom(newParams(q.b.dialect, 1), q.where).Build()
		if err != nil {
			return "", nil, fmt.Errorf("failed to build WHERE clause: %w", err)
		}
		sql.WriteString(" ")
		sql.WriteString(whereSQL)
		args = append(args, whereArgs...)
	}

	if q.orderRandom {
		sql.WriteString(" ORDER BY ")
		sql.WriteString(q.b.dialect.RandomOrder())
	}

	if q.limit > 0 {
		sql.WriteString(" ")
		sql.WriteString(q.b.dialect.Limit(q.limit))
	}

	return sql.String(), args, nil
}

// Row executes the query and returns its single row.
func (q *SelectQuery) Row(ctx context.Context, x runtime.Querier) runtime.Row {
	sql, args, err := q.ToSQL()
	if err != nil {
		return errRow{err: err}
	}
	return x.QueryRow(ctx, sql, args...)
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error { return r.err }
