package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/marshallshelly/pebble-churn/pkg/runtime"
)

// Set sets a column to a value.
func (q *UpdateQuery[T]) Set(column string, value any) *UpdateQuery[T] {
	return q.SetExpr(column, "?", value)
}

// SetExpr sets a column to a SQL expression. Each "?" in expr is bound to
// the next of args, in order.
func (q *UpdateQuery[T]) SetExpr(column, expr string, args ...any) *UpdateQuery[T] {
	q.sets = append(q.sets, setClause{Column: column, Expr: expr, Args: args})
	return q
}

// Where adds a WHERE condition.
func (q *UpdateQuery[T]) Where(condition Condition) *UpdateQuery[T] {
	q.where = append(q.where, condition)
	return q
}

// And adds an AND condition.
func (q *UpdateQuery[T]) And(condition Condition) *UpdateQuery[T] {
	condition.Logic = LogicAnd
	return q.Where(condition)
}

// ToSQL generates the UPDATE SQL and arguments.
func (q *UpdateQuery[T]) ToSQL() (string, []any, error) {
	if q.err != nil {
		return "", nil, q.err
	}
	if q.table == nil {
		return "", nil, fmt.Errorf("table metadata not available")
	}
	if len(q.sets) == 0 {
		return "", nil, fmt.Errorf("no columns to update")
	}

	var sql strings.Builder
	var args []any
	p := newParams(q.b.dialect, 1)

	sql.WriteString("UPDATE ")
	sql.WriteString(q.b.TableName(q.table))
	sql.WriteString(" SET ")

	setClauses := make([]string, 0, len(q.sets))
	for _, s := range q.sets {
		expr, err := p.bind(s.Expr, len(s.Args))
		if err != nil {
			return "", nil, fmt.Errorf("column %s: %w", s.Column, err)
		}
		setClauses = append(setClauses, s.Column+" = "+expr)
		args = append(args, s.Args...)
	}
	sql.WriteString(strings.Join(setClauses, ", "))

	if len(q.where) > 0 {
		whereSQL, whereArgs, err := newWhereBuilderFrom(p, q.where).Build()
		if err != nil {
			return "", nil, fmt.Errorf("failed to build WHERE clause: %w", err)
		}
		sql.WriteString(" ")
		sql.WriteString(whereSQL)
		args = append(args, whereArgs...)
	}

	return sql.String(), args, nil
}

// Exec executes the UPDATE and returns the number of affected rows.
func (q *UpdateQuery[T]) Exec(ctx context.Context, x runtime.Execer) (int64, error) {
	sql, args, err := q.ToSQL()
	if err != nil {
		return 0, err
	}
	return x.Exec(ctx, sql, args...)
}
