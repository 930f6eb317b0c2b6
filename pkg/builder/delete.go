package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/marshallshelly/pebble-churn/pkg/runtime"
)

// Where adds a WHERE condition to the DELETE query.
func (q *DeleteQuery[T]) Where(condition Condition) *DeleteQuery[T] {
	q.where = append(q.where, condition)
	return q
}

// And adds an AND condition.
func (q *DeleteQuery[T]) And(condition Condition) *DeleteQuery[T] {
	condition.Logic = LogicAnd
	return q.Where(condition)
}

// Or adds an OR condition.
func (q *DeleteQuery[T]) Or(condition Condition) *DeleteQuery[T] {
	condition.Logic = LogicOr
	return q.Where(condition)
}

// ToSQL generates the DELETE SQL and arguments. A DELETE without a WHERE
// clause is refused; churn only ever deletes rows it picked.
func (q *DeleteQuery[T]) ToSQL() (string, []any, error) {
	if q.err != nil {
		return "", nil, q.err
	}
	if q.table == nil {
		return "", nil, fmt.Errorf("table metadata not available")
	}
	if len(q.where) == 0 {
		return "", nil, fmt.Errorf("refusing DELETE on %s without WHERE", q.table.Name)
	}

	var sql strings.Builder
	sql.WriteString("DELETE FROM ")
	sql.WriteString(q.b.TableName(q.table))

	whereSQL, args, err := newWhereBuilderFrom(newParams(q.b.dialect, 1), q.where).Build()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build WHERE clause: %w", err)
	}
	sql.WriteString(" ")
	sql.WriteString(whereSQL)

	return sql.String(), args, nil
}

// Exec executes the DELETE and returns the number of affected rows.
func (q *DeleteQuery[T]) Exec(ctx context.Context, x runtime.Execer) (int64, error) {
	sql, args, err := q.ToSQL()
	if err != nil {
		return 0, err
	}
	return x.Exec(ctx, sql, args...)
}
