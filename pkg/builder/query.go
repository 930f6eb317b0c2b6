// Package builder builds the parameterized statements churn runs, for
// PostgreSQL, Oracle and SQLite.
package builder

import (
	"context"

	"github.com/marshallshelly/pebble-churn/pkg/runtime"
	"github.com/marshallshelly/pebble-churn/pkg/schema"
)

// Query represents a generic database query.
type Query interface {
	// ToSQL generates the SQL query and parameter values.
	ToSQL() (sql string, args []any, err error)
}

// Executable represents a query that can be executed.
type Executable interface {
	Query
	// Exec executes the query and returns the number of affected rows.
	Exec(ctx context.Context, x runtime.Execer) (int64, error)
}

// SelectQuery represents a SELECT query.
type SelectQuery struct {
	b           *Builder
	table       *schema.TableMetadata
	columns     []string
	where       []Condition
	orderRandom bool
	limit       int
}

// InsertQuery represents a batched INSERT query.
type InsertQuery[T any] struct {
	b      *Builder
	table  *schema.TableMetadata
	values []T
	err    error
}

// UpdateQuery represents an UPDATE query.
type UpdateQuery[T any] struct {
	b     *Builder
	table *schema.TableMetadata
	sets  []setClause
	where []Condition
	err   error
}

// DeleteQuery represents a DELETE query.
type DeleteQuery[T any] struct {
	b     *Builder
	table *schema.TableMetadata
	where []Condition
	err   error
}

// setClause is one "column = expr" assignment. Every "?" in Expr is bound
// to the next value of Args.
type setClause struct {
	Column string
	Expr   string
	Args   []any
}

// Condition represents a WHERE condition.
type Condition struct {
	Column   string
	Operator Operator
	Value    any
	Logic    LogicOperator
}

// Operator represents a comparison operator.
type Operator string

const (
	// OpEqual represents the = operator.
	OpEqual Operator = "="
	// OpNotEqual represents the != operator.
	OpNotEqual Operator = "!="
	// OpGreaterThan represents the > operator.
	OpGreaterThan Operator = ">"
	// OpGreaterThanOrEqual represents the >= operator.
	OpGreaterThanOrEqual Operator = ">="
	// OpLessThan represents the < operator.
	OpLessThan Operator = "<"
	// OpLessThanOrEqual represents the <= operator.
	OpLessThanOrEqual Operator = "<="
	// OpIn represents the IN operator.
	OpIn Operator = "IN"
	// OpNotIn represents the NOT IN operator.
	OpNotIn Operator = "NOT IN"
	// OpIsNull represents the IS NULL operator.
	OpIsNull Operator = "IS NULL"
	// OpIsNotNull represents the IS NOT NULL operator.
	OpIsNotNull Operator = "IS NOT NULL"
)

// LogicOperator represents a logical operator (AND/OR).
type LogicOperator string

const (
	// LogicAnd represents the AND operator.
	LogicAnd LogicOperator = "AND"
	// LogicOr represents the OR operator.
	LogicOr LogicOperator = "OR"
)
