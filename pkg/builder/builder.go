package builder

import (
	"fmt"

	"github.com/marshallshelly/pebble-churn/pkg/registry"
	"github.com/marshallshelly/pebble-churn/pkg/schema"
)

// Builder creates queries for one dialect and database schema.
type Builder struct {
	dialect Dialect
	schema  string
}

// New creates a Builder. Table and sequence names are prefixed with
// schemaName when it is not empty.
func New(dialect Dialect, schemaName string) *Builder {
	return &Builder{dialect: dialect, schema: schemaName}
}

// Dialect returns the builder's dialect.
func (b *Builder) Dialect() Dialect {
	return b.dialect
}

// Schema returns the schema prefix, possibly empty.
func (b *Builder) Schema() string {
	return b.schema
}

// TableName returns the schema-qualified name of table.
func (b *Builder) TableName(table *schema.TableMetadata) string {
	return schema.Qualify(b.schema, table.Name)
}

func tableFor[T any]() (*schema.TableMetadata, error) {
	var model T
	table, err := registry.GetOrRegister(model)
	if err != nil {
		return nil, fmt.Errorf("table metadata not available: %w", err)
	}
	return table, nil
}

// Select creates a SELECT query over the table mapped by T.
// Usage: builder.Select[models.Product](b).Columns("product_id").OrderRandom().Limit(1)
func Select[T any](b *Builder) *SelectQuery {
	table, err := tableFor[T]()
	if err != nil {
		return &SelectQuery{b: b}
	}
	return SelectFrom(b, table)
}

// SelectFrom creates a SELECT query over table.
func SelectFrom(b *Builder, table *schema.TableMetadata) *SelectQuery {
	return &SelectQuery{
		b:       b,
		table:   table,
		columns: []string{"*"},
		where:   make([]Condition, 0),
	}
}

// Insert creates a batched INSERT query.
// Usage: builder.Insert[models.Product](b).Values(p1, p2).Exec(ctx, tx)
func Insert[T any](b *Builder) *InsertQuery[T] {
	table, err := tableFor[T]()
	return &InsertQuery[T]{
		b:      b,
		table:  table,
		values: make([]T, 0),
		err:    err,
	}
}

// Update creates an UPDATE query.
// Usage: builder.Update[models.Customer](b).SetExpr("credit_limit", "credit_limit + ?", 10).Where(Eq("customer_id", id))
func Update[T any](b *Builder) *UpdateQuery[T] {
	table, err := tableFor[T]()
	return &UpdateQuery[T]{
		b:     b,
		table: table,
		where: make([]Condition, 0),
		err:   err,
	}
}

// Delete creates a DELETE query.
// Usage: builder.Delete[models.Order](b).Where(InSlice("order_id", ids)).Exec(ctx, tx)
func Delete[T any](b *Builder) *DeleteQuery[T] {
	table, err := tableFor[T]()
	return &DeleteQuery[T]{
		b:     b,
		table: table,
		where: make([]Condition, 0),
		err:   err,
	}
}
