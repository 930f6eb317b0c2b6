// Package migration creates the churn tables on a PostgreSQL database that
// does not have them yet.
package migration

import (
	"fmt"
	"strings"

	"github.com/marshallshelly/pebble-churn/pkg/schema"
)

// PlannerOptions configures DDL generation.
type PlannerOptions struct {
	// IfNotExists adds IF NOT EXISTS to CREATE statements so that a
	// bootstrap can run against a partially created schema.
	IfNotExists bool
}

// Planner generates PostgreSQL DDL from table metadata.
type Planner struct {
	schemaName string
	options    PlannerOptions
}

// NewPlanner creates a planner for tables in schemaName ("" for the search
// path).
func NewPlanner(schemaName string) *Planner {
	return &Planner{
		schemaName: schemaName,
		options:    PlannerOptions{IfNotExists: true},
	}
}

// NewPlannerWithOptions creates a planner with custom options.
func NewPlannerWithOptions(schemaName string, opts PlannerOptions) *Planner {
	return &Planner{schemaName: schemaName, options: opts}
}

// Plan returns the statements creating the schema and tables. Tables must
// be ordered parents first.
func (p *Planner) Plan(tables []*schema.TableMetadata) []string {
	var stmts []string
	if p.schemaName != "" {
		stmts = append(stmts, fmt.Sprintf("CREATE SCHEMA%s %s", p.ifNotExists(), p.schemaName))
	}
	for _, t := range tables {
		stmts = append(stmts, p.createTable(t))
	}
	return stmts
}

func (p *Planner) ifNotExists() string {
	if p.options.IfNotExists {
		return " IF NOT EXISTS"
	}
	return ""
}

func (p *Planner) createTable(table *schema.TableMetadata) string {
	var parts []string

	idColumn := table.IDColumn()
	for _, col := range table.Columns {
		def := columnDefinition(col)
		if idColumn != "" && col.Name == idColumn {
			def += " PRIMARY KEY"
		}
		parts = append(parts, "    "+def)
	}

	// Composite keys get a table constraint.
	if table.PrimaryKey != nil && len(table.PrimaryKey.Columns) > 1 {
		parts = append(parts, fmt.Sprintf("    CONSTRAINT %s PRIMARY KEY (%s)",
			table.PrimaryKey.Name, strings.Join(table.PrimaryKey.Columns, ", ")))
	}

	for _, fk := range table.ForeignKeys {
		parts = append(parts, "    "+p.foreignKey(fk))
	}

	return fmt.Sprintf("CREATE TABLE%s %s (\n%s\n)",
		p.ifNotExists(), schema.Qualify(p.schemaName, table.Name), strings.Join(parts, ",\n"))
}

func columnDefinition(col schema.ColumnMetadata) string {
	sqlType := col.SQLType
	if sqlType == "" {
		sqlType = "text"
	}
	parts := []string{col.Name, sqlType}
	if !col.Nullable && !col.AutoIncrement {
		parts = append(parts, "NOT NULL")
	}
	return strings.Join(parts, " ")
}

func (p *Planner) foreignKey(fk schema.ForeignKeyMetadata) string {
	return fmt.Sprintf("CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
		fk.Name,
		strings.Join(fk.Columns, ", "),
		schema.Qualify(p.schemaName, fk.ReferencedTable),
		strings.Join(fk.ReferencedColumns, ", "))
}
