// Package schema extracts table metadata from po-tagged Go structs.
package schema

import (
	"reflect"
)

// TableMetadata describes a table mapped from a Go struct.
type TableMetadata struct {
	Name        string
	GoType      reflect.Type
	Columns     []ColumnMetadata
	PrimaryKey  *PrimaryKeyMetadata
	ForeignKeys []ForeignKeyMetadata
}

// ColumnMetadata describes one mapped column.
type ColumnMetadata struct {
	Name          string
	GoField       string
	GoType        reflect.Type
	SQLType       string
	Position      int
	Nullable      bool
	AutoIncrement bool   // serial / identity, omitted from INSERT
	Sequence      string // sequence feeding the column where the dialect needs one
}

// PrimaryKeyMetadata describes the primary key.
type PrimaryKeyMetadata struct {
	Name    string
	Columns []string
}

// ForeignKeyMetadata describes a reference from this table to another.
type ForeignKeyMetadata struct {
	Name              string
	Columns           []string
	ReferencedTable   string
	ReferencedColumns []string
}

// IsPrimaryKey reports whether column is part of the primary key.
func (t *TableMetadata) IsPrimaryKey(column string) bool {
	if t.PrimaryKey == nil {
		return false
	}
	for _, c := range t.PrimaryKey.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// IDColumn returns the single primary key column, or "" when the key is
// missing or composite.
func (t *TableMetadata) IDColumn() string {
	if t.PrimaryKey == nil || len(t.PrimaryKey.Columns) != 1 {
		return ""
	}
	return t.PrimaryKey.Columns[0]
}

// Column looks a column up by name.
func (t *TableMetadata) Column(name string) (ColumnMetadata, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnMetadata{}, false
}

// Qualify prefixes name with schemaName when one is set.
func Qualify(schemaName, name string) string {
	if schemaName == "" {
		return name
	}
	return schemaName + "." + name
}
