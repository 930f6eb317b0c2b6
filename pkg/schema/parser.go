package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

const (
	// StructTagKey is the key used in struct tags (e.g., `po:"..."`).
	StructTagKey = "po"
)

// Parser parses struct definitions to extract table metadata.
type Parser struct {
	mu    sync.Mutex
	cache map[reflect.Type]*TableMetadata
}

// NewParser creates a new Parser instance.
func NewParser() *Parser {
	return &Parser{
		cache: make(map[reflect.Type]*TableMetadata),
	}
}

var (
	tableNamesMu     sync.RWMutex
	customTableNames = make(map[string]string) // Struct name → table name
)

// RegisterTableName registers a custom table name for a struct type.
//
//	func init() {
//	    schema.RegisterTableName("Product", "products")
//	}
func RegisterTableName(structName, tableName string) {
	tableNamesMu.Lock()
	defer tableNamesMu.Unlock()
	customTableNames[structName] = tableName
}

// Parse extracts TableMetadata from a Go struct type.
func (p *Parser) Parse(modelType reflect.Type) (*TableMetadata, error) {
	for modelType.Kind() == reflect.Pointer {
		modelType = modelType.Elem()
	}
	if modelType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be a struct, got %s", modelType.Kind())
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if cached, ok := p.cache[modelType]; ok {
		return cached, nil
	}

	table := &TableMetadata{
		Name:        extractTableName(modelType),
		GoType:      modelType,
		Columns:     make([]ColumnMetadata, 0, modelType.NumField()),
		ForeignKeys: make([]ForeignKeyMetadata, 0),
	}

	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		if !field.IsExported() {
			continue
		}

		tagValue := field.Tag.Get(StructTagKey)
		if tagValue == "" || tagValue == "-" {
			continue
		}

		opts, err := parseTag(tagValue)
		if err != nil {
			return nil, fmt.Errorf("failed to parse tag for field %s: %w", field.Name, err)
		}

		column := createColumnMetadata(field, opts, i)

		if opts.Has("primaryKey") {
			if table.PrimaryKey == nil {
				table.PrimaryKey = &PrimaryKeyMetadata{
					Columns: []string{column.Name},
					Name:    table.Name + "_pkey",
				}
			} else {
				table.PrimaryKey.Columns = append(table.PrimaryKey.Columns, column.Name)
			}
		}

		if fk, ok, err := parseForeignKey(table.Name, column.Name, opts); err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		} else if ok {
			table.ForeignKeys = append(table.ForeignKeys, fk)
		}

		table.Columns = append(table.Columns, column)
	}

	if len(table.Columns) == 0 {
		return nil, fmt.Errorf("model %s has no po-tagged fields", modelType.Name())
	}

	p.cache[modelType] = table
	return table, nil
}

// extractTableName returns the registered table name, falling back to the
// snake_case struct name.
func extractTableName(modelType reflect.Type) string {
	structName := modelType.Name()

	tableNamesMu.RLock()
	name, ok := customTableNames[structName]
	tableNamesMu.RUnlock()
	if ok {
		return name
	}

	return toSnakeCase(structName)
}

func createColumnMetadata(field reflect.StructField, opts *TagOptions, position int) ColumnMetadata {
	column := ColumnMetadata{
		Name:     opts.Name,
		GoField:  field.Name,
		GoType:   field.Type,
		SQLType:  opts.GetSQLType(),
		Position: position,
	}
	if column.Name == "" {
		column.Name = toSnakeCase(field.Name)
	}

	column.Nullable = !opts.Has("notNull") && !opts.Has("primaryKey")
	if field.Type.Kind() == reflect.Pointer {
		column.Nullable = true
	}

	column.AutoIncrement = opts.Has("autoIncrement") || opts.Has("serial") || opts.Has("identity")
	column.Sequence = opts.Get("sequence")

	return column
}

// parseForeignKey reads "fk:table.column" or "fk:table(column)".
func parseForeignKey(tableName, columnName string, opts *TagOptions) (ForeignKeyMetadata, bool, error) {
	fkStr := opts.Get("fk")
	if fkStr == "" {
		return ForeignKeyMetadata{}, false, nil
	}

	var refTable, refColumn string
	if idx := strings.Index(fkStr, "("); idx > 0 && strings.HasSuffix(fkStr, ")") {
		refTable = fkStr[:idx]
		refColumn = fkStr[idx+1 : len(fkStr)-1]
	} else if parts := strings.SplitN(fkStr, ".", 2); len(parts) == 2 {
		refTable = parts[0]
		refColumn = parts[1]
	}

	if refTable == "" || refColumn == "" {
		return ForeignKeyMetadata{}, false, fmt.Errorf("invalid foreign key reference %q", fkStr)
	}

	return ForeignKeyMetadata{
		Name:              fmt.Sprintf("fk_%s_%s_%s", tableName, columnName, refTable),
		Columns:           []string{columnName},
		ReferencedTable:   refTable,
		ReferencedColumns: []string{refColumn},
	}, true, nil
}

// TagOptions represents parsed tag options.
type TagOptions struct {
	Name    string            // Column name (first element)
	Options map[string]string // Other options
}

// parseTag parses a struct tag value into TagOptions.
// Format: "column_name,option1,option2(value),key:value"
func parseTag(tag string) (*TagOptions, error) {
	parts := splitTag(tag)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty tag value")
	}
	opts := &TagOptions{
		Name:    parts[0],
		Options: make(map[string]string),
	}
	for _, opt := range parts[1:] {
		if idx := strings.Index(opt, "("); idx != -1 {
			if !strings.HasSuffix(opt, ")") {
				return nil, fmt.Errorf("invalid option format: %s", opt)
			}
			opts.Options[opt[:idx]] = opt[idx+1 : len(opt)-1]
		} else if idx := strings.Index(opt, ":"); idx != -1 {
			opts.Options[opt[:idx]] = opt[idx+1:]
		} else {
			opts.Options[opt] = ""
		}
	}
	return opts, nil
}

// Has checks if an option exists.
func (t *TagOptions) Has(key string) bool {
	_, ok := t.Options[key]
	return ok
}

// Get returns the value of an option.
func (t *TagOptions) Get(key string) string {
	return t.Options[key]
}

// GetSQLType returns the SQL type named in the tag options, if any.
func (t *TagOptions) GetSQLType() string {
	sqlTypes := []string{
		"varchar", "text", "char",
		"smallint", "integer", "bigint", "serial", "bigserial",
		"numeric", "decimal", "real", "double precision",
		"boolean", "timestamp", "timestamptz",
	}
	for _, sqlType := range sqlTypes {
		if t.Has(sqlType) {
			if value := t.Get(sqlType); value != "" {
				return fmt.Sprintf("%s(%s)", sqlType, value)
			}
			return sqlType
		}
	}
	return ""
}

// splitTag splits a tag value by commas, handling nested parentheses.
func splitTag(tag string) []string {
	var parts []string
	var current strings.Builder
	depth := 0
	for _, ch := range tag {
		switch ch {
		case '(':
			depth++
			current.WriteRune(ch)
		case ')':
			depth--
			current.WriteRune(ch)
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(current.String()))
				current.Reset()
			} else {
				current.WriteRune(ch)
			}
		default:
			current.WriteRune(ch)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, strings.TrimSpace(current.String()))
	}
	return parts
}

// toSnakeCase converts a string from PascalCase to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, ch := range s {
		if i > 0 && ch >= 'A' && ch <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(ch)
	}
	return strings.ToLower(result.String())
}
