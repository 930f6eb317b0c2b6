package builder

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/marshallshelly/pebble-churn/pkg/runtime"
	"github.com/marshallshelly/pebble-churn/pkg/schema"
)

// Values sets the rows to insert.
func (q *InsertQuery[T]) Values(values ...T) *InsertQuery[T] {
	q.values = append(q.values, values...)
	return q
}

// insertColumn is one column of the INSERT column list. Either expr is a
// raw SQL expression (a sequence draw) or the value comes from field.
type insertColumn struct {
	name  string
	expr  string
	field string
	typ   reflect.Type
}

// columns decides which columns the INSERT names. Auto-generated ids are
// left out unless the dialect draws them from a sequence.
func (q *InsertQuery[T]) columns() []insertColumn {
	cols := make([]insertColumn, 0, len(q.table.Columns))
	for _, col := range q.table.Columns {
		if col.AutoIncrement {
			if col.Sequence == "" {
				continue
			}
			next := q.b.dialect.NextVal(schema.Qualify(q.b.schema, col.Sequence))
			if next == "" {
				continue
			}
			cols = append(cols, insertColumn{name: col.Name, expr: next})
			continue
		}
		cols = append(cols, insertColumn{name: col.Name, field: col.GoField, typ: col.GoType})
	}
	return cols
}

// ToSQL generates the INSERT SQL and arguments.
//
// Dialects without array binding get one multi-row VALUES list. With array
// binding the statement has a single row of placeholders and each argument
// is a slice holding that column's value for every row.
func (q *InsertQuery[T]) ToSQL() (string, []any, error) {
	if q.err != nil {
		return "", nil, q.err
	}
	if q.table == nil {
		return "", nil, fmt.Errorf("table metadata not available")
	}
	if len(q.values) == 0 {
		return "", nil, fmt.Errorf("no values to insert")
	}

	cols := q.columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}

	rows := make([]reflect.Value, len(q.values))
	for i, v := range q.values {
		rv := reflect.ValueOf(v)
		for rv.Kind() == reflect.Pointer {
			rv = rv.Elem()
		}
		if rv.Kind() != reflect.Struct {
			return "", nil, fmt.Errorf("row %d: model must be a struct", i)
		}
		rows[i] = rv
	}

	var sql strings.Builder
	sql.WriteString("INSERT INTO ")
	sql.WriteString(q.b.TableName(q.table))
	sql.WriteString(" (")
	sql.WriteString(strings.Join(names, ", "))
	sql.WriteString(") VALUES ")

	p := newParams(q.b.dialect, 1)

	if q.b.dialect.ArrayBinding() {
		placeholders := make([]string, len(cols))
		var args []any
		for i, c := range cols {
			if c.expr != "" {
				placeholders[i] = c.expr
				continue
			}
			column := reflect.MakeSlice(reflect.SliceOf(c.typ), len(rows), len(rows))
			for r, row := range rows {
				column.Index(r).Set(row.FieldByName(c.field))
			}
			placeholders[i] = p.next()
			args = append(args, column.Interface())
		}
		sql.WriteString("(" + strings.Join(placeholders, ", ") + ")")
		return sql.String(), args, nil
	}

	var args []any
	valueClauses := make([]string, len(rows))
	for r, row := range rows {
		placeholders := make([]string, len(cols))
		for i, c := range cols {
			if c.expr != "" {
				placeholders[i] = c.expr
				continue
			}
			placeholders[i] = p.next()
			args = append(args, row.FieldByName(c.field).Interface())
		}
		valueClauses[r] = "(" + strings.Join(placeholders, ", ") + ")"
	}
	sql.WriteString(strings.Join(valueClauses, ", "))

	return sql.String(), args, nil
}

// Exec executes the INSERT and returns the number of inserted rows.
func (q *InsertQuery[T]) Exec(ctx context.Context, x runtime.Execer) (int64, error) {
	sql, args, err := q.ToSQL()
	if err != nil {
		return 0, err
	}
	return x.Exec(ctx, sql, args...)
}
