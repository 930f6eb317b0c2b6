package builder

import (
	"fmt"
	"strings"

	"github.com/marshallshelly/pebble-churn/pkg/runtime"
)

// Dialect captures the SQL differences between the supported databases.
type Dialect interface {
	// Name returns the driver name the dialect belongs to.
	Name() string
	// Placeholder returns the bind marker for the n-th (1-based) parameter.
	Placeholder(n int) string
	// RandomOrder returns the ORDER BY expression for uniform random order.
	RandomOrder() string
	// Limit returns the clause restricting a result to n rows.
	Limit(n int) string
	// Greatest returns the SQL for the largest of exprs.
	Greatest(exprs ...string) string
	// ArrayBinding reports whether batched inserts bind one array per
	// column to a single-row statement instead of a multi-row VALUES list.
	ArrayBinding() bool
	// NextVal returns the expression drawing from sequence, or "" when
	// the dialect fills ids without sequences.
	NextVal(sequence string) string
}

var (
	// Postgres is the PostgreSQL dialect.
	Postgres Dialect = postgresDialect{}
	// Oracle is the Oracle dialect.
	Oracle Dialect = oracleDialect{}
	// SQLite is the SQLite / libSQL dialect.
	SQLite Dialect = sqliteDialect{}
)

// DialectFor returns the dialect for a runtime driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case runtime.DriverPostgres:
		return Postgres, nil
	case runtime.DriverOracle:
		return Oracle, nil
	case runtime.DriverSQLite:
		return SQLite, nil
	default:
		return nil, fmt.Errorf("no SQL dialect for driver %q", driver)
	}
}

type postgresDialect struct{}

func (postgresDialect) Name() string             { return runtime.DriverPostgres }
func (postgresDialect) Placeholder(n int) string { return fmt.Sprintf("$%d", n) }
func (postgresDialect) RandomOrder() string      { return "random()" }
func (postgresDialect) Limit(n int) string       { return fmt.Sprintf("LIMIT %d", n) }
func (postgresDialect) ArrayBinding() bool       { return false }
func (postgresDialect) NextVal(string) string    { return "" }
func (postgresDialect) Greatest(exprs ...string) string {
	return "GREATEST(" + strings.Join(exprs, ", ") + ")"
}

type oracleDialect struct{}

func (oracleDialect) Name() string             { return runtime.DriverOracle }
func (oracleDialect) Placeholder(n int) string { return fmt.Sprintf(":%d", n) }
func (oracleDialect) RandomOrder() string      { return "dbms_random.value" }
func (oracleDialect) Limit(n int) string       { return fmt.Sprintf("FETCH FIRST %d ROWS ONLY", n) }
func (oracleDialect) ArrayBinding() bool       { return true }
func (oracleDialect) NextVal(sequence string) string {
	return sequence + ".NEXTVAL"
}
func (oracleDialect) Greatest(exprs ...string) string {
	return "GREATEST(" + strings.Join(exprs, ", ") + ")"
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string          { return runtime.DriverSQLite }
func (sqliteDialect) Placeholder(int) string { return "?" }
func (sqliteDialect) RandomOrder() string   { return "random()" }
func (sqliteDialect) Limit(n int) string    { return fmt.Sprintf("LIMIT %d", n) }
func (sqliteDialect) ArrayBinding() bool    { return false }
func (sqliteDialect) NextVal(string) string { return "" }

// Greatest uses SQLite's multi-argument scalar MAX.
func (sqliteDialect) Greatest(exprs ...string) string {
	return "MAX(" + strings.Join(exprs, ", ") + ")"
}

// params hands out consecutive placeholders for one statement.
type params struct {
	dialect Dialect
	n       int
}

func newParams(d Dialect, start int) *params {
	return &params{dialect: d, n: start - 1}
}

func (p *params) next() string {
	p.n++
	return p.dialect.Placeholder(p.n)
}

// bind replaces each "?" in expr with the next placeholder.
func (p *params) bind(expr string, nargs int) (string, error) {
	if strings.Count(expr, "?") != nargs {
		return "", fmt.Errorf("expression %q has %d markers for %d arguments", expr, strings.Count(expr, "?"), nargs)
	}
	var out strings.Builder
	for _, ch := range expr {
		if ch == '?' {
			out.WriteString(p.next())
			continue
		}
		out.WriteRune(ch)
	}
	return out.String(), nil
}
