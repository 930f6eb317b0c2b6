package builder

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marshallshelly/pebble-churn/pkg/models"
)

func sampleProducts() []models.Product {
	return []models.Product{
		{Name: "Widget 1", Category: "Tools", Description: "a", Price: 10.5, StockQuantity: 3, SupplierName: "Acme", Status: models.ProductActive},
		{Name: "Widget 2", Category: "Home", Description: "b", Price: 20, StockQuantity: 0, SupplierName: "Initech", Status: models.ProductDiscontinued},
	}
}

func TestInsertQuery_MultiRowValues(t *testing.T) {
	q := Insert[models.Product](New(Postgres, "datauser")).Values(sampleProducts()...)

	sql, args, err := q.ToSQL()
	require.NoError(t, err)

	want := "INSERT INTO datauser.products (product_name, category, description, price, stock_quantity, supplier_name, status) " +
		"VALUES ($1, $2, $3, $4, $5, $6, $7), ($8, $9, $10, $11, $12, $13, $14)"
	assert.Equal(t, want, sql)

	wantArgs := []any{
		"Widget 1", "Tools", "a", 10.5, 3, "Acme", models.ProductActive,
		"Widget 2", "Home", "b", 20.0, 0, "Initech", models.ProductDiscontinued,
	}
	if diff := cmp.Diff(wantArgs, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertQuery_SQLitePlaceholders(t *testing.T) {
	tx := models.InventoryTransaction{ProductID: 4, TransactionType: models.TxIn, Quantity: 9, ReferenceNumber: "REF-1", Notes: "n", PerformedBy: "user1"}

	sql, args, err := Insert[models.InventoryTransaction](New(SQLite, "")).Values(tx).ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO inventory_transactions (product_id, transaction_type, quantity, reference_number, notes, performed_by) VALUES (?, ?, ?, ?, ?, ?)", sql)
	assert.Len(t, args, 6)
	assert.Equal(t, int64(4), args[0])
}

func TestInsertQuery_OracleArrayBinding(t *testing.T) {
	customers := []models.Customer{
		{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", CreditLimit: 1000},
		{FirstName: "Alan", LastName: "Turing", Email: "alan@example.com", CreditLimit: 2500},
		{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", CreditLimit: 4000},
	}

	sql, args, err := Insert[models.Customer](New(Oracle, "datauser")).Values(customers...).ToSQL()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(sql, "INSERT INTO datauser.customers (customer_id, first_name, last_name,"), sql)
	assert.Contains(t, sql, "VALUES (datauser.customers_seq.NEXTVAL, :1, :2, :3, :4, :5, :6, :7, :8, :9)")
	require.Len(t, args, 9)

	if diff := cmp.Diff([]string{"Ada", "Alan", "Grace"}, args[0]); diff != "" {
		t.Errorf("first_name column mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1000, 2500, 4000}, args[8]); diff != "" {
		t.Errorf("credit_limit column mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertQuery_OracleWithoutSchema(t *testing.T) {
	order := models.Order{CustomerID: 2, OrderNumber: "ORD-2026-001", Currency: "USD"}

	sql, args, err := Insert[models.Order](New(Oracle, "")).Values(order).ToSQL()
	require.NoError(t, err)

	assert.Contains(t, sql, "VALUES (orders_seq.NEXTVAL, :1,")
	assert.Equal(t, []int64{2}, args[0])
}

func TestInsertQuery_Errors(t *testing.T) {
	_, _, err := Insert[models.Product](New(Postgres, "")).ToSQL()
	assert.ErrorContains(t, err, "no values")

	_, _, err = Insert[struct{ Foo string }](New(Postgres, "")).Values(struct{ Foo string }{"x"}).ToSQL()
	assert.Error(t, err)
}

func TestInsertQuery_Exec(t *testing.T) {
	x := &recordingExecer{affected: 2}

	n, err := Insert[models.Product](New(Postgres, "")).Values(sampleProducts()...).Exec(context.Background(), x)
	require.NoError(t, err)

	assert.Equal(t, int64(2), n)
	require.Len(t, x.calls, 1)
	assert.Len(t, x.calls[0].args, 14)
}

type execCall struct {
	sql  string
	args []any
}

type recordingExecer struct {
	calls    []execCall
	affected int64
	err      error
}

func (r *recordingExecer) Exec(_ context.Context, sql string, args ...any) (int64, error) {
	r.calls = append(r.calls, execCall{sql: sql, args: args})
	return r.affected, r.err
}
