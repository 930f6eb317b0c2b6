package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marshallshelly/pebble-churn/pkg/registry"
)

func TestKindNames(t *testing.T) {
	tests := []struct {
		kind     Kind
		singular string
		plural   string
		table    string
		id       string
	}{
		{KindProduct, "product", "products", "products", "product_id"},
		{KindInventoryTransaction, "tx", "tx", "inventory_transactions", "transaction_id"},
		{KindCustomer, "customer", "customers", "customers", "customer_id"},
		{KindOrder, "order", "orders", "orders", "order_id"},
	}

	for _, tt := range tests {
		t.Run(tt.singular, func(t *testing.T) {
			assert.Equal(t, tt.singular, tt.kind.String())
			assert.Equal(t, tt.plural, tt.kind.Plural())

			table, err := tt.kind.Table()
			require.NoError(t, err)
			assert.Equal(t, tt.table, table.Name)
			assert.Equal(t, tt.id, table.IDColumn())
		})
	}

	assert.Equal(t, "Kind(9)", Kind(9).String())
	_, err := Kind(9).Table()
	assert.Error(t, err)
}

func TestKindColumns(t *testing.T) {
	product := KindProduct.MustTable()
	id, ok := product.Column("product_id")
	require.True(t, ok)
	assert.True(t, id.AutoIncrement)
	assert.Empty(t, id.Sequence)

	customer := KindCustomer.MustTable()
	id, ok = customer.Column("customer_id")
	require.True(t, ok)
	assert.Equal(t, "customers_seq", id.Sequence)

	order := KindOrder.MustTable()
	id, _ = order.Column("order_id")
	assert.Equal(t, "orders_seq", id.Sequence)
}

func TestReferences(t *testing.T) {
	refs := registry.ReferencesTo("products")
	require.Len(t, refs, 1)
	assert.Equal(t, "inventory_transactions", refs[0].Table.Name)
	assert.Equal(t, "product_id", refs[0].Column)

	refs = registry.ReferencesTo("customers")
	require.Len(t, refs, 1)
	assert.Equal(t, "orders", refs[0].Table.Name)
	assert.Equal(t, "customer_id", refs[0].Column)

	assert.Empty(t, registry.ReferencesTo("orders"))
	assert.Empty(t, registry.ReferencesTo("inventory_transactions"))
}
