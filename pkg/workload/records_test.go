package workload

import (
	"math"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marshallshelly/pebble-churn/pkg/models"
)

func TestFactory_ProductRanges(t *testing.T) {
	f := NewFactory(NewRand(42), NewFaker(42), 2026)

	for range 2000 {
		p := f.Product()
		require.GreaterOrEqual(t, p.Price, MinPrice)
		require.LessOrEqual(t, p.Price, MaxPrice)
		require.InDelta(t, math.Round(p.Price*100), p.Price*100, 1e-6, "price %v has sub-cent digits", p.Price)
		require.GreaterOrEqual(t, p.StockQuantity, 0)
		require.LessOrEqual(t, p.StockQuantity, MaxStock)
		require.Contains(t, productCategories, p.Category)
		require.Contains(t, productStatuses, p.Status)
		require.NotEmpty(t, p.Name)
		require.NotEmpty(t, p.SupplierName)
	}
}

func TestFactory_TransactionQuantities(t *testing.T) {
	f := NewFactory(NewRand(7), stubFaker{}, 2026)
	refPattern := regexp.MustCompile(`^REF-[A-Z]{4}-\d{3}$`)

	seen := map[string]bool{}
	for range 2000 {
		tx := f.Transaction(12)
		assert.Equal(t, int64(12), tx.ProductID)
		require.GreaterOrEqual(t, tx.Quantity, 1)
		if tx.TransactionType == models.TxOut {
			require.LessOrEqual(t, tx.Quantity, MaxOutTxQuantity)
		} else {
			require.LessOrEqual(t, tx.Quantity, MaxTxQuantity)
		}
		require.Regexp(t, refPattern, tx.ReferenceNumber)
		require.Contains(t, txPerformers, tx.PerformedBy)
		seen[tx.TransactionType] = true
	}
	assert.Len(t, seen, 3)
}

func TestFactory_Customer(t *testing.T) {
	f := NewFactory(NewRand(3), stubFaker{}, 2026)

	c := f.Customer()
	assert.Regexp(t, `^maryann\.lovelace\.\d{1,3}@example\.com$`, c.Email)
	assert.Regexp(t, `^\+1-555-\d{4}$`, c.Phone)
	assert.Equal(t, InitialCredit, c.CreditLimit)
	assert.Equal(t, CustomerActive, c.Status)
	assert.Equal(t, DefaultCountry, c.Country)
}

func TestFactory_OrderAmounts(t *testing.T) {
	f := NewFactory(NewRand(9), NewFaker(9), 2026)
	numPattern := regexp.MustCompile(`^ORD-2026-\d{3}$`)

	for range 2000 {
		o := f.Order(5)
		require.Equal(t, int64(5), o.CustomerID)
		require.GreaterOrEqual(t, o.TotalAmount, 20.0)
		require.LessOrEqual(t, o.TotalAmount, 2000.0)
		require.InDelta(t, math.Round(o.TotalAmount*TaxRate*100)/100, o.TaxAmount, 1e-9)
		require.Regexp(t, numPattern, o.OrderNumber)
		require.Equal(t, DefaultCurrency, o.Currency)
		require.Contains(t, paymentMethods, o.PaymentMethod)
		require.Contains(t, orderStatuses, o.OrderStatus)
	}
}

func TestFactory_SameSeedSameRecords(t *testing.T) {
	a := NewFactory(NewRand(11), NewFaker(11), 2026)
	b := NewFactory(NewRand(11), NewFaker(11), 2026)

	for range 20 {
		assert.Equal(t, a.Product(), b.Product())
	}
}
