package workload

import (
	"fmt"
	"math"
	"strings"

	"github.com/marshallshelly/pebble-churn/pkg/models"
)

var (
	productCategories = []string{"Electronics", "Furniture", "Office", "Accessories"}
	productSuffixes   = []string{"Pro", "Plus", "X", "Mini", "Max"}
	productStatuses   = []string{models.ProductActive, models.ProductDiscontinued}
	txTypes           = []string{models.TxIn, models.TxOut, models.TxAdjustment}
	txPerformers      = []string{"admin", "warehouse", "system"}
	paymentMethods    = []string{"CREDIT_CARD", "PAYPAL", "WIRE"}
	orderStatuses     = []string{models.OrderPending, models.OrderProcessing, models.OrderCompleted}
)

// Record value bounds.
const (
	MinPrice         = 5.0
	MaxPrice         = 1500.0
	MaxStock         = 500
	MaxTxQuantity    = 50
	MaxOutTxQuantity = 10
	MinOrderCents    = 2000
	MaxOrderCents    = 200000
	TaxRate          = 0.08
	InitialCredit    = 1000.0
	DefaultCountry   = "USA"
	DefaultCurrency  = "USD"
	CustomerActive   = "ACTIVE"
)

// Factory builds randomized records. It keeps no state between calls
// beyond its random sources.
type Factory struct {
	rand  Rand
	faker Faker
	year  int
}

// NewFactory creates a Factory. year is stamped into order numbers.
func NewFactory(r Rand, f Faker, year int) *Factory {
	return &Factory{rand: r, faker: f, year: year}
}

// Product returns a new product.
func (f *Factory) Product() models.Product {
	cents := between(f.rand, int(MinPrice*100), int(MaxPrice*100))
	return models.Product{
		Name:          capitalize(f.faker.Word()) + " " + choice(f.rand, productSuffixes),
		Category:      choice(f.rand, productCategories),
		Description:   sentence(f.faker, 6),
		Price:         float64(cents) / 100,
		StockQuantity: between(f.rand, 0, MaxStock),
		SupplierName:  f.faker.Company(),
		Status:        choice(f.rand, productStatuses),
	}
}

// Transaction returns a new inventory transaction against productID. OUT
// movements are kept small.
func (f *Factory) Transaction(productID int64) models.InventoryTransaction {
	txType := choice(f.rand, txTypes)
	maxQty := MaxTxQuantity
	if txType == models.TxOut {
		maxQty = MaxOutTxQuantity
	}
	return models.InventoryTransaction{
		ProductID:       productID,
		TransactionType: txType,
		Quantity:        between(f.rand, 1, maxQty),
		ReferenceNumber: fmt.Sprintf("REF-%s-%d", strings.ToUpper(f.faker.Lexify("????")), between(f.rand, 100, 999)),
		Notes:           sentence(f.faker, 8),
		PerformedBy:     choice(f.rand, txPerformers),
	}
}

// Customer returns a new customer with the initial credit limit.
func (f *Factory) Customer() models.Customer {
	first := f.faker.FirstName()
	last := f.faker.LastName()
	return models.Customer{
		FirstName:   first,
		LastName:    last,
		Email:       fmt.Sprintf("%s.%s.%d@example.com", emailPart(first), emailPart(last), between(f.rand, 1, 999)),
		Phone:       fmt.Sprintf("+1-555-%d", between(f.rand, 1000, 9999)),
		Address:     f.faker.Street(),
		City:        f.faker.City(),
		Country:     DefaultCountry,
		Status:      CustomerActive,
		CreditLimit: InitialCredit,
	}
}

// Order returns a new order for customerID. Tax is a fixed share of the
// total, both in whole cents.
func (f *Factory) Order(customerID int64) models.Order {
	cents := between(f.rand, MinOrderCents, MaxOrderCents)
	tax := math.Round(float64(cents)*TaxRate) / 100
	return models.Order{
		CustomerID:      customerID,
		OrderNumber:     fmt.Sprintf("ORD-%d-%d", f.year, between(f.rand, 100, 999)),
		TotalAmount:     float64(cents) / 100,
		TaxAmount:       tax,
		Currency:        DefaultCurrency,
		PaymentMethod:   choice(f.rand, paymentMethods),
		OrderStatus:     choice(f.rand, orderStatuses),
		ShippingAddress: f.faker.Street(),
	}
}

func emailPart(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", ""))
}
