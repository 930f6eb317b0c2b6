// Package models holds the rows churn writes. The tables themselves are
// owned by the target database; these structs only describe their shape.
package models

// Product statuses.
const (
	ProductActive       = "ACTIVE"
	ProductDiscontinued = "DISCONTINUED"
)

// Inventory transaction types.
const (
	TxIn         = "IN"
	TxOut        = "OUT"
	TxAdjustment = "ADJUSTMENT"
)

// Order statuses.
const (
	OrderPending    = "PENDING"
	OrderProcessing = "PROCESSING"
	OrderCompleted  = "COMPLETED"
)

// Product is a catalogue item.
type Product struct {
	ID            int64   `po:"product_id,primaryKey,serial"`
	Name          string  `po:"product_name,varchar(200),notNull"`
	Category      string  `po:"category,varchar(50)"`
	Description   string  `po:"description,text"`
	Price         float64 `po:"price,numeric(10,2),notNull"`
	StockQuantity int     `po:"stock_quantity,integer,notNull"`
	SupplierName  string  `po:"supplier_name,varchar(200)"`
	Status        string  `po:"status,varchar(20),notNull"`
}

// InventoryTransaction is a stock movement against a product.
type InventoryTransaction struct {
	ID              int64  `po:"transaction_id,primaryKey,serial"`
	ProductID       int64  `po:"product_id,bigint,notNull,fk:products.product_id"`
	TransactionType string `po:"transaction_type,varchar(20),notNull"`
	Quantity        int    `po:"quantity,integer,notNull"`
	ReferenceNumber string `po:"reference_number,varchar(50)"`
	Notes           string `po:"notes,text"`
	PerformedBy     string `po:"performed_by,varchar(50)"`
}

// Customer places orders.
type Customer struct {
	ID          int64   `po:"customer_id,primaryKey,serial,sequence(customers_seq)"`
	FirstName   string  `po:"first_name,varchar(100),notNull"`
	LastName    string  `po:"last_name,varchar(100),notNull"`
	Email       string  `po:"email,varchar(200)"`
	Phone       string  `po:"phone,varchar(30)"`
	Address     string  `po:"address,varchar(200)"`
	City        string  `po:"city,varchar(100)"`
	Country     string  `po:"country,varchar(100)"`
	Status      string  `po:"status,varchar(20)"`
	CreditLimit float64 `po:"credit_limit,numeric(12,2)"`
}

// Order belongs to a customer.
type Order struct {
	ID              int64   `po:"order_id,primaryKey,serial,sequence(orders_seq)"`
	CustomerID      int64   `po:"customer_id,bigint,notNull,fk:customers.customer_id"`
	OrderNumber     string  `po:"order_number,varchar(50),notNull"`
	TotalAmount     float64 `po:"total_amount,numeric(12,2)"`
	TaxAmount       float64 `po:"tax_amount,numeric(12,2)"`
	Currency        string  `po:"currency,varchar(3)"`
	PaymentMethod   string  `po:"payment_method,varchar(30)"`
	OrderStatus     string  `po:"order_status,varchar(20)"`
	ShippingAddress string  `po:"shipping_address,varchar(200)"`
}
