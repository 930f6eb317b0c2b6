// Package workload generates randomized write traffic: it picks an
// operation by weight, builds or samples rows, and applies the change
// through a Store at a fixed rate.
package workload

import (
	"context"
	"fmt"

	"github.com/marshallshelly/pebble-churn/pkg/models"
	"github.com/marshallshelly/pebble-churn/pkg/runtime"
)

// Action is what an operation does to its entity.
type Action int

const (
	ActionInsert Action = iota
	ActionUpdate
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionInsert:
		return "insert"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Op is one operation label, e.g. insert_product.
type Op struct {
	Action Action
	Entity models.Kind
}

func (o Op) String() string {
	return o.Action.String() + "_" + o.Entity.String()
}

// Workload is a parent/child table pair and the weighted operations run
// against it.
type Workload struct {
	Name        string
	Description string
	Parent      models.Kind
	Child       models.Kind
	// Target is the driver the workload runs against by default.
	Target  string
	Ops     []Op
	Weights []float64
	// ParentDeleteProb and ChildDeleteProb are the chances a sampled row
	// is kept as a delete candidate.
	ParentDeleteProb float64
	ChildDeleteProb  float64
}

// DefaultWeights are the weights of insert-parent, update-parent,
// delete-parent, insert-child and delete-child.
var DefaultWeights = []float64{0.30, 0.25, 0.05, 0.20, 0.20}

func newWorkload(name, description string, parent, child models.Kind, target string, parentDel, childDel float64) Workload {
	return Workload{
		Name:        name,
		Description: description,
		Parent:      parent,
		Child:       child,
		Target:      target,
		Ops: []Op{
			{ActionInsert, parent},
			{ActionUpdate, parent},
			{ActionDelete, parent},
			{ActionInsert, child},
			{ActionDelete, child},
		},
		Weights:          append([]float64(nil), DefaultWeights...),
		ParentDeleteProb: parentDel,
		ChildDeleteProb:  childDel,
	}
}

// InventoryWorkload churns products and their inventory transactions.
func InventoryWorkload() Workload {
	return newWorkload("inventory", "Products and inventory transactions",
		models.KindProduct, models.KindInventoryTransaction, runtime.DriverPostgres, 0.5, 0.6)
}

// OrdersWorkload churns customers and their orders.
func OrdersWorkload() Workload {
	return newWorkload("orders", "Customers and orders",
		models.KindCustomer, models.KindOrder, runtime.DriverOracle, 0.4, 0.6)
}

// Lookup returns the named workload.
func Lookup(name string) (Workload, bool) {
	presets := map[string]func() Workload{
		"inventory": InventoryWorkload,
		"orders":    OrdersWorkload,
	}

	if fn, ok := presets[name]; ok {
		return fn(), true
	}
	return Workload{}, false
}

// List returns every workload.
func List() []Workload {
	return []Workload{InventoryWorkload(), OrdersWorkload()}
}

// IsParent reports whether kind is the workload's parent entity.
func (w Workload) IsParent(kind models.Kind) bool {
	return kind == w.Parent
}

// Store is the storage the workload writes through.
type Store interface {
	// SampleID returns a uniformly random id of kind; ok is false when
	// the table is empty.
	SampleID(ctx context.Context, kind models.Kind) (id int64, ok bool, err error)
	HasDependents(ctx context.Context, kind models.Kind, id int64) (bool, error)

	InsertProducts(ctx context.Context, rows []models.Product) (int64, error)
	InsertTransactions(ctx context.Context, rows []models.InventoryTransaction) (int64, error)
	InsertCustomers(ctx context.Context, rows []models.Customer) (int64, error)
	InsertOrders(ctx context.Context, rows []models.Order) (int64, error)

	UpdateProduct(ctx context.Context, id int64, factor float64, delta int) (bool, error)
	UpdateCustomer(ctx context.Context, id int64, delta int) (bool, error)

	Delete(ctx context.Context, kind models.Kind, ids []int64) (int64, error)
	Close(ctx context.Context) error
}
