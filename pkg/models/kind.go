package models

import (
	"fmt"
	"reflect"

	"github.com/marshallshelly/pebble-churn/pkg/registry"
	"github.com/marshallshelly/pebble-churn/pkg/schema"
)

// Kind identifies one of the entities churn writes.
type Kind int

const (
	KindProduct Kind = iota
	KindInventoryTransaction
	KindCustomer
	KindOrder
)

// AllKinds lists every kind in declaration order.
var AllKinds = []Kind{KindProduct, KindInventoryTransaction, KindCustomer, KindOrder}

type kindInfo struct {
	singular string
	plural   string
	table    string
	model    any
}

var kinds = map[Kind]kindInfo{
	KindProduct:              {"product", "products", "products", Product{}},
	KindInventoryTransaction: {"tx", "tx", "inventory_transactions", InventoryTransaction{}},
	KindCustomer:             {"customer", "customers", "customers", Customer{}},
	KindOrder:                {"order", "orders", "orders", Order{}},
}

func init() {
	for _, k := range AllKinds {
		info := kinds[k]
		schema.RegisterTableName(reflect.TypeOf(info.model).Name(), info.table)
	}
	// Register up front so foreign key lookups see every table.
	for _, k := range AllKinds {
		if err := registry.Register(kinds[k].model); err != nil {
			panic(fmt.Sprintf("models: %v", err))
		}
	}
}

// String returns the singular display name.
func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.singular
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Plural returns the plural display name.
func (k Kind) Plural() string {
	if info, ok := kinds[k]; ok {
		return info.plural
	}
	return k.String()
}

// Table returns the registered metadata for k.
func (k Kind) Table() (*schema.TableMetadata, error) {
	info, ok := kinds[k]
	if !ok {
		return nil, fmt.Errorf("unknown kind %d", int(k))
	}
	return registry.GetOrRegister(info.model)
}

// MustTable is Table for the fixed set of kinds, which always register.
func (k Kind) MustTable() *schema.TableMetadata {
	t, err := k.Table()
	if err != nil {
		panic(err)
	}
	return t
}

// Tables returns the metadata of kinds in the given order.
func Tables(kinds ...Kind) ([]*schema.TableMetadata, error) {
	tables := make([]*schema.TableMetadata, 0, len(kinds))
	for _, k := range kinds {
		t, err := k.Table()
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}
