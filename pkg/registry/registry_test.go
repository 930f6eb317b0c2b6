package registry

import (
	"reflect"
	"testing"
)

type Warehouse struct {
	ID   int64  `po:"warehouse_id,primaryKey,serial"`
	Name string `po:"name,varchar(100),notNull"`
}

type Shelf struct {
	ID          int64  `po:"shelf_id,primaryKey,serial"`
	WarehouseID int64  `po:"warehouse_id,bigint,notNull,fk:warehouse.warehouse_id"`
	Label       string `po:"label,varchar(20)"`
}

type Pallet struct {
	ID          int64 `po:"pallet_id,primaryKey,serial"`
	ShelfID     int64 `po:"shelf_id,bigint,fk:shelf(shelf_id)"`
	WarehouseID int64 `po:"warehouse_id,bigint,fk:warehouse.warehouse_id"`
}

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()

	t.Run("register new model", func(t *testing.T) {
		if err := registry.Register(Warehouse{}); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if !registry.Has(reflect.TypeOf(Warehouse{})) {
			t.Error("expected model to be registered")
		}
	})

	t.Run("register duplicate model", func(t *testing.T) {
		if err := registry.Register(Warehouse{}); err != nil {
			t.Errorf("Duplicate register failed: %v", err)
		}
	})

	t.Run("register pointer model", func(t *testing.T) {
		if err := registry.Register(&Shelf{}); err != nil {
			t.Fatalf("Register with pointer failed: %v", err)
		}
		if !registry.Has(reflect.TypeOf(Shelf{})) {
			t.Error("expected model to be registered")
		}
	})

	t.Run("register invalid type", func(t *testing.T) {
		if err := registry.Register("not a struct"); err == nil {
			t.Error("expected error for non-struct type")
		}
	})

	t.Run("register nil", func(t *testing.T) {
		if err := registry.Register(nil); err == nil {
			t.Error("expected error for nil model")
		}
	})
}

func TestRegistry_Get(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(Warehouse{}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	table, err := registry.Get(reflect.TypeOf(&Warehouse{}))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if table.Name != "warehouse" {
		t.Errorf("expected table name 'warehouse', got %q", table.Name)
	}
	if table.IDColumn() != "warehouse_id" {
		t.Errorf("expected id column 'warehouse_id', got %q", table.IDColumn())
	}

	if _, err := registry.Get(reflect.TypeOf(Pallet{})); err == nil {
		t.Error("expected error for unregistered model")
	}
}

func TestRegistry_GetByName(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(Shelf{}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	table, err := registry.GetByName("shelf")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if table.GoType != reflect.TypeOf(Shelf{}) {
		t.Errorf("unexpected Go type %v", table.GoType)
	}

	if _, err := registry.GetByName("nonexistent"); err == nil {
		t.Error("expected error for non-existing table")
	}
}

func TestRegistry_GetOrRegister(t *testing.T) {
	registry := NewRegistry()

	table1, err := registry.GetOrRegister(Pallet{})
	if err != nil {
		t.Fatalf("GetOrRegister failed: %v", err)
	}
	table2, _ := registry.GetOrRegister(Pallet{})
	if table1 != table2 {
		t.Error("expected the same metadata instance on repeated calls")
	}
}

func TestRegistry_ReferencesTo(t *testing.T) {
	registry := NewRegistry()
	for _, m := range []any{Warehouse{}, Shelf{}, Pallet{}} {
		if err := registry.Register(m); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}

	refs := registry.ReferencesTo("warehouse")
	if len(refs) != 2 {
		t.Fatalf("expected 2 references to warehouse, got %d", len(refs))
	}
	// Ordered by referencing table name.
	if refs[0].Table.Name != "pallet" || refs[0].Column != "warehouse_id" {
		t.Errorf("unexpected first reference %s.%s", refs[0].Table.Name, refs[0].Column)
	}
	if refs[1].Table.Name != "shelf" || refs[1].Column != "warehouse_id" {
		t.Errorf("unexpected second reference %s.%s", refs[1].Table.Name, refs[1].Column)
	}

	refs = registry.ReferencesTo("shelf")
	if len(refs) != 1 || refs[0].Column != "shelf_id" {
		t.Errorf("expected pallet.shelf_id to reference shelf, got %v", refs)
	}

	if refs := registry.ReferencesTo("pallet"); len(refs) != 0 {
		t.Errorf("expected no references to pallet, got %d", len(refs))
	}
}

func TestRegistry_Clear(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(Warehouse{}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	registry.Clear()

	if registry.Has(reflect.TypeOf(Warehouse{})) {
		t.Error("expected registry to be empty after Clear")
	}
	if _, err := registry.GetByName("warehouse"); err == nil {
		t.Error("expected table name to be forgotten after Clear")
	}
}
