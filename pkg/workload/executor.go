package workload

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/marshallshelly/pebble-churn/pkg/models"
)

// Batch sizes.
const (
	MaxInsertBatch = 3
	MaxUpdateBatch = 3
	MaxDeleteDraws = 2
)

// Result is the outcome of one operation.
type Result struct {
	Op Op
	// Count is the number of rows inserted or deleted.
	Count int
	// IDs are the rows an update changed.
	IDs []int64
	// Parent is set for child inserts, naming the entity rows hang off.
	Parent models.Kind
}

// NoOp reports whether the operation changed nothing.
func (r Result) NoOp() bool {
	if r.Op.Action == ActionUpdate {
		return len(r.IDs) == 0
	}
	return r.Count == 0
}

// String renders the result as one report line.
func (r Result) String() string {
	e := r.Op.Entity
	switch r.Op.Action {
	case ActionInsert:
		if r.Count == 0 {
			return fmt.Sprintf("No %s for new %s", r.Parent, e.Plural())
		}
		return fmt.Sprintf("Inserted %d %s", r.Count, e.Plural())
	case ActionUpdate:
		if len(r.IDs) == 0 {
			return fmt.Sprintf("No %s to update", e)
		}
		ids := make([]string, len(r.IDs))
		for i, id := range r.IDs {
			ids[i] = fmt.Sprintf("id=%d", id)
		}
		return fmt.Sprintf("Updated %s %s", e, strings.Join(ids, ", "))
	default:
		if r.Count == 0 {
			return fmt.Sprintf("No %s to delete", e.Plural())
		}
		return fmt.Sprintf("Deleted %d %s", r.Count, e.Plural())
	}
}

// Executor applies one operation per call.
type Executor struct {
	store    Store
	factory  *Factory
	rand     Rand
	workload Workload
}

// NewExecutor creates an Executor for w.
func NewExecutor(store Store, factory *Factory, r Rand, w Workload) *Executor {
	return &Executor{store: store, factory: factory, rand: r, workload: w}
}

// Execute runs op. An empty table is not an error; the result is then a
// no-op.
func (e *Executor) Execute(ctx context.Context, op Op) (Result, error) {
	switch op.Action {
	case ActionInsert:
		return e.insert(ctx, op)
	case ActionUpdate:
		return e.update(ctx, op)
	case ActionDelete:
		return e.delete(ctx, op)
	default:
		return Result{}, fmt.Errorf("unknown operation %s", op)
	}
}

func (e *Executor) insert(ctx context.Context, op Op) (Result, error) {
	res := Result{Op: op}
	size := between(e.rand, 1, MaxInsertBatch)

	var err error
	switch op.Entity {
	case models.KindProduct:
		rows := make([]models.Product, size)
		for i := range rows {
			rows[i] = e.factory.Product()
		}
		res.Count = len(rows)
		_, err = e.store.InsertProducts(ctx, rows)
	case models.KindCustomer:
		rows := make([]models.Customer, size)
		for i := range rows {
			rows[i] = e.factory.Customer()
		}
		res.Count = len(rows)
		_, err = e.store.InsertCustomers(ctx, rows)
	case models.KindInventoryTransaction:
		res.Parent = models.KindProduct
		var rows []models.InventoryTransaction
		if rows, err = childRows(ctx, e, res.Parent, size, e.factory.Transaction); err == nil && len(rows) > 0 {
			res.Count = len(rows)
			_, err = e.store.InsertTransactions(ctx, rows)
		}
	case models.KindOrder:
		res.Parent = models.KindCustomer
		var rows []models.Order
		if rows, err = childRows(ctx, e, res.Parent, size, e.factory.Order); err == nil && len(rows) > 0 {
			res.Count = len(rows)
			_, err = e.store.InsertOrders(ctx, rows)
		}
	default:
		return res, fmt.Errorf("cannot insert %s", op.Entity)
	}
	if err != nil {
		res.Count = 0
		return res, err
	}
	return res, nil
}

// childRows builds up to size child rows, each against a freshly sampled
// parent. Rows whose parent cannot be found are dropped.
func childRows[T any](ctx context.Context, e *Executor, parent models.Kind, size int, build func(int64) T) ([]T, error) {
	rows := make([]T, 0, size)
	for range size {
		id, ok, err := e.store.SampleID(ctx, parent)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		rows = append(rows, build(id))
	}
	return rows, nil
}

func (e *Executor) update(ctx context.Context, op Op) (Result, error) {
	res := Result{Op: op}
	size := between(e.rand, 1, MaxUpdateBatch)

	for range size {
		id, ok, err := e.store.SampleID(ctx, op.Entity)
		if err != nil {
			return res, err
		}
		if !ok {
			continue
		}

		var changed bool
		switch op.Entity {
		case models.KindProduct:
			factor := 1 + (e.rand.Float64()-0.5)/10
			delta := between(e.rand, -5, 5)
			changed, err = e.store.UpdateProduct(ctx, id, factor, delta)
		case models.KindCustomer:
			changed, err = e.store.UpdateCustomer(ctx, id, between(e.rand, 0, 500))
		default:
			return res, fmt.Errorf("cannot update %s", op.Entity)
		}
		if err != nil {
			return res, err
		}
		if changed {
			res.IDs = append(res.IDs, id)
		}
	}
	return res, nil
}

func (e *Executor) delete(ctx context.Context, op Op) (Result, error) {
	res := Result{Op: op}
	parent := e.workload.IsParent(op.Entity)
	prob := e.workload.ChildDeleteProb
	if parent {
		prob = e.workload.ParentDeleteProb
	}

	var ids []int64
	draws := between(e.rand, 1, MaxDeleteDraws)
	for range draws {
		id, ok, err := e.store.SampleID(ctx, op.Entity)
		if err != nil {
			return res, err
		}
		if !ok || e.rand.Float64() >= prob {
			continue
		}
		if slices.Contains(ids, id) {
			continue
		}
		if parent {
			has, err := e.store.HasDependents(ctx, op.Entity, id)
			if err != nil {
				return res, err
			}
			if has {
				continue
			}
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return res, nil
	}

	n, err := e.store.Delete(ctx, op.Entity, ids)
	if err != nil {
		return res, err
	}
	res.Count = int(n)
	return res, nil
}
