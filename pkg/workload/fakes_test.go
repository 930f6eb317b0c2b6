package workload

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"github.com/marshallshelly/pebble-churn/pkg/models"
)

var errForeignKey = errors.New("foreign key violation")

var childOf = map[models.Kind]models.Kind{
	models.KindProduct:  models.KindInventoryTransaction,
	models.KindCustomer: models.KindOrder,
}

// memStore keeps rows in maps and refuses to delete a parent that still
// has children, like a database with foreign keys would.
type memStore struct {
	mu     sync.Mutex
	rand   *rand.Rand
	nextID int64
	rows   map[models.Kind]map[int64]int64 // id -> parent id
	credit map[int64]int
	stock  map[int64]int

	closes  int
	failErr error
}

func newMemStore() *memStore {
	return &memStore{
		rand:   rand.New(rand.NewPCG(1, 2)),
		rows:   map[models.Kind]map[int64]int64{},
		credit: map[int64]int{},
		stock:  map[int64]int{},
	}
}

func (m *memStore) add(kind models.Kind, parent int64) int64 {
	m.nextID++
	if m.rows[kind] == nil {
		m.rows[kind] = map[int64]int64{}
	}
	m.rows[kind][m.nextID] = parent
	return m.nextID
}

func (m *memStore) count(kind models.Kind) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows[kind])
}

func (m *memStore) SampleID(_ context.Context, kind models.Kind) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return 0, false, m.failErr
	}
	ids := make([]int64, 0, len(m.rows[kind]))
	for id := range m.rows[kind] {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return 0, false, nil
	}
	slices.Sort(ids)
	return ids[m.rand.IntN(len(ids))], true, nil
}

func (m *memStore) hasChildren(kind models.Kind, id int64) bool {
	for _, parent := range m.rows[childOf[kind]] {
		if parent == id {
			return true
		}
	}
	return false
}

func (m *memStore) HasDependents(_ context.Context, kind models.Kind, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := childOf[kind]; !ok {
		return false, nil
	}
	return m.hasChildren(kind, id), nil
}

func (m *memStore) InsertProducts(_ context.Context, rows []models.Product) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range rows {
		m.stock[m.add(models.KindProduct, 0)] = p.StockQuantity
	}
	return int64(len(rows)), nil
}

func (m *memStore) InsertTransactions(_ context.Context, rows []models.InventoryTransaction) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tx := range rows {
		if _, ok := m.rows[models.KindProduct][tx.ProductID]; !ok {
			return 0, fmt.Errorf("product %d: %w", tx.ProductID, errForeignKey)
		}
		m.add(models.KindInventoryTransaction, tx.ProductID)
	}
	return int64(len(rows)), nil
}

func (m *memStore) InsertCustomers(_ context.Context, rows []models.Customer) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range rows {
		m.credit[m.add(models.KindCustomer, 0)] = int(c.CreditLimit)
	}
	return int64(len(rows)), nil
}

func (m *memStore) InsertOrders(_ context.Context, rows []models.Order) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range rows {
		if _, ok := m.rows[models.KindCustomer][o.CustomerID]; !ok {
			return 0, fmt.Errorf("customer %d: %w", o.CustomerID, errForeignKey)
		}
		m.add(models.KindOrder, o.CustomerID)
	}
	return int64(len(rows)), nil
}

func (m *memStore) UpdateProduct(_ context.Context, id int64, _ float64, delta int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[models.KindProduct][id]; !ok {
		return false, nil
	}
	m.stock[id] = max(0, m.stock[id]+delta)
	return true, nil
}

func (m *memStore) UpdateCustomer(_ context.Context, id int64, delta int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[models.KindCustomer][id]; !ok {
		return false, nil
	}
	m.credit[id] += delta
	return true, nil
}

func (m *memStore) Delete(_ context.Context, kind models.Kind, ids []int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if m.hasChildren(kind, id) {
			return 0, fmt.Errorf("%s %d: %w", kind, id, errForeignKey)
		}
	}
	var n int64
	for _, id := range ids {
		if _, ok := m.rows[kind][id]; ok {
			delete(m.rows[kind], id)
			n++
		}
	}
	return n, nil
}

func (m *memStore) Close(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closes++
	return nil
}

// stubFaker returns fixed text.
type stubFaker struct{}

func (stubFaker) Word() string      { return "gadget" }
func (stubFaker) Company() string   { return "Acme Corp" }
func (stubFaker) FirstName() string { return "Mary Ann" }
func (stubFaker) LastName() string  { return "Lovelace" }
func (stubFaker) Street() string    { return "100 Elm St" }
func (stubFaker) City() string      { return "Springfield" }
func (stubFaker) Lexify(p string) string {
	return strings.ReplaceAll(p, "?", "q")
}

// fixedRand replays values in order and then repeats the last one.
type fixedRand struct {
	ints   []int
	floats []float64
}

func (f *fixedRand) IntN(n int) int {
	v := 0
	if len(f.ints) > 0 {
		v = f.ints[0]
		if len(f.ints) > 1 {
			f.ints = f.ints[1:]
		}
	}
	return min(v, n-1)
}

func (f *fixedRand) Float64() float64 {
	v := 0.0
	if len(f.floats) > 0 {
		v = f.floats[0]
		if len(f.floats) > 1 {
			f.floats = f.floats[1:]
		}
	}
	return v
}

// captureReporter records every event.
type captureReporter struct {
	mu      sync.Mutex
	lines   []string
	stopped []StopReason
	onOp    func(n int)
}

func (c *captureReporter) Operation(n int, res Result) {
	c.mu.Lock()
	c.lines = append(c.lines, res.String())
	hook := c.onOp
	c.mu.Unlock()
	if hook != nil {
		hook(n)
	}
}

func (c *captureReporter) Stopped(reason StopReason) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = append(c.stopped, reason)
}
