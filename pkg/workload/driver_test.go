package workload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marshallshelly/pebble-churn/pkg/models"
)

func noSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

func newTestDriver(t *testing.T, store Store, w Workload, cfg Config, rep Reporter) *Driver {
	t.Helper()
	d, err := NewDriver(store, w, cfg,
		WithRand(NewRand(99)),
		WithFaker(stubFaker{}),
		WithReporter(rep),
		WithSleep(noSleep),
		WithYear(2026),
	)
	require.NoError(t, err)
	return d
}

func TestDriver_IterationBudget(t *testing.T) {
	store := newMemStore()
	rep := &captureReporter{}
	cfg := DefaultConfig()
	cfg.Rate = 100
	cfg.Iterations = 5

	d := newTestDriver(t, store, InventoryWorkload(), cfg, rep)
	require.NoError(t, d.Run(context.Background()))

	assert.Len(t, rep.lines, 5)
	assert.Equal(t, []StopReason{StopCompleted}, rep.stopped)
	assert.Equal(t, 1, store.closes)
	assert.Equal(t, StateStopped, d.State())
}

func TestDriver_RunsUntilInterrupted(t *testing.T) {
	store := newMemStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rep := &captureReporter{}
	rep.onOp = func(n int) {
		if n == 37 {
			cancel()
		}
	}

	d := newTestDriver(t, store, OrdersWorkload(), DefaultConfig(), rep)
	require.NoError(t, d.Run(ctx))

	assert.Len(t, rep.lines, 37)
	assert.Equal(t, []StopReason{StopInterrupted}, rep.stopped)
	assert.Equal(t, 1, store.closes)
}

func TestDriver_CancelledBeforeStart(t *testing.T) {
	store := newMemStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep := &captureReporter{}
	d := newTestDriver(t, store, InventoryWorkload(), DefaultConfig(), rep)
	require.NoError(t, d.Run(ctx))

	assert.Empty(t, rep.lines)
	assert.Equal(t, 1, store.closes)
}

// cancellingStore fails with a driver error after cancelling the run, the
// way a statement aborted by an interrupt does.
type cancellingStore struct {
	*memStore
	cancel context.CancelFunc
}

func (c *cancellingStore) SampleID(context.Context, models.Kind) (int64, bool, error) {
	c.cancel()
	return 0, false, errors.New("query canceled by user")
}

func TestDriver_InterruptSurfacingAsDatabaseError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := &cancellingStore{memStore: newMemStore(), cancel: cancel}
	rep := &captureReporter{}

	d := newTestDriver(t, store, InventoryWorkload(), DefaultConfig(), rep)

	// Parent inserts never sample, so the run lasts until an op that does.
	require.NoError(t, d.Run(ctx))
	assert.Equal(t, []StopReason{StopInterrupted}, rep.stopped)
	assert.Equal(t, 1, store.closes)
}

func TestDriver_DatabaseErrorStopsRun(t *testing.T) {
	store := newMemStore()
	store.failErr = errors.New("connection reset")
	rep := &captureReporter{}

	d := newTestDriver(t, store, OrdersWorkload(), DefaultConfig(), rep)
	err := d.Run(context.Background())

	require.ErrorIs(t, err, store.failErr)
	assert.Equal(t, []StopReason{StopFailed}, rep.stopped)
	assert.Equal(t, 1, store.closes)
}

type failingCloseStore struct {
	*memStore
}

func (f failingCloseStore) Close(ctx context.Context) error {
	_ = f.memStore.Close(ctx)
	return errors.New("close failed")
}

func TestDriver_CloseErrorReported(t *testing.T) {
	store := failingCloseStore{newMemStore()}
	cfg := DefaultConfig()
	cfg.Iterations = 1

	d := newTestDriver(t, store, InventoryWorkload(), cfg, &captureReporter{})
	err := d.Run(context.Background())

	require.ErrorContains(t, err, "close failed")
	assert.Equal(t, 1, store.closes)

	// A second run must not close again.
	_ = d.Run(context.Background())
	assert.Equal(t, 1, store.closes)
}

func TestDriver_NeverDeletesParentsWithChildren(t *testing.T) {
	for _, w := range List() {
		t.Run(w.Name, func(t *testing.T) {
			store := newMemStore()
			cfg := DefaultConfig()
			cfg.Iterations = 2000
			cfg.ParentDeleteProb = 1

			d := newTestDriver(t, store, w, cfg, &captureReporter{})
			// memStore fails a parent delete with children; any such
			// attempt surfaces here.
			require.NoError(t, d.Run(context.Background()))
		})
	}
}

func TestDriver_SleepsBetweenIterations(t *testing.T) {
	var slept []time.Duration
	cfg := DefaultConfig()
	cfg.Rate = 4
	cfg.Iterations = 3

	d, err := NewDriver(newMemStore(), InventoryWorkload(), cfg,
		WithRand(NewRand(1)),
		WithFaker(stubFaker{}),
		WithSleep(func(_ context.Context, d time.Duration) error {
			slept = append(slept, d)
			return nil
		}),
	)
	require.NoError(t, err)
	require.NoError(t, d.Run(context.Background()))

	assert.Equal(t, []time.Duration{250 * time.Millisecond, 250 * time.Millisecond}, slept)
}

func TestSleep_Interruptible(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := Sleep(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestTextReporter(t *testing.T) {
	var buf bytes.Buffer
	rep := TextReporter{W: &buf}

	rep.Operation(1, Result{Op: Op{ActionInsert, models.KindProduct}, Count: 2})
	rep.Operation(2, Result{Op: Op{ActionUpdate, models.KindCustomer}})
	rep.Stopped(StopInterrupted)

	want := fmt.Sprintf("%s\n%s\n%s\n", "Inserted 2 products", "No customer to update", "Interrupted by user")
	assert.Equal(t, want, buf.String())
}

func TestNewDriver_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Iterations = -1

	_, err := NewDriver(newMemStore(), InventoryWorkload(), cfg)
	assert.Error(t, err)
}
