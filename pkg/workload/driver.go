package workload

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// State is the driver's lifecycle state.
type State int

const (
	StateRunning State = iota
	StateStopped
)

func (s State) String() string {
	if s == StateStopped {
		return "stopped"
	}
	return "running"
}

// closeTimeout bounds closing the store once the run context is gone.
const closeTimeout = 5 * time.Second

// SleepFunc waits for d or until ctx is done, returning ctx.Err() in the
// latter case.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Option configures a Driver.
type Option func(*Driver)

// WithRand sets the numeric random source.
func WithRand(r Rand) Option {
	return func(d *Driver) { d.rand = r }
}

// WithFaker sets the free-text source.
func WithFaker(f Faker) Option {
	return func(d *Driver) { d.faker = f }
}

// WithReporter sets where progress goes.
func WithReporter(r Reporter) Option {
	return func(d *Driver) { d.reporter = r }
}

// WithSleep replaces the pause between iterations.
func WithSleep(fn SleepFunc) Option {
	return func(d *Driver) { d.sleep = fn }
}

// WithYear sets the year stamped into order numbers.
func WithYear(year int) Option {
	return func(d *Driver) { d.year = year }
}

// Driver runs a workload against a store at a fixed rate.
type Driver struct {
	store    Store
	workload Workload
	config   Config

	rand     Rand
	faker    Faker
	reporter Reporter
	sleep    SleepFunc
	year     int

	selector *Selector[Op]
	executor *Executor

	mu        sync.Mutex
	state     State
	closeOnce sync.Once
	closeErr  error
}

// NewDriver creates a Driver. The driver owns store and closes it when Run
// returns.
func NewDriver(store Store, w Workload, config Config, opts ...Option) (*Driver, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	d := &Driver{
		store:    store,
		workload: config.apply(w),
		config:   config,
		reporter: nopReporter{},
		sleep:    Sleep,
		year:     time.Now().Year(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.rand == nil {
		d.rand = NewRand(config.Seed)
	}
	if d.faker == nil {
		d.faker = NewFaker(config.Seed)
	}

	selector, err := NewSelector(d.workload.Ops, d.workload.Weights)
	if err != nil {
		return nil, fmt.Errorf("workload %s: %w", w.Name, err)
	}
	d.selector = selector
	d.executor = NewExecutor(store, NewFactory(d.rand, d.faker, d.year), d.rand, d.workload)
	return d, nil
}

// State returns the current lifecycle state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Run loops until the iteration budget is spent, ctx is cancelled or an
// operation fails. Cancellation is a clean stop and returns nil, even when
// it surfaces as an error from the database. The store is closed exactly
// once before Run returns.
func (d *Driver) Run(ctx context.Context) (err error) {
	defer func() {
		if cerr := d.close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for i := 1; ; i++ {
		if ctx.Err() != nil {
			return d.stop(StopInterrupted, nil)
		}

		op := d.selector.Pick(d.rand)
		res, err := d.executor.Execute(ctx, op)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return d.stop(StopInterrupted, nil)
			}
			return d.stop(StopFailed, fmt.Errorf("iteration %d (%s): %w", i, op, err))
		}
		d.reporter.Operation(i, res)

		if d.config.Iterations > 0 && i >= d.config.Iterations {
			return d.stop(StopCompleted, nil)
		}

		if err := d.sleep(ctx, d.config.Interval()); err != nil {
			return d.stop(StopInterrupted, nil)
		}
	}
}

func (d *Driver) stop(reason StopReason, err error) error {
	d.mu.Lock()
	d.state = StateStopped
	d.mu.Unlock()

	d.reporter.Stopped(reason)
	return err
}

// close closes the store once. ctx may already be cancelled, so the close
// gets its own deadline.
func (d *Driver) close(ctx context.Context) error {
	d.closeOnce.Do(func() {
		cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
		defer cancel()
		if err := d.store.Close(cctx); err != nil {
			d.closeErr = fmt.Errorf("failed to close store: %w", err)
		}
	})
	return d.closeErr
}
