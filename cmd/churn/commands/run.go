package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marshallshelly/pebble-churn/cmd/churn/output"
	"github.com/marshallshelly/pebble-churn/cmd/churn/tui"
	"github.com/marshallshelly/pebble-churn/pkg/runtime"
	"github.com/marshallshelly/pebble-churn/pkg/store"
	"github.com/marshallshelly/pebble-churn/pkg/workload"
)

var driverTitles = map[string]string{
	runtime.DriverPostgres: "Postgres",
	runtime.DriverOracle:   "Oracle",
	runtime.DriverSQLite:   "SQLite",
}

// runOptions is what a database command hands to runWorkload.
type runOptions struct {
	conn            *runtime.Config
	schema          string
	defaultWorkload string
	bootstrap       func(ctx context.Context, s runtime.Session) error
}

// runWorkload connects, runs the selected workload until it is done or
// interrupted, and closes the connection.
func runWorkload(cmd *cobra.Command, opts runOptions) error {
	name := workloadName
	if name == "" {
		name = opts.defaultWorkload
	}
	w, ok := workload.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown workload %q (see 'churn workloads')", name)
	}

	cfg := runConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := runtime.Connect(ctx, opts.conn)
	if err != nil {
		return fmt.Errorf("failed to connect to %s at %s: %w", driverTitles[opts.conn.Driver], opts.conn.Address(), err)
	}
	if verbose && !interactive {
		session = runtime.WithTrace(session, output.Stdout.Statement)
	}

	st, err := openStore(ctx, session, opts)
	if err != nil {
		_ = session.Close(context.WithoutCancel(ctx))
		return err
	}
	output.Info("Connected to %s at %s", driverTitles[opts.conn.Driver], opts.conn.Address())

	if interactive {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		title := fmt.Sprintf("churn %s", w.Name)
		subtitle := fmt.Sprintf("%s at %s, %.1f ops/s", driverTitles[opts.conn.Driver], opts.conn.Address(), cfg.Rate)
		return tui.RunLive(title, subtitle, cfg.Iterations, cancel, func(rep workload.Reporter) error {
			d, err := workload.NewDriver(st, w, cfg, workload.WithReporter(rep))
			if err != nil {
				_ = st.Close(context.WithoutCancel(ctx))
				return err
			}
			return d.Run(ctx)
		})
	}

	d, err := workload.NewDriver(st, w, cfg, workload.WithReporter(output.Reporter{P: output.Stdout}))
	if err != nil {
		_ = st.Close(context.WithoutCancel(ctx))
		return err
	}
	return d.Run(ctx)
}

func openStore(ctx context.Context, session runtime.Session, opts runOptions) (*store.Store, error) {
	if opts.bootstrap != nil {
		if err := opts.bootstrap(ctx, session); err != nil {
			return nil, err
		}
	}
	return store.New(session, opts.schema)
}
