package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/marshallshelly/pebble-churn/cmd/churn/output"
	"github.com/marshallshelly/pebble-churn/pkg/workload"
)

var (
	// Global flags
	rate             float64
	iterations       int
	schemaName       string
	workloadName     string
	seed             uint64
	parentDeleteProb float64
	childDeleteProb  float64
	interactive      bool
	verbose          bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "churn",
	Short: "Churn - randomized write traffic for CDC pipelines",
	Long: `Churn keeps a database busy with small randomized inserts, updates and
deletes so that a change-data-capture pipeline has events to stream.

Workloads:
  inventory  - products and inventory transactions (PostgreSQL by default)
  orders     - customers and orders (Oracle by default)

Every operation commits on its own. Parents that still have children are
never deleted.`,
	Version:       "0.4.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		output.New(os.Stderr).Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	defaults := workload.DefaultConfig()

	// Global flags
	rootCmd.PersistentFlags().Float64Var(&rate, "rate", defaults.Rate, "Operations per second (at least 0.1)")
	rootCmd.PersistentFlags().IntVar(&iterations, "iterations", defaults.Iterations, "Number of operations, 0 runs until interrupted")
	rootCmd.PersistentFlags().StringVar(&schemaName, "schema", "datauser", "Database schema holding the tables")
	rootCmd.PersistentFlags().StringVar(&workloadName, "workload", "", "Workload to run (default depends on the database)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", defaults.Seed, "Random seed, 0 seeds from the clock")
	rootCmd.PersistentFlags().Float64Var(&parentDeleteProb, "parent-delete-prob", defaults.ParentDeleteProb, "Chance a sampled parent is deleted (negative keeps the workload default)")
	rootCmd.PersistentFlags().Float64Var(&childDeleteProb, "child-delete-prob", defaults.ChildDeleteProb, "Chance a sampled child is deleted (negative keeps the workload default)")
	rootCmd.PersistentFlags().BoolVarP(&interactive, "interactive", "i", false, "Show a live view instead of log lines")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print every SQL statement")
}

// runConfig collects the workload flags.
func runConfig() workload.Config {
	cfg := workload.DefaultConfig()
	cfg.Rate = rate
	cfg.Iterations = iterations
	cfg.Seed = seed
	cfg.ParentDeleteProb = parentDeleteProb
	cfg.ChildDeleteProb = childDeleteProb
	return cfg
}
