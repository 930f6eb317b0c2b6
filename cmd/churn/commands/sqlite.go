package commands

import (
	"github.com/spf13/cobra"

	"github.com/marshallshelly/pebble-churn/pkg/runtime"
	"github.com/marshallshelly/pebble-churn/pkg/store"
)

var (
	sqliteConfig = runtime.DefaultSQLiteConfig()
	sqliteInit   bool
)

// sqliteCmd runs a workload against SQLite or libSQL
var sqliteCmd = &cobra.Command{
	Use:   "sqlite",
	Short: "Generate traffic against SQLite or libSQL",
	Long: `Generate traffic against a local SQLite file or a remote libSQL database.
Runs the inventory workload unless --workload says otherwise. Tables are
unqualified unless --schema is given.

Examples:
  churn sqlite --init                             # create churn.db tables and run
  churn sqlite --dsn :memory: --init --iterations 50
  churn sqlite --dsn "libsql://db.example.turso.io?authToken=..."`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := runOptions{
			conn:            sqliteConfig,
			defaultWorkload: "inventory",
		}
		if cmd.Flags().Changed("schema") {
			opts.schema = schemaName
		}
		if sqliteInit {
			opts.bootstrap = store.InitSQLite
		}
		return runWorkload(cmd, opts)
	},
}

func init() {
	rootCmd.AddCommand(sqliteCmd)

	sqliteCmd.Flags().StringVar(&sqliteConfig.DSN, "dsn", sqliteConfig.DSN, "SQLite file, :memory: or libsql:// URL")
	sqliteCmd.Flags().BoolVar(&sqliteInit, "init", false, "Create missing tables before running")
}
