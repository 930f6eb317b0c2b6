package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/marshallshelly/pebble-churn/pkg/migration"
	"github.com/marshallshelly/pebble-churn/pkg/models"
	"github.com/marshallshelly/pebble-churn/pkg/runtime"
)

var (
	pgConfig = runtime.DefaultPostgresConfig()
	pgInit   bool
)

// postgresCmd runs a workload against PostgreSQL
var postgresCmd = &cobra.Command{
	Use:   "postgres",
	Short: "Generate traffic against PostgreSQL",
	Long: `Generate traffic against PostgreSQL. Runs the inventory workload unless
--workload says otherwise.

Examples:
  churn postgres                                  # 1 op/s until Ctrl+C
  churn postgres --rate 10 --iterations 500       # 500 ops at 10 op/s
  churn postgres --host db --db cdcdb -i          # live view
  churn postgres --init                           # create missing tables first`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := runOptions{
			conn:            pgConfig,
			schema:          schemaName,
			defaultWorkload: "inventory",
		}
		if pgInit {
			opts.bootstrap = bootstrapPostgres(schemaName)
		}
		return runWorkload(cmd, opts)
	},
}

// bootstrapPostgres creates the schema and the tables of every workload.
func bootstrapPostgres(schemaName string) func(context.Context, runtime.Session) error {
	return func(ctx context.Context, s runtime.Session) error {
		tables, err := models.Tables(models.AllKinds...)
		if err != nil {
			return err
		}
		return migration.NewExecutor(s, schemaName).Bootstrap(ctx, tables)
	}
}

func init() {
	rootCmd.AddCommand(postgresCmd)

	postgresCmd.Flags().StringVar(&pgConfig.Host, "host", pgConfig.Host, "Database host")
	postgresCmd.Flags().IntVar(&pgConfig.Port, "port", pgConfig.Port, "Database port")
	postgresCmd.Flags().StringVar(&pgConfig.User, "user", pgConfig.User, "Database user")
	postgresCmd.Flags().StringVar(&pgConfig.Password, "password", pgConfig.Password, "Database password")
	postgresCmd.Flags().StringVar(&pgConfig.Database, "db", pgConfig.Database, "Database name")
	postgresCmd.Flags().StringVar(&pgConfig.SSLMode, "sslmode", pgConfig.SSLMode, "SSL mode")
	postgresCmd.Flags().BoolVar(&pgInit, "init", false, "Create the schema and missing tables before running")
}
