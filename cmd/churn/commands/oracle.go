package commands

import (
	"github.com/spf13/cobra"

	"github.com/marshallshelly/pebble-churn/pkg/runtime"
)

var oraConfig = runtime.DefaultOracleConfig()

// oracleCmd runs a workload against Oracle
var oracleCmd = &cobra.Command{
	Use:   "oracle",
	Short: "Generate traffic against Oracle",
	Long: `Generate traffic against Oracle through the pure-Go go-ora driver; no
Instant Client is needed. Runs the orders workload unless --workload says
otherwise. Ids come from the customers_seq and orders_seq sequences.

Examples:
  churn oracle                                    # 1 op/s until Ctrl+C
  churn oracle --service XEPDB1 --iterations 100  # 100 ops
  churn oracle --rate 5 -v                        # print every statement`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWorkload(cmd, runOptions{
			conn:            oraConfig,
			schema:          schemaName,
			defaultWorkload: "orders",
		})
	},
}

func init() {
	rootCmd.AddCommand(oracleCmd)

	oracleCmd.Flags().StringVar(&oraConfig.Host, "host", oraConfig.Host, "Database host")
	oracleCmd.Flags().IntVar(&oraConfig.Port, "port", oraConfig.Port, "Listener port")
	oracleCmd.Flags().StringVar(&oraConfig.User, "user", oraConfig.User, "Database user")
	oracleCmd.Flags().StringVar(&oraConfig.Password, "password", oraConfig.Password, "Database password")
	oracleCmd.Flags().StringVar(&oraConfig.Service, "service", oraConfig.Service, "Service name")
}
