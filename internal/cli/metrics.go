package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Print Prometheus metrics",
	Long: `Load the inventory and print its metrics in the Prometheus text format.

Counters only cover this invocation; the nexa_assets gauge reflects the
stored inventory. Pipe the output to a node_exporter textfile collector to
scrape it.

Metrics:
  - nexa_asset_operations_total
  - nexa_operation_duration_seconds
  - nexa_assets
  - nexa_persistence_failures_total
  - nexa_login_attempts_total
  - nexa_assist_requests_total
  - nexa_journal_appends_total`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			return a.metrics.WriteText(os.Stdout)
		})
	},
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}
