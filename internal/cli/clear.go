package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Erase all stored data",
	Long: `Erase all assets, users and the session. Assets start empty afterwards and
the demo users are restored on the next run. The audit journal is kept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Erase all data?") {
			return errAborted
		}
		return withApp(cmd.Context(), func(a *app) error {
			a.inv.ClearAll(cmd.Context())
			if jsonOutput {
				return outputJSON(map[string]bool{"cleared": true})
			}
			fmt.Println("All data cleared.")
			return nil
		})
	},
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "do not ask for confirmation")
	rootCmd.AddCommand(clearCmd)
}
