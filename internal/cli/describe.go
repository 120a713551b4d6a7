package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <keywords...>",
	Short: "Generate an asset description from keywords",
	Long: `Generate a concise asset description from keywords with the configured
text model. Needs an API key in assist.api_key, $GEMINI_API_KEY or $API_KEY.

Examples:
  nexa describe dell latitude 16GB docking station`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keywords := strings.Join(args, " ")
		return withApp(cmd.Context(), func(a *app) error {
			text := a.assistant(cmd.Context()).Describe(cmd.Context(), keywords)
			if jsonOutput {
				return outputJSON(map[string]string{"keywords": keywords, "description": text})
			}
			fmt.Println(text)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
