package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nexa-assets/nexa/pkg/color"
)

var (
	jsonOutput  bool
	dataDirFlag string
	configFlag  string
	noColorFlag bool
	logLevel    string
	ephemeral   bool

	rootCmd = &cobra.Command{
		Use:   "nexa",
		Short: "Nexa - IT asset inventory",
		Long: `Nexa is an IT asset inventory. It tracks physical IT assets: who holds
them, what state they are in, and everything that ever happened to them. Every change is recorded in an
append-only audit trail.

Data lives in a local data directory (--data-dir, $NEXA_DATA_DIR or ~/.nexa)
unless a redis backend is configured.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			color.Init(noColorFlag)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default $NEXA_DATA_DIR or ~/.nexa)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default <data-dir>/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep all data in memory for this invocation")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmtErr("%v", err)
		os.Exit(1)
	}
}

// outputJSON prints v as JSON if --json flag is set, otherwise does nothing.
func outputJSON(v any) error {
	if !jsonOutput {
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func fmtErr(format string, args ...any) {
	prefix := "nexa: "
	if color.Enabled() {
		prefix = color.Error("nexa:") + " "
	}
	fmt.Fprintf(os.Stderr, prefix+format+"\n", args...)
}
