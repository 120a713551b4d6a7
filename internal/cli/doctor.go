package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexa-assets/nexa/internal/doctor"
)

var (
	doctorStrict bool
)

var errUnhealthy = errors.New("data is unhealthy")

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check data health",
	Long: `Check data health.

Reads the stored documents directly and reports duplicate ids or tags,
invalid records, broken audit trails and leftover temporary files.
Use --strict to also verify the audit journal hash chain.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		doc := doctor.NewDoctor(a.store, a.journal, a.dataDir)
		result, err := doc.Check(cmd.Context(), doctorStrict)
		if err != nil {
			return fmt.Errorf("doctor: %w", err)
		}

		if jsonOutput {
			if err := outputJSON(result); err != nil {
				return err
			}
		} else if len(result.Findings) == 0 {
			fmt.Println("Data is healthy.")
		} else {
			fmt.Printf("Findings (%d):\n", len(result.Findings))
			for _, f := range result.Findings {
				fmt.Printf("  [%s] %s: %s\n", f.Severity, f.Category, f.Description)
			}
		}

		if !result.Healthy {
			return errUnhealthy
		}
		return nil
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorStrict, "strict", false, "include audit journal verification")
	rootCmd.AddCommand(doctorCmd)
}
