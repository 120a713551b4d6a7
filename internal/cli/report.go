package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nexa-assets/nexa/internal/report"
	"github.com/nexa-assets/nexa/pkg/color"
)

var (
	maintenanceWindow int
	pieSVGPath        string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Inventory reports",
}

var reportStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Assets by status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			return printBreakdown("Status", report.StatusBreakdown(a.inv.List()))
		})
	},
}

var reportCategoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Assets by category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			return printBreakdown("Category", report.CategoryBreakdown(a.inv.List()))
		})
	},
}

func printBreakdown(title string, b report.Breakdown) error {
	if jsonOutput {
		if b.Rows == nil {
			b.Rows = []report.Row{}
		}
		return outputJSON(b)
	}
	if b.Total == 0 {
		fmt.Println("No assets.")
		return nil
	}
	fmt.Printf("%-20s %6s %8s\n", color.Header(title), "Count", "Share")
	for _, r := range b.Rows {
		bar := strings.Repeat("#", int(r.Percent/5+0.5))
		fmt.Printf("%-20s %6d %7.1f%%  %s\n", r.Name, r.Count, r.Percent, color.Dim(bar))
	}
	fmt.Printf("%-20s %6d\n", "Total", b.Total)
	return nil
}

var reportMaintenanceCmd = &cobra.Command{
	Use:   "maintenance",
	Short: "Assets due for re-imaging",
	Long: `List assets whose re-image date falls between today and the end of the
maintenance window (reports.maintenance_window_days, 90 by default),
soonest first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			window := a.cfg.MaintenanceWindow()
			if cmd.Flags().Changed("days") {
				window = maintenanceWindow
			}
			due := report.UpcomingMaintenance(a.inv.List(), time.Now(), window)
			if jsonOutput {
				if due == nil {
					due = []report.Due{}
				}
				return outputJSON(due)
			}
			if len(due) == 0 {
				fmt.Println("No re-imaging due.")
				return nil
			}
			for _, d := range due {
				fmt.Printf("%-10s  %-32s  %s  %s\n",
					color.Tag(d.Asset.AssetTag),
					d.Asset.Name,
					d.Asset.ReimageDate,
					color.Urgency(string(d.Urgency), report.FormatDaysUntil(d.DaysUntil)),
				)
			}
			return nil
		})
	},
}

var reportPieCmd = &cobra.Command{
	Use:   "pie",
	Short: "Status distribution chart data",
	Long: `Print the status distribution as chart slices. With --svg, also write a
donut chart to the given file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			pie := report.PieChart(report.CountByStatus(a.inv.List()))

			if pieSVGPath != "" {
				f, err := os.Create(pieSVGPath)
				if err != nil {
					return fmt.Errorf("create svg: %w", err)
				}
				if err := report.RenderPieSVG(f, pie); err != nil {
					f.Close()
					return fmt.Errorf("write svg: %w", err)
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("write svg: %w", err)
				}
			}

			slices, err := pie.Slices()
			if jsonOutput {
				if slices == nil {
					slices = []report.Slice{}
				}
				return outputJSON(map[string]any{"total": pie.Total, "slices": slices})
			}
			if err != nil {
				fmt.Println("No data")
				return nil
			}
			for _, s := range slices {
				fmt.Printf("%-18s %4d  %s  %7.2f° → %7.2f°\n", s.Name, s.Value, s.Color, s.StartAngle, s.EndAngle)
			}
			if pieSVGPath != "" {
				fmt.Printf("Chart written to %s\n", pieSVGPath)
			}
			return nil
		})
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Headline inventory figures",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			assets := a.inv.List()
			sum := report.Dashboard(assets)
			due := report.UpcomingMaintenance(assets, time.Now(), a.cfg.MaintenanceWindow())
			if jsonOutput {
				return outputJSON(map[string]any{
					"summary":             sum,
					"upcomingMaintenance": len(due),
					"actor":               a.inv.Actor(),
				})
			}
			if actor := a.inv.Actor(); actor != "" {
				fmt.Printf("Signed in as %s\n\n", actor)
			}
			fmt.Printf("%-20s %d\n", "Total assets:", sum.TotalAssets)
			fmt.Printf("%-20s $%.2f\n", "Total value:", sum.TotalValue)
			fmt.Printf("%-20s %d\n", "Assigned:", sum.AssignedCount)
			fmt.Printf("%-20s %d\n\n", "Re-imaging due:", len(due))
			for _, sc := range sum.ByStatus {
				fmt.Printf("  %-18s %d\n", color.Status(sc.Status), sc.Count)
			}
			return nil
		})
	},
}

func init() {
	reportMaintenanceCmd.Flags().IntVar(&maintenanceWindow, "days", report.DefaultMaintenanceWindow, "maintenance window in days")
	reportPieCmd.Flags().StringVar(&pieSVGPath, "svg", "", "write a donut chart SVG to this file")

	reportCmd.AddCommand(reportStatusCmd)
	reportCmd.AddCommand(reportCategoryCmd)
	reportCmd.AddCommand(reportMaintenanceCmd)
	reportCmd.AddCommand(reportPieCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(dashboardCmd)
}
