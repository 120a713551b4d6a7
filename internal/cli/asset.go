package cli

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nexa-assets/nexa/internal/search"
	"github.com/nexa-assets/nexa/pkg/color"
	"github.com/nexa-assets/nexa/pkg/errclass"
	"github.com/nexa-assets/nexa/pkg/model"
)

var (
	assetListSearch     string
	assetListStatus     string
	assetListCategory   string
	assetListDepartment string
	assetListUnassigned bool
	assetDeleteYes      bool

	// add / edit fields
	fTag           string
	fName          string
	fCategory      string
	fStatus        string
	fPurchaseDate  string
	fReimageDate   string
	fValue         float64
	fAssignedName  string
	fAssignedEmail string
	fDepartment    string
	fLocation      string
	fDescription   string
	fSerial        string
	fGenerate      string
	fAssignmentSig string
	fDisposalSig   string
)

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "Manage assets",
}

var assetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List assets, newest first",
	Long: `List assets, most recently created first.

--search matches any text field (tag, name, serial number, assignee, ...)
ignoring case. The other filters narrow the result further.

Examples:
  nexa asset list
  nexa asset list --search dell
  nexa asset list --status assigned --department finance
  nexa asset list --unassigned --category laptop`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := search.Options{
			Term:       assetListSearch,
			Department: assetListDepartment,
			Unassigned: assetListUnassigned,
		}
		if assetListStatus != "" {
			s, ok := model.ParseStatus(assetListStatus)
			if !ok {
				return fmt.Errorf("unknown status %q", assetListStatus)
			}
			opts.Status = s
		}
		if assetListCategory != "" {
			c, ok := model.ParseCategory(assetListCategory)
			if !ok {
				return fmt.Errorf("unknown category %q", assetListCategory)
			}
			opts.Category = c
		}

		return withApp(cmd.Context(), func(a *app) error {
			assets := search.Filter(a.inv.List(), opts)
			if jsonOutput {
				return outputJSON(assets)
			}
			if len(assets) == 0 {
				fmt.Println("No assets found.")
				return nil
			}
			for _, as := range assets {
				printAssetLine(&as)
			}
			fmt.Printf("\n%d asset(s)\n", len(assets))
			return nil
		})
	},
}

func printAssetLine(a *model.Asset) {
	assignee := color.Dim("unassigned")
	if !a.AssignedTo.IsZero() {
		assignee = a.AssignedTo.Name
		if assignee == "" {
			assignee = a.AssignedTo.Email
		}
	}
	fmt.Printf("%-10s  %-32s  %-12s  %-18s  %s\n",
		color.Tag(a.AssetTag), a.Name, a.Category, color.Status(a.Status), assignee)
}

var assetShowCmd = &cobra.Command{
	Use:   "show <id|tag>",
	Short: "Show one asset with its audit trail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			as, err := a.inv.Get(args[0])
			if err != nil {
				return notFoundWithHint(err, args[0], a.inv.List())
			}
			if jsonOutput {
				return outputJSON(as)
			}
			printAsset(&as)
			return nil
		})
	},
}

func printAsset(a *model.Asset) {
	row := func(label, value string) {
		if value == "" {
			value = color.Dim("-")
		}
		fmt.Printf("%-16s %s\n", label+":", value)
	}
	fmt.Println(color.Header(a.Name))
	row("ID", a.ID)
	row("Tag", color.Tag(a.AssetTag))
	row("Category", string(a.Category))
	row("Status", color.Status(a.Status))
	row("Serial number", a.SerialNumber)
	row("Purchased", a.PurchaseDate)
	row("Re-image due", a.ReimageDate)
	row("Value", fmt.Sprintf("$%.2f", a.Value))
	assignee := a.AssignedTo.Name
	if a.AssignedTo.Email != "" {
		assignee = strings.TrimSpace(assignee + " <" + a.AssignedTo.Email + ">")
	}
	row("Assigned to", assignee)
	row("Department", a.Department)
	row("Location", a.Location)
	row("Description", a.Description)
	if a.HasAssignmentSignature() {
		row("Signature", "assignment signature on file")
	}
	if a.HasDisposalSignature() {
		row("Signature", "disposal signature on file")
	}

	fmt.Printf("\n%s (%d)\n", color.Header("Audit trail"), len(a.AuditLog))
	for _, e := range a.AuditLog {
		fmt.Printf("  %s  %-8s  %s  %s\n",
			color.Dim(formatEntryDate(e)), e.Action, e.Details, color.Dim("by "+e.User))
	}
}

func formatEntryDate(e model.AuditLogEntry) string {
	t := e.Time()
	if t.IsZero() {
		return e.Date
	}
	return t.Local().Format("2006-01-02 15:04")
}

var assetAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new asset",
	Long: `Add a new asset. A "Created" entry is recorded in its audit trail.

A TAG-NNNN tag is generated when --tag is omitted. Category defaults to
Laptop and status to In Stock.

Examples:
  nexa asset add --name "Dell Latitude 7440" --category laptop --value 1450
  nexa asset add --name "Projector" --category projector --generate-description "epson, 4k, conference room"
  nexa asset add --name "MacBook" --status assigned --assigned-name "Sam" --assignment-signature sig.png`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		draft := model.Asset{
			Category: model.CategoryLaptop,
			Status:   model.StatusInStock,
		}
		return withApp(cmd.Context(), func(a *app) error {
			if err := applyAssetFlags(cmd, a, &draft); err != nil {
				return err
			}
			created, err := a.inv.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			if jsonOutput {
				return outputJSON(created)
			}
			fmt.Printf("Created asset %s (%s)\n", color.Tag(created.AssetTag), created.ID)
			return nil
		})
	},
}

var assetEditCmd = &cobra.Command{
	Use:   "edit <id|tag>",
	Short: "Edit an asset",
	Long: `Edit an asset. Only the fields given as flags change. An "Updated"
entry naming the resulting status is recorded in its audit trail.

Examples:
  nexa asset edit TAG-1001 --status "in repair"
  nexa asset edit asset-3 --assigned-name "Sam Lee" --assigned-email sam@example.com --status assigned`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			existing, err := a.inv.Get(args[0])
			if err != nil {
				return notFoundWithHint(err, args[0], a.inv.List())
			}
			draft := existing
			if err := applyAssetFlags(cmd, a, &draft); err != nil {
				return err
			}
			updated, err := a.inv.Update(cmd.Context(), existing.ID, draft)
			if err != nil {
				return err
			}
			if jsonOutput {
				return outputJSON(updated)
			}
			fmt.Printf("Updated asset %s. Status: %s\n", color.Tag(updated.AssetTag), color.Status(updated.Status))
			return nil
		})
	},
}

var assetDeleteCmd = &cobra.Command{
	Use:   "delete <id|tag>",
	Short: "Delete an asset",
	Long: `Delete an asset from the live inventory. Deleting an unknown asset does
nothing. The audit journal keeps the asset's history.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			as, err := a.inv.Get(args[0])
			if err != nil {
				if jsonOutput {
					return outputJSON(map[string]any{"deleted": false})
				}
				fmt.Println("Nothing to delete.")
				return nil
			}
			if !assetDeleteYes && !confirm(cmd.InOrStdin(), os.Stdout, "Are you sure you want to delete this asset?") {
				return errAborted
			}
			a.inv.Delete(cmd.Context(), as.ID)
			if jsonOutput {
				return outputJSON(map[string]any{"deleted": true, "id": as.ID, "assetTag": as.AssetTag})
			}
			fmt.Printf("Deleted asset %s (%s)\n", color.Tag(as.AssetTag), as.Name)
			return nil
		})
	},
}

// applyAssetFlags copies every flag the user set onto draft.
func applyAssetFlags(cmd *cobra.Command, a *app, draft *model.Asset) error {
	changed := cmd.Flags().Changed
	if changed("tag") {
		draft.AssetTag = fTag
	}
	if changed("name") {
		draft.Name = fName
	}
	if changed("category") {
		c, ok := model.ParseCategory(fCategory)
		if !ok {
			return errclass.ErrInvalidAsset.WithMessagef("unknown category %q", fCategory)
		}
		draft.Category = c
	}
	if changed("status") {
		s, ok := model.ParseStatus(fStatus)
		if !ok {
			return errclass.ErrInvalidAsset.WithMessagef("unknown status %q", fStatus)
		}
		draft.Status = s
	}
	if changed("purchase-date") {
		draft.PurchaseDate = fPurchaseDate
	}
	if changed("reimage-date") {
		draft.ReimageDate = fReimageDate
	}
	if changed("value") {
		draft.Value = fValue
	}
	if changed("assigned-name") {
		draft.AssignedTo.Name = fAssignedName
	}
	if changed("assigned-email") {
		draft.AssignedTo.Email = fAssignedEmail
	}
	if changed("department") {
		draft.Department = fDepartment
	}
	if changed("location") {
		draft.Location = fLocation
	}
	if changed("description") {
		draft.Description = fDescription
	}
	if changed("serial") {
		draft.SerialNumber = fSerial
	}
	if changed("generate-description") {
		draft.Description = a.assistant(cmd.Context()).Describe(cmd.Context(), fGenerate)
	}
	if changed("assignment-signature") {
		sig, err := readSignature(fAssignmentSig)
		if err != nil {
			return err
		}
		draft.AssignmentSignature = sig
	}
	if changed("disposal-signature") {
		sig, err := readSignature(fDisposalSig)
		if err != nil {
			return err
		}
		draft.DisposalSignature = sig
	}
	return nil
}

// readSignature loads an image file as a data URL. An empty path clears the
// signature.
func readSignature(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read signature: %w", err)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", errclass.ErrInvalidAsset.WithMessagef("signature %s is not an image (%s)", path, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func addAssetFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&fTag, "tag", "", "asset tag, e.g. TAG-1234")
	f.StringVar(&fName, "name", "", "asset name")
	f.StringVar(&fCategory, "category", "", "category: "+joinCategories())
	f.StringVar(&fStatus, "status", "", "status: "+joinStatuses())
	f.StringVar(&fPurchaseDate, "purchase-date", "", "purchase date (YYYY-MM-DD)")
	f.StringVar(&fReimageDate, "reimage-date", "", "next re-image date (YYYY-MM-DD)")
	f.Float64Var(&fValue, "value", 0, "value in dollars")
	f.StringVar(&fAssignedName, "assigned-name", "", "name of the person holding the asset")
	f.StringVar(&fAssignedEmail, "assigned-email", "", "email of the person holding the asset")
	f.StringVar(&fDepartment, "department", "", "department")
	f.StringVar(&fLocation, "location", "", "location")
	f.StringVar(&fDescription, "description", "", "description")
	f.StringVar(&fSerial, "serial", "", "serial number")
	f.StringVar(&fGenerate, "generate-description", "", "generate the description from these keywords")
	f.StringVar(&fAssignmentSig, "assignment-signature", "", "image file with the assignee's signature")
	f.StringVar(&fDisposalSig, "disposal-signature", "", "image file with the disposal signature")
}

func joinStatuses() string {
	names := make([]string, len(model.AllStatuses))
	for i, s := range model.AllStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func joinCategories() string {
	names := make([]string, len(model.AllCategories))
	for i, c := range model.AllCategories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func init() {
	assetListCmd.Flags().StringVarP(&assetListSearch, "search", "s", "", "free-text search")
	assetListCmd.Flags().StringVar(&assetListStatus, "status", "", "only assets with this status")
	assetListCmd.Flags().StringVar(&assetListCategory, "category", "", "only assets in this category")
	assetListCmd.Flags().StringVar(&assetListDepartment, "department", "", "only assets whose department contains this text")
	assetListCmd.Flags().BoolVar(&assetListUnassigned, "unassigned", false, "only assets not assigned to anyone")

	addAssetFlags(assetAddCmd)
	addAssetFlags(assetEditCmd)

	assetDeleteCmd.Flags().BoolVarP(&assetDeleteYes, "yes", "y", false, "do not ask for confirmation")

	assetCmd.AddCommand(assetListCmd)
	assetCmd.AddCommand(assetShowCmd)
	assetCmd.AddCommand(assetAddCmd)
	assetCmd.AddCommand(assetEditCmd)
	assetCmd.AddCommand(assetDeleteCmd)
	rootCmd.AddCommand(assetCmd)
}
