package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nexa-assets/nexa/internal/audit"
	"github.com/nexa-assets/nexa/pkg/color"
	"github.com/nexa-assets/nexa/pkg/model"
)

var (
	auditSearch string
	auditAction string
	auditSince  string
	auditUntil  string
	auditLimit  int
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show the audit log across all assets",
	Long: `Show every audit entry of every asset, newest first.

--search matches the asset name, asset tag, details and user, ignoring case.
Dates for --since and --until are YYYY-MM-DD (local time) or RFC 3339.

Examples:
  nexa audit
  nexa audit --search laptop
  nexa audit --action updated --since 2024-01-01 -n 20`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := auditFilterOptions()
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(a *app) error {
			entries := audit.Find(audit.FlattenLogs(a.inv.List()), opts)
			return printFlatEntries(entries)
		})
	},
}

var auditJournalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show the audit journal, including deleted assets",
	Long: `Show the append-only audit journal. Unlike "nexa audit", the journal
keeps entries for assets that have since been deleted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := auditFilterOptions()
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(a *app) error {
			if a.journal == nil {
				return errors.New("audit journal is disabled (journal.enabled=false)")
			}
			records, err := a.journal.Records()
			if err != nil {
				return err
			}
			return printFlatEntries(audit.Find(audit.FlattenJournal(records), opts))
		})
	},
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the audit journal hash chain",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			if a.journal == nil {
				return errors.New("audit journal is disabled (journal.enabled=false)")
			}
			res, err := a.journal.Verify()
			if res == nil {
				return err
			}
			if jsonOutput {
				if jerr := outputJSON(res); jerr != nil {
					return jerr
				}
				return err
			}
			if err != nil {
				return err
			}
			fmt.Printf("%s %d record(s), chain intact.\n", color.Success("OK"), res.Records)
			return nil
		})
	},
}

func auditFilterOptions() (audit.FilterOptions, error) {
	opts := audit.FilterOptions{Term: auditSearch, Limit: auditLimit}
	if auditAction != "" {
		act, ok := parseAction(auditAction)
		if !ok {
			return opts, fmt.Errorf("unknown action %q", auditAction)
		}
		opts.Action = act
	}
	var err error
	if opts.Since, err = parseWhen(auditSince, false); err != nil {
		return opts, err
	}
	if opts.Until, err = parseWhen(auditUntil, true); err != nil {
		return opts, err
	}
	return opts, nil
}

func parseAction(s string) (model.AuditAction, bool) {
	for _, a := range model.AllActions {
		if strings.EqualFold(string(a), s) {
			return a, true
		}
	}
	return "", false
}

// parseWhen accepts a calendar date or an RFC 3339 timestamp. A bare date
// used as an upper bound covers the whole day.
func parseWhen(s string, endOfDay bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := model.ParseDate(s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC 3339", s)
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, nil
}

func printFlatEntries(entries []audit.FlatEntry) error {
	if jsonOutput {
		if entries == nil {
			entries = []audit.FlatEntry{}
		}
		return outputJSON(entries)
	}
	if len(entries) == 0 {
		fmt.Println("No audit entries found.")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %-8s  %-10s  %-28s  %s  %s\n",
			color.Dim(formatEntryDate(e.AuditLogEntry)),
			e.Action,
			color.Tag(e.AssetTag),
			e.AssetName,
			e.Details,
			color.Dim("by "+e.User),
		)
	}
	return nil
}

func init() {
	for _, c := range []*cobra.Command{auditCmd, auditJournalCmd} {
		c.Flags().StringVarP(&auditSearch, "search", "s", "", "match asset name, tag, details or user")
		c.Flags().StringVar(&auditAction, "action", "", "only this action: Created, Updated, Deleted, Disposed")
		c.Flags().StringVar(&auditSince, "since", "", "only entries at or after this date")
		c.Flags().StringVar(&auditUntil, "until", "", "only entries at or before this date")
		c.Flags().IntVarP(&auditLimit, "limit", "n", 0, "show at most this many entries")
	}
	auditCmd.AddCommand(auditJournalCmd)
	auditCmd.AddCommand(auditVerifyCmd)
	rootCmd.AddCommand(auditCmd)
}
