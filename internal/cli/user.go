package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nexa-assets/nexa/internal/auth"
	"github.com/nexa-assets/nexa/pkg/color"
	"github.com/nexa-assets/nexa/pkg/model"
)

var (
	userName     string
	userEmail    string
	userPassword string
	userRole     string
	userHash     bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage application users",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			users := a.inv.Users()
			public := make([]model.AppUser, len(users))
			for i, u := range users {
				public[i] = u.Public()
			}
			if jsonOutput {
				return outputJSON(public)
			}
			for _, u := range public {
				status := color.Success(string(u.Status))
				if u.Status != model.UserActive {
					status = color.Error(string(u.Status))
				}
				fmt.Printf("%-24s  %-28s  %-7s  %-9s  %s\n",
					u.Name, u.Email, u.Role, status, color.Dim("last login: "+u.LastLogin))
			}
			return nil
		})
	},
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a user",
	Long: `Add an active user who has never logged in.

Examples:
  nexa user add --name "Sam Lee" --email sam@example.com --password changeme
  nexa user add --name "Auditor" --email audit@example.com --role viewer --password pw --hash`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		role := parseRole(userRole)
		password := userPassword
		if userHash && password != "" {
			h, err := auth.HashPassword(password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			password = h
		}

		return withApp(cmd.Context(), func(a *app) error {
			u, err := a.inv.AddUser(cmd.Context(), model.AppUser{
				Name:     userName,
				Email:    userEmail,
				Role:     role,
				Password: password,
			})
			if err != nil {
				return err
			}
			if jsonOutput {
				return outputJSON(u.Public())
			}
			fmt.Printf("Added user %s <%s> (%s)\n", u.Name, u.Email, u.Role)
			return nil
		})
	},
}

// parseRole maps a case-insensitive role name onto its canonical spelling.
// Unknown names pass through so validation can reject them.
func parseRole(s string) model.Role {
	for _, r := range []model.Role{model.RoleAdmin, model.RoleStaff, model.RoleViewer} {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r
		}
	}
	return model.Role(s)
}

func init() {
	userAddCmd.Flags().StringVar(&userName, "name", "", "display name (required)")
	userAddCmd.Flags().StringVar(&userEmail, "email", "", "email address (required)")
	userAddCmd.Flags().StringVar(&userPassword, "password", "", "sign-in password")
	userAddCmd.Flags().StringVar(&userRole, "role", "Staff", "role: Admin, Staff, Viewer")
	userAddCmd.Flags().BoolVar(&userHash, "hash", false, "store the password as a bcrypt hash")

	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userAddCmd)
	rootCmd.AddCommand(userCmd)
}
