package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nexa-assets/nexa/internal/auth"
	"github.com/nexa-assets/nexa/pkg/model"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in as an application user",
	Long: `Sign in so that changes are attributed to you in the audit trail.

Missing --email or --password values are read from standard input.

Examples:
  nexa login --email admin@nexa.com --password admin`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := bufio.NewReader(cmd.InOrStdin())
		email := loginEmail
		if email == "" {
			email = prompt(in, cmd.OutOrStdout(), "Email")
		}
		password := loginPassword
		if password == "" {
			password = prompt(in, cmd.OutOrStdout(), "Password")
		}

		return withApp(cmd.Context(), func(a *app) error {
			u, err := auth.Login(a.inv.Users(), email, password)
			a.metrics.RecordLogin(err == nil)
			if err != nil {
				return err
			}
			if touched, err := a.inv.TouchLogin(cmd.Context(), u.ID); err == nil {
				u = touched
			}
			if err := a.session.Save(cmd.Context(), u); err != nil {
				a.log.Warn("session not saved", map[string]any{"error": err.Error()})
			}
			a.inv.SetActor(u.Name)
			if jsonOutput {
				return outputJSON(u.Public())
			}
			fmt.Printf("Signed in as %s (%s)\n", u.Name, u.Role)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			if err := a.session.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear session: %w", err)
			}
			a.inv.SetActor("")
			fmt.Println("Signed out.")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			u, ok, err := a.session.Current(cmd.Context())
			if err != nil {
				return fmt.Errorf("read session: %w", err)
			}
			if jsonOutput {
				if !ok {
					return outputJSON(map[string]any{"signedIn": false, "actor": model.UnknownUser})
				}
				return outputJSON(map[string]any{"signedIn": true, "user": u, "actor": u.Name})
			}
			if !ok {
				fmt.Printf("Not signed in. Changes are recorded as %q.\n", model.UnknownUser)
				return nil
			}
			fmt.Printf("%s <%s> (%s)\n", u.Name, u.Email, u.Role)
			return nil
		})
	},
}

// prompt reads one trimmed line after printing label.
func prompt(in *bufio.Reader, out io.Writer, label string) string {
	fmt.Fprintf(out, "%s: ", label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
