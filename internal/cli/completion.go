package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for Nexa.

To load completions for your shell:

Bash:
  # To load completions for each session, execute once:
  # Linux:
  nexa completion bash > /etc/bash_completion.d/nexa
  # macOS:
  nexa completion bash > /usr/local/etc/bash_completion.d/nexa

  # Or add to your ~/.bashrc or ~/.bash_profile:
  source <(nexa completion bash)

Zsh:
  # To load completions for each session, execute once:
  nexa completion zsh > "${fpath[1]}/_nexa"

  # Or add to your ~/.zshrc:
  source <(nexa completion zsh)

  # You may need to force rebuild the completion cache:
  rm -f ~/.zcompdump
  compinit

Fish:
  # To load completions for each session, execute once:
  nexa completion fish > ~/.config/fish/completions/nexa.fish

  # Or add to your ~/.config/fish/config.fish:
  nexa completion fish | source

PowerShell:
  # To load completions for each session, run:
  nexa completion powershell | Out-String | Invoke-Expression

  # Or add to your PowerShell profile:
  # (Microsoft.PowerShell_profile.ps1 or profile.ps1)
  nexa completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.ExactValidArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(out)
		case "zsh":
			return cmd.Root().GenZshCompletion(out)
		case "fish":
			return cmd.Root().GenFishCompletion(out, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(out)
		}
		return fmt.Errorf("unsupported shell type: %s", args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
