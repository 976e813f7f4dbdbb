package cli

import "github.com/spf13/cobra"

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for flatpak-cargo-generator.

To load completions:

Bash:
  $ source <(flatpak-cargo-generator completion bash)

  # To load completions for each session, execute once:
  $ flatpak-cargo-generator completion bash > /etc/bash_completion.d/flatpak-cargo-generator

Zsh:
  # To load completions for each session, execute once:
  $ flatpak-cargo-generator completion zsh > "${fpath[1]}/_flatpak-cargo-generator"

Fish:
  $ flatpak-cargo-generator completion fish | source

  # To load completions for each session, execute once:
  $ flatpak-cargo-generator completion fish > ~/.config/fish/completions/flatpak-cargo-generator.fish

PowerShell:
  PS> flatpak-cargo-generator completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}

	return cmd
}
