package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for gomeasure.

To load completions:

Bash:

  $ source <(gomeasure completion bash)

  To load completions for each session, execute once:
  Linux:
    $ gomeasure completion bash > /etc/bash_completion.d/gomeasure
  macOS:
    $ gomeasure completion bash > /usr/local/etc/bash_completion.d/gomeasure

Zsh:

  If shell completion is not already enabled in your environment,
  you will need to enable it. You can execute the following once:

  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  To load completions for each session, execute once:
  $ gomeasure completion zsh > "${fpath[1]}/_gomeasure"

  You will need to start a new shell for this setup to take effect.

Fish:

  $ gomeasure completion fish | source

  To load completions for each session, execute once:
  $ gomeasure completion fish > ~/.config/fish/completions/gomeasure.fish

PowerShell:

  PS> gomeasure completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
		return fmt.Errorf("unsupported shell %q", args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
