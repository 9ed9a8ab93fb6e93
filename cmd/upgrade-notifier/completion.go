package main

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for upgrade-notifier.

Bash:
  $ source <(upgrade-notifier completion bash)
  # To load completions for each session, execute once:
  $ upgrade-notifier completion bash > /etc/bash_completion.d/upgrade-notifier

Zsh:
  $ upgrade-notifier completion zsh > "${fpath[1]}/_upgrade-notifier"

Fish:
  $ upgrade-notifier completion fish > ~/.config/fish/completions/upgrade-notifier.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		default:
			return rootCmd.GenBashCompletionV2(out, true)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
