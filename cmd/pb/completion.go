package main

import (
	"os"
	"strings"

	"github.com/jacksmith/pb/internal/cli"
	"github.com/jacksmith/pb/internal/model"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for pb.

To load completions:

Bash:
  $ source <(pb completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ pb completion bash > /etc/bash_completion.d/pb
  # macOS:
  $ pb completion bash > $(brew --prefix)/etc/bash_completion.d/pb

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ pb completion zsh > "${fpath[1]}/_pb"
  # You will need to start a new shell for this setup to take effect.

Fish:
  $ pb completion fish | source
  # To load completions for each session, execute once:
  $ pb completion fish > ~/.config/fish/completions/pb.fish
`,
}

var completionBashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate bash completion script",
	Long:  "Generate the autocompletion script for bash.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenBashCompletion(os.Stdout)
	},
}

var completionZshCmd = &cobra.Command{
	Use:   "zsh",
	Short: "Generate zsh completion script",
	Long:  "Generate the autocompletion script for zsh.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenZshCompletion(os.Stdout)
	},
}

var completionFishCmd = &cobra.Command{
	Use:   "fish",
	Short: "Generate fish completion script",
	Long:  "Generate the autocompletion script for fish.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenFishCompletion(os.Stdout, true)
	},
}

func init() {
	completionCmd.AddCommand(completionBashCmd)
	completionCmd.AddCommand(completionZshCmd)
	completionCmd.AddCommand(completionFishCmd)
	rootCmd.AddCommand(completionCmd)
}

// completeContactIDs completes the first argument with contact IDs,
// described by the contact's name.
func completeContactIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	s, err := openBook()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	for _, e := range s.book.List() {
		if strings.HasPrefix(e.ID.String(), toComplete) {
			completions = append(completions, e.ID.String()+"\t"+cli.Truncate(e.Contact.FullName(), 40))
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeEditArgs completes an ID, then a field name.
func completeEditArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return completeContactIDs(cmd, args, toComplete)
	case 1:
		var completions []string
		for _, f := range model.Fields {
			if strings.HasPrefix(f.Key(), strings.ToLower(toComplete)) {
				completions = append(completions, f.Key()+"\t"+f.Label())
			}
		}
		return completions, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}
