package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	verrors "github.com/matzehuels/vehiclelookup/pkg/errors"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for vehiclelookup.

Besides commands and flags, the scripts complete values from the vehicle API:

  $ vehiclelookup makes --year <TAB>              # model years
  $ vehiclelookup models --year 2020 --make <TAB> # makes sold in 2020

To load completions:

Bash:
  $ source <(vehiclelookup completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ vehiclelookup completion bash > /etc/bash_completion.d/vehiclelookup
  # macOS:
  $ vehiclelookup completion bash > $(brew --prefix)/etc/bash_completion.d/vehiclelookup

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ vehiclelookup completion zsh > "${fpath[1]}/_vehiclelookup"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ vehiclelookup completion fish | source

  # To load completions for each session, execute once:
  $ vehiclelookup completion fish > ~/.config/fish/completions/vehiclelookup.fish

PowerShell:
  PS> vehiclelookup completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> vehiclelookup completion powershell > vehiclelookup.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}

// completeYears completes --year with the model years the API offers.
func (c *CLI) completeYears(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	lookup, ctx, err := c.completionLookup(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	years, err := lookup.Years(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	out := make([]string, 0, len(years))
	for _, y := range years {
		if s := strconv.Itoa(y); strings.HasPrefix(s, toComplete) {
			out = append(out, s)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveKeepOrder
}

// completeMakes completes --make with the makes of the year given by --year.
// Without a valid year there is nothing to offer.
func (c *CLI) completeMakes(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	year, err := cmd.Flags().GetInt("year")
	if err != nil || verrors.ValidateYear(year) != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	lookup, ctx, err := c.completionLookup(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	makes, err := lookup.Makes(ctx, year)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	out := make([]string, 0, len(makes))
	for _, m := range makes {
		if m != "" && strings.HasPrefix(strings.ToLower(m), strings.ToLower(toComplete)) {
			out = append(out, m)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completionLookup loads the configuration named by the already parsed
// flags; completion requests bypass the root's pre-run hook.
func (c *CLI) completionLookup(cmd *cobra.Command) (Lookup, context.Context, error) {
	if err := c.setup(cmd); err != nil {
		return nil, nil, err
	}
	return c.newLookup(), cmd.Context(), nil
}
