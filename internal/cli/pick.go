package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// pickCommand creates the interactive "pick" command.
func (c *CLI) pickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Pick a year, make and model interactively and save the choice",
		Long: `Walk through year, make and model in an interactive list.

The completed selection is saved under the active profile (see --profile) and
can be shown later with "vehiclelookup selection show".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			profile := c.profileName()

			store, err := c.openStore(ctx)
			if err != nil {
				return presentError(err)
			}
			defer store.Close()

			prev, err := store.Get(ctx, profile)
			if err != nil {
				return presentError(err)
			}

			m := NewPickerModel(ctx, c.newLookup(), prev)
			p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(out))
			finalModel, err := p.Run()
			if err != nil {
				return err
			}

			fm, ok := finalModel.(PickerModel)
			if !ok || !fm.Completed() {
				printDetail(out, "No selection made")
				return nil
			}

			if err := store.Set(ctx, profile, &fm.State); err != nil {
				return presentError(err)
			}
			printSuccess(out, "Saved %s", StyleHighlight.Render(fm.State.Summary()))
			printDetail(out, "Profile: %s", profile)
			return nil
		},
	}
}
