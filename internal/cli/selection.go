package cli

import (
	"github.com/spf13/cobra"
)

// selectionCommand creates the selection management command.
func (c *CLI) selectionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selection",
		Short: "Show or clear the saved vehicle selection",
	}

	cmd.AddCommand(c.selectionShowCommand())
	cmd.AddCommand(c.selectionClearCommand())

	return cmd
}

// selectionShowCommand creates the "selection show" subcommand.
func (c *CLI) selectionShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the selection saved for the active profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			profile := c.profileName()

			store, err := c.openStore(ctx)
			if err != nil {
				return presentError(err)
			}
			defer store.Close()

			st, err := store.Get(ctx, profile)
			if err != nil {
				return presentError(err)
			}
			if st == nil {
				printInfo(out, "No selection saved for profile %s", profile)
				printDetail(out, "Run 'vehiclelookup pick' to choose a vehicle")
				return nil
			}

			if asJSON {
				return writeJSON(out, st)
			}
			_, err = out.Write([]byte(selectionTable(profile, st) + "\n"))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the saved state as JSON")
	return cmd
}

// selectionClearCommand creates the "selection clear" subcommand.
func (c *CLI) selectionClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the selection saved for the active profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			profile := c.profileName()

			store, err := c.openStore(ctx)
			if err != nil {
				return presentError(err)
			}
			defer store.Close()

			if err := store.Delete(ctx, profile); err != nil {
				return presentError(err)
			}
			printSuccess(cmd.OutOrStdout(), "Cleared selection for profile %s", profile)
			return nil
		},
	}
}
