package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	verrors "github.com/matzehuels/vehiclelookup/pkg/errors"
)

// yearsCommand creates the "years" command.
func (c *CLI) yearsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "years",
		Short: "List available model years, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lookup := c.newLookup()
			prog := newProgress(loggerFromContext(ctx))

			years, err := spin(ctx, cmd.ErrOrStderr(), "Fetching years...", func(ctx context.Context) ([]int, error) {
				return lookup.Years(ctx)
			})
			if err != nil {
				return presentError(err)
			}
			prog.done("Fetched years", "count", len(years))

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), years)
			}
			printList(cmd.OutOrStdout(), "Years", yearStrings(years))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the list as JSON")
	return cmd
}

// makesCommand creates the "makes" command.
func (c *CLI) makesCommand() *cobra.Command {
	var (
		year   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:     "makes --year YEAR",
		Short:   "List the makes available for a model year",
		Example: "  vehiclelookup makes --year 2020",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := verrors.ValidateYear(year); err != nil {
				return presentError(err)
			}
			ctx := cmd.Context()
			lookup := c.newLookup()
			prog := newProgress(loggerFromContext(ctx))

			makes, err := spin(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Fetching makes for %d...", year), func(ctx context.Context) ([]string, error) {
				return lookup.Makes(ctx, year)
			})
			if err != nil {
				return presentError(err)
			}
			prog.done("Fetched makes", "year", year, "count", len(makes))

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), makes)
			}
			printList(cmd.OutOrStdout(), fmt.Sprintf("Makes (%d)", year), makes)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "model year (four digits)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the list as JSON")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.RegisterFlagCompletionFunc("year", c.completeYears)
	return cmd
}

// modelsCommand creates the "models" command.
func (c *CLI) modelsCommand() *cobra.Command {
	var (
		year     int
		makeName string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:     "models --year YEAR --make MAKE",
		Short:   "List the models of a make in a model year",
		Example: "  vehiclelookup models --year 2020 --make \"Land Rover\"",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := verrors.ValidateYear(year); err != nil {
				return presentError(err)
			}
			if err := verrors.ValidateMake(makeName); err != nil {
				return presentError(err)
			}
			ctx := cmd.Context()
			lookup := c.newLookup()
			prog := newProgress(loggerFromContext(ctx))

			models, err := spin(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Fetching %s models for %d...", makeName, year), func(ctx context.Context) ([]string, error) {
				return lookup.Models(ctx, year, makeName)
			})
			if err != nil {
				return presentError(err)
			}
			prog.done("Fetched models", "year", year, "make", makeName, "count", len(models))

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), models)
			}
			printList(cmd.OutOrStdout(), fmt.Sprintf("Models (%d %s)", year, makeName), models)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "model year (four digits)")
	cmd.Flags().StringVar(&makeName, "make", "", "make name as listed by the makes command")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the list as JSON")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("make")
	_ = cmd.RegisterFlagCompletionFunc("year", c.completeYears)
	_ = cmd.RegisterFlagCompletionFunc("make", c.completeMakes)
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
