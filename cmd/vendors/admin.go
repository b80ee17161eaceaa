package main

import (
	"errors"
	"fmt"

	"github.com/JonMunkholm/vendors/internal/core"
	"github.com/JonMunkholm/vendors/internal/fileio"
	"github.com/JonMunkholm/vendors/internal/pgstore"
	"github.com/spf13/cobra"
)

var errNeedsPostgres = errors.New("this command requires the postgres backend (--backend postgres)")

var confirmReset bool

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy valid rows from the input file into PostgreSQL",
	RunE: withService(func(cmd *cobra.Command, args []string) error {
		if storage.Pool == nil {
			return errNeedsPostgres
		}

		lines, err := fileio.ReadLines(cfg.Store.InputPath)
		if err != nil {
			return fmt.Errorf("%w: %w", core.ErrSourceUnavailable, err)
		}

		var codec core.Codec
		valid := make([]string, 0, len(lines))
		for _, line := range lines {
			if codec.IsValidRow(line) {
				valid = append(valid, line)
			}
		}

		n, err := pgstore.Import(cmd.Context(), storage.Pool, valid)
		if err != nil {
			return fmt.Errorf("%w: %w", core.ErrSinkUnavailable, err)
		}

		logger.Info("import complete", "lines", len(lines), "imported", n, "skipped", len(lines)-n)
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d rows from %s\n", n, len(lines), cfg.Store.InputPath)
		return nil
	}),
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every vendor row from PostgreSQL",
	RunE: withService(func(cmd *cobra.Command, args []string) error {
		if storage.Rows == nil {
			return errNeedsPostgres
		}
		if !confirmReset {
			return errors.New("refusing to reset without --yes")
		}

		before, err := storage.Rows.Count(cmd.Context())
		if err != nil {
			return err
		}
		if err := storage.Rows.Reset(cmd.Context()); err != nil {
			return err
		}

		logger.Warn("vendor rows reset", "input", before.Input, "saved", before.Saved)
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d rows (%d input, %d saved)\n",
			before.Total(), before.Input, before.Saved)
		return nil
	}),
}

func init() {
	resetCmd.Flags().BoolVar(&confirmReset, "yes", false, "Confirm deleting every row")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
}
