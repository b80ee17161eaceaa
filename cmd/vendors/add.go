package main

import (
	"fmt"

	"github.com/JonMunkholm/vendors/internal/console"
	"github.com/JonMunkholm/vendors/internal/core"
	"github.com/JonMunkholm/vendors/internal/pgstore"
	"github.com/spf13/cobra"
)

var prefill console.Answers

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Capture a vendor and append it to storage",
	Long:  "Prompts for id, name, birth date and region. Fields given as flags are not prompted for.",
	RunE: withService(func(cmd *cobra.Command, args []string) error {
		pattern := core.DatePattern(cfg.Store.InputDatePattern)
		prompter := console.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), pattern)

		vendor, err := prompter.ReadVendor(service, prefill)
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), console.InputErrorMessage(err))
			fmt.Fprintln(cmd.OutOrStdout(), console.MsgAborting)
			logger.Debug("vendor capture aborted", "error", err)
			return errAborted
		}

		if err := service.Save(cmd.Context(), vendor); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Se ha guardado con exito el Vendedor")
		fmt.Fprintf(cmd.OutOrStdout(), "Se guardo la informacion del vendedor en %s\n", savedTo())
		return nil
	}),
}

func savedTo() string {
	if storage.Rows != nil {
		return "la tabla " + pgstore.SavedTable
	}
	return "el archivo " + cfg.Store.OutputPath
}

func init() {
	addCmd.Flags().StringVar(&prefill.ID, "id", "", "Vendor id")
	addCmd.Flags().StringVar(&prefill.Name, "name", "", "Vendor name")
	addCmd.Flags().StringVar(&prefill.BirthDate, "birth-date", "", "Birth date in the configured input pattern")
	addCmd.Flags().StringVar(&prefill.Region, "region", "", "Vendor region")

	rootCmd.AddCommand(addCmd)
}
