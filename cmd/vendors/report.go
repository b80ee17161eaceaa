package main

import (
	"github.com/JonMunkholm/vendors/internal/console"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the general vendor report",
	RunE: withService(func(cmd *cobra.Command, args []string) error {
		report, err := service.GeneralReport(cmd.Context())
		if err != nil {
			return err
		}
		return console.WriteGeneralReport(cmd.OutOrStdout(), report, service.Now())
	}),
}

var averageAgeCmd = &cobra.Command{
	Use:   "average-age",
	Short: "Print the average vendor age per region",
	RunE: withService(func(cmd *cobra.Command, args []string) error {
		report, err := service.AverageAgeByRegion(cmd.Context())
		if err != nil {
			return err
		}
		return console.WriteAverageAgeReport(cmd.OutOrStdout(), report)
	}),
}

func init() {
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(averageAgeCmd)
}
