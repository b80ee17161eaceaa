package main

import (
	"github.com/JonMunkholm/vendors/internal/application"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive report menu",
	RunE: withService(func(cmd *cobra.Command, args []string) error {
		model := application.NewModel(service, storage.Info...)
		_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	}),
}

func init() {
	rootCmd.AddCommand(menuCmd)
}
