package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/JonMunkholm/vendors/internal/backend"
	"github.com/JonMunkholm/vendors/internal/config"
	"github.com/JonMunkholm/vendors/internal/core"
	"github.com/JonMunkholm/vendors/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// storage overrides
	inputPath  string
	outputPath string
	backendArg string

	cfg     *config.Config
	logger  *slog.Logger
	storage *backend.Backend
	service *core.Service
)

// errAborted is returned by commands that already told the user what went
// wrong. Execute prints nothing more for it.
var errAborted = errors.New("aborted")

var rootCmd = &cobra.Command{
	Use:           "vendors",
	Short:         "Vendor reports and capture",
	Long:          "Reads vendor rows, prints the general and average-age reports, and saves new vendors.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and prints any returned error.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil || errors.Is(err, errAborted) {
		return err
	}
	if core.IsUserFacing(err) {
		fmt.Fprintln(os.Stderr, core.FormatUserError(err))
	} else {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// openService loads configuration, applies flag overrides and opens storage.
func openService(ctx context.Context) error {
	// .env is optional
	_ = godotenv.Overload()

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	if inputPath != "" {
		loaded.Store.InputPath = inputPath
	}
	if outputPath != "" {
		loaded.Store.OutputPath = outputPath
	}
	if backendArg != "" {
		loaded.Store.Backend = backendArg
	}
	if inputPath != "" || outputPath != "" || backendArg != "" {
		if err := loaded.Validate(); err != nil {
			return err
		}
	}
	cfg = loaded

	// Logs go to stderr so report tables stay clean on stdout.
	logger = logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	storage, err = backend.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	service = storage.NewService(cfg)
	return nil
}

func closeService() {
	if storage != nil {
		storage.Close()
	}
}

func withService(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := openService(cmd.Context()); err != nil {
			return err
		}
		defer closeService()
		return run(cmd, args)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inputPath,
		"input", "i", "", "Vendor file to read (overrides VENDORS_INPUT_PATH)")
	rootCmd.PersistentFlags().StringVarP(&outputPath,
		"output", "o", "", "Vendor file to append to (overrides VENDORS_OUTPUT_PATH)")
	rootCmd.PersistentFlags().StringVar(&backendArg,
		"backend", "", "Storage backend: file or postgres (overrides VENDORS_BACKEND)")
}
