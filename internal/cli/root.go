// Package cli defines Cobra command definitions for the mockround CLI.
// This file contains the root command, version flag, and help output.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mockround/mockround/internal/config"
	"github.com/mockround/mockround/internal/exchange"
	mlog "github.com/mockround/mockround/internal/log"
	"github.com/mockround/mockround/internal/notify"
	"github.com/mockround/mockround/internal/tui"
	"github.com/mockround/mockround/internal/tui/app"
)

var (
	projectDir string
	apiURL     string
	logLevel   string
	version    = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "mockround",
	Short: "Timed practice interviews in the terminal",
	Long: `mockround runs timed technical and HR practice interviews against a
question service. Questions are served one at a time, answers are submitted
as you go, and a report is produced when the session ends.

Run "mockround serve" to start the bundled question service.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runRoot,
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, dir, err := loadConfig()
	if err != nil {
		return err
	}

	if !tui.IsTTY() {
		err := tui.NewFallbackRunner(cfg, cmd.OutOrStdout()).Run()
		if errors.Is(err, tui.ErrInteractiveOnly) {
			return nil
		}
		return err
	}

	if cfg.UserID == "" {
		return fmt.Errorf("no user configured; run: mockround init")
	}

	debugLog, err := mlog.OpenDebugLog(dir)
	if err != nil {
		return err
	}
	defer debugLog.Close()
	logger := mlog.Setup(debugLog, mlog.ParseLevel(cfg.LogLevel))

	events, err := mlog.NewLogger(dir)
	if err != nil {
		return err
	}

	notes := notify.NewService(cfg.NotificationTTL())
	defer notes.Close()

	client := exchange.NewClient(cfg.API.BaseURL, nil, logger)
	tuiApp := app.New(cfg, client, notes, app.Options{Events: events, Logger: logger})

	logger.Info("tui started", slog.String("api", cfg.API.BaseURL), slog.String("user", cfg.UserID))
	return tui.Run(tuiApp, notes)
}

// loadConfig reads the project config and applies flag overrides.
func loadConfig() (*config.Config, string, error) {
	dir := projectDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("getting current directory: %w", err)
		}
		dir = wd
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, "", err
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, dir, nil
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectDir, "dir", "", "Directory holding .mockround/ (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Question service base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(cleanCmd)
}
