package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/catpoint/internal/config"
	"github.com/oshokin/catpoint/internal/logger"
	"github.com/oshokin/catpoint/internal/service/security"
	"github.com/oshokin/catpoint/internal/service/system"
	"github.com/oshokin/catpoint/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel overrides the level from the configuration file.
	logLevel string

	// rootCmd is the base command; every subcommand performs one controller operation.
	rootCmd = newRootCommand()
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "catpoint",
		Short: "Home security alarm controller.",
		Long: `Catpoint keeps track of the arming mode, the alarm status and the door,
window and motion sensors of a home, and watches camera images for the cat.

Each invocation performs a single operation against the configured storage
(a JSON state file by default, or a SQLite database) and exits.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newStatusCommand(),
		newArmCommand(),
		newDisarmCommand(),
		newSensorCommand(),
		newImageCommand(),
		newConfigCommand(),
		version.NewCommand(),
	)

	return root
}

// Execute runs the catpoint CLI and exits with non-zero status on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the configuration file. The default file is optional.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)

	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config"):
		cfg = config.Default()
	default:
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	level, ok := logger.ParseLogLevel(cfg.LogLevel)
	if !ok {
		return nil, fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}

	logger.SetLevel(level)

	return cfg, nil
}

// runWithSystem opens the configured system, runs fn and closes the system.
func runWithSystem(cmd *cobra.Command, detector security.CatDetector, fn func(ctx context.Context, sys *system.System) error) error {
	ctx := logger.WithName(cmd.Context(), "catpoint")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sys, err := system.Open(ctx, &system.Options{
		Config:   cfg,
		Detector: detector,
	})
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := sys.Close(); closeErr != nil {
			logger.ErrorKV(ctx, "Failed to close storage", "error", closeErr)
		}
	}()

	return fn(ctx, sys)
}
