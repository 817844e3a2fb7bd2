package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/catpoint/internal/config"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file.",
	}

	var storage string

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a configuration file with default values.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if len(args) > 0 {
				path = args[0]
			}

			cfg := config.Default()
			cfg.Storage = storage

			if err := config.Save(path, cfg); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)

			return nil
		},
	}

	initCmd.Flags().StringVar(&storage, "storage", config.StorageFile, "storage backend: memory, file or sqlite")

	configCmd.AddCommand(initCmd)

	return configCmd
}
