package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cfg := &config{}

	rootCmd := &cobra.Command{
		Use:   "simplecache",
		Short: "Run traffic generators against a simple cache.",
		Long: `Run traffic generators against a simple cache backed by an ` +
			`ideal memory. Every flag can also be set with a SIMPLECACHE_ ` +
			`environment variable, for example SIMPLECACHE_BLOCK_SIZE, or in ` +
			`a .env file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadDotEnv(".env"); err != nil {
				return err
			}

			return applyEnv(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulation(cmd.OutOrStdout(), cfg)
		},
	}

	cfg.registerFlags(rootCmd.Flags())
	rootCmd.AddCommand(newHelloCmd())

	return rootCmd
}
