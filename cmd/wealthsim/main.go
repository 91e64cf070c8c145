package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simaogato/wealthsim/internal/adapter/repository"
	"github.com/simaogato/wealthsim/internal/config"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wealthsim",
		Short: "Wealth simulation toolkit",
		Long: `wealthsim projects long-horizon wealth from a real growth rate
and compares stored simulations.

Store-backed commands read the same configuration as the server
(CONFIG_PATH / --config plus DB_* environment variables).`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", os.Getenv("CONFIG_PATH"), "Path to a YAML config file")
	rootCmd.PersistentFlags().String("locale", "en", "Locale used to format amounts")

	rootCmd.AddCommand(
		newVersionCmd(),
		newMigrateCmd(),
		newSeedCmd(),
		newProjectCmd(),
		newListCmd(),
		newCompareCmd(),
		newChartCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wealthsim version %s\n", version)
		},
	}
}

// openStore loads configuration from the --config flag and environment, then opens the store
func openStore(ctx context.Context, cmd *cobra.Command) (*repository.Store, *config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := repository.Open(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	return store, cfg, nil
}
