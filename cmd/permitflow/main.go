package main

import (
	"os"

	"github.com/spf13/cobra"

	"permitflow/internal/interfaces/cli/migrate"
	"permitflow/internal/interfaces/cli/seed"
	"permitflow/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "permitflow",
		Short: "Permitflow - permit submission lifecycle service",
		Long:  `Permitflow manages permit submissions through validation, packet generation, and agency workflow states.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
