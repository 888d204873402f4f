package main

import (
	"os"

	"github.com/spf13/cobra"

	"civicwatch/internal/interfaces/cli/migrate"
	"civicwatch/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "civicwatch",
		Short: "CivicWatch - civic complaint workflow service",
		Long:  `CivicWatch tracks citizen-submitted reports through their lifecycle, assigns them to department officers by workload, and audits every state change.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
