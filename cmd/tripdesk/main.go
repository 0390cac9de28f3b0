package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tripdesk-hq/tripdesk/internal/interfaces/cli/migrate"
	"github.com/tripdesk-hq/tripdesk/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tripdesk",
		Short: "Tripdesk - billing core for travel agency workspaces",
		Long:  `Tripdesk serves the plan catalog, feature limit checks, and GST invoicing for travel agency organizations.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
