package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the registered sources and what they support",
	Args:  cobra.NoArgs,
	RunE: run(func(_ context.Context, a *app, _ []string) error {
		return a.print(a.registry.List())
	}),
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
