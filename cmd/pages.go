package cmd

import (
	"context"

	"github.com/brogergvhs/mangasrc/internal/providers"

	"github.com/spf13/cobra"
)

var pagesCmd = &cobra.Command{
	Use:   "pages <manga-key> <chapter-key>",
	Short: "List the pages of a chapter",
	Args:  cobra.ExactArgs(2),
	RunE: run(func(ctx context.Context, a *app, args []string) error {
		src, err := a.source()
		if err != nil {
			return err
		}

		pages, err := src.PageList(ctx, providers.Manga{Key: args[0]}, providers.Chapter{Key: args[1]})
		if err != nil {
			return err
		}
		return a.print(pages)
	}),
}

func init() {
	rootCmd.AddCommand(pagesCmd)
}
