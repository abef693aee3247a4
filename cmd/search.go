package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

var (
	flagPage    int
	flagFilters []string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search a source by title or by filters",
	RunE: run(func(ctx context.Context, a *app, args []string) error {
		filters, err := parseFilters(flagFilters)
		if err != nil {
			return err
		}
		src, err := a.source()
		if err != nil {
			return err
		}

		res, err := src.Search(ctx, strings.Join(args, " "), max(1, flagPage), filters)
		if err != nil {
			return err
		}
		return a.print(res)
	}),
}

func init() {
	searchCmd.Flags().IntVar(&flagPage, "page", 1, "result page, starting at 1")
	searchCmd.Flags().StringArrayVarP(&flagFilters, "filter", "f", nil, "filter as kind:id=value (repeatable)")
	rootCmd.AddCommand(searchCmd)
}
