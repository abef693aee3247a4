package cmd

import (
	"context"
	"fmt"

	"github.com/brogergvhs/mangasrc/internal/providers"

	"github.com/spf13/cobra"
)

var listingCmd = &cobra.Command{
	Use:   "listing [id]",
	Short: "Show one page of a listing, or the listings a source offers",
	Args:  cobra.MaximumNArgs(1),
	RunE: run(func(ctx context.Context, a *app, args []string) error {
		src, err := a.source()
		if err != nil {
			return err
		}
		lp, ok := src.(providers.ListingProvider)
		if !ok {
			return fmt.Errorf("%s has no listings", src.Key())
		}

		if len(args) == 0 {
			return a.print(lp.Listings())
		}

		res, err := lp.MangaList(ctx, findListing(lp, args[0]), max(1, flagPage))
		if err != nil {
			return err
		}
		return a.print(res)
	}),
}

// findListing matches id against the advertised listings by id, then by
// name. Unknown ids pass through for sources that accept arbitrary ones.
func findListing(lp providers.ListingProvider, id string) providers.Listing {
	for _, l := range lp.Listings() {
		if l.ID == id || l.Name == id {
			return l
		}
	}
	return providers.Listing{ID: id, Name: id}
}

func init() {
	listingCmd.Flags().IntVar(&flagPage, "page", 1, "listing page, starting at 1")
	rootCmd.AddCommand(listingCmd)
}
