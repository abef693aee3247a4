package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/brogergvhs/mangasrc/internal/crawl"
	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/ui"

	"github.com/spf13/cobra"
)

var (
	flagCrawlPages   int
	flagCrawlDetails bool
	flagWorkers      int
	flagSkipBroken   bool
)

var crawlCmd = &cobra.Command{
	Use:   "crawl <listing>",
	Short: "Collect a listing page by page",
	Long: "Collect a listing page by page until the source reports no next page or --pages is reached. " +
		"--details refreshes every collected entry.",
	Args: cobra.ExactArgs(1),
	RunE: run(func(ctx context.Context, a *app, args []string) error {
		src, err := a.source()
		if err != nil {
			return err
		}
		lp, ok := src.(providers.ListingProvider)
		if !ok {
			return fmt.Errorf("%s has no listings", src.Key())
		}
		listing := findListing(lp, args[0])

		pm := ui.NewProgressManager(os.Stderr)
		handle := pm.Register(src.Key()+" "+listing.ID, "pages")
		if flagCrawlPages > 0 {
			handle.SetTotal(flagCrawlPages)
		}

		res, err := crawl.Listing(ctx, src, listing, crawl.Options{
			Pages:      flagCrawlPages,
			Details:    flagCrawlDetails,
			Workers:    flagWorkers,
			SkipBroken: flagSkipBroken,
			Progress:   handle,
			Stats:      a.stats,
			Log:        a.log,
		})
		pm.Close()
		a.log.Infof("crawl: %s", a.stats)
		if err != nil {
			return err
		}
		return a.print(res)
	}),
}

func init() {
	crawlCmd.Flags().IntVar(&flagCrawlPages, "pages", 0, "maximum listing pages (0 = all)")
	crawlCmd.Flags().BoolVar(&flagCrawlDetails, "details", false, "refresh details of every entry")
	crawlCmd.Flags().IntVar(&flagWorkers, "workers", 4, "parallel detail refreshes")
	crawlCmd.Flags().BoolVar(&flagSkipBroken, "skip-broken", false, "keep entries whose refresh failed")
	rootCmd.AddCommand(crawlCmd)
}
