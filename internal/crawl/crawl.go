// Package crawl walks a listing page by page and optionally refreshes the
// details of every entry it collects.
package crawl

import (
	"context"
	"fmt"
	"sync"

	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/ui"
)

// Progress receives one update per listing page. ui.ProgressHandle
// implements it.
type Progress interface {
	Update(done, total int, bytes int64)
	AddItems(n int)
	MarkDone()
}

type nopProgress struct{}

func (nopProgress) Update(int, int, int64) {}
func (nopProgress) AddItems(int)           {}
func (nopProgress) MarkDone()              {}

type Options struct {
	// Pages caps the number of listing pages; zero follows HasNextPage to
	// the end.
	Pages int
	// Details refreshes every entry with UpdateManga.
	Details bool
	Workers int
	// SkipBroken keeps the listing entry when its refresh fails.
	SkipBroken bool
	Progress   Progress
	Stats      *ui.Stats
	Log        providers.Logger
}

type Result struct {
	Entries []providers.Manga `json:"entries"`
	Pages   int               `json:"pages"`
	Failed  int               `json:"failed,omitempty"`
}

// Listing fetches pages 1..N of listing in order. Entries repeated across
// pages are kept once, at their first position.
func Listing(ctx context.Context, source providers.Source, listing providers.Listing, opts Options) (Result, error) {
	lp, ok := source.(providers.ListingProvider)
	if !ok {
		return Result{}, providers.InvalidInput("listing source", source.Key())
	}
	if opts.Progress == nil {
		opts.Progress = nopProgress{}
	}
	if opts.Stats == nil {
		opts.Stats = &ui.Stats{}
	}
	if opts.Log == nil {
		opts.Log = providers.NopLogger
	}
	defer opts.Progress.MarkDone()

	var res Result
	seen := map[string]bool{}

	for page := 1; opts.Pages == 0 || page <= opts.Pages; page++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		pr, err := lp.MangaList(ctx, listing, page)
		if err != nil {
			return res, fmt.Errorf("page %d: %w", page, err)
		}

		added := 0
		for _, m := range pr.Entries {
			if seen[m.Key] {
				continue
			}
			seen[m.Key] = true
			res.Entries = append(res.Entries, m)
			added++
		}

		res.Pages = page
		opts.Stats.Pages.Add(1)
		opts.Stats.Entries.Add(int64(added))
		opts.Progress.AddItems(added)
		opts.Progress.Update(page, opts.Pages, 0)
		opts.Log.Debugf("%s: listing %s page %d: %d entries", source.Key(), listing.ID, page, added)

		// Feeds without a pagination signal always report a next page; a
		// page with nothing new ends the walk.
		if !pr.HasNextPage || added == 0 {
			break
		}
	}

	if opts.Details {
		failed, err := refresh(ctx, source, res.Entries, opts)
		res.Failed = failed
		if err != nil {
			return res, err
		}
	}

	return res, nil
}

// refresh updates entries in place, at most opts.Workers at a time.
func refresh(ctx context.Context, source providers.Source, entries []providers.Manga, opts Options) (int, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(entries) && len(entries) > 0 {
		workers = len(entries)
	}

	var (
		mu       sync.Mutex
		failed   int
		firstErr error
	)

	jobs := make(chan int)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for i := range jobs {
			m, err := source.UpdateManga(ctx, entries[i], providers.UpdateOptions{Details: true})
			if err != nil {
				opts.Log.Debugf("%s: refresh %s: %v", source.Key(), entries[i].Key, err)
				mu.Lock()
				failed++
				if firstErr == nil {
					firstErr = fmt.Errorf("%s: %w", entries[i].Key, err)
				}
				mu.Unlock()
				continue
			}
			entries[i] = m
		}
	}

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go worker()
	}

	var ctxErr error
feed:
	for i := range entries {
		if ctxErr = ctx.Err(); ctxErr != nil {
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		case jobs <- i:
		}
	}

	close(jobs)
	wg.Wait()

	if ctxErr != nil {
		return failed, ctxErr
	}
	if firstErr != nil && !opts.SkipBroken {
		return failed, fmt.Errorf("failed to refresh %d/%d entries: %w", failed, len(entries), firstErr)
	}
	return failed, nil
}
