package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/brogergvhs/mangasrc/internal/downloader"
	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/ui"
	"github.com/brogergvhs/mangasrc/internal/util"

	"github.com/spf13/cobra"
)

var (
	flagOutput         string
	flagImageWorkers   int
	flagChapterWorkers int
	flagKeepFolders    bool
	flagDryRun         bool
	flagExportSkip     bool
)

var exportCmd = &cobra.Command{
	Use:   "export <manga-key>",
	Short: "Save chapters of a manga as CBZ files",
	Long: "Save chapters of a manga as CBZ files. Select chapters with --chapter, --range or --list; " +
		"without them every chapter is exported.",
	Args: cobra.ExactArgs(1),
	RunE: run(runExport),
}

func runExport(ctx context.Context, a *app, args []string) error {
	src, err := a.source()
	if err != nil {
		return err
	}

	manga, err := src.UpdateManga(ctx, providers.Manga{Key: args[0]}, providers.UpdateOptions{Details: true, Chapters: true})
	if err != nil {
		return err
	}

	selected := providers.SelectChapters(manga.Chapters, flagChapter, flagRange, flagList)
	if len(selected) == 0 {
		return fmt.Errorf("no chapters selected")
	}

	if flagOutput == "" {
		flagOutput = "."
	}
	if err := os.MkdirAll(flagOutput, 0o755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}

	opts := downloader.ExportOptions{
		OutputDir:   flagOutput,
		Workers:     max(1, flagImageWorkers),
		KeepFolders: flagKeepFolders,
		DryRun:      flagDryRun,
	}
	dl := downloader.New(a.client, a.log, flagExportSkip)

	pm := ui.NewProgressManager(os.Stderr)
	start := time.Now()

	var (
		mu       sync.Mutex
		archives = make([]downloader.Archive, len(selected))
		failed   int
	)

	sem := make(chan struct{}, max(1, flagChapterWorkers))
	var wg sync.WaitGroup

	for i, ch := range selected {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			label := providers.Label(ch)
			if label == "" {
				label = ch.Key
			}

			var ph downloader.Progress
			if !flagDryRun {
				h := pm.Register("Ch."+label, "pages")
				defer h.MarkDone()
				ph = h
			}

			archive, err := dl.ExportChapter(ctx, src, manga, ch, opts, ph)
			archives[i] = archive
			if err != nil {
				a.log.Errorf("chapter %s failed: %v", label, err)
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}

			if !flagDryRun {
				a.stats.Images.Add(int64(archive.Pages))
				a.stats.Bytes.Add(archive.Bytes)
			}
		}()
	}
	wg.Wait()
	pm.Close()

	if errors.Is(ctx.Err(), context.Canceled) {
		for _, dir := range util.CleanupUnfinishedTempFolders(flagOutput) {
			a.log.Infof("removed %s", dir)
		}
		if util.RemoveIfEmpty(flagOutput) {
			a.log.Infof("removed empty output folder %s", flagOutput)
		}
		return ctx.Err()
	}

	a.log.Infof("export: %d chapters, %s in %s", len(selected)-failed, a.stats, time.Since(start).Round(time.Second))
	if err := a.print(archives); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d/%d chapters failed", failed, len(selected))
	}
	return nil
}

func init() {
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output folder for CBZ files")
	exportCmd.Flags().IntVar(&flagImageWorkers, "image-workers", 5, "parallel image downloads per chapter")
	exportCmd.Flags().IntVar(&flagChapterWorkers, "chapter-workers", 2, "parallel chapter exports")
	exportCmd.Flags().BoolVar(&flagKeepFolders, "keep-folders", false, "keep page folders next to the archives")
	exportCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "list the archives without downloading")
	exportCmd.Flags().BoolVar(&flagExportSkip, "skip-broken", false, "pack chapters even when some pages failed")
	addChapterSelection(exportCmd)
	rootCmd.AddCommand(exportCmd)
}
