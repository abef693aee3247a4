package cmd

import (
	"context"
	"fmt"

	"github.com/brogergvhs/mangasrc/internal/providers"

	"github.com/spf13/cobra"
)

var (
	flagDetails  bool
	flagChapters bool
	flagStream   bool

	// chapter selection, shared with export
	flagChapter string
	flagRange   string
	flagList    string
)

var mangaCmd = &cobra.Command{
	Use:   "manga <key>",
	Short: "Load details and chapters of one manga",
	Long: "Load details and chapters of one manga. Without --details or --chapters both are loaded; " +
		"--stream prints the details as soon as they arrive, before the chapter list.",
	Args: cobra.ExactArgs(1),
	RunE: run(func(ctx context.Context, a *app, args []string) error {
		src, err := a.source()
		if err != nil {
			return err
		}

		opts := providers.UpdateOptions{Details: flagDetails, Chapters: flagChapters}
		if !opts.Details && !opts.Chapters {
			opts.Details, opts.Chapters = true, true
		}
		if flagStream {
			opts.Partial = func(m providers.Manga) {
				if err := a.print(m); err != nil {
					a.log.Errorf("print partial: %v", err)
				}
			}
		}

		m, err := src.UpdateManga(ctx, providers.Manga{Key: args[0]}, opts)
		if err != nil {
			return err
		}

		if flagChapter != "" || flagRange != "" || flagList != "" {
			m.Chapters = providers.SelectChapters(m.Chapters, flagChapter, flagRange, flagList)
			if len(m.Chapters) == 0 {
				return fmt.Errorf("no chapters selected")
			}
		}
		return a.print(m)
	}),
}

func addChapterSelection(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagChapter, "chapter", "", "single chapter by label or 1-based index (e.g. 5 or 28.5)")
	cmd.Flags().StringVar(&flagRange, "range", "", "chapters by 1-based index range (e.g. 5-12)")
	cmd.Flags().StringVar(&flagList, "list", "", "chapters by 1-based indices (e.g. 1,3,5)")
}

func init() {
	mangaCmd.Flags().BoolVar(&flagDetails, "details", false, "load details")
	mangaCmd.Flags().BoolVar(&flagChapters, "chapters", false, "load the chapter list")
	mangaCmd.Flags().BoolVar(&flagStream, "stream", false, "print details before chapters arrive")
	addChapterSelection(mangaCmd)
	rootCmd.AddCommand(mangaCmd)
}
