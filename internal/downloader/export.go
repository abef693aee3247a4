package downloader

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/util"
)

// ExportOptions controls one chapter export.
type ExportOptions struct {
	OutputDir   string
	Workers     int
	KeepFolders bool
	DryRun      bool
}

// Archive is the file an export writes (or would write, for a dry run).
type Archive struct {
	Path   string `json:"path"`
	Pages  int    `json:"pages"`
	Bytes  int64  `json:"bytes"`
	Failed int    `json:"failed,omitempty"`
}

// ArchiveName builds "<slug>_ch<label>.cbz". The slug comes from the title,
// or the last key segment without one; the label falls back to the slugged
// chapter key when the chapter has no number.
func ArchiveName(manga providers.Manga, chapter providers.Chapter) string {
	title := util.Slugify(manga.Title)
	if title == "" {
		title = util.Slugify(path.Base(manga.Key))
	}
	label := providers.Label(chapter)
	if label == "" {
		label = util.Slugify(chapter.Key)
	}
	return strings.Trim(title+"_ch"+label, "_") + ".cbz"
}

// ExportChapter fetches the page list of one chapter, saves the pages into a
// temporary folder next to the archive and packs them. The folder is removed
// afterwards unless KeepFolders is set.
func (d *Downloader) ExportChapter(
	ctx context.Context,
	source providers.Source,
	manga providers.Manga,
	chapter providers.Chapter,
	opts ExportOptions,
	ph Progress,
) (Archive, error) {
	out := filepath.Join(opts.OutputDir, ArchiveName(manga, chapter))

	pages, err := source.PageList(ctx, manga, chapter)
	if err != nil {
		return Archive{Path: out}, err
	}
	if len(pages) == 0 {
		return Archive{Path: out}, providers.MissingField("pages")
	}
	if opts.DryRun {
		return Archive{Path: out, Pages: len(pages)}, nil
	}

	folder := strings.TrimSuffix(out, ".cbz") + util.TempSuffix
	res, err := d.SavePages(ctx, source, pages, folder, opts.Workers, ph)
	archive := Archive{Path: out, Pages: len(res.Files), Bytes: res.Bytes, Failed: res.Failed}
	if err != nil {
		return archive, err
	}

	if err := util.CreateCBZ(res.Files, out); err != nil {
		return archive, err
	}
	if !opts.KeepFolders {
		if err := os.RemoveAll(folder); err != nil {
			return archive, fmt.Errorf("remove %s: %w", folder, err)
		}
	}
	return archive, nil
}
