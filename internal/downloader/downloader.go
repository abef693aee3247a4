// Package downloader saves the pages of a chapter to disk and packs them
// into a CBZ archive.
package downloader

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/util"
)

// Progress receives per-chapter updates. ui.ProgressHandle implements it.
type Progress interface {
	Update(done, total int, bytes int64)
	MarkDone()
}

type nopProgress struct{}

func (nopProgress) Update(int, int, int64) {}
func (nopProgress) MarkDone()              {}

type Downloader struct {
	client     *http.Client
	log        providers.Logger
	skipBroken bool
}

func New(c *http.Client, log providers.Logger, skipBroken bool) *Downloader {
	if log == nil {
		log = providers.NopLogger
	}
	return &Downloader{
		client:     c,
		log:        log,
		skipBroken: skipBroken,
	}
}

// Result describes one saved chapter.
type Result struct {
	Files  []string
	Bytes  int64
	Failed int
}

type chapterState struct {
	mu        sync.Mutex
	donePages int
	doneBytes int64
}

// SavePages writes every page into folder as page_NNN.ext, at most
// maxParallel at a time. Text pages become .txt files. Image requests come
// from the source when it implements providers.ImageRequester.
func (d *Downloader) SavePages(
	ctx context.Context,
	source providers.Source,
	pages []providers.Page,
	folder string,
	maxParallel int,
	ph Progress,
) (Result, error) {
	if ph == nil {
		ph = nopProgress{}
	}
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return Result{}, err
	}

	total := len(pages)
	if maxParallel < 1 {
		maxParallel = 1
	}
	if maxParallel > total && total > 0 {
		maxParallel = total
	}

	cs := &chapterState{}
	ph.Update(0, total, 0)

	var filesMu sync.Mutex
	files := make([]string, 0, total)
	var errs []error

	jobs := make(chan int)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for i := range jobs {
			var last int64
			progress := func(done int64) {
				cs.mu.Lock()
				cs.doneBytes += done - last
				last = done
				ph.Update(cs.donePages, total, cs.doneBytes)
				cs.mu.Unlock()
			}

			file, err := d.savePage(ctx, source, pages[i], folder, pageName(i, total), progress)

			cs.mu.Lock()
			cs.donePages++
			if err != nil {
				errs = append(errs, fmt.Errorf("page %d: %w", i+1, err))
			}
			ph.Update(cs.donePages, total, cs.doneBytes)
			cs.mu.Unlock()

			if err == nil {
				filesMu.Lock()
				files = append(files, file)
				filesMu.Unlock()
			}
		}
	}

	wg.Add(maxParallel)
	for w := 0; w < maxParallel; w++ {
		go worker()
	}

	var ctxErr error
feed:
	for i := range pages {
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
	ph.MarkDone()

	res := Result{Files: files, Bytes: cs.doneBytes, Failed: len(errs)}
	if ctxErr != nil {
		return res, ctxErr
	}
	for _, err := range errs {
		d.log.Debugf("%v", err)
	}
	if len(errs) > 0 && !d.skipBroken {
		return res, fmt.Errorf("failed %d/%d pages (use --skip-broken to continue): %w", len(errs), total, errors.Join(errs...))
	}
	return res, nil
}

func (d *Downloader) savePage(
	ctx context.Context,
	source providers.Source,
	page providers.Page,
	folder string,
	name string,
	progress func(done int64),
) (string, error) {

	if page.URL == "" {
		if page.Text == "" {
			return "", providers.MissingField("page content")
		}
		file := filepath.Join(folder, name+".txt")
		if err := os.WriteFile(file, []byte(page.Text), 0o644); err != nil {
			return "", err
		}
		progress(int64(len(page.Text)))
		return file, nil
	}

	req, err := d.imageRequest(ctx, source, page)
	if err != nil {
		return "", err
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &util.StatusError{Method: req.Method, URL: req.URL.String(), Code: resp.StatusCode}
	}

	mt := ""
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		mt, _, _ = mime.ParseMediaType(ct)
		if !strings.HasPrefix(mt, "image/") {
			return "", fmt.Errorf("unexpected MIME: %s", ct)
		}
	}

	file := filepath.Join(folder, name+imageExt(page.URL, mt))
	f, err := os.Create(file)
	if err != nil {
		return "", err
	}

	_, err = copyWithProgress(f, resp.Body, progress)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}
	return file, nil
}

func (d *Downloader) imageRequest(ctx context.Context, source providers.Source, page providers.Page) (*http.Request, error) {
	if r, ok := source.(providers.ImageRequester); ok {
		return r.ImageRequest(ctx, page.URL, page.Context)
	}
	return http.NewRequestWithContext(ctx, http.MethodGet, page.URL, nil)
}

// imageExt prefers the extension in the URL path and falls back to the
// response media type.
func imageExt(rawURL, mediaType string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if ext := strings.ToLower(path.Ext(u.Path)); ext != "" && len(ext) <= 5 {
			return ext
		}
	}
	switch mediaType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	case "image/avif":
		return ".avif"
	}
	return ".jpg"
}

// pageName numbers pages with at least three digits, widened so that names
// sort in page order for any page count.
func pageName(index, total int) string {
	width := max(3, len(strconv.Itoa(total)))
	return fmt.Sprintf("page_%0*d", width, index+1)
}
