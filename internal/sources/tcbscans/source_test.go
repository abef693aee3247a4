package tcbscans

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brogergvhs/mangasrc/internal/providers"
)

const projectsPage = `<html><body>
<div class="bg-card border border-border rounded p-3 mb-3">
  <img class="w-24 h-24 object-cover rounded-lg" src="https://cdn.test/op.png">
  <a class="mb-3 text-white text-lg font-bold" href="/mangas/5/one-piece">One Piece</a>
</div>
<div class="bg-card border border-border rounded p-3 mb-3">
  <a class="mb-3 text-white text-lg font-bold" href="/mangas/13/jujutsu-kaisen">Jujutsu Kaisen</a>
</div>
<div class="bg-card border border-border rounded p-3 mb-3"><span>announcement</span></div>
</body></html>`

const mangaPage = `<html><body>
<div class="order-1 bg-card border border-border rounded py-3">
  <div class="flex items-center justify-center"><img src="https://cdn.test/op-big.png"></div>
  <h1 class="my-3 font-bold text-3xl">One Piece</h1>
  <p class="leading-6 my-3"> Pirates and treasure. </p>
</div>
<a class="bg-card border border-border rounded p-3 mb-3" href="/chapters/7868/one-piece-chapter-1153">
  <div class="text-lg font-bold">One Piece Chapter 1153</div>
  <div class="text-gray-500">The Return</div>
</a>
<a class="bg-card border border-border rounded p-3 mb-3" href="/chapters/7800/one-piece-chapter-1152-5">
  <div class="text-lg font-bold flex">ignored</div>
  <div class="text-lg font-bold">One Piece 1152.5</div>
</a>
</body></html>`

const chapterPage = `<html><body><main>
<div class="text-sm font-bold"><a href="/mangas/5/one-piece?prev">Previous</a><a href="/mangas/5/one-piece">View all chapters</a></div>
<div class="flex flex-col items-center justify-center">
  <picture><img src="https://cdn.test/1.png"></picture>
  <picture><img src="https://cdn.test/2.png"></picture>
  <picture><img></picture>
</div>
</main></body></html>`

func newTestSource(t *testing.T) (*Source, *httptest.Server, *atomic.Int64) {
	t.Helper()

	hits := &atomic.Int64{}
	var srv *httptest.Server

	mux := http.NewServeMux()
	mux.HandleFunc("/projects", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, projectsPage)
	})
	mux.HandleFunc("/mangas/5/one-piece", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, mangaPage)
	})
	mux.HandleFunc("/mangas/404/missing", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `<main>moved</main>`)
	})
	mux.HandleFunc("/chapters/7868/one-piece-chapter-1153", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, chapterPage)
	})
	mux.HandleFunc("/chapters/1/broken", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `<main></main>`)
	})

	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, srv.URL+"/", r.Header.Get("Referer"), r.URL.Path)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	return New(srv.Client(), Params{BaseURL: srv.URL}, nil), srv, hits
}

func TestSearch(t *testing.T) {
	src, _, _ := newTestSource(t)
	ctx := context.Background()

	res, err := src.Search(ctx, "", 1, nil)
	require.NoError(t, err)
	assert.False(t, res.HasNextPage)
	assert.Equal(t, []providers.Manga{
		{Key: "/mangas/5/one-piece", Title: "One Piece", Cover: "https://cdn.test/op.png"},
		{Key: "/mangas/13/jujutsu-kaisen", Title: "Jujutsu Kaisen"},
	}, res.Entries)

	res, err = src.Search(ctx, " JUJUTSU ", 2, nil)
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "Jujutsu Kaisen", res.Entries[0].Title)

	_, err = src.Search(ctx, "", 1, []providers.FilterValue{providers.SelectFilter{ID: "status", Value: "x"}})
	assert.ErrorIs(t, err, providers.ErrInvalidInput)
}

func TestUpdateManga(t *testing.T) {
	src, srv, hits := newTestSource(t)

	var partial *providers.Manga
	m, err := src.UpdateManga(context.Background(), providers.Manga{Key: "/mangas/5/one-piece"}, providers.UpdateOptions{
		Details:  true,
		Chapters: true,
		Partial:  func(m providers.Manga) { partial = &m },
	})
	require.NoError(t, err)

	require.NotNil(t, partial)
	assert.Nil(t, partial.Chapters)
	assert.Equal(t, "One Piece", partial.Title)

	assert.Equal(t, "https://cdn.test/op-big.png", m.Cover)
	assert.Equal(t, "Pirates and treasure.", m.Description)
	assert.Equal(t, srv.URL+"/mangas/5/one-piece", m.URL)
	assert.Equal(t, providers.RatingSafe, m.ContentRating)
	assert.Equal(t, providers.ViewerRightToLeft, m.Viewer)

	require.Len(t, m.Chapters, 2)
	first := m.Chapters[0]
	assert.Equal(t, "/chapters/7868/one-piece-chapter-1153", first.Key)
	assert.Equal(t, "The Return", first.Title)
	assert.Equal(t, 1153.0, *first.ChapterNumber)
	assert.Equal(t, []string{"TCB Scans"}, first.Scanlators)
	assert.Equal(t, srv.URL+"/chapters/7868/one-piece-chapter-1153", first.URL)

	second := m.Chapters[1]
	assert.Empty(t, second.Title)
	assert.Equal(t, 1152.5, *second.ChapterNumber)

	assert.Equal(t, int64(1), hits.Load())
}

func TestUpdateMangaMissingDetails(t *testing.T) {
	src, _, _ := newTestSource(t)

	called := false
	_, err := src.UpdateManga(context.Background(), providers.Manga{Key: "/mangas/404/missing"}, providers.UpdateOptions{
		Details:  true,
		Chapters: true,
		Partial:  func(providers.Manga) { called = true },
	})
	assert.ErrorIs(t, err, providers.ErrMissingElement)
	assert.False(t, called)
}

func TestPageList(t *testing.T) {
	src, _, _ := newTestSource(t)

	pages, err := src.PageList(context.Background(), providers.Manga{}, providers.Chapter{Key: "/chapters/7868/one-piece-chapter-1153"})
	require.NoError(t, err)
	assert.Equal(t, []providers.Page{
		{URL: "https://cdn.test/1.png"},
		{URL: "https://cdn.test/2.png"},
	}, pages)
}

func TestHandleDeepLink(t *testing.T) {
	src, srv, hits := newTestSource(t)
	ctx := context.Background()

	got, err := src.HandleDeepLink(ctx, srv.URL+"/mangas/5/one-piece")
	require.NoError(t, err)
	assert.Equal(t, providers.MangaLink{Key: "/mangas/5/one-piece"}, got)
	assert.Zero(t, hits.Load())

	got, err = src.HandleDeepLink(ctx, srv.URL+"/chapters/7868/one-piece-chapter-1153")
	require.NoError(t, err)
	assert.Equal(t, providers.ChapterLink{
		MangaKey: "/mangas/5/one-piece",
		Key:      "/chapters/7868/one-piece-chapter-1153",
	}, got)
	assert.Equal(t, int64(1), hits.Load())

	_, err = src.HandleDeepLink(ctx, srv.URL+"/chapters/1/broken")
	assert.ErrorIs(t, err, providers.ErrMissingElement)

	got, err = src.HandleDeepLink(ctx, srv.URL+"/projects")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = src.HandleDeepLink(ctx, "https://tcbonepiecechapters.com/mangas/5/one-piece")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLabelNumber(t *testing.T) {
	assert.Nil(t, labelNumber("Oneshot"))
	assert.Nil(t, labelNumber("Chapter x"))
	assert.Equal(t, 12.0, *labelNumber(" Chapter 12 "))
}
