package liliana

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/util"
)

const homePage = `<html><body>
<div id="hero"><h2>Featured</h2><div class="slides">
  <div class="slider-item">
    <a href="/manga/alpha"><img data-src="/covers/alpha.jpg"></a>
    <div class="desi-head-title">Alpha</div>
    <div class="sc-detail"><div class="scd-item">Pirates.</div><div class="scd-genres"><span>Action</span><span>Comedy</span></div></div>
  </div>
</div></div>
<div id="pin-manga"><h3>Hot</h3><div class="swiper">
  <div class="swiper-slide"><a href="/manga/beta"><img src="/covers/beta.jpg"></a><div class="text-center"><a href="/manga/beta">Beta</a></div></div>
  <div class="swiper-slide swiper-slide-duplicate"><a href="/manga/beta"></a></div>
</div></div>
<div id="feed"><h1><span data-tab="#latest">Latest</span><span data-tab="#nope">Missing</span></h1>
  <div id="latest"><figure><a href="/manga/gamma"><img src="/covers/gamma.jpg"></a><figcaption><a>Gamma</a></figcaption></figure></div>
</div>
<div id="sidebar"><h2>Top Today</h2><div id="series-day">
  <article><a href="/manga/delta"><img src="/covers/delta.jpg"></a><h3>Delta</h3></article>
</div></div>
</body></html>`

const chapterPage = `<html><body>
<script src="/app.js"></script>
<script>var other = 1;</script>
<script>const CHAPTER_ID = 991; const MANGA_ID = 5;</script>
</body></html>`

const imageFragment = `<div class="separator" data-index="2"><a href="/img/2.jpg"><img></a></div>` +
	`<div class="separator" data-index="1"><a href="https://cdn.test/1.jpg"><img></a></div>` +
	`<div class="separator"><a href="/img/ad.jpg"></a></div>`

func newTestSource(t *testing.T, mutate func(*Params)) (*Source, *httptest.Server, *atomic.Int64) {
	t.Helper()

	hits := &atomic.Int64{}
	var srv *httptest.Server

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, homePage)
	})
	mux.HandleFunc("/search/1/", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "alpha", r.URL.Query().Get("keyword"))
		assert.Equal(t, srv.URL+"/", r.Header.Get("Referer"))
		fmt.Fprint(w, gridPage)
	})
	mux.HandleFunc("/filter/2/", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "completed", r.URL.Query().Get("status"))
		fmt.Fprint(w, `<div class="blog-pager"><span class="pagecurrent">2</span></div>`)
	})
	mux.HandleFunc("/ajax/search", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "XMLHttpRequest", r.Header.Get("X-Requested-With"))
		assert.Equal(t, srv.URL, r.Header.Get("Origin"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "search=one%20piece", string(body))
		fmt.Fprint(w, `{"list":[{"cover":"/covers/op.jpg","name":"One Piece","url":"`+srv.URL+`/manga/one-piece"}]}`)
	})
	mux.HandleFunc("/manga/alpha", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, seriesPage)
	})
	mux.HandleFunc("/manga/alpha/chapter-2", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, chapterPage)
	})
	mux.HandleFunc("/manga/alpha/chapter-3", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `<script>const CHAPTER_ID = 992;</script>`)
	})
	mux.HandleFunc("/manga/alpha/chapter-4", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `<p>no scripts</p>`)
	})
	mux.HandleFunc("/ajax/image/list/chap/991", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "XMLHttpRequest", r.Header.Get("X-Requested-With"))
		payload, err := util.JSON.Marshal(map[string]any{"status": true, "html": imageFragment})
		assert.NoError(t, err)
		_, _ = w.Write(payload)
	})
	mux.HandleFunc("/ajax/image/list/chap/992", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `{"status":false,"msg":"Chapter is locked","html":""}`)
	})
	mux.HandleFunc("/ranking/2/", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, gridPage)
	})

	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, srv.URL+"/", r.Header.Get("Referer"), r.URL.Path)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	p := Params{Key: "ja.test", Name: "Test Raw", BaseURL: srv.URL}
	if mutate != nil {
		mutate(&p)
	}

	return New(srv.Client(), p, nil), srv, hits
}

func TestSearch(t *testing.T) {
	src, _, _ := newTestSource(t, nil)
	ctx := context.Background()

	res, err := src.Search(ctx, "alpha", 1, nil)
	require.NoError(t, err)
	assert.True(t, res.HasNextPage)
	assert.Len(t, res.Entries, 2)

	res, err = src.Search(ctx, "", 2, []providers.FilterValue{providers.SelectFilter{ID: "status", Value: "completed"}})
	require.NoError(t, err)
	assert.False(t, res.HasNextPage)
	assert.Empty(t, res.Entries)
}

func TestPostSearch(t *testing.T) {
	src, srv, _ := newTestSource(t, func(p *Params) { p.UsesPostSearch = true })

	res, err := src.Search(context.Background(), "one piece", 3, nil)
	require.NoError(t, err)
	assert.False(t, res.HasNextPage)
	assert.Equal(t, []providers.Manga{
		{Key: "/manga/one-piece", Title: "One Piece", Cover: srv.URL + "/covers/op.jpg"},
	}, res.Entries)
}

func TestUpdateMangaEmitsPartial(t *testing.T) {
	src, srv, hits := newTestSource(t, nil)

	var partials []providers.Manga
	m, err := src.UpdateManga(context.Background(), providers.Manga{Key: "/manga/alpha"}, providers.UpdateOptions{
		Details:  true,
		Chapters: true,
		Partial:  func(m providers.Manga) { partials = append(partials, m) },
	})
	require.NoError(t, err)

	require.Len(t, partials, 1)
	assert.Equal(t, "Alpha", partials[0].Title)
	assert.Nil(t, partials[0].Chapters)

	assert.Equal(t, srv.URL+"/manga/alpha", m.URL)
	assert.Len(t, m.Chapters, 2)
	assert.Equal(t, int64(1), hits.Load())
}

func TestUpdateMangaChaptersOnly(t *testing.T) {
	src, _, _ := newTestSource(t, nil)

	m, err := src.UpdateManga(context.Background(), providers.Manga{Key: "/manga/alpha", Title: "Cached"}, providers.UpdateOptions{
		Chapters: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Cached", m.Title)
	assert.Len(t, m.Chapters, 2)
}

func TestPageList(t *testing.T) {
	src, srv, _ := newTestSource(t, nil)
	ctx := context.Background()
	manga := providers.Manga{Key: "/manga/alpha"}

	pages, err := src.PageList(ctx, manga, providers.Chapter{Key: "/manga/alpha/chapter-2"})
	require.NoError(t, err)
	assert.Equal(t, []providers.Page{
		{URL: "https://cdn.test/1.jpg"},
		{URL: srv.URL + "/img/2.jpg"},
	}, pages)

	_, err = src.PageList(ctx, manga, providers.Chapter{Key: "/manga/alpha/chapter-3"})
	require.ErrorIs(t, err, providers.ErrUpstream)
	assert.Equal(t, "Chapter is locked", err.Error())

	_, err = src.PageList(ctx, manga, providers.Chapter{Key: "/manga/alpha/chapter-4"})
	assert.ErrorIs(t, err, providers.ErrMissingElement)
}

func TestMangaList(t *testing.T) {
	src, _, _ := newTestSource(t, func(p *Params) {
		p.Listings = []providers.Listing{{ID: "ranking", Name: "Ranking"}}
	})
	ctx := context.Background()

	assert.Equal(t, []providers.Listing{{ID: "ranking", Name: "Ranking"}}, src.Listings())

	res, err := src.MangaList(ctx, providers.Listing{ID: "ranking"}, 2)
	require.NoError(t, err)
	assert.Len(t, res.Entries, 2)

	_, err = src.MangaList(ctx, providers.Listing{Name: "no id"}, 1)
	assert.ErrorIs(t, err, providers.ErrInvalidInput)
}

func TestHome(t *testing.T) {
	src, srv, _ := newTestSource(t, nil)

	layout, err := src.Home(context.Background())
	require.NoError(t, err)
	require.Len(t, layout.Components, 4)

	hero := layout.Components[0]
	assert.Equal(t, "Featured", hero.Title)
	big, ok := hero.Value.(providers.BigScroller)
	require.True(t, ok)
	require.NotNil(t, big.AutoScrollInterval)
	assert.Equal(t, 5.0, *big.AutoScrollInterval)
	assert.Equal(t, []providers.Manga{{
		Key:         "/manga/alpha",
		Title:       "Alpha",
		Cover:       srv.URL + "/covers/alpha.jpg",
		Description: "Pirates.",
		Tags:        []string{"Action", "Comedy"},
	}}, big.Entries)

	hot := layout.Components[1]
	assert.Equal(t, "Hot", hot.Title)
	assert.Equal(t, providers.Scroller{Entries: []providers.Manga{
		{Key: "/manga/beta", Title: "Beta", Cover: srv.URL + "/covers/beta.jpg"},
	}}, hot.Value)

	latest := layout.Components[2]
	assert.Equal(t, "Latest", latest.Title)
	assert.Equal(t, providers.Scroller{Entries: []providers.Manga{
		{Key: "/manga/gamma", Title: "Gamma", Cover: srv.URL + "/covers/gamma.jpg"},
	}}, latest.Value)

	top := layout.Components[3]
	assert.Equal(t, "Top Today", top.Title)
	assert.Equal(t, providers.MangaList{Ranking: true, Entries: []providers.Manga{
		{Key: "/manga/delta", Title: "Delta", Cover: srv.URL + "/covers/delta.jpg"},
	}}, top.Value)
}

func TestHandleDeepLink(t *testing.T) {
	src, srv, hits := newTestSource(t, nil)
	ctx := context.Background()

	tests := []struct {
		url  string
		want providers.DeepLinkResult
	}{
		{srv.URL + "/manga/alpha", providers.MangaLink{Key: "/manga/alpha"}},
		{srv.URL + "/manga/alpha/", providers.MangaLink{Key: "/manga/alpha/"}},
		{srv.URL + "/manga/alpha/di41-3hua", providers.ChapterLink{MangaKey: "/manga/alpha", Key: "/manga/alpha/di41-3hua"}},
		{srv.URL + "/manga/alpha/ch-1/", providers.ChapterLink{MangaKey: "/manga/alpha/ch-1", Key: "/manga/alpha/ch-1/"}},
		{srv.URL + "/manga/", nil},
		{srv.URL + "/genre/action", nil},
		{"https://elsewhere.test/manga/alpha", nil},
	}

	for _, tt := range tests {
		got, err := src.HandleDeepLink(ctx, tt.url)
		require.NoError(t, err, tt.url)
		assert.Equal(t, tt.want, got, tt.url)
	}
	assert.Zero(t, hits.Load())
}

func TestImageRequest(t *testing.T) {
	src, srv, _ := newTestSource(t, nil)

	req, err := src.ImageRequest(context.Background(), "https://cdn.test/1.jpg", nil)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/", req.Header.Get("Referer"))
}
