package liliana

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/util"
)

const gridPage = `<div id="main"><div class="grid">
  <div><img data-src="/covers/a.jpg"><div class="text-center"><a href="https://site.test/manga/alpha">Alpha</a></div></div>
  <div><div class="text-center"><a href="/manga/no-cover">No cover</a></div></div>
  <div><img src="/covers/b.jpg"><div class="text-center"><a href="/manga/beta">  </a></div></div>
  <div><img src="/covers/c.jpg"><div class="text-center"><a href="/manga/gamma">Gamma</a></div></div>
</div></div>
<div class="blog-pager"><span class="pagecurrent">1</span><span><a href="/filter/2/">2</a></span></div>`

func TestMangaPage(t *testing.T) {
	doc, err := util.ParseHTML(gridPage, "https://site.test/filter/1/")
	require.NoError(t, err)

	res := mangaPage(doc, "https://site.test")
	assert.True(t, res.HasNextPage)
	assert.Equal(t, []providers.Manga{
		{Key: "/manga/alpha", Title: "Alpha", Cover: "https://site.test/covers/a.jpg"},
		{Key: "/manga/gamma", Title: "Gamma", Cover: "https://site.test/covers/c.jpg"},
	}, res.Entries)

	doc, err = util.ParseHTML(`<div class="blog-pager"><span class="pagecurrent">9</span></div>`, "https://site.test/")
	require.NoError(t, err)
	res = mangaPage(doc, "https://site.test")
	assert.False(t, res.HasNextPage)
	assert.Empty(t, res.Entries)
}

const seriesPage = `<html><body>
<div class="a1"><figure><img data-lazy-src="/covers/alpha.jpg" src="/placeholder.gif"></figure></div>
<div class="a2">
  <header><h1>Alpha</h1></header>
  <div><a rel="tag" class="label" href="/genre/action">Action</a><a rel="tag" class="label">Drama</a></div>
</div>
<div class="y6x11p"><i class="fas fa-user"></i><span class="dt">Oda</span></div>
<div class="y6x11p"><i class="fas fa-rss"></i><span class="dt">Hoàn thành</span></div>
<div id="syn-target">A long story.</div>
<ul>
  <li class="chapter"><a href="/manga/alpha/chapter-2">Chapter 2 - The Return</a><time datetime="1700000000"></time></li>
  <li class="chapter"><a href="/manga/alpha/chapter-1-5">Chapter 1.5</a><time datetime="2024-01-02T03:04:05Z"></time></li>
  <li class="chapter"><a>Chapter 1</a></li>
</ul>
</body></html>`

func TestDetails(t *testing.T) {
	doc, err := util.ParseHTML(seriesPage, "https://site.test/manga/alpha")
	require.NoError(t, err)

	in := providers.Manga{Key: "/manga/alpha", Title: "old", Authors: []string{"stale"}}
	m := details(doc, DefaultSelectors, in, "https://site.test/manga/alpha")

	assert.Equal(t, "/manga/alpha", m.Key)
	assert.Equal(t, "Alpha", m.Title)
	assert.Equal(t, "https://site.test/covers/alpha.jpg", m.Cover)
	assert.Equal(t, []string{"Oda"}, m.Authors)
	assert.Equal(t, "A long story.", m.Description)
	assert.Equal(t, []string{"Action", "Drama"}, m.Tags)
	assert.Equal(t, "https://site.test/manga/alpha", m.URL)
	assert.Equal(t, providers.StatusCompleted, m.Status)
}

func TestDetailsKeepsTitleAndDropsPlaceholderAuthor(t *testing.T) {
	doc, err := util.ParseHTML(`<div class="y6x11p"><i class="fas fa-user"></i><span class="dt">updating</span></div>`,
		"https://site.test/manga/x")
	require.NoError(t, err)

	m := details(doc, DefaultSelectors, providers.Manga{Title: "Kept", Cover: "c.jpg", Authors: []string{"a"}}, "u")
	assert.Equal(t, "Kept", m.Title)
	assert.Equal(t, "c.jpg", m.Cover)
	assert.Nil(t, m.Authors)
	assert.Equal(t, providers.StatusUnknown, m.Status)
}

func TestChapters(t *testing.T) {
	doc, err := util.ParseHTML(seriesPage, "https://site.test/manga/alpha")
	require.NoError(t, err)

	list := chapters(doc, DefaultSelectors.Chapter, "https://site.test")
	require.Len(t, list, 2)

	assert.Equal(t, "/manga/alpha/chapter-2", list[0].Key)
	assert.Equal(t, "The Return", list[0].Title)
	assert.Equal(t, "https://site.test/manga/alpha/chapter-2", list[0].URL)
	require.NotNil(t, list[0].ChapterNumber)
	assert.Equal(t, 2.0, *list[0].ChapterNumber)
	require.NotNil(t, list[0].DateUploaded)
	assert.Equal(t, int64(1700000000), *list[0].DateUploaded)

	assert.Empty(t, list[1].Title)
	assert.Equal(t, 1.5, *list[1].ChapterNumber)
	assert.Equal(t, int64(1704164645), *list[1].DateUploaded)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, providers.StatusOngoing, status("Ongoing"))
	assert.Equal(t, providers.StatusOngoing, status("進行中"))
	assert.Equal(t, providers.StatusHiatus, status("tạm ngưng"))
	assert.Equal(t, providers.StatusCancelled, status("キャンセル"))
	assert.Equal(t, providers.StatusUnknown, status(""))
}

func TestSearchEntry(t *testing.T) {
	cover := "/covers/x.jpg"
	e := searchEntry{Cover: &cover, Name: "X", URL: "https://site.test/manga/x"}
	assert.Equal(t, providers.Manga{Key: "/manga/x", Title: "X", Cover: "https://site.test/covers/x.jpg"},
		e.manga("https://site.test"))

	e.Cover = nil
	assert.Empty(t, e.manga("https://site.test").Cover)
}

func TestSelectorsWithDefaults(t *testing.T) {
	s := Selectors{Chapter: "div.chapters > a"}.withDefaults()
	assert.Equal(t, "div.chapters > a", s.Chapter)
	assert.Equal(t, DefaultSelectors.Title, s.Title)
	assert.Len(t, s.Home, len(DefaultSelectors.Home))
}
