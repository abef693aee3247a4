package liliana

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/providers/generic"
)

type searchResponse struct {
	List []searchEntry `json:"list"`
}

type searchEntry struct {
	Cover *string `json:"cover"`
	Name  string  `json:"name"`
	URL   string  `json:"url"`
}

func (e searchEntry) manga(base string) providers.Manga {
	m := providers.Manga{
		Key:   generic.StripBase(e.URL, base),
		Title: e.Name,
	}
	if e.Cover != nil && *e.Cover != "" {
		m.Cover = base + *e.Cover
	}
	return m
}

type pageListResponse struct {
	Status bool    `json:"status"`
	Msg    *string `json:"msg"`
	HTML   string  `json:"html"`
}

var pageImages = generic.ImageList{Item: "div.separator", Link: "a", Attr: "abs:href"}

var entryCover = generic.ImageOf("img")

// mangaPage reads the card grid shared by search, filter and listing
// pages. Cards without a title link or an image are skipped.
func mangaPage(doc *goquery.Document, base string) providers.MangaPageResult {
	entries := []providers.Manga{}

	doc.Find("div#main div.grid > div").Each(func(_ int, el *goquery.Selection) {
		link := el.Find(".text-center a").First()
		href, ok := link.Attr("href")
		title := strings.TrimSpace(link.Text())
		if !ok || title == "" || el.Find("img").Length() == 0 {
			return
		}
		entries = append(entries, providers.Manga{
			Key:   generic.StripBase(href, base),
			Title: title,
			Cover: entryCover.String(el, doc.Url),
		})
	})

	return providers.MangaPageResult{
		Entries:     entries,
		HasNextPage: doc.Find(".blog-pager > span.pagecurrent + span").Length() > 0,
	}
}

func details(doc *goquery.Document, sel Selectors, manga providers.Manga, pageURL string) providers.Manga {
	root := doc.Selection

	if v, ok := sel.Title.First(root, doc.Url); ok {
		manga.Title = v
	}
	if v, ok := sel.Cover.First(root, doc.Url); ok {
		manga.Cover = v
	}

	manga.Authors = nil
	if v, ok := sel.Author.First(root, doc.Url); ok && v != "updating" {
		manga.Authors = []string{v}
	}
	manga.Description = sel.Description.String(root, doc.Url)
	manga.Tags = generic.Texts(root, sel.Tags)
	manga.URL = pageURL
	manga.Status = status(sel.Status.String(root, doc.Url))

	return manga
}

func status(s string) providers.Status {
	switch strings.ToLower(s) {
	case "ongoing", "đang tiến hành", "進行中":
		return providers.StatusOngoing
	case "completed", "hoàn thành", "完了":
		return providers.StatusCompleted
	case "on-hold", "tạm ngưng", "保留":
		return providers.StatusHiatus
	case "canceled", "đã huỷ", "キャンセル":
		return providers.StatusCancelled
	default:
		return providers.StatusUnknown
	}
}

// chapters lists the chapter rows in page order. The chapter title is
// whatever follows the first hyphen of the link text.
func chapters(doc *goquery.Document, item, base string) []providers.Chapter {
	out := []providers.Chapter{}

	doc.Find(item).Each(func(_ int, el *goquery.Selection) {
		a := el.Find("a").First()
		link, ok := generic.Read(a, "abs:href", doc.Url)
		text := strings.TrimSpace(a.Text())
		if !ok || text == "" {
			return
		}

		c := providers.Chapter{
			Key:           generic.StripBase(link, base),
			ChapterNumber: generic.FindFirstFloat(text),
			URL:           link,
		}
		if _, title, found := strings.Cut(text, "-"); found {
			c.Title = strings.TrimSpace(title)
		}
		if dt, ok := el.Find("time").First().Attr("datetime"); ok {
			c.DateUploaded = uploadDate(dt)
		}
		out = append(out, c)
	})

	return out
}

// uploadDate accepts unix seconds and falls back to RFC 3339.
func uploadDate(s string) *int64 {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &n
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		n := t.Unix()
		return &n
	}
	return nil
}
