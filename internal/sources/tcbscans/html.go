package tcbscans

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/providers/generic"
)

const (
	selCard         = ".bg-card.border.border-border.rounded.p-3.mb-3"
	selProjectTitle = "a.mb-3.text-white.text-lg.font-bold"
	selProjectCover = ".w-24.h-24.object-cover.rounded-lg"
	selDetails      = ".order-1.bg-card.border.border-border.rounded.py-3"
	selDetailTitle  = ".my-3.font-bold.text-3xl"
	selDetailCover  = ".flex.items-center.justify-center img"
	selDetailDesc   = ".leading-6.my-3"
	selChapterTitle = ".text-gray-500"
	selChapterLabel = ".text-lg.font-bold:not(.flex)"
	selPageImages   = ".flex.flex-col.items-center.justify-center picture img"
	selAllChapters  = "main div.text-sm.font-bold > a"

	scanlator = "TCB Scans"
)

func projects(doc *goquery.Document) ([]providers.Manga, error) {
	cards, err := generic.RequireAll(doc.Selection, selCard)
	if err != nil {
		return nil, err
	}

	out := []providers.Manga{}
	cards.Each(func(_ int, el *goquery.Selection) {
		a := el.Find(selProjectTitle).First()
		href, ok := a.Attr("href")
		title := strings.TrimSpace(a.Text())
		if !ok || title == "" {
			return
		}
		out = append(out, providers.Manga{
			Key:   href,
			Title: title,
			Cover: el.Find(selProjectCover).First().AttrOr("src", ""),
		})
	})
	return out, nil
}

// filterTitles keeps projects whose title contains query, ignoring case.
func filterTitles(list []providers.Manga, query string) []providers.Manga {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return list
	}

	out := []providers.Manga{}
	for _, m := range list {
		if strings.Contains(strings.ToLower(m.Title), query) {
			out = append(out, m)
		}
	}
	return out
}

func details(doc *goquery.Document, manga providers.Manga, pageURL string) (providers.Manga, error) {
	el, err := generic.Require(doc.Selection, selDetails)
	if err != nil {
		return manga, err
	}

	if t := strings.TrimSpace(el.Find(selDetailTitle).First().Text()); t != "" {
		manga.Title = t
	}
	manga.Cover = el.Find(selDetailCover).First().AttrOr("src", "")
	manga.Description = strings.TrimSpace(el.Find(selDetailDesc).First().Text())
	manga.URL = pageURL
	manga.ContentRating = providers.RatingSafe
	manga.Viewer = providers.ViewerRightToLeft

	return manga, nil
}

func chapters(doc *goquery.Document, base string) []providers.Chapter {
	out := []providers.Chapter{}

	doc.Find(selCard).Each(func(_ int, el *goquery.Selection) {
		key, ok := el.Attr("href")
		if !ok {
			return
		}
		c := providers.Chapter{
			Key:           key,
			Title:         strings.TrimSpace(el.Find(selChapterTitle).First().Text()),
			ChapterNumber: labelNumber(el.Find(selChapterLabel).First().Text()),
			Scanlators:    []string{scanlator},
			URL:           base + key,
		}
		out = append(out, c)
	})

	return out
}

// labelNumber reads the number after the last space of "One Piece 1153".
func labelNumber(label string) *float64 {
	label = strings.TrimSpace(label)
	i := strings.LastIndex(label, " ")
	if i < 0 {
		return nil
	}
	f, err := strconv.ParseFloat(label[i+1:], 64)
	if err != nil {
		return nil
	}
	return &f
}

func pages(doc *goquery.Document) []providers.Page {
	out := []providers.Page{}
	doc.Find(selPageImages).Each(func(_ int, img *goquery.Selection) {
		if src, ok := img.Attr("src"); ok {
			out = append(out, providers.Page{URL: strings.TrimSpace(src)})
		}
	})
	return out
}

// seriesLink is the "View all chapters" button, the last link of the
// chapter header.
func seriesLink(doc *goquery.Document, base string) (string, error) {
	links, err := generic.RequireAll(doc.Selection, selAllChapters)
	if err != nil {
		return "", err
	}
	href, ok := links.Last().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", providers.MissingAttr("href")
	}
	return generic.StripBase(href, base), nil
}
