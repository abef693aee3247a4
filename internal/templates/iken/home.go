package iken

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/providers/generic"
	"github.com/brogergvhs/mangasrc/internal/util"
)

const (
	selHero       = "main section"
	selHeroSlides = ".swiper > .swiper-wrapper > .swiper-slide, ul > li:not(.splide__slide--clone)"
	selPopular    = "main > div > .splide, div > .swiper"
	selPopularRow = "ul > li:not(.splide__slide--clone) > a, .swiper-slide > a"
	selMainBody   = "main > div.relative, main > div > div.relative"
	selGrid       = "div.grid.grid-cols-2, div.grid.grid-cols-1"
	selTrending   = "div.grid.gap-3, div.grid.gap-4:not(.grid-cols-1)"
)

var cardCover = generic.Chain{
	{Selector: "img", Attr: "abs:src"},
	{Selector: "img", Attr: "abs:srcset"},
}

// homeLayout scans the landing page top to bottom: the hero carousel, the
// popular strip, then every grid and trending list of the main column.
func homeLayout(doc *goquery.Document, base string) providers.HomeLayout {
	layout := providers.HomeLayout{Components: []providers.HomeComponent{}}

	if hero := doc.Find(selHero).First(); hero.Length() > 0 {
		if entries := heroEntries(doc, hero, base); len(entries) > 0 {
			layout.Components = append(layout.Components, providers.HomeComponent{
				Value: providers.BigScroller{Entries: entries},
			})
		}
	}

	if popular := doc.Find(selPopular).First(); popular.Length() > 0 {
		parent := popular.Parent()
		if parent.HasClass("grid-slider") || parent.HasClass("cinematic-slider") {
			parent = parent.Parent()
		}

		entries := []providers.Manga{}
		popular.Find(selPopularRow).Each(func(_ int, a *goquery.Selection) {
			href, ok := a.Attr("href")
			if !ok {
				return
			}
			entries = append(entries, providers.Manga{
				Key:   generic.StripBase(href, base),
				Title: strings.TrimSpace(a.Find("h1, h3").First().Text()),
				Cover: cardCover.String(a, doc.Url),
			})
		})

		layout.Components = append(layout.Components, providers.HomeComponent{
			Title: heading(parent.Prev()),
			Value: providers.Scroller{Entries: entries},
		})
	}

	body := doc.Find(selMainBody).Last()
	body.Children().Each(func(_ int, child *goquery.Selection) {
		if grid := generic.SelfOrFind(child, selGrid); grid.Length() > 0 {
			layout.Components = append(layout.Components, providers.HomeComponent{
				Title: heading(grid.Prev()),
				Value: providers.Scroller{Entries: cards(grid, doc, base, "h1", false)},
			})
		}

		if list := generic.SelfOrFind(child, selTrending); list.Length() > 0 {
			layout.Components = append(layout.Components, providers.HomeComponent{
				Title: heading(list.Parent().Prev()),
				Value: providers.MangaList{Ranking: true, Entries: cards(list, doc, base, "h3", true)},
			})
		}
	})

	return layout
}

func heading(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(generic.SelfOrFind(sel, "h1").Text())
}

// cards reads the direct children of a grid. The title falls back to the
// link's title attribute.
func cards(grid *goquery.Selection, doc *goquery.Document, base, titleSel string, ownText bool) []providers.Manga {
	out := []providers.Manga{}
	grid.Children().Each(func(_ int, el *goquery.Selection) {
		link := generic.SelfOrFind(el, "a")
		href, ok := link.Attr("href")
		if !ok {
			return
		}

		h := el.Find(titleSel).First()
		title := strings.TrimSpace(h.Text())
		if ownText {
			title = generic.OwnText(h)
		}
		if title == "" {
			title = strings.TrimSpace(link.AttrOr("title", ""))
		}

		out = append(out, providers.Manga{
			Key:   generic.StripBase(href, base),
			Title: title,
			Cover: cardCover.String(el, doc.Url),
		})
	})
	return out
}

// heroEntries reads the carousel. Some themes render the slide link
// outside the slide, so the key falls back to an anchor titled like the
// slide and finally to the slug the site would generate.
func heroEntries(doc *goquery.Document, hero *goquery.Selection, base string) []providers.Manga {
	var out []providers.Manga

	hero.Find(selHeroSlides).Each(func(_ int, el *goquery.Selection) {
		title := strings.TrimSpace(el.Find("h2").First().Text())
		if title == "" {
			title = strings.TrimSpace(el.Find("h3").First().Text())
		}
		if title == "" {
			return
		}

		link := el.Find("a").First()
		if link.Length() == 0 {
			link = doc.Find(`a[title="` + escapeAttr(title) + `"]`).First()
		}

		key := "/series/" + util.Slugify(title)
		if href, ok := link.Attr("href"); ok {
			key = generic.StripBase(href, base)
		}

		m := providers.Manga{
			Key:   key,
			Title: title,
			Cover: el.Find("img").First().AttrOr("src", ""),
			Tags:  generic.Texts(el, ".flex > span, .flex > div > span"),
		}
		if d := el.Find(".text-lg").First(); d.Length() > 0 {
			m.Description = generic.TextWithNewlines(d)
		}
		out = append(out, m)
	})

	return out
}

var attrEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeAttr(s string) string { return attrEscaper.Replace(s) }
