// Package home assembles a HomeLayout from a landing page by scanning a
// per-site list of section descriptors in page order.
package home

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/providers/generic"
)

type Kind int

const (
	KindScroller Kind = iota
	KindBigScroller
	KindMangaList
)

// Entries describes how to read manga cards inside a section.
type Entries struct {
	Item        string        `yaml:"item"`
	Link        string        `yaml:"link,omitempty"` // defaults to "a"
	Title       generic.Chain `yaml:"title,omitempty"`
	Cover       generic.Chain `yaml:"cover,omitempty"`
	Description generic.Chain `yaml:"description,omitempty"`
	Tags        string        `yaml:"tags,omitempty"`
}

// Tabs expands one root into a component per tab label. Each label's Attr
// names the selector of its panel.
type Tabs struct {
	Label string `yaml:"label"`
	Attr  string `yaml:"attr"`
}

type Section struct {
	Root    string        `yaml:"root"`
	Kind    Kind          `yaml:"kind"`
	Title   generic.Chain `yaml:"title,omitempty"`
	Entries Entries       `yaml:"entries"`
	Tabs    *Tabs         `yaml:"tabs,omitempty"`
	// AutoScroll applies to big scrollers, in seconds.
	AutoScroll *float64 `yaml:"auto_scroll,omitempty"`
	Ranking    bool     `yaml:"ranking,omitempty"`
	SkipEmpty  bool     `yaml:"skip_empty,omitempty"`
}

// Build scans sections in order. A section whose root is absent contributes
// nothing; entries without a link are dropped; keys are hrefs with base
// stripped.
func Build(doc *goquery.Document, base string, sections []Section) providers.HomeLayout {
	layout := providers.HomeLayout{Components: []providers.HomeComponent{}}

	for _, s := range sections {
		root := doc.Find(s.Root).First()
		if root.Length() == 0 {
			continue
		}

		if s.Tabs != nil {
			root.Find(s.Tabs.Label).Each(func(_ int, tab *goquery.Selection) {
				target, ok := tab.Attr(s.Tabs.Attr)
				if !ok || strings.TrimSpace(target) == "" {
					return
				}
				panel := root.Find(target).First()
				if panel.Length() == 0 {
					return
				}
				c, ok := component(panel, doc.Url, base, s)
				if !ok {
					return
				}
				c.Title = strings.TrimSpace(tab.Text())
				layout.Components = append(layout.Components, c)
			})
			continue
		}

		if c, ok := component(root, doc.Url, base, s); ok {
			layout.Components = append(layout.Components, c)
		}
	}

	return layout
}

func component(root *goquery.Selection, docURL *url.URL, base string, s Section) (providers.HomeComponent, bool) {
	entries := Collect(root, docURL, base, s.Entries)
	if s.SkipEmpty && len(entries) == 0 {
		return providers.HomeComponent{}, false
	}

	c := providers.HomeComponent{Title: s.Title.String(root, docURL)}

	switch s.Kind {
	case KindBigScroller:
		c.Value = providers.BigScroller{Entries: entries, AutoScrollInterval: s.AutoScroll}
	case KindMangaList:
		c.Value = providers.MangaList{Ranking: s.Ranking, Entries: entries}
	default:
		c.Value = providers.Scroller{Entries: entries}
	}

	return c, true
}

// Collect reads one Manga per item under root.
func Collect(root *goquery.Selection, docURL *url.URL, base string, e Entries) []providers.Manga {
	linkSel := e.Link
	if linkSel == "" {
		linkSel = "a"
	}

	out := []providers.Manga{}
	root.Find(e.Item).Each(func(_ int, item *goquery.Selection) {
		link := item
		if !item.Is(linkSel) {
			link = item.Find(linkSel).First()
		}
		href, ok := link.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}

		m := providers.Manga{
			Key:         generic.StripBase(href, base),
			Title:       e.Title.String(item, docURL),
			Cover:       e.Cover.String(item, docURL),
			Description: e.Description.String(item, docURL),
		}
		if e.Tags != "" {
			m.Tags = generic.Texts(item, e.Tags)
		}
		out = append(out, m)
	})

	return out
}
