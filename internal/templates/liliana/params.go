// Package liliana is the shared pipeline for sites running the Liliana
// manga theme: server-rendered pages, an AJAX search endpoint on some
// deployments and page images served as an HTML fragment.
package liliana

import (
	"net/url"
	"strings"

	"github.com/brogergvhs/mangasrc/internal/home"
	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/providers/generic"
)

type Params struct {
	Key     string
	Name    string
	BaseURL string
	// UsesPostSearch sends text searches to the AJAX endpoint, which
	// returns every match at once.
	UsesPostSearch bool
	Listings       []providers.Listing
	// Selectors overrides the theme defaults field by field.
	Selectors Selectors
}

// Site supplies Params to the pipeline.
type Site interface {
	SiteParams() Params
}

func (p Params) SiteParams() Params { return p }

func (p Params) base() string {
	return strings.TrimRight(p.BaseURL, "/")
}

func (p Params) host() string {
	u, err := url.Parse(p.base())
	if err != nil || u.Host == "" {
		return p.base()
	}
	return u.Hostname()
}

// Selectors locates the parts of a series page and the home sections.
type Selectors struct {
	Title       generic.Chain  `yaml:"title,omitempty"`
	Cover       generic.Chain  `yaml:"cover,omitempty"`
	Author      generic.Chain  `yaml:"author,omitempty"`
	Description generic.Chain  `yaml:"description,omitempty"`
	Tags        string         `yaml:"tags,omitempty"`
	Status      generic.Chain  `yaml:"status,omitempty"`
	Chapter     string         `yaml:"chapter,omitempty"`
	Home        []home.Section `yaml:"home,omitempty"`
}

var scrollerEntries = home.Entries{
	Item:  ".swiper .swiper-slide:not(.swiper-slide-duplicate), figure, .grid > div",
	Title: generic.Chain{{Selector: ".text-center > a, figcaption > a"}},
	Cover: generic.ImageOf("img"),
}

var scrollerTitle = generic.Chain{{Selector: "h2, h3, h1 > span"}}

var heroInterval = 5.0

var DefaultSelectors = Selectors{
	Title:       generic.Chain{{Selector: ".a2 header h1"}},
	Cover:       generic.ImageOf(".a1 > figure img"),
	Author:      generic.Chain{{Selector: "div.y6x11p i.fas.fa-user + span.dt"}},
	Description: generic.Chain{{Selector: "div#syn-target"}},
	Tags:        ".a2 div > a[rel='tag'].label",
	Status:      generic.Chain{{Selector: "div.y6x11p i.fas.fa-rss + span.dt"}},
	Chapter:     "ul > li.chapter",
	Home: []home.Section{
		{
			Root:  "#hero",
			Kind:  home.KindBigScroller,
			Title: generic.Chain{{Selector: "h2"}},
			Entries: home.Entries{
				Item:        ".slides > .slider-item",
				Title:       generic.Chain{{Selector: ".desi-head-title"}},
				Cover:       generic.ImageOf("img"),
				Description: generic.Chain{{Selector: ".sc-detail > .scd-item"}},
				Tags:        ".sc-detail > .scd-genres > *",
			},
			AutoScroll: &heroInterval,
		},
		{Root: "#pin-manga", Title: scrollerTitle, Entries: scrollerEntries},
		{Root: "#recommend", Title: scrollerTitle, Entries: scrollerEntries},
		{Root: "#feed", Tabs: &home.Tabs{Label: "h1 > span", Attr: "data-tab"}, Entries: scrollerEntries},
		{
			Root:    "#sidebar",
			Kind:    home.KindMangaList,
			Title:   generic.Chain{{Selector: "h2"}},
			Ranking: true,
			Entries: home.Entries{
				Item:  "#series-day > article",
				Title: generic.Chain{{Selector: "h3"}},
				Cover: generic.ImageOf("img"),
			},
		},
	},
}

func (s Selectors) withDefaults() Selectors {
	d := DefaultSelectors
	if len(s.Title) == 0 {
		s.Title = d.Title
	}
	if len(s.Cover) == 0 {
		s.Cover = d.Cover
	}
	if len(s.Author) == 0 {
		s.Author = d.Author
	}
	if len(s.Description) == 0 {
		s.Description = d.Description
	}
	if s.Tags == "" {
		s.Tags = d.Tags
	}
	if len(s.Status) == 0 {
		s.Status = d.Status
	}
	if s.Chapter == "" {
		s.Chapter = d.Chapter
	}
	if len(s.Home) == 0 {
		s.Home = d.Home
	}
	return s
}
