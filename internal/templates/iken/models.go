package iken

import (
	"strconv"
	"strings"
	"time"

	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/providers/generic"
	"github.com/brogergvhs/mangasrc/internal/util"
)

type searchResponse struct {
	Posts      []post `json:"posts"`
	TotalCount int    `json:"totalCount"`
}

type postResponse struct {
	Post *post `json:"post"`
}

type chaptersResponse struct {
	Post *struct {
		Chapters []chapter `json:"chapters"`
	} `json:"post"`
}

type chapterResponse struct {
	Chapter *chapter `json:"chapter"`
}

type post struct {
	ID            int64     `json:"id"`
	Slug          string    `json:"slug"`
	PostTitle     string    `json:"postTitle"`
	PostContent   string    `json:"postContent"`
	FeaturedImage string    `json:"featuredImage"`
	Author        string    `json:"author"`
	Artist        string    `json:"artist"`
	SeriesType    string    `json:"seriesType"`
	SeriesStatus  string    `json:"seriesStatus"`
	Genres        []named   `json:"genres"`
	Chapters      []chapter `json:"chapters"`
}

type named struct {
	Name string `json:"name"`
}

type chapter struct {
	ID           int64   `json:"id"`
	Slug         string  `json:"slug"`
	Number       float64 `json:"number"`
	Title        string  `json:"title"`
	CreatedBy    *named  `json:"createdBy"`
	CreatedAt    string  `json:"createdAt"`
	IsLocked     *bool   `json:"isLocked"`
	IsTimeLocked *bool   `json:"isTimeLocked"`
	Content      string  `json:"content"`
	Images       []struct {
		URL string `json:"url"`
	} `json:"images"`
}

func (p post) key(params Params) string {
	if params.UseSlugSeriesKeys {
		return p.Slug
	}
	return strconv.FormatInt(p.ID, 10)
}

func (p post) basic(params Params) providers.Manga {
	return providers.Manga{
		Key:   p.key(params),
		Title: p.PostTitle,
		Cover: p.FeaturedImage,
	}
}

func (p post) manga(params Params) providers.Manga {
	m := p.basic(params)

	if p.Artist != "" {
		m.Artists = []string{p.Artist}
	}
	if p.Author != "" {
		m.Authors = []string{p.Author}
	}
	if p.PostContent != "" {
		if doc, err := util.ParseHTML(p.PostContent, params.base()); err == nil {
			m.Description = generic.TextWithNewlines(doc.Find("body"))
		}
	}
	m.URL = params.base() + SeriesRoute{Slug: p.Slug}.Path()
	for _, g := range p.Genres {
		m.Tags = append(m.Tags, g.Name)
	}
	m.Status = seriesStatus(p.SeriesStatus)
	m.Viewer = seriesViewer(p.SeriesType)

	return m
}

func seriesStatus(s string) providers.Status {
	switch s {
	case "ONGOING", "COMING_SOON":
		return providers.StatusOngoing
	case "COMPLETED", "ONE_SHOT":
		return providers.StatusCompleted
	case "CANCELLED", "DROPPED":
		return providers.StatusCancelled
	case "HIATUS":
		return providers.StatusHiatus
	default:
		return providers.StatusUnknown
	}
}

func seriesViewer(s string) providers.Viewer {
	switch s {
	case "MANGA":
		return providers.ViewerRightToLeft
	case "MANHUA", "MANHWA":
		return providers.ViewerWebtoon
	default:
		return providers.ViewerUnknown
	}
}

func convertChapters(list []chapter, base, seriesSlug string) []providers.Chapter {
	out := make([]providers.Chapter, 0, len(list))
	for _, c := range list {
		out = append(out, c.chapter(base, seriesSlug))
	}
	return out
}

func (c chapter) chapter(base, seriesSlug string) providers.Chapter {
	number := c.Number
	ch := providers.Chapter{
		Key:           strconv.FormatInt(c.ID, 10),
		Title:         c.Title,
		ChapterNumber: &number,
		URL:           base + SeriesRoute{Slug: seriesSlug}.Path() + "/" + c.Slug,
	}

	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(c.CreatedAt)); err == nil {
		ts := t.Unix()
		ch.DateUploaded = &ts
	}
	if c.CreatedBy != nil && c.CreatedBy.Name != "" {
		ch.Scanlators = []string{c.CreatedBy.Name}
	}

	switch {
	case c.IsLocked != nil:
		ch.Locked = *c.IsLocked
	case c.IsTimeLocked != nil:
		ch.Locked = *c.IsTimeLocked
	}

	return ch
}
