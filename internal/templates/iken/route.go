package iken

import (
	"strconv"

	"github.com/brogergvhs/mangasrc/internal/filters"
	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/route"
)

const perPage = 18

// QueryRoute lists series. Keyword is set for text searches; otherwise
// Filters carries the folded filter parameters.
type QueryRoute struct {
	Page         int
	Keyword      string
	DedicatedAPI bool
	Filters      route.Query
}

// PostRoute loads one series by slug or by numeric id.
type PostRoute struct {
	Slug string
	ID   string
}

type ChaptersRoute struct{ PostID int64 }

type ChapterRoute struct {
	PostID    string
	ChapterID string
}

type HomeRoute struct{}

type SeriesRoute struct{ Slug string }

func (r QueryRoute) Path() string {
	var q route.Query
	q.PushInt("page", r.Page)
	q.PushInt("perPage", perPage)
	if r.Keyword != "" {
		q.Push("searchTerm", r.Keyword)
	}
	if r.DedicatedAPI {
		q.PushEncoded("tag", "latestUpdate")
		q.PushEncoded("isNovel", "false")
	}

	s := "/api/query?" + q.String()
	if r.Filters.Len() > 0 {
		s += "&" + r.Filters.String()
	}
	return s
}

func (r PostRoute) Path() string {
	var q route.Query
	if r.Slug != "" {
		q.Push("postSlug", r.Slug)
	} else {
		q.Push("postId", r.ID)
	}
	return "/api/post?" + q.String()
}

func (r ChaptersRoute) Path() string {
	return "/api/chapters?postId=" + strconv.FormatInt(r.PostID, 10)
}

func (r ChapterRoute) Path() string {
	var q route.Query
	q.Push("postId", r.PostID)
	q.Push("chapterId", r.ChapterID)
	return "/api/chapter?" + q.String()
}

func (HomeRoute) Path() string     { return "/home" }
func (r SeriesRoute) Path() string { return "/series/" + r.Slug }

var filterMapper = filters.NewMapper().
	Select("seriesType", filters.Param()).
	Select("seriesStatus", filters.Param()).
	Select("orderBy", filters.Param()).
	MultiSelect("genres", filters.Joined("genreIds", ""))

func searchRoute(p Params, query string, page int, values []providers.FilterValue) (QueryRoute, error) {
	res, err := filterMapper.Fold(query, values)
	if err != nil {
		return QueryRoute{}, err
	}

	return QueryRoute{
		Page:         page,
		Keyword:      res.Keyword,
		DedicatedAPI: p.dedicatedAPI(),
		Filters:      res.Query,
	}, nil
}
