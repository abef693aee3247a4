package liliana

import (
	"strconv"

	"github.com/brogergvhs/mangasrc/internal/filters"
	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/route"
)

type SearchRoute struct {
	Page    int
	Keyword string
}

type FilterRoute struct {
	Page  int
	Query route.Query
}

type AjaxSearchRoute struct{}

type ListingRoute struct {
	ID   string
	Page int
}

type PageListRoute struct{ ChapterID string }

// PathRoute is a site path as stored in manga and chapter keys.
type PathRoute string

type HomeRoute struct{}

func (r SearchRoute) Path() string {
	return "/search/" + strconv.Itoa(r.Page) + "/?keyword=" + route.EncodeURIComponent(r.Keyword)
}

func (r FilterRoute) Path() string {
	s := "/filter/" + strconv.Itoa(r.Page) + "/"
	if r.Query.Len() > 0 {
		s += "?" + r.Query.String()
	}
	return s
}

func (AjaxSearchRoute) Path() string { return "/ajax/search" }

func (r ListingRoute) Path() string {
	return "/" + r.ID + "/" + strconv.Itoa(r.Page) + "/"
}

func (r PageListRoute) Path() string { return "/ajax/image/list/chap/" + r.ChapterID }

func (r PathRoute) Path() string { return string(r) }

func (HomeRoute) Path() string { return "/" }

var sortValues = []string{
	"default",
	"latest-updated",
	"views",
	"views_month",
	"views_week",
	"views_day",
	"score",
	"az",
	"za",
	"chapters",
	"new",
	"old",
}

var filterMapper = filters.NewMapper().
	Sort("sort", filters.SortParam(sortValues, "default")).
	Select("status", filters.Param()).
	Select("genre", filters.ToSearch()).
	MultiSelect("genres", filters.Joined("genres", "notGenres"))

// searchRoute returns a SearchRoute for keyword searches and a FilterRoute
// otherwise.
func searchRoute(query string, page int, values []providers.FilterValue) (route.Route, error) {
	res, err := filterMapper.Fold(query, values)
	if err != nil {
		return nil, err
	}
	if res.Search {
		return SearchRoute{Page: page, Keyword: res.Keyword}, nil
	}
	return FilterRoute{Page: page, Query: res.Query}, nil
}
