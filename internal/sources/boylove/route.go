package boylove

import (
	"fmt"
	"strings"

	"github.com/brogergvhs/mangasrc/internal/route"
)

type HomeRoute struct{}

// AbsRoute is a site-relative path taken from a payload.
type AbsRoute struct{ Rel string }

type ChangeCharsetRoute struct{ Traditional bool }

type FiltersPageRoute struct{}

// FiltersRoute is the category browse endpoint. Its segments are
// positional: tags, status, sort, page, rating, a constant 1, permission.
type FiltersRoute struct {
	Tags           []string
	Status         string
	Sort           string
	Page           int
	ContentRating  string
	ViewPermission string
}

type SearchRoute struct {
	Keyword string
	Page    int
}

type MangaRoute struct{ Key string }

type ChapterRoute struct{ Key string }

type ChapterListRoute struct{ Key string }

// DailyUpdateRoute pages are 0-based upstream.
type DailyUpdateRoute struct {
	Weekday string
	Page    int
}

// ListingRoute pages are 0-based upstream.
type ListingRoute struct {
	Listing string
	Page    int
}

type RandomRoute struct{}

type DailyUpdatePageRoute struct{}

// ChapterViewRoute lives on the API host and must be signed.
type ChapterViewRoute struct{ Key string }

func (HomeRoute) Path() string        { return "/" }
func (r AbsRoute) Path() string       { return r.Rel }
func (FiltersPageRoute) Path() string { return "/home/book/cate.html" }
func (r MangaRoute) Path() string     { return "/home/book/index/id/" + r.Key }
func (r ChapterRoute) Path() string   { return "/home/book/capter/id/" + r.Key }
func (RandomRoute) Path() string      { return "/home/Api/getCnxh.html?limit=5&type=1" }

func (DailyUpdatePageRoute) Path() string { return "/home/index/dailyupdate1" }

func (r ChangeCharsetRoute) Path() string {
	if r.Traditional {
		return "/home/user/toT.html"
	}
	return "/home/user/toS.html"
}

func (r FiltersRoute) Path() string {
	tags := "0"
	if len(r.Tags) > 0 {
		encoded := make([]string, len(r.Tags))
		for i, t := range r.Tags {
			encoded[i] = route.EncodeURIComponent(t)
		}
		tags = strings.Join(encoded, "+")
	}

	return fmt.Sprintf("/home/api/cate/tp/1-%s-%s-%s-%d-%s-1-%s",
		tags, r.Status, r.Sort, r.Page, r.ContentRating, r.ViewPermission)
}

func (r SearchRoute) Path() string {
	var q route.Query
	q.Push("keyword", r.Keyword)
	q.PushEncoded("type", "1")
	q.PushInt("pageNo", r.Page)
	return "/home/api/searchk?" + q.String()
}

func (r ChapterListRoute) Path() string {
	return "/home/api/chapter_list/tp/" + r.Key + "-0-0-10"
}

func (r DailyUpdateRoute) Path() string {
	var q route.Query
	q.PushEncoded("widx", r.Weekday)
	q.PushEncoded("limit", "18")
	q.PushInt("page", route.OffsetPage(r.Page))
	q.PushEncoded("lastpage", "0")
	return "/home/Api/getDailyUpdate.html?" + q.String()
}

func (r ListingRoute) Path() string {
	return fmt.Sprintf("/home/api/getpage/tp/1-%s-%d", r.Listing, route.OffsetPage(r.Page))
}

func (r ChapterViewRoute) Path() string {
	var q route.Query
	q.PushEncoded("id", r.Key)
	q.PushEncoded("sw_page", "null")
	q.PushEncoded("mode", "vertical")
	q.PushEncoded("page", "0")
	q.PushEncoded("app_img_shunt", "NaN")
	return "/chapter_view_template?" + q.String()
}
