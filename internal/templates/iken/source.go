package iken

import (
	"context"
	"net/http"
	"strings"

	"github.com/brogergvhs/mangasrc/internal/deeplink"
	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/providers/generic"
	"github.com/brogergvhs/mangasrc/internal/route"
	"github.com/brogergvhs/mangasrc/internal/util"
)

const seriesPrefix = "/series/"

// Source runs the Iken pipeline for one site.
type Source struct {
	client   *http.Client
	params   Params
	log      providers.Logger
	resolver deeplink.Resolver
}

func New(client *http.Client, site Site, log providers.Logger) *Source {
	if log == nil {
		log = providers.NopLogger
	}
	s := &Source{client: client, params: site.SiteParams(), log: log}
	s.resolver = deeplink.NewResolver(s.params.base(), deeplink.Shape{
		Name:    "series",
		Match:   deeplink.Prefix(seriesPrefix),
		Resolve: resolveSeries,
	})
	return s
}

func (s *Source) Key() string  { return s.params.Key }
func (s *Source) Name() string { return s.params.Name }

func (s *Source) api(r route.Route) *util.Request {
	return s.request(route.URL(s.params.api(), r))
}

func (s *Source) site(r route.Route) *util.Request {
	return s.request(route.URL(s.params.base(), r))
}

func (s *Source) request(u string) *util.Request {
	return util.Get(s.client, u).Header("Referer", s.params.base()+"/")
}

func (s *Source) Search(ctx context.Context, query string, page int, filters []providers.FilterValue) (providers.MangaPageResult, error) {
	r, err := searchRoute(s.params, query, page, filters)
	if err != nil {
		return providers.MangaPageResult{}, err
	}
	s.log.Debugf("%s: query %s", s.params.Key, r.Path())

	var resp searchResponse
	if err := s.api(r).DecodeJSON(ctx, &resp); err != nil {
		return providers.MangaPageResult{}, err
	}

	entries := make([]providers.Manga, 0, len(resp.Posts))
	for _, p := range resp.Posts {
		entries = append(entries, p.basic(s.params))
	}

	return providers.MangaPageResult{
		Entries:     entries,
		HasNextPage: resp.TotalCount > page*perPage,
	}, nil
}

// postRoute accepts the three key shapes in circulation: "/series/{slug}"
// paths from the home page and deep links, slugs, and numeric ids.
func (s *Source) postRoute(key string) PostRoute {
	switch {
	case strings.HasPrefix(key, seriesPrefix):
		return PostRoute{Slug: strings.TrimPrefix(key, seriesPrefix)}
	case s.params.UseSlugSeriesKeys:
		return PostRoute{Slug: key}
	default:
		return PostRoute{ID: key}
	}
}

// UpdateManga loads the post once for both details and embedded chapters.
// Refreshed details replace the key with the site's canonical id or slug.
func (s *Source) UpdateManga(ctx context.Context, manga providers.Manga, opts providers.UpdateOptions) (providers.Manga, error) {
	var resp postResponse
	if err := s.api(s.postRoute(manga.Key)).DecodeJSON(ctx, &resp); err != nil {
		return manga, err
	}
	if resp.Post == nil {
		return manga, providers.MissingField("post")
	}
	p := resp.Post

	if opts.Details {
		updated := p.manga(s.params)
		updated.Chapters = manga.Chapters
		manga = updated
		opts.EmitPartial(manga)
	}

	if opts.Chapters {
		list := p.Chapters
		if s.params.FetchFullChapterList {
			var full chaptersResponse
			if err := s.api(ChaptersRoute{PostID: p.ID}).DecodeJSON(ctx, &full); err != nil {
				return manga, err
			}
			if full.Post == nil {
				return manga, providers.MissingField("post")
			}
			list = full.Post.Chapters
		}
		manga.Chapters = convertChapters(list, s.params.base(), p.Slug)
	}

	return manga, nil
}

// PageList returns a single text page for novels and one page per image
// otherwise.
func (s *Source) PageList(ctx context.Context, manga providers.Manga, chapter providers.Chapter) ([]providers.Page, error) {
	var resp chapterResponse
	r := ChapterRoute{PostID: manga.Key, ChapterID: chapter.Key}
	if err := s.api(r).DecodeJSON(ctx, &resp); err != nil {
		return nil, err
	}
	if resp.Chapter == nil {
		return nil, providers.MissingField("chapter")
	}

	if content := resp.Chapter.Content; content != "" {
		doc, err := util.ParseHTML(content, s.params.base())
		if err != nil {
			return nil, err
		}
		text := generic.TextWithNewlines(doc.Find("body"))
		if text == "" {
			return nil, providers.MissingField("chapter content")
		}
		return []providers.Page{{Text: text}}, nil
	}

	pages := make([]providers.Page, 0, len(resp.Chapter.Images))
	for _, img := range resp.Chapter.Images {
		pages = append(pages, providers.Page{URL: img.URL})
	}
	return pages, nil
}

func (s *Source) Home(ctx context.Context) (providers.HomeLayout, error) {
	doc, err := s.site(HomeRoute{}).HTML(ctx)
	if err != nil {
		return providers.HomeLayout{}, err
	}
	return homeLayout(doc, s.params.base()), nil
}

func (s *Source) HandleDeepLink(ctx context.Context, rawURL string) (providers.DeepLinkResult, error) {
	return s.resolver.Resolve(ctx, rawURL)
}

// resolveSeries links chapter URLs to their series; chapters are keyed by
// id, which the URL does not carry.
func resolveSeries(_ context.Context, p *deeplink.Path) (providers.DeepLinkResult, error) {
	key := strings.TrimRight(p.Raw, "/")
	if i := strings.LastIndex(key, "/chapter-"); i > 0 {
		key = key[:i]
	}
	if key == strings.TrimRight(seriesPrefix, "/") {
		return nil, nil
	}
	return providers.MangaLink{Key: key}, nil
}

func (s *Source) ImageRequest(ctx context.Context, imageURL string, _ map[string]string) (*http.Request, error) {
	return s.request(imageURL).Build(ctx)
}
