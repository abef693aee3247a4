// Package tcbscans adapts TCB Scans, a scanlation group site with a single
// projects page and no server-side search.
package tcbscans

import (
	"context"
	"net/http"
	"strings"

	"github.com/brogergvhs/mangasrc/internal/deeplink"
	"github.com/brogergvhs/mangasrc/internal/filters"
	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/route"
	"github.com/brogergvhs/mangasrc/internal/util"
)

const (
	Key            = "en.tcbscans"
	Name           = "TCB Scans"
	DefaultBaseURL = "https://tcbonepiecechapters.com"
)

type ProjectsRoute struct{}

// PathRoute is a site path as stored in manga and chapter keys.
type PathRoute string

func (ProjectsRoute) Path() string { return "/projects" }
func (r PathRoute) Path() string   { return string(r) }

// The site has no filters; any filter value is rejected.
var filterMapper = filters.NewMapper()

type Params struct {
	BaseURL string
}

type Source struct {
	client   *http.Client
	base     string
	log      providers.Logger
	resolver deeplink.Resolver
}

func New(client *http.Client, params Params, log providers.Logger) *Source {
	if params.BaseURL == "" {
		params.BaseURL = DefaultBaseURL
	}
	if log == nil {
		log = providers.NopLogger
	}

	s := &Source{client: client, base: strings.TrimRight(params.BaseURL, "/"), log: log}
	s.resolver = deeplink.NewResolver(s.base,
		deeplink.Shape{
			Name:  "manga",
			Match: deeplink.Prefix("/mangas/"),
			Resolve: func(_ context.Context, p *deeplink.Path) (providers.DeepLinkResult, error) {
				return providers.MangaLink{Key: p.Raw}, nil
			},
		},
		deeplink.Shape{
			Name:    "chapter",
			Match:   deeplink.Prefix("/chapters/"),
			Resolve: s.resolveChapter,
		},
	)
	return s
}

func (s *Source) Key() string  { return Key }
func (s *Source) Name() string { return Name }

func (s *Source) get(r route.Route) *util.Request {
	return util.Get(s.client, route.URL(s.base, r)).
		Header("Referer", s.base+"/")
}

// Search loads the whole project list and filters it locally, so there is
// never a next page.
func (s *Source) Search(ctx context.Context, query string, _ int, values []providers.FilterValue) (providers.MangaPageResult, error) {
	res, err := filterMapper.Fold(query, values)
	if err != nil {
		return providers.MangaPageResult{}, err
	}

	doc, err := s.get(ProjectsRoute{}).HTML(ctx)
	if err != nil {
		return providers.MangaPageResult{}, err
	}
	list, err := projects(doc)
	if err != nil {
		return providers.MangaPageResult{}, err
	}

	return providers.MangaPageResult{Entries: filterTitles(list, res.Keyword)}, nil
}

func (s *Source) UpdateManga(ctx context.Context, manga providers.Manga, opts providers.UpdateOptions) (providers.Manga, error) {
	r := PathRoute(manga.Key)
	doc, err := s.get(r).HTML(ctx)
	if err != nil {
		return manga, err
	}

	if opts.Details {
		manga, err = details(doc, manga, route.URL(s.base, r))
		if err != nil {
			return manga, err
		}
		opts.EmitPartial(manga)
	}

	if opts.Chapters {
		manga.Chapters = chapters(doc, s.base)
	}

	return manga, nil
}

func (s *Source) PageList(ctx context.Context, _ providers.Manga, chapter providers.Chapter) ([]providers.Page, error) {
	doc, err := s.get(PathRoute(chapter.Key)).HTML(ctx)
	if err != nil {
		return nil, err
	}
	return pages(doc), nil
}

func (s *Source) HandleDeepLink(ctx context.Context, rawURL string) (providers.DeepLinkResult, error) {
	return s.resolver.Resolve(ctx, rawURL)
}

// resolveChapter fetches the chapter page; its URL does not name the series.
func (s *Source) resolveChapter(ctx context.Context, p *deeplink.Path) (providers.DeepLinkResult, error) {
	s.log.Debugf("%s: resolving series of %s", Key, p.Raw)

	doc, err := s.get(PathRoute(p.Raw)).HTML(ctx)
	if err != nil {
		return nil, err
	}
	mangaKey, err := seriesLink(doc, s.base)
	if err != nil {
		return nil, err
	}
	return providers.ChapterLink{MangaKey: mangaKey, Key: p.Raw}, nil
}
