package liliana

import (
	"context"
	"net/http"
	"strings"

	"github.com/brogergvhs/mangasrc/internal/deeplink"
	"github.com/brogergvhs/mangasrc/internal/home"
	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/providers/generic"
	"github.com/brogergvhs/mangasrc/internal/route"
	"github.com/brogergvhs/mangasrc/internal/util"
)

const (
	mangaPrefix = "/manga/"
	acceptJSON  = "application/json, text/javascript, */*; q=0.01"
)

// Source runs the Liliana pipeline for one site.
type Source struct {
	client    *http.Client
	params    Params
	selectors Selectors
	log       providers.Logger
	resolver  deeplink.Resolver
}

func New(client *http.Client, site Site, log providers.Logger) *Source {
	if log == nil {
		log = providers.NopLogger
	}
	p := site.SiteParams()
	s := &Source{client: client, params: p, selectors: p.Selectors.withDefaults(), log: log}
	s.resolver = deeplink.NewResolver(p.base(), deeplink.Shape{
		Name:    "manga",
		Match:   deeplink.Prefix(mangaPrefix),
		Resolve: resolveManga,
	})
	return s
}

func (s *Source) Key() string  { return s.params.Key }
func (s *Source) Name() string { return s.params.Name }

func (s *Source) get(r route.Route) *util.Request {
	return util.Get(s.client, route.URL(s.params.base(), r)).
		Header("Referer", s.params.base()+"/")
}

// xhr adds the headers the AJAX endpoints check for.
func (s *Source) xhr(r *util.Request) *util.Request {
	return r.Header("Accept", acceptJSON).
		Header("Host", s.params.host()).
		Header("X-Requested-With", "XMLHttpRequest")
}

func (s *Source) Search(ctx context.Context, query string, page int, filters []providers.FilterValue) (providers.MangaPageResult, error) {
	r, err := searchRoute(query, page, filters)
	if err != nil {
		return providers.MangaPageResult{}, err
	}

	if sr, ok := r.(SearchRoute); ok && s.params.UsesPostSearch {
		return s.postSearch(ctx, sr.Keyword)
	}

	s.log.Debugf("%s: %s", s.params.Key, r.Path())
	doc, err := s.get(r).HTML(ctx)
	if err != nil {
		return providers.MangaPageResult{}, err
	}
	return mangaPage(doc, s.params.base()), nil
}

// postSearch returns every match in one page.
func (s *Source) postSearch(ctx context.Context, keyword string) (providers.MangaPageResult, error) {
	body := "search=" + route.EncodeURIComponent(keyword)
	req := util.Post(s.client, route.URL(s.params.base(), AjaxSearchRoute{}), body).
		Header("Origin", s.params.base()).
		Header("Referer", s.params.base()+"/")

	var resp searchResponse
	if err := s.xhr(req).DecodeJSON(ctx, &resp); err != nil {
		return providers.MangaPageResult{}, err
	}

	entries := make([]providers.Manga, 0, len(resp.List))
	for _, e := range resp.List {
		entries = append(entries, e.manga(s.params.base()))
	}
	return providers.MangaPageResult{Entries: entries}, nil
}

func (s *Source) UpdateManga(ctx context.Context, manga providers.Manga, opts providers.UpdateOptions) (providers.Manga, error) {
	r := PathRoute(manga.Key)
	doc, err := s.get(r).HTML(ctx)
	if err != nil {
		return manga, err
	}

	if opts.Details {
		manga = details(doc, s.selectors, manga, route.URL(s.params.base(), r))
		opts.EmitPartial(manga)
	}

	if opts.Chapters {
		manga.Chapters = chapters(doc, s.selectors.Chapter, s.params.base())
	}

	return manga, nil
}

func (s *Source) PageList(ctx context.Context, _ providers.Manga, chapter providers.Chapter) ([]providers.Page, error) {
	doc, err := s.get(PathRoute(chapter.Key)).HTML(ctx)
	if err != nil {
		return nil, err
	}

	script, ok := generic.ScriptContaining(doc.Selection, "CHAPTER_ID")
	if !ok {
		return nil, providers.MissingField("CHAPTER_ID")
	}
	id, ok := generic.Between(script, "const CHAPTER_ID = ", ";")
	if !ok || strings.TrimSpace(id) == "" {
		return nil, providers.MissingField("CHAPTER_ID")
	}

	var resp pageListResponse
	req := s.xhr(s.get(PageListRoute{ChapterID: strings.TrimSpace(id)}))
	if err := req.DecodeJSON(ctx, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		msg := ""
		if resp.Msg != nil {
			msg = *resp.Msg
		}
		return nil, &providers.UpstreamError{Message: msg}
	}

	fragment, err := util.ParseHTML(resp.HTML, s.params.base()+"/")
	if err != nil {
		return nil, err
	}

	urls := pageImages.Collect(fragment.Selection, fragment.Url)
	pages := make([]providers.Page, 0, len(urls))
	for _, u := range urls {
		pages = append(pages, providers.Page{URL: u})
	}
	return pages, nil
}

func (s *Source) Listings() []providers.Listing {
	return s.params.Listings
}

// MangaList takes any listing id; the site serves listings at /{id}/{page}/.
func (s *Source) MangaList(ctx context.Context, listing providers.Listing, page int) (providers.MangaPageResult, error) {
	if strings.TrimSpace(listing.ID) == "" {
		return providers.MangaPageResult{}, providers.InvalidInput("listing ID", listing.ID)
	}
	doc, err := s.get(ListingRoute{ID: listing.ID, Page: page}).HTML(ctx)
	if err != nil {
		return providers.MangaPageResult{}, err
	}
	return mangaPage(doc, s.params.base()), nil
}

func (s *Source) Home(ctx context.Context) (providers.HomeLayout, error) {
	doc, err := s.get(HomeRoute{}).HTML(ctx)
	if err != nil {
		return providers.HomeLayout{}, err
	}
	return home.Build(doc, s.params.base(), s.selectors.Home), nil
}

func (s *Source) HandleDeepLink(ctx context.Context, rawURL string) (providers.DeepLinkResult, error) {
	return s.resolver.Resolve(ctx, rawURL)
}

// resolveManga treats /manga/{slug} and /manga/{slug}/ as series and any
// deeper path as a chapter of the series above it.
func resolveManga(_ context.Context, p *deeplink.Path) (providers.DeepLinkResult, error) {
	path := p.Raw
	slashes := strings.Count(path, "/")

	if slashes > 3 || (slashes == 3 && !strings.HasSuffix(path, "/")) {
		return providers.ChapterLink{
			MangaKey: path[:strings.LastIndex(path, "/")],
			Key:      path,
		}, nil
	}
	return providers.MangaLink{Key: path}, nil
}

func (s *Source) ImageRequest(ctx context.Context, imageURL string, _ map[string]string) (*http.Request, error) {
	return util.Get(s.client, imageURL).
		Header("Referer", s.params.base()+"/").
		Build(ctx)
}
