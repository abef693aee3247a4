// Package boylove adapts boylove.cc, a Chinese BL comics site with a JSON
// browse API, HTML detail pages and a signed image endpoint on a separate
// host.
package boylove

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/brogergvhs/mangasrc/internal/deeplink"
	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/providers/generic"
	"github.com/brogergvhs/mangasrc/internal/route"
	"github.com/brogergvhs/mangasrc/internal/util"
)

const (
	Key  = "zh.boylove"
	Name = "香香腐宅"

	DefaultBaseURL = "https://boylove.cc"
	DefaultAPIURL  = "https://xxblapingpong.cc"

	siteUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.5 Safari/605.1.15"
	apiUserAgent = "Mozilla/5.0 (iPad; CPU OS 18_2 like Mac OS X) " +
		"AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148"

	loginKey    = "login"
	loginCookie = "rfv"
)

type Params struct {
	BaseURL string
	APIURL  string
	// Now stamps signed requests. Defaults to time.Now.
	Now func() time.Time
}

type Source struct {
	client   *http.Client
	params   Params
	log      providers.Logger
	resolver deeplink.Resolver
}

func New(client *http.Client, params Params, log providers.Logger) *Source {
	if params.BaseURL == "" {
		params.BaseURL = DefaultBaseURL
	}
	if params.APIURL == "" {
		params.APIURL = DefaultAPIURL
	}
	params.BaseURL = strings.TrimRight(params.BaseURL, "/")
	params.APIURL = strings.TrimRight(params.APIURL, "/")
	if params.Now == nil {
		params.Now = time.Now
	}
	if log == nil {
		log = providers.NopLogger
	}

	s := &Source{client: client, params: params, log: log}
	s.resolver = s.deepLinks()
	return s
}

func (s *Source) Key() string  { return Key }
func (s *Source) Name() string { return Name }

func (s *Source) site(r route.Route) *util.Request {
	return util.Get(s.client, route.URL(s.params.BaseURL, r)).
		Header("User-Agent", siteUserAgent).
		Header("Referer", s.params.BaseURL+"/")
}

func (s *Source) api(r route.Route) *util.Request {
	sig := sign(s.params.Now())
	return util.Get(s.client, route.URL(s.params.APIURL, r)).
		Header("User-Agent", apiUserAgent).
		Header("Referer", s.params.BaseURL+"/").
		Header("Tokenparam", sig.Param).
		Header("Token", sig.Token)
}

func (s *Source) Search(ctx context.Context, query string, page int, filters []providers.FilterValue) (providers.MangaPageResult, error) {
	r, err := searchRoute(query, page, filters)
	if err != nil {
		return providers.MangaPageResult{}, err
	}
	s.log.Debugf("boylove: search %s", r.Path())

	var env pageEnvelope
	if err := s.site(r).DecodeJSON(ctx, &env); err != nil {
		return providers.MangaPageResult{}, err
	}
	return env.page(s.params.BaseURL)
}

// UpdateManga refreshes details from the manga page and chapters from the
// chapter list endpoint. Existing chapters survive a details-only update.
func (s *Source) UpdateManga(ctx context.Context, manga providers.Manga, opts providers.UpdateOptions) (providers.Manga, error) {
	if opts.Details {
		doc, err := s.site(MangaRoute{Key: manga.Key}).HTML(ctx)
		if err != nil {
			return manga, err
		}
		updated, err := details(doc)
		if err != nil {
			return manga, err
		}
		updated.Chapters = manga.Chapters
		manga = updated

		if !opts.Chapters {
			return manga, nil
		}
		opts.EmitPartial(manga)
	}

	if opts.Chapters {
		var env chapterEnvelope
		if err := s.site(ChapterListRoute{Key: manga.Key}).DecodeJSON(ctx, &env); err != nil {
			return manga, err
		}
		list, err := env.chapters(s.params.BaseURL)
		if err != nil {
			return manga, err
		}
		manga.Chapters = list
	}

	return manga, nil
}

func (s *Source) PageList(ctx context.Context, _ providers.Manga, chapter providers.Chapter) ([]providers.Page, error) {
	doc, err := s.api(ChapterViewRoute{Key: chapter.Key}).HTML(ctx)
	if err != nil {
		return nil, err
	}
	return pages(doc)
}

func (s *Source) Home(ctx context.Context) (providers.HomeLayout, error) {
	doc, err := s.site(HomeRoute{}).HTML(ctx)
	if err != nil {
		return providers.HomeLayout{}, err
	}
	return homeLayout(doc, s.params.BaseURL)
}

func (s *Source) Listings() []providers.Listing { return allListings() }

// MangaList accepts a listing by id or by name.
func (s *Source) MangaList(ctx context.Context, listing providers.Listing, page int) (providers.MangaPageResult, error) {
	l, ok := lookupListing(listing.ID)
	if !ok {
		l, ok = lookupListing(listing.Name)
	}
	if !ok {
		return providers.MangaPageResult{}, providers.InvalidInput("listing ID", listing.ID)
	}

	req := s.site(l.route(page))
	base := s.params.BaseURL

	switch l.kind {
	case listingDaily:
		var env dailyEnvelope
		if err := req.DecodeJSON(ctx, &env); err != nil {
			return providers.MangaPageResult{}, err
		}
		return env.page(base)
	case listingPage:
		var env pageEnvelope
		if err := req.DecodeJSON(ctx, &env); err != nil {
			return providers.MangaPageResult{}, err
		}
		return env.page(base)
	default:
		var env randomEnvelope
		if err := req.DecodeJSON(ctx, &env); err != nil {
			return providers.MangaPageResult{}, err
		}
		return env.page(base), nil
	}
}

func (s *Source) HandleDeepLink(ctx context.Context, rawURL string) (providers.DeepLinkResult, error) {
	return s.resolver.Resolve(ctx, rawURL)
}

func (s *Source) deepLinks() deeplink.Resolver {
	listing := func(id string) providers.Listing {
		l, _ := listingRef(id)
		return l
	}

	return deeplink.NewResolver(s.params.BaseURL,
		deeplink.Shape{
			Name:    "manga",
			Match:   deeplink.Segments("home", "book", "index", "id", "{key}"),
			Resolve: deeplink.Manga("key"),
		},
		deeplink.Shape{
			Name:    "chapter",
			Match:   deeplink.Segments("home", "book", "capter", "id", "{key}"),
			Resolve: s.resolveChapter,
		},
		deeplink.Shape{
			Name:    "daily update",
			Match:   deeplink.Segments("home", "index", "dailyupdate1"),
			Resolve: s.resolveActiveDay,
		},
		deeplink.Shape{
			Name:  "weekday",
			Match: deeplink.Segments("home", "index", "dailyupdate1", "weekday", "{day}"),
			Resolve: func(_ context.Context, p *deeplink.Path) (providers.DeepLinkResult, error) {
				l, ok := lookupListing(p.Vars["day"])
				if !ok || l.kind != listingDaily || l.ID != p.Vars["day"] {
					return nil, nil
				}
				return providers.ListingLink{Listing: l.Listing}, nil
			},
		},
		deeplink.Shape{
			Name:    "uncensored",
			Match:   deeplink.Segments("home", "index", "pages", "w", "recommend|recommend.html"),
			Resolve: deeplink.Listing(listing("recommend")),
		},
		deeplink.Shape{
			Name:    "ranking",
			Match:   deeplink.Segments("home", "index", "pages", "w", "topestmh|topestmh.html"),
			Resolve: deeplink.Listing(listing("topestmh")),
		},
	)
}

// resolveChapter reads the manga key from the chapter page's back link.
func (s *Source) resolveChapter(ctx context.Context, p *deeplink.Path) (providers.DeepLinkResult, error) {
	key := p.Vars["key"]

	doc, err := s.site(ChapterRoute{Key: key}).HTML(ctx)
	if err != nil {
		return nil, err
	}
	back, err := generic.Require(doc.Selection, selBackLink)
	if err != nil {
		return nil, err
	}
	href, err := generic.RequireAttr(back, "href", doc.Url)
	if err != nil {
		return nil, err
	}

	i := strings.LastIndexByte(href, '/')
	if i < 0 {
		return nil, providers.InvalidInput("back link", href)
	}

	return providers.ChapterLink{MangaKey: href[i+1:], Key: key}, nil
}

// resolveActiveDay maps the bare daily update page to whichever weekday
// tab the site currently highlights.
func (s *Source) resolveActiveDay(ctx context.Context, _ *deeplink.Path) (providers.DeepLinkResult, error) {
	doc, err := s.site(DailyUpdatePageRoute{}).HTML(ctx)
	if err != nil {
		return nil, err
	}
	active, err := generic.Require(doc.Selection, selActiveDay)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(active.Text())
	if name == "" {
		return nil, providers.MissingField("text of `" + selActiveDay + "`")
	}

	l, ok := listingRef(name)
	if !ok {
		s.log.Debugf("boylove: unknown daily tab %q", name)
		return nil, nil
	}
	return providers.ListingLink{Listing: l}, nil
}

// DynamicFilters scrapes the tag list from the category page.
func (s *Source) DynamicFilters(ctx context.Context) ([]providers.FilterSpec, error) {
	doc, err := s.site(FiltersPageRoute{}).HTML(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := tagsFilter(doc)
	if err != nil {
		return nil, err
	}
	return []providers.FilterSpec{tags}, nil
}

// ChangeCharset switches the site between traditional and simplified
// Chinese. The choice is kept in a cookie on the client's jar.
func (s *Source) ChangeCharset(ctx context.Context, traditional bool) error {
	resp, err := s.site(ChangeCharsetRoute{Traditional: traditional}).Send(ctx)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (s *Source) HandleWebLogin(key string, cookies map[string]string) (bool, error) {
	if key != loginKey {
		return false, providers.InvalidInput("login key", key)
	}
	_, ok := cookies[loginCookie]
	return ok, nil
}

func (s *Source) ImageRequest(ctx context.Context, imageURL string, _ map[string]string) (*http.Request, error) {
	return util.Get(s.client, imageURL).
		Header("Referer", s.params.BaseURL+"/").
		Build(ctx)
}
