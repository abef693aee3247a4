package providers

import (
	"context"
	"net/http"
)

type Status int

const (
	StatusUnknown Status = iota
	StatusOngoing
	StatusCompleted
	StatusCancelled
	StatusHiatus
)

func (s Status) String() string {
	switch s {
	case StatusOngoing:
		return "ongoing"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	case StatusHiatus:
		return "hiatus"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

type ContentRating int

const (
	RatingUnknown ContentRating = iota
	RatingSafe
	RatingSuggestive
	RatingNSFW
)

func (r ContentRating) String() string {
	switch r {
	case RatingSafe:
		return "safe"
	case RatingSuggestive:
		return "suggestive"
	case RatingNSFW:
		return "nsfw"
	default:
		return "unknown"
	}
}

func (r ContentRating) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

type Viewer int

const (
	ViewerUnknown Viewer = iota
	ViewerLeftToRight
	ViewerRightToLeft
	ViewerVertical
	ViewerWebtoon
)

func (v Viewer) String() string {
	switch v {
	case ViewerLeftToRight:
		return "ltr"
	case ViewerRightToLeft:
		return "rtl"
	case ViewerVertical:
		return "vertical"
	case ViewerWebtoon:
		return "webtoon"
	default:
		return "unknown"
	}
}

func (v Viewer) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// Manga is a series entry. Chapters is nil until chapters have been loaded.
type Manga struct {
	Key           string        `json:"key"`
	Title         string        `json:"title"`
	Cover         string        `json:"cover,omitempty"`
	Artists       []string      `json:"artists,omitempty"`
	Authors       []string      `json:"authors,omitempty"`
	Description   string        `json:"description,omitempty"`
	URL           string        `json:"url,omitempty"`
	Tags          []string      `json:"tags,omitempty"`
	Status        Status        `json:"status"`
	ContentRating ContentRating `json:"contentRating"`
	Viewer        Viewer        `json:"viewer"`
	Chapters      []Chapter     `json:"chapters,omitempty"`
}

// Chapter numbers are nil when the source does not expose them. An empty
// Title means the chapter has no title beyond its numbering.
type Chapter struct {
	Key           string   `json:"key"`
	Title         string   `json:"title,omitempty"`
	ChapterNumber *float64 `json:"chapterNumber,omitempty"`
	VolumeNumber  *float64 `json:"volumeNumber,omitempty"`
	DateUploaded  *int64   `json:"dateUploaded,omitempty"`
	Scanlators    []string `json:"scanlators,omitempty"`
	URL           string   `json:"url,omitempty"`
	Locked        bool     `json:"locked,omitempty"`
}

// Page holds either an image URL or inline text.
type Page struct {
	URL     string            `json:"url,omitempty"`
	Text    string            `json:"text,omitempty"`
	Context map[string]string `json:"context,omitempty"`
}

type Listing struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MangaPageResult struct {
	Entries     []Manga `json:"entries"`
	HasNextPage bool    `json:"hasNextPage"`
}

type MangaWithChapter struct {
	Manga   Manga   `json:"manga"`
	Chapter Chapter `json:"chapter"`
}

// UpdateOptions controls which parts of a Manga an update refreshes.
// Partial, when set, receives the details-only entity before the chapter
// fetch starts. It is called at most once and only when both Details and
// Chapters are requested.
type UpdateOptions struct {
	Details  bool
	Chapters bool
	Partial  func(Manga)
}

// EmitPartial forwards m to the partial sink when the options call for it.
func (o UpdateOptions) EmitPartial(m Manga) {
	if o.Partial != nil && o.Details && o.Chapters {
		o.Partial(m)
	}
}

type Source interface {
	Key() string
	Name() string
	Search(ctx context.Context, query string, page int, filters []FilterValue) (MangaPageResult, error)
	UpdateManga(ctx context.Context, manga Manga, opts UpdateOptions) (Manga, error)
	PageList(ctx context.Context, manga Manga, chapter Chapter) ([]Page, error)
}

type HomeProvider interface {
	Home(ctx context.Context) (HomeLayout, error)
}

type ListingProvider interface {
	Listings() []Listing
	MangaList(ctx context.Context, listing Listing, page int) (MangaPageResult, error)
}

// DeepLinkHandler returns a nil result, not an error, for URLs it does not
// recognise.
type DeepLinkHandler interface {
	HandleDeepLink(ctx context.Context, rawURL string) (DeepLinkResult, error)
}

// DynamicFilterProvider loads filter options from the site, such as a tag
// list that changes over time.
type DynamicFilterProvider interface {
	DynamicFilters(ctx context.Context) ([]FilterSpec, error)
}

// ImageRequester builds the request for one page image, adding whatever
// headers the site checks.
type ImageRequester interface {
	ImageRequest(ctx context.Context, imageURL string, pageContext map[string]string) (*http.Request, error)
}

type Logger interface {
	Debugf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}

// NopLogger discards everything.
var NopLogger Logger = nopLogger{}
