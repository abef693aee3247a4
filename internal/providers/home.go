package providers

type HomeLayout struct {
	Components []HomeComponent `json:"components"`
}

type HomeComponent struct {
	Title    string             `json:"title,omitempty"`
	Subtitle string             `json:"subtitle,omitempty"`
	Value    HomeComponentValue `json:"value"`
}

// HomeComponentValue is one of BigScroller, Scroller, MangaList or
// MangaChapterList.
type HomeComponentValue interface {
	ComponentType() string
}

type BigScroller struct {
	Entries []Manga `json:"entries"`
	// AutoScrollInterval is in seconds; nil disables auto scrolling.
	AutoScrollInterval *float64 `json:"autoScrollInterval,omitempty"`
}

type Scroller struct {
	Entries []Manga  `json:"entries"`
	Listing *Listing `json:"listing,omitempty"`
}

type MangaList struct {
	Ranking  bool     `json:"ranking"`
	PageSize *int     `json:"pageSize,omitempty"`
	Entries  []Manga  `json:"entries"`
	Listing  *Listing `json:"listing,omitempty"`
}

type MangaChapterList struct {
	PageSize *int               `json:"pageSize,omitempty"`
	Entries  []MangaWithChapter `json:"entries"`
	Listing  *Listing           `json:"listing,omitempty"`
}

func (BigScroller) ComponentType() string      { return "bigScroller" }
func (Scroller) ComponentType() string         { return "scroller" }
func (MangaList) ComponentType() string        { return "mangaList" }
func (MangaChapterList) ComponentType() string { return "mangaChapterList" }
