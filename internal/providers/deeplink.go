package providers

// DeepLinkResult is one of MangaLink, ChapterLink or ListingLink.
type DeepLinkResult interface {
	LinkType() string
}

type MangaLink struct {
	Key string `json:"key"`
}

type ChapterLink struct {
	MangaKey string `json:"mangaKey"`
	Key      string `json:"key"`
}

type ListingLink struct {
	Listing Listing `json:"listing"`
}

func (MangaLink) LinkType() string   { return "manga" }
func (ChapterLink) LinkType() string { return "chapter" }
func (ListingLink) LinkType() string { return "listing" }
