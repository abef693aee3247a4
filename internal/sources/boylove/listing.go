package boylove

import (
	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/route"
)

type listingKind int

const (
	listingDaily listingKind = iota
	listingPage
	listingRandom
)

type listingEntry struct {
	providers.Listing
	kind listingKind
}

// listings is the bijective id/name table. Daily ids are the site's
// weekday index, page ids are the path segment of the listing endpoint.
var listings = []listingEntry{
	{providers.Listing{ID: "11", Name: "最新"}, listingDaily},
	{providers.Listing{ID: "6", Name: "週日"}, listingDaily},
	{providers.Listing{ID: "0", Name: "週一"}, listingDaily},
	{providers.Listing{ID: "1", Name: "週二"}, listingDaily},
	{providers.Listing{ID: "2", Name: "週三"}, listingDaily},
	{providers.Listing{ID: "3", Name: "週四"}, listingDaily},
	{providers.Listing{ID: "4", Name: "週五"}, listingDaily},
	{providers.Listing{ID: "5", Name: "週六"}, listingDaily},
	{providers.Listing{ID: "recommend", Name: "無碼專區"}, listingPage},
	{providers.Listing{ID: "topestmh", Name: "排行榜"}, listingPage},
	{providers.Listing{ID: "cnxh", Name: "猜你喜歡"}, listingRandom},
}

// lookupListing accepts either side of the table.
func lookupListing(idOrName string) (listingEntry, bool) {
	for _, l := range listings {
		if l.ID == idOrName || l.Name == idOrName {
			return l, true
		}
	}
	return listingEntry{}, false
}

// listingRef resolves idOrName to the canonical listing.
func listingRef(idOrName string) (providers.Listing, bool) {
	l, ok := lookupListing(idOrName)
	return l.Listing, ok
}

func allListings() []providers.Listing {
	out := make([]providers.Listing, len(listings))
	for i, l := range listings {
		out[i] = l.Listing
	}
	return out
}

// homeSectionListing maps the section names of the home payload.
func homeSectionListing(name string) *providers.Listing {
	var id string
	switch name {
	case "newest":
		id = "11"
	case "recommend", "topestmh", "cnxh":
		id = name
	default:
		return nil
	}
	l, _ := listingRef(id)
	return &l
}

func (l listingEntry) route(page int) route.Route {
	switch l.kind {
	case listingDaily:
		return DailyUpdateRoute{Weekday: l.ID, Page: page}
	case listingPage:
		return ListingRoute{Listing: l.ID, Page: page}
	default:
		return RandomRoute{}
	}
}
