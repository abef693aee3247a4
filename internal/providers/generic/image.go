package generic

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type collectedItem struct {
	URL   string
	Index int // -1 if none
	Order int // discovery order
}

// ImageList describes where page images live in a reader document.
type ImageList struct {
	// Item matches one page container.
	Item string `yaml:"item"`
	// Link optionally narrows to the element holding the URL inside Item.
	Link string `yaml:"link,omitempty"`
	// Attr is read from the link element, "abs:" prefixed to resolve.
	Attr string `yaml:"attr"`
}

// Collect returns the page URLs in reading order. When at least one item
// carries a numeric data-index, items without one are dropped and the rest
// are ordered by index; otherwise document order is kept.
func (l ImageList) Collect(root *goquery.Selection, base *url.URL) []string {
	var items []collectedItem
	indexed := false

	root.Find(l.Item).Each(func(i int, el *goquery.Selection) {
		link := el
		if l.Link != "" {
			link = el.Find(l.Link).First()
		}
		u, ok := Read(link, l.Attr, base)
		if !ok {
			return
		}

		idx := getIndexFor(el)
		if idx >= 0 {
			indexed = true
		}
		items = append(items, collectedItem{URL: u, Index: idx, Order: i})
	})

	if indexed {
		kept := items[:0]
		for _, it := range items {
			if it.Index >= 0 {
				kept = append(kept, it)
			}
		}
		items = kept
		sortCollected(items)
	}

	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].URL
	}
	return out
}

func getIndexFor(sel *goquery.Selection) int {
	if v, ok := sel.Attr("data-index"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}

	p := sel.ParentsFiltered("[data-index]").First()
	if p.Length() > 0 {
		if v, ok := p.Attr("data-index"); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n
			}
		}
	}

	return -1
}

func sortCollected(list []collectedItem) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Index != list[j].Index {
			return list[i].Index < list[j].Index
		}
		return list[i].Order < list[j].Order
	})
}
