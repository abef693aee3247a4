package generic

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/brogergvhs/mangasrc/internal/providers"
)

// Candidate is one step of a Chain. Attr selects what is read from the
// matched element:
//
//	""           trimmed text
//	"own"        text of direct text children only
//	"html"       inner HTML
//	"abs:<name>" attribute resolved against the document URL
//	"<name>"     raw attribute
type Candidate struct {
	Selector string `yaml:"selector"`
	Attr     string `yaml:"attr,omitempty"`
}

// Chain is an ordered list of candidates; the first non-empty value wins.
type Chain []Candidate

// First evaluates the chain under root. An empty Selector reads root itself.
func (c Chain) First(root *goquery.Selection, base *url.URL) (string, bool) {
	for _, cand := range c {
		sel := root
		if cand.Selector != "" {
			sel = root.Find(cand.Selector).First()
		}
		if sel.Length() == 0 {
			continue
		}
		if v, ok := Read(sel, cand.Attr, base); ok {
			return v, true
		}
	}
	return "", false
}

// String is First without the ok flag.
func (c Chain) String(root *goquery.Selection, base *url.URL) string {
	v, _ := c.First(root, base)
	return v
}

// Read extracts one value from the first element of sel.
func Read(sel *goquery.Selection, attr string, base *url.URL) (string, bool) {
	sel = sel.First()
	var v string

	switch {
	case attr == "":
		v = strings.TrimSpace(sel.Text())
	case attr == "own":
		v = OwnText(sel)
	case attr == "html":
		h, err := sel.Html()
		if err != nil {
			return "", false
		}
		v = h
	case strings.HasPrefix(attr, "abs:"):
		raw, ok := sel.Attr(strings.TrimPrefix(attr, "abs:"))
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			return "", false
		}
		v = Resolve(base, raw)
	default:
		raw, ok := sel.Attr(attr)
		if !ok {
			return "", false
		}
		v = strings.TrimSpace(raw)
	}

	return v, v != ""
}

// Resolve makes raw absolute against base. Already absolute values and
// values that fail to parse are returned unchanged.
func Resolve(base *url.URL, raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u == nil {
		return raw
	}

	if u.IsAbs() || base == nil {
		return u.String()
	}

	return base.ResolveReference(u).String()
}

// ImageChain prefers lazy-load attributes over src, resolving each.
var ImageChain = Chain{
	{Attr: "abs:data-lazy-src"},
	{Attr: "abs:data-src"},
	{Attr: "abs:src"},
}

// ImageOf is ImageChain applied to the first match of selector.
func ImageOf(selector string) Chain {
	out := make(Chain, len(ImageChain))
	for i, c := range ImageChain {
		c.Selector = selector
		out[i] = c
	}
	return out
}

// SelfOrFind returns sel when it matches selector itself, else its first
// matching descendant.
func SelfOrFind(sel *goquery.Selection, selector string) *goquery.Selection {
	if sel.Is(selector) {
		return sel.First()
	}
	return sel.Find(selector).First()
}

// Require returns the first match of selector or a missing-element error.
func Require(root *goquery.Selection, selector string) (*goquery.Selection, error) {
	sel := root.Find(selector)
	if sel.Length() == 0 {
		return nil, providers.MissingSelector(selector)
	}
	return sel.First(), nil
}

// RequireAll returns every match of selector or a missing-element error.
func RequireAll(root *goquery.Selection, selector string) (*goquery.Selection, error) {
	sel := root.Find(selector)
	if sel.Length() == 0 {
		return nil, providers.MissingSelector(selector)
	}
	return sel, nil
}

// RequireAttr reads attr (with the same "abs:" convention as Candidate) or
// fails with a missing-attribute error.
func RequireAttr(sel *goquery.Selection, attr string, base *url.URL) (string, error) {
	v, ok := Read(sel, attr, base)
	if !ok {
		return "", providers.MissingAttr(attr)
	}
	return v, nil
}

// Texts collects the trimmed, non-empty text of every match.
func Texts(root *goquery.Selection, selector string) []string {
	var out []string
	root.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			out = append(out, t)
		}
	})
	return out
}

// OwnText joins the direct text-node children of the first element.
func OwnText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}

	var b strings.Builder
	for n := sel.Get(0).FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
	}
	return strings.TrimSpace(b.String())
}

var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "blockquote": true, "pre": true, "tr": true,
}

// TextWithNewlines renders the text of sel keeping line structure: <br>
// and block elements end a line.
func TextWithNewlines(sel *goquery.Selection) string {
	var b strings.Builder

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			if n.Data == "br" {
				b.WriteByte('\n')
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			b.WriteByte('\n')
		}
	}

	for _, n := range sel.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	lines := strings.Split(b.String(), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.TrimSpace(collapseBlankLines(lines))
}

func collapseBlankLines(lines []string) string {
	out := make([]string, 0, len(lines))
	blank := false
	for _, l := range lines {
		if l == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, l)
		blank = false
	}
	return strings.Join(out, "\n")
}

// StripBase removes base from the front of href, leaving relative hrefs
// untouched.
func StripBase(href, base string) string {
	return strings.TrimPrefix(strings.TrimSpace(href), strings.TrimRight(base, "/"))
}
