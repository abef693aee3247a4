package boylove

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/providers/generic"
	"github.com/brogergvhs/mangasrc/internal/util"
)

const (
	selCanonical   = "link[rel=canonical]"
	selTitle       = "div.title > h1"
	selCover       = "a.play"
	selAuthors     = "p.data:contains(作者) > a"
	selDescription = "span.detail-text"
	selTags        = "p.data:contains(标签) > a.tag span"
	selStatus      = "p.data:not(:has(*))"
	selPages       = "img.lazy"
	selTagOptions  = "li.tagBtnClass > a.cate-option"
	selBackLink    = "a.back"
	selActiveDay   = "ul.stui-list > li.active"

	homeScriptMarker = "let data = JSON.parse"
)

// details reads the manga page. The key is the last segment of the
// canonical URL.
func details(doc *goquery.Document) (providers.Manga, error) {
	link, err := generic.Require(doc.Selection, selCanonical)
	if err != nil {
		return providers.Manga{}, err
	}
	canonical, err := generic.RequireAttr(link, "abs:href", doc.Url)
	if err != nil {
		return providers.Manga{}, err
	}

	i := strings.LastIndexByte(canonical, '/')
	if i < 0 {
		return providers.Manga{}, providers.InvalidInput("canonical URL", canonical)
	}

	h1, err := generic.Require(doc.Selection, selTitle)
	if err != nil {
		return providers.Manga{}, err
	}
	title := strings.TrimSpace(h1.Text())
	if title == "" {
		return providers.Manga{}, providers.MissingField("title for " + canonical)
	}

	tags := generic.Texts(doc.Selection, selTags)

	m := providers.Manga{
		Key:           canonical[i+1:],
		Title:         title,
		Cover:         generic.Chain{{Selector: selCover, Attr: "abs:data-original"}}.String(doc.Selection, doc.Url),
		Authors:       generic.Texts(doc.Selection, selAuthors),
		Description:   description(doc.Selection),
		URL:           canonical,
		Tags:          tags,
		Status:        detailStatus(doc.Selection),
		ContentRating: rating(tags),
	}

	return m, nil
}

// description keeps the text before the first closing tag and turns <br>
// into markdown line breaks.
func description(root *goquery.Selection) string {
	sel := root.Find(selDescription).First()
	if sel.Length() == 0 {
		return ""
	}

	raw, err := sel.Html()
	if err != nil {
		return ""
	}
	if i := strings.Index(raw, "</"); i >= 0 {
		raw = raw[:i]
	}

	raw = strings.NewReplacer("<br/>", "\x00", "<br />", "\x00", "<br>", "\x00").Replace(raw)
	parts := strings.Split(raw, "\x00")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(html.UnescapeString(p))
	}

	return strings.TrimSpace(strings.Join(parts, "  \n"))
}

func detailStatus(root *goquery.Selection) providers.Status {
	switch strings.TrimSpace(root.Find(selStatus).First().Text()) {
	case "连载中", "連載中":
		return providers.StatusOngoing
	case "完结", "完結":
		return providers.StatusCompleted
	default:
		return providers.StatusUnknown
	}
}

// pages reads the signed chapter view. Every image must carry its source.
func pages(doc *goquery.Document) ([]providers.Page, error) {
	imgs, err := generic.RequireAll(doc.Selection, selPages)
	if err != nil {
		return nil, err
	}

	out := make([]providers.Page, 0, imgs.Length())
	for i := range imgs.Nodes {
		src, err := generic.RequireAttr(imgs.Eq(i), "abs:data-original", doc.Url)
		if err != nil {
			return nil, err
		}
		out = append(out, providers.Page{URL: src})
	}
	return out, nil
}

// homeLayout decodes the JSON literal embedded in the landing page.
func homeLayout(doc *goquery.Document, base string) (providers.HomeLayout, error) {
	script, ok := generic.ScriptContaining(doc.Selection, homeScriptMarker)
	if !ok {
		return providers.HomeLayout{}, providers.MissingField("script containing `" + homeScriptMarker + "`")
	}

	literal, ok := generic.Between(script, `JSON.parse("`, `");`)
	if !ok {
		return providers.HomeLayout{}, providers.MissingField(`JSON.parse("`)
	}

	// order matters: the literal is escaped twice
	payload := strings.ReplaceAll(literal, `\"`, `"`)
	payload = strings.ReplaceAll(payload, `\\`, `\`)
	payload = strings.ReplaceAll(payload, `\'`, `'`)

	var env homeEnvelope
	if err := util.JSON.UnmarshalFromString(payload, &env); err != nil {
		return providers.HomeLayout{}, err
	}

	return env.layout(base), nil
}

var placeholderTags = map[string]bool{"0": true, "待分類": true, "待分类": true}

func tagsFilter(doc *goquery.Document) (providers.FilterSpec, error) {
	opts, err := generic.RequireAll(doc.Selection, selTagOptions)
	if err != nil {
		return providers.FilterSpec{}, err
	}

	spec := providers.FilterSpec{ID: "標籤", Title: "標籤", Kind: "multi-select"}
	opts.Each(func(_ int, s *goquery.Selection) {
		v, ok := s.Attr("data-value")
		if !ok || placeholderTags[v] {
			return
		}
		spec.Options = append(spec.Options, v)
	})

	return spec, nil
}
