// Package deeplink maps site URLs to manga, chapter or listing references.
// A Resolver holds an ordered list of path shapes; the first shape that
// matches decides the result.
package deeplink

import (
	"context"
	"net/url"
	"strings"

	"github.com/brogergvhs/mangasrc/internal/providers"
)

// Path is the parsed URL handed to shapes.
type Path struct {
	URL      *url.URL
	Raw      string   // path without the host, always starting with "/"
	Segments []string // non-empty path segments
	Vars     map[string]string
}

// Shape recognises one kind of URL. Match reports whether the shape applies;
// Resolve turns it into a result and may perform one extra fetch. A nil
// result from Resolve means no match.
type Shape struct {
	Name    string
	Match   func(p *Path) bool
	Resolve func(ctx context.Context, p *Path) (providers.DeepLinkResult, error)
}

type Resolver struct {
	Host   string
	Shapes []Shape
}

// NewResolver builds a resolver bound to the host of base.
func NewResolver(base string, shapes ...Shape) Resolver {
	host := base
	if u, err := url.Parse(base); err == nil && u.Host != "" {
		host = u.Host
	}
	return Resolver{Host: strings.ToLower(host), Shapes: shapes}
}

// Resolve returns nil without error for foreign hosts, unparsable URLs and
// unknown paths.
func (r Resolver) Resolve(ctx context.Context, rawURL string) (providers.DeepLinkResult, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || !strings.EqualFold(u.Host, r.Host) {
		return nil, nil
	}

	p := &Path{URL: u, Raw: u.Path, Vars: map[string]string{}}
	if p.Raw == "" {
		p.Raw = "/"
	}
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			p.Segments = append(p.Segments, s)
		}
	}

	for _, shape := range r.Shapes {
		p.Vars = map[string]string{}
		if !shape.Match(p) {
			continue
		}
		return shape.Resolve(ctx, p)
	}

	return nil, nil
}

// Segments matches paths with exactly the given segments. A pattern element
// "{name}" captures into Vars; "a|b" accepts either literal.
func Segments(pattern ...string) func(p *Path) bool {
	return func(p *Path) bool {
		if len(p.Segments) != len(pattern) {
			return false
		}
		for i, want := range pattern {
			got := p.Segments[i]
			if strings.HasPrefix(want, "{") && strings.HasSuffix(want, "}") {
				p.Vars[want[1:len(want)-1]] = got
				continue
			}
			if !oneOf(got, strings.Split(want, "|")) {
				return false
			}
		}
		return true
	}
}

// Prefix matches any path below prefix, prefix itself excluded.
func Prefix(prefix string) func(p *Path) bool {
	return func(p *Path) bool {
		return strings.HasPrefix(p.Raw, prefix) && len(p.Raw) > len(prefix)
	}
}

func oneOf(s string, options []string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}

// Manga resolves to a manga whose key is the named var.
func Manga(v string) func(context.Context, *Path) (providers.DeepLinkResult, error) {
	return func(_ context.Context, p *Path) (providers.DeepLinkResult, error) {
		return providers.MangaLink{Key: p.Vars[v]}, nil
	}
}

// Listing resolves to a fixed listing.
func Listing(l providers.Listing) func(context.Context, *Path) (providers.DeepLinkResult, error) {
	return func(context.Context, *Path) (providers.DeepLinkResult, error) {
		return providers.ListingLink{Listing: l}, nil
	}
}
