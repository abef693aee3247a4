// Package iken is the shared pipeline for sites running the Iken reader,
// a Next.js frontend backed by a JSON API that is either on the site host
// or on an "api." subdomain.
package iken

import "strings"

// Params is the per-site configuration. Everything else about a site is
// handled by the pipeline.
type Params struct {
	Key     string
	Name    string
	BaseURL string
	// APIURL defaults to BaseURL.
	APIURL string
	// UseSlugSeriesKeys makes the post endpoint take slugs instead of ids.
	UseSlugSeriesKeys bool
	// FetchFullChapterList loads chapters from their own endpoint when the
	// post endpoint omits fields such as isTimeLocked.
	FetchFullChapterList bool
}

// Site supplies Params to the pipeline.
type Site interface {
	SiteParams() Params
}

func (p Params) SiteParams() Params { return p }

func (p Params) api() string {
	if p.APIURL != "" {
		return strings.TrimRight(p.APIURL, "/")
	}
	return p.base()
}

func (p Params) base() string {
	return strings.TrimRight(p.BaseURL, "/")
}

// dedicatedAPI reports whether the API lives on its own subdomain. Those
// deployments need explicit tag and novel filters on queries.
func (p Params) dedicatedAPI() bool {
	return strings.HasPrefix(p.api(), "https://api.")
}
