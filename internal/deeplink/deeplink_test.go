package deeplink

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brogergvhs/mangasrc/internal/providers"
)

func testResolver(fetches *int) Resolver {
	return NewResolver("https://site.test",
		Shape{Name: "manga", Match: Segments("book", "id", "{key}"), Resolve: Manga("key")},
		Shape{
			Name:  "chapter",
			Match: Segments("read", "{key}"),
			Resolve: func(_ context.Context, p *Path) (providers.DeepLinkResult, error) {
				*fetches++
				if p.Vars["key"] == "broken" {
					return nil, errors.New("fetch failed")
				}
				return providers.ChapterLink{MangaKey: "m1", Key: p.Vars["key"]}, nil
			},
		},
		Shape{
			Name:    "ranking",
			Match:   Segments("pages", "top|top.html"),
			Resolve: Listing(providers.Listing{ID: "top", Name: "Top"}),
		},
		Shape{
			Name:  "series",
			Match: Prefix("/series/"),
			Resolve: func(_ context.Context, p *Path) (providers.DeepLinkResult, error) {
				return providers.MangaLink{Key: p.Raw}, nil
			},
		},
	)
}

func TestResolveShapes(t *testing.T) {
	var fetches int
	r := testResolver(&fetches)
	ctx := context.Background()

	got, err := r.Resolve(ctx, "https://site.test/book/id/42")
	require.NoError(t, err)
	assert.Equal(t, providers.MangaLink{Key: "42"}, got)

	got, err = r.Resolve(ctx, "https://SITE.test/read/7")
	require.NoError(t, err)
	assert.Equal(t, providers.ChapterLink{MangaKey: "m1", Key: "7"}, got)
	assert.Equal(t, 1, fetches)

	got, err = r.Resolve(ctx, "https://site.test/pages/top.html")
	require.NoError(t, err)
	assert.Equal(t, providers.ListingLink{Listing: providers.Listing{ID: "top", Name: "Top"}}, got)

	got, err = r.Resolve(ctx, "https://site.test/series/true-education")
	require.NoError(t, err)
	assert.Equal(t, providers.MangaLink{Key: "/series/true-education"}, got)
}

func TestResolveMisses(t *testing.T) {
	var fetches int
	r := testResolver(&fetches)
	ctx := context.Background()

	for _, raw := range []string{
		"https://other.test/book/id/42",
		"https://site.test/book/id",
		"https://site.test/book/id/42/extra",
		"https://site.test/series/",
		"https://site.test/",
		"::not a url",
	} {
		got, err := r.Resolve(ctx, raw)
		require.NoError(t, err, raw)
		assert.Nil(t, got, raw)
	}
	assert.Zero(t, fetches)
}

func TestResolvePropagatesFetchErrors(t *testing.T) {
	var fetches int
	_, err := testResolver(&fetches).Resolve(context.Background(), "https://site.test/read/broken")
	require.Error(t, err)
}
