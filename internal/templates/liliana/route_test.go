package liliana

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/route"
)

func TestSearchRoute(t *testing.T) {
	const base = "https://site.test"

	tests := []struct {
		name    string
		query   string
		page    int
		filters []providers.FilterValue
		want    string
	}{
		{
			name:  "keyword",
			query: "one piece",
			page:  2,
			want:  "https://site.test/search/2/?keyword=one%20piece",
		},
		{
			name: "no filters",
			page: 1,
			want: "https://site.test/filter/1/",
		},
		{
			name: "filters",
			page: 3,
			filters: []providers.FilterValue{
				providers.SortFilter{ID: "sort", Index: 6},
				providers.SelectFilter{ID: "status", Value: "completed"},
				providers.MultiSelectFilter{ID: "genres", Included: []string{"action", "drama"}, Excluded: []string{"horror"}},
			},
			want: "https://site.test/filter/3/?sort=score&status=completed&genres=action%2Cdrama&notGenres=horror",
		},
		{
			name:    "sort out of range",
			page:    1,
			filters: []providers.FilterValue{providers.SortFilter{ID: "sort", Index: 40}},
			want:    "https://site.test/filter/1/?sort=default",
		},
		{
			name: "genre redirects to search",
			page: 1,
			filters: []providers.FilterValue{
				providers.SelectFilter{ID: "status", Value: "ongoing"},
				providers.SelectFilter{ID: "genre", Value: "isekai"},
			},
			want: "https://site.test/search/1/?keyword=isekai",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := searchRoute(tt.query, tt.page, tt.filters)
			require.NoError(t, err)
			assert.Equal(t, tt.want, route.URL(base, r))
		})
	}
}

func TestSearchRouteRejectsUnknownFilter(t *testing.T) {
	_, err := searchRoute("", 1, []providers.FilterValue{providers.TextFilter{ID: "author", Value: "x"}})
	assert.ErrorIs(t, err, providers.ErrInvalidInput)
}

func TestRoutes(t *testing.T) {
	assert.Equal(t, "/ranking/4/", ListingRoute{ID: "ranking", Page: 4}.Path())
	assert.Equal(t, "/ajax/image/list/chap/991", PageListRoute{ChapterID: "991"}.Path())
	assert.Equal(t, "/manga/x/ch-1", PathRoute("/manga/x/ch-1").Path())
	assert.Equal(t, "/ajax/search", AjaxSearchRoute{}.Path())
}

func TestParamsHost(t *testing.T) {
	assert.Equal(t, "rawkuro.net", Params{BaseURL: "https://rawkuro.net/"}.host())
	assert.Equal(t, "127.0.0.1", Params{BaseURL: "http://127.0.0.1:8080"}.host())
}
