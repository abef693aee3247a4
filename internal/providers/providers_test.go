package providers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	key  string
	link DeepLinkResult
	err  error
}

func (s stubSource) Key() string  { return s.key }
func (s stubSource) Name() string { return "Stub " + s.key }

func (stubSource) Search(context.Context, string, int, []FilterValue) (MangaPageResult, error) {
	return MangaPageResult{}, nil
}

func (stubSource) UpdateManga(_ context.Context, m Manga, _ UpdateOptions) (Manga, error) {
	return m, nil
}

func (stubSource) PageList(context.Context, Manga, Chapter) ([]Page, error) { return nil, nil }

type linkSource struct{ stubSource }

func (s linkSource) HandleDeepLink(context.Context, string) (DeepLinkResult, error) {
	return s.link, s.err
}

type homeSource struct{ linkSource }

func (homeSource) Home(context.Context) (HomeLayout, error) { return HomeLayout{}, nil }

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(stubSource{key: "en.b"}))
	require.NoError(t, r.Register(homeSource{linkSource{stubSource{key: "en.a"}}}))

	assert.EqualError(t, r.Register(stubSource{key: " EN.B "}), `source "en.b" already registered`)
	assert.EqualError(t, r.Register(stubSource{key: "  "}), "source key is required")
	assert.EqualError(t, r.Register(nil), "source is nil")

	src, ok := r.Get("En.A")
	require.True(t, ok)
	assert.Equal(t, "en.a", src.Key())

	assert.Equal(t, []Descriptor{
		{Key: "en.a", Name: "Stub en.a", Capabilities: []string{"home", "deeplinks"}},
		{Key: "en.b", Name: "Stub en.b"},
	}, r.List())
}

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(linkSource{stubSource{key: "b.second", link: MangaLink{Key: "/b"}}}))
	require.NoError(t, r.Register(linkSource{stubSource{key: "a.first"}}))
	require.NoError(t, r.Register(stubSource{key: "0.plain"}))

	res, err := r.Resolve(context.Background(), "https://b.test/x")
	require.NoError(t, err)
	assert.Equal(t, &ResolvedLink{Source: "b.second", Result: MangaLink{Key: "/b"}}, res)

	require.NoError(t, r.Register(linkSource{stubSource{key: "a.broken", err: MissingSelector("a")}}))
	_, err = r.Resolve(context.Background(), "https://b.test/x")
	assert.ErrorIs(t, err, ErrMissingElement)
	assert.ErrorContains(t, err, "a.broken: ")

	empty := NewRegistry()
	res, err = empty.Resolve(context.Background(), "https://b.test/x")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestErrors(t *testing.T) {
	err := fmt.Errorf("details: %w", MissingSelector("h1.title"))
	assert.ErrorIs(t, err, ErrMissingElement)
	assert.EqualError(t, err, "details: no element for selector found: `h1.title`")

	assert.ErrorIs(t, MissingAttr("href"), ErrMissingElement)
	assert.ErrorIs(t, InvalidInput("filter", "tag"), ErrInvalidInput)
	assert.EqualError(t, InvalidInput("filter", "tag"), "invalid filter: `tag`")

	up := &UpstreamError{Message: "Chapter is locked"}
	assert.ErrorIs(t, up, ErrUpstream)
	assert.EqualError(t, up, "Chapter is locked")
	assert.EqualError(t, &UpstreamError{}, "upstream reported failure")
	assert.False(t, errors.Is(up, ErrInvalidInput))
}

func TestEmitPartial(t *testing.T) {
	var got []Manga
	sink := func(m Manga) { got = append(got, m) }

	UpdateOptions{Details: true, Chapters: true, Partial: sink}.EmitPartial(Manga{Key: "a"})
	UpdateOptions{Details: true, Partial: sink}.EmitPartial(Manga{Key: "b"})
	UpdateOptions{Chapters: true, Partial: sink}.EmitPartial(Manga{Key: "c"})
	UpdateOptions{Details: true, Chapters: true}.EmitPartial(Manga{Key: "d"})

	assert.Equal(t, []Manga{{Key: "a"}}, got)
}

func TestSelectChapters(t *testing.T) {
	num := func(f float64) *float64 { return &f }
	all := []Chapter{
		{Key: "c1", ChapterNumber: num(1)},
		{Key: "c2", ChapterNumber: num(2)},
		{Key: "c2.5", ChapterNumber: num(2.5)},
		{Key: "c3", ChapterNumber: num(3)},
		{Key: "extra"},
	}
	keys := func(cs []Chapter) []string {
		out := []string{}
		for _, c := range cs {
			out = append(out, c.Key)
		}
		return out
	}

	assert.Equal(t, "2.5", Label(all[2]))
	assert.Equal(t, "", Label(all[4]))

	assert.Equal(t, []string{"c2.5"}, keys(SelectChapters(all, "2.5", "", "")))
	assert.Equal(t, []string{"c3"}, keys(SelectChapters(all, "3", "", "")))
	assert.Equal(t, []string{"extra"}, keys(SelectChapters(all, "5", "", "")), "falls back to position")
	assert.Empty(t, SelectChapters(all, "9", "", ""))
	assert.Equal(t, []string{"c2", "c2.5", "c3"}, keys(SelectChapters(all, "", "2-4", "")))
	assert.Empty(t, SelectChapters(all, "", "4-2", ""))
	assert.Equal(t, []string{"c1", "extra"}, keys(SelectChapters(all, "", "", "1, 5,9,x")))
	assert.Len(t, SelectChapters(all, "", "", ""), 5)
}

func TestFilterKind(t *testing.T) {
	assert.Equal(t, "multi-select", FilterKind(MultiSelectFilter{ID: "g"}))
	assert.Equal(t, "sort", FilterKind(SortFilter{}))
	assert.Equal(t, "g", MultiSelectFilter{ID: "g"}.FilterID())
}
