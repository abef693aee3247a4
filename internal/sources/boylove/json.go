package boylove

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/brogergvhs/mangasrc/internal/chapters"
	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/util"
)

const (
	announcementTag = "香香公告"
	safeTag         = "清水"
	hiddenColumn    = 5
)

type mangaObj struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	LanmuID          *int    `json:"lanmu_id"`
	Image            *string `json:"image"`
	Auther           *string `json:"auther"`
	Desc             *string `json:"desc"`
	MHStatus         *int    `json:"mhstatus"`
	Keyword          *string `json:"keyword"`
	LastChapterTitle *string `json:"last_chapter_title"`
}

// manga converts the payload object. ok is false for hidden columns and
// site announcements.
func (o mangaObj) manga(base string) (providers.Manga, bool) {
	if o.LanmuID != nil && *o.LanmuID == hiddenColumn {
		return providers.Manga{}, false
	}

	var tags []string
	if o.Keyword != nil {
		for _, t := range strings.Split(*o.Keyword, ",") {
			if t == announcementTag {
				return providers.Manga{}, false
			}
			if t != "" {
				tags = append(tags, t)
			}
		}
	}

	key := strconv.FormatInt(o.ID, 10)
	m := providers.Manga{
		Key:           key,
		Title:         o.Title,
		URL:           strings.TrimRight(base, "/") + MangaRoute{Key: key}.Path(),
		Tags:          tags,
		Status:        status(o.MHStatus),
		ContentRating: rating(tags),
	}

	if o.Image != nil {
		m.Cover = *o.Image
		if strings.HasPrefix(m.Cover, "/") {
			m.Cover = strings.TrimRight(base, "/") + m.Cover
		}
	}
	if o.Auther != nil {
		m.Authors = splitAuthors(*o.Auther)
	}
	if o.Desc != nil {
		d := strings.ReplaceAll(strings.TrimSpace(*o.Desc), "\r\n", "\n")
		m.Description = strings.ReplaceAll(d, "\n", "  \n")
	}

	return m, true
}

func (o mangaObj) withChapter(base string) (providers.MangaWithChapter, bool) {
	m, ok := o.manga(base)
	if !ok {
		return providers.MangaWithChapter{}, false
	}

	var c providers.Chapter
	if o.LastChapterTitle != nil {
		p := chapters.ParseTitle(strings.TrimSpace(*o.LastChapterTitle))
		c.Title = p.Title
		c.ChapterNumber = p.Chapter
		c.VolumeNumber = p.Volume
	}

	return providers.MangaWithChapter{Manga: m, Chapter: c}, true
}

func status(code *int) providers.Status {
	if code == nil {
		return providers.StatusUnknown
	}
	switch *code {
	case 0:
		return providers.StatusOngoing
	case 1:
		return providers.StatusCompleted
	default:
		return providers.StatusUnknown
	}
}

func rating(tags []string) providers.ContentRating {
	for _, t := range tags {
		if t == safeTag {
			return providers.RatingSafe
		}
	}
	return providers.RatingNSFW
}

func splitAuthors(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '&' || r == '/'
	})

	var out []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func convertAll(objs []mangaObj, base string) []providers.Manga {
	out := []providers.Manga{}
	for _, o := range objs {
		if m, ok := o.manga(base); ok {
			out = append(out, m)
		}
	}
	return out
}

// pageEnvelope is shared by search, category browse and the paged
// listings.
type pageEnvelope struct {
	Result *struct {
		List     []mangaObj `json:"list"`
		LastPage bool       `json:"lastPage"`
	} `json:"result"`
}

func (e pageEnvelope) page(base string) (providers.MangaPageResult, error) {
	if e.Result == nil {
		return providers.MangaPageResult{}, providers.MissingField("result")
	}
	return providers.MangaPageResult{
		Entries:     convertAll(e.Result.List, base),
		HasNextPage: !e.Result.LastPage,
	}, nil
}

type dailyEnvelope struct {
	Result []mangaObj `json:"result"`
	PcPagi *struct {
		PageDump int `json:"page_dump"`
		PageEnd  int `json:"page_end"`
	} `json:"pcPagi"`
}

func (e dailyEnvelope) page(base string) (providers.MangaPageResult, error) {
	if e.PcPagi == nil {
		return providers.MangaPageResult{}, providers.MissingField("pcPagi")
	}
	return providers.MangaPageResult{
		Entries:     convertAll(e.Result, base),
		HasNextPage: e.PcPagi.PageDump < e.PcPagi.PageEnd,
	}, nil
}

// randomEnvelope never signals an end; the feed is reshuffled per call.
type randomEnvelope struct {
	Data []mangaObj `json:"data"`
}

func (e randomEnvelope) page(base string) providers.MangaPageResult {
	return providers.MangaPageResult{Entries: convertAll(e.Data, base), HasNextPage: true}
}

type chapterEnvelope struct {
	Result *struct {
		List []chapterObj `json:"list"`
	} `json:"result"`
}

type chapterObj struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	CreateTime timestamp `json:"create_time"`
}

// chapters returns the list newest first; the endpoint lists oldest first.
func (e chapterEnvelope) chapters(base string) ([]providers.Chapter, error) {
	if e.Result == nil {
		return nil, providers.MissingField("result")
	}

	n := len(e.Result.List)
	out := make([]providers.Chapter, n)
	for i, obj := range e.Result.List {
		key := strconv.FormatInt(obj.ID, 10)
		p := chapters.ParseTitle(strings.TrimSpace(obj.Title))
		out[n-1-i] = providers.Chapter{
			Key:           key,
			Title:         p.Title,
			ChapterNumber: p.Chapter,
			VolumeNumber:  p.Volume,
			DateUploaded:  obj.CreateTime.ptr(),
			URL:           strings.TrimRight(base, "/") + ChapterRoute{Key: key}.Path(),
		}
	}
	return out, nil
}

const createTimeLayout = "2006-01-02 15:04:05"

// timestamp accepts unix seconds or a "2006-01-02 15:04:05" string, read
// as UTC. Anything else decodes to unset.
type timestamp struct {
	unix int64
	set  bool
}

func (t *timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := util.JSON.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			t.unix, t.set = n, true
			return nil
		}
		if ts, err := time.ParseInLocation(createTimeLayout, s, time.UTC); err == nil {
			t.unix, t.set = ts.Unix(), true
		}
		return nil
	}

	if f, err := strconv.ParseFloat(string(data), 64); err == nil {
		t.unix, t.set = int64(f), true
	}
	return nil
}

func (t timestamp) ptr() *int64 {
	if !t.set {
		return nil
	}
	v := t.unix
	return &v
}

type homeEnvelope struct {
	Data []struct {
		Data  []mangaObj `json:"data"`
		Title string     `json:"title"`
		Name  string     `json:"name"`
	} `json:"data"`
}

const homePageSize = 2

func (e homeEnvelope) layout(base string) providers.HomeLayout {
	layout := providers.HomeLayout{Components: []providers.HomeComponent{}}

	for _, section := range e.Data {
		if section.Name == "article" {
			continue
		}

		entries := []providers.MangaWithChapter{}
		for _, o := range section.Data {
			if mc, ok := o.withChapter(base); ok {
				entries = append(entries, mc)
			}
		}

		size := homePageSize
		layout.Components = append(layout.Components, providers.HomeComponent{
			Title: section.Title,
			Value: providers.MangaChapterList{
				PageSize: &size,
				Entries:  entries,
				Listing:  homeSectionListing(section.Name),
			},
		})
	}

	return layout
}
