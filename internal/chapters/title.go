// Package chapters extracts volume and chapter numbers from free-form
// chapter titles such as "第3卷 第12話 標題".
package chapters

import (
	"regexp"
	"strings"
	"sync"
)

// Parsed is the result of ParseTitle. Title is empty when nothing but
// numbering was present.
type Parsed struct {
	Volume  *float64
	Chapter *float64
	Title   string
}

var titlePattern = sync.OnceValue(func() *regexp.Regexp {
	return regexp.MustCompile(
		`^(?P<volume>第?(?P<volume_num>[\p{Nd}零一二三四五六七八九十百千]+(?:\.\p{Nd}+)?)[卷部季冊册] ?)?` +
			`(?P<chapter>第?(?P<chapter_num>[\p{Nd}零一二三四五六七八九十百千]+(?:\.\p{Nd}+)?)(?P<more_chapters>-\p{Nd}+(?:\.\p{Nd}+)?)?[话話回]?)?` +
			`(?:[ +]|$)`,
	)
})

// ParseTitle splits a trimmed chapter title into volume number, chapter
// number and the remaining title text.
//
// "全一卷"-style one-shot titles yield volume 1 (or chapter 1 for 話/话/回)
// and keep the whole string as the title. Ranged chapters ("第01-02話")
// report the first number and keep the range in the title. A title with no
// recognisable numbering is returned unchanged.
func ParseTitle(title string) Parsed {
	if p, ok := parseWholeWork(title); ok {
		return p
	}

	re := titlePattern()
	m := re.FindStringSubmatchIndex(title)
	if m == nil {
		return Parsed{Title: title}
	}

	group := func(name string) (string, bool) {
		i := re.SubexpIndex(name)
		if m[2*i] < 0 {
			return "", false
		}
		return title[m[2*i]:m[2*i+1]], true
	}

	var out Parsed
	if s, ok := group("volume_num"); ok {
		out.Volume = parseNumber(s)
	}
	if s, ok := group("chapter_num"); ok {
		out.Chapter = parseNumber(s)
	}

	rest := title
	if s, ok := group("volume"); ok {
		rest = strings.ReplaceAll(rest, s, "")
	}
	if _, ranged := group("more_chapters"); !ranged {
		if s, ok := group("chapter"); ok {
			rest = strings.ReplaceAll(rest, s, "")
		}
	}
	out.Title = strings.TrimSpace(rest)

	return out
}

func parseWholeWork(title string) (Parsed, bool) {
	r := []rune(title)
	if len(r) < 3 || r[0] != '全' || (r[1] != '一' && r[1] != '1') {
		return Parsed{}, false
	}

	one := 1.0
	switch r[2] {
	case '卷', '冊', '册':
		return Parsed{Volume: &one, Title: title}, true
	case '話', '话', '回':
		return Parsed{Chapter: &one, Title: title}, true
	}

	return Parsed{}, false
}
