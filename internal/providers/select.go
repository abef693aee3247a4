package providers

import (
	"strconv"
	"strings"
)

// Label renders a chapter's number the way users type it: "12", "12.5".
// Chapters without a number have an empty label.
func Label(c Chapter) string {
	if c.ChapterNumber == nil {
		return ""
	}
	return strconv.FormatFloat(*c.ChapterNumber, 'f', -1, 64)
}

// SelectChapters narrows a chapter list for display. chapter matches a label
// first and falls back to a 1-based position; rng and list are 1-based
// positions ("5-12", "1,3,5").
func SelectChapters(all []Chapter, chapter, rng, list string) []Chapter {
	if chapter != "" {
		byLabel := SelectByLabel(all, chapter)
		if len(byLabel) > 0 {
			return byLabel
		}

		if idx, err := strconv.Atoi(chapter); err == nil {
			if idx > 0 && idx <= len(all) {
				return []Chapter{all[idx-1]}
			}
		}

		return nil
	}

	if rng != "" {
		return SelectRange(all, rng)
	}
	if list != "" {
		return SelectList(all, list)
	}

	return all
}

func SelectByLabel(all []Chapter, label string) []Chapter {
	out := []Chapter{}
	for _, c := range all {
		if Label(c) == label {
			out = append(out, c)
		}
	}

	return out
}

func SelectRange(all []Chapter, rng string) []Chapter {
	parts := strings.Split(rng, "-")
	if len(parts) != 2 {
		return nil
	}

	start, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	end, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))

	if err1 != nil || err2 != nil {
		return nil
	}
	if start <= 0 || end <= 0 || start > end || end > len(all) {
		return nil
	}

	return all[start-1 : end]
}

func SelectList(all []Chapter, list string) []Chapter {
	var out []Chapter

	for p := range strings.SplitSeq(list, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		idx, err := strconv.Atoi(p)
		if err != nil || idx <= 0 || idx > len(all) {
			continue
		}

		out = append(out, all[idx-1])
	}

	return out
}
