package generic

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var reJSVar = regexp.MustCompile(`(?m)(?:var|let|const)\s+([A-Za-z0-9_]+)\s*=\s*["']?([\w\-\/\.]+)["']?;`)

// ScriptContaining returns the body of the first inline script whose text
// contains marker.
func ScriptContaining(doc *goquery.Selection, marker string) (string, bool) {
	var found string
	doc.Find("script:not([src])").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		body := s.Text()
		if strings.Contains(body, marker) {
			found = body
			return false
		}
		return true
	})
	return found, found != ""
}

// JSVars lists simple scalar assignments such as `const CHAPTER_ID = 42;`.
func JSVars(js string) map[string]string {
	out := map[string]string{}
	for _, m := range reJSVar.FindAllStringSubmatch(js, -1) {
		out[m[1]] = m[2]
	}
	return out
}

// Between returns the text between the first start marker and the next end
// marker after it.
func Between(s, start, end string) (string, bool) {
	i := strings.Index(s, start)
	if i < 0 {
		return "", false
	}
	rest := s[i+len(start):]
	j := strings.Index(rest, end)
	if j < 0 {
		return "", false
	}
	return rest[:j], true
}

// FindFirstFloat returns the first decimal number in s ("Chapter 12.5 - x"
// gives 12.5).
func FindFirstFloat(s string) *float64 {
	start := -1
	dot := false
	end := len(s)

scan:
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			if start < 0 {
				start = i
			}
		case c == '.' && start >= 0 && !dot:
			dot = true
		case start >= 0:
			end = i
			break scan
		}
	}
	if start < 0 {
		return nil
	}

	f, err := strconv.ParseFloat(strings.TrimSuffix(s[start:end], "."), 64)
	if err != nil {
		return nil
	}
	return &f
}
