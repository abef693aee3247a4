package util

import "strings"

var accentFolds = strings.NewReplacer(
	"á", "a", "à", "a", "ä", "a", "â", "a",
	"é", "e", "è", "e", "ë", "e", "ê", "e",
	"í", "i", "ì", "i", "ï", "i", "î", "i",
	"ó", "o", "ò", "o", "ö", "o", "ô", "o",
	"ú", "u", "ù", "u", "ü", "u", "û", "u",
	"ñ", "n",
	"ç", "c",
)

// Slugify turns a display title into the URL slug the site would use:
// lowercase ASCII letters, digits and apostrophes joined by single hyphens.
func Slugify(s string) string {
	s = accentFolds.Replace(strings.ToLower(s))

	var b strings.Builder
	prevHyphen := false

	for _, r := range s {
		switch {
		case r < 128 && (('a' <= r && r <= 'z') || ('0' <= r && r <= '9') || r == '\''):
			b.WriteRune(r)
			prevHyphen = false
		case r == '-' || r == ' ' || r == '\t' || r == '\n':
			if !prevHyphen && b.Len() > 0 {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
