// Package route builds request URLs. Each site declares its endpoints as a
// closed set of Route values whose Path method is pure and order-stable.
package route

import (
	"strconv"
	"strings"
)

// Route is one endpoint of a site, fully parameterised. Path includes the
// query string, if any.
type Route interface {
	Path() string
}

// URL renders r against a site origin such as "https://example.org".
func URL(origin string, r Route) string {
	return strings.TrimRight(origin, "/") + r.Path()
}

// OffsetPage converts a 1-based page number into the 0-based offset some
// backends expect. Pages below 1 clamp to 0.
func OffsetPage(page int) int {
	return max(page-1, 0)
}

// Query is an ordered list of query parameters. Values pushed with Push are
// percent-encoded; PushEncoded appends the value untouched.
type Query struct {
	pairs []string
}

func (q *Query) Push(key, value string) {
	q.pairs = append(q.pairs, EncodeURIComponent(key)+"="+EncodeURIComponent(value))
}

func (q *Query) PushEncoded(key, value string) {
	q.pairs = append(q.pairs, key+"="+value)
}

func (q *Query) PushInt(key string, value int) {
	q.PushEncoded(key, strconv.Itoa(value))
}

func (q *Query) Len() int { return len(q.pairs) }

func (q *Query) String() string {
	return strings.Join(q.pairs, "&")
}

const upperhex = "0123456789ABCDEF"

// EncodeURIComponent escapes s the way the browser function of the same name
// does: everything outside A-Z a-z 0-9 and -_.!~*'() is percent-encoded
// as UTF-8.
func EncodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreservedComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}

	return b.String()
}

func unreservedComponent(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// Join appends path to base, keeping exactly one slash between them.
func Join(base, path string) string {
	if path == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
