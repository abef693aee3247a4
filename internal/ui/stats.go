package ui

import (
	"fmt"
	"sync/atomic"

	"github.com/brogergvhs/mangasrc/internal/util"
)

// Stats accumulates counters across a crawl or an export. Requests is fed
// by the HTTP client.
type Stats struct {
	Pages    atomic.Int64
	Entries  atomic.Int64
	Requests atomic.Int64
	Images   atomic.Int64
	Bytes    atomic.Int64
}

func (s *Stats) String() string {
	out := fmt.Sprintf("%d requests, %d pages, %d entries", s.Requests.Load(), s.Pages.Load(), s.Entries.Load())
	if n := s.Images.Load(); n > 0 {
		out += fmt.Sprintf(", %d images (%s)", n, util.Human(s.Bytes.Load()))
	}
	return out
}
