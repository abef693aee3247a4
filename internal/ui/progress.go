package ui

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/brogergvhs/mangasrc/internal/util"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type MPBProgressManager struct {
	p *mpb.Progress
}

// NewProgressManager draws to w, normally stderr so that stdout stays
// reserved for command output.
func NewProgressManager(w io.Writer) *MPBProgressManager {
	p := mpb.New(
		mpb.WithWidth(52),
		mpb.WithOutput(w),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	return &MPBProgressManager{p: p}
}

func (pm *MPBProgressManager) Close() {
	pm.p.Wait()
}

// Register adds a bar counting unit ("pages", "images").
func (pm *MPBProgressManager) Register(prefix, unit string) *ProgressHandle {
	h := &ProgressHandle{
		pm:     pm,
		prefix: prefix,
		unit:   unit,
	}
	h.initBar()
	return h
}

type ProgressHandle struct {
	pm     *MPBProgressManager
	prefix string
	unit   string
	bar    *mpb.Bar

	bytes atomic.Int64
	items atomic.Int64

	start   time.Time
	elapsed atomic.Int64

	final atomic.Bool
}

func (h *ProgressHandle) initBar() {
	h.start = time.Now()

	h.bar = h.pm.p.New(
		0,
		mpb.BarStyle().Rbound("]"),

		mpb.PrependDecorators(
			decor.Name(h.prefix+"  "),
		),

		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncWidth),
			decor.CountersNoUnit(" | %d/%d "+h.unit, decor.WCSyncWidth),
			decor.Any(func(_ decor.Statistics) string { return h.extra() }),

			decor.Any(func(_ decor.Statistics) string {
				if h.final.Load() {
					return fmt.Sprintf(" | %ds", h.elapsed.Load())
				}
				return fmt.Sprintf(" | %ds", int(time.Since(h.start).Seconds()))
			}),
		),
	)
}

func (h *ProgressHandle) extra() string {
	var b strings.Builder
	if n := h.items.Load(); n > 0 {
		fmt.Fprintf(&b, " | %d entries", n)
	}
	if n := h.bytes.Load(); n > 0 {
		b.WriteString(" | " + util.Human(n))
	}
	return b.String()
}

func (h *ProgressHandle) SetTotal(total int) {
	if h.final.Load() {
		return
	}

	h.bar.SetTotal(int64(total), false)
}

func (h *ProgressHandle) Update(done, total int, bytes int64) {
	if h.final.Load() {
		return
	}

	if total > 0 {
		h.bar.SetTotal(int64(total), false)
	}

	h.bytes.Store(bytes)
	h.bar.SetCurrent(int64(done))
}

// AddItems counts collected entries next to the unit counter.
func (h *ProgressHandle) AddItems(n int) {
	h.items.Add(int64(n))
}

// MarkDone completes the bar at whatever was reached; a crawl that ran out
// of pages early finishes below its requested total.
func (h *ProgressHandle) MarkDone() {
	if h.final.Swap(true) {
		return
	}

	h.elapsed.Store(int64(time.Since(h.start).Seconds()))
	h.bar.SetTotal(-1, true)
}
