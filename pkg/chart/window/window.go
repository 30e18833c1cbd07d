// Package window decides how much of the infinite time/row space to
// materialize around the visible viewport. The horizontal canvas is three
// times the visible span and the vertical canvas three times the container
// height; both are recentered lazily, only when the visible region drifts
// near a window edge, so panning does not relayout on every frame.
package window

import (
	"math"
	"sort"

	"tableflip.dev/timeline/pkg/chart"
	"tableflip.dev/timeline/pkg/chart/interaction"
	"tableflip.dev/timeline/pkg/chart/stack"
)

// The canvas holds one visible span of buffer on each side.
const canvasBuffer = 3

// ShowPeriod requests narrower than one hour are ignored, guarding against
// runaway zoom commands.
const minShowPeriodSpan = int64(60 * 60 * 1000)

// State is the cached window plus the layout computed over it. It is owned
// by a single orchestrator between frames; every function here returns a
// new value rather than mutating in place.
type State struct {
	VisibleTimeStart int64
	VisibleTimeEnd   int64
	CanvasTimeStart  int64
	CanvasTimeEnd    int64

	CanvasTop    float64
	CanvasBottom float64

	// Width is the visible width in pixels; the canvas is three times it.
	Width float64

	Layout stack.Layout
}

// CanvasWidth returns the materialized canvas width for a visible width.
func CanvasWidth(width float64) float64 {
	return width * canvasBuffer
}

// CanvasBoundaries derives canvas time bounds from a visible range: one
// visible span of buffer before and after, so the visible range sits in the
// middle third.
func CanvasBoundaries(visibleTimeStart, visibleTimeEnd int64) (int64, int64) {
	zoom := visibleTimeEnd - visibleTimeStart
	return visibleTimeStart - zoom, visibleTimeEnd + zoom
}

// New builds the initial window for a visible range and lays out the items.
func New(visibleTimeStart, visibleTimeEnd int64, width float64, items []chart.Item, groups []chart.Group, cfg chart.Config) State {
	canvasStart, canvasEnd := CanvasBoundaries(visibleTimeStart, visibleTimeEnd)
	s := State{
		VisibleTimeStart: visibleTimeStart,
		VisibleTimeEnd:   visibleTimeEnd,
		CanvasTimeStart:  canvasStart,
		CanvasTimeEnd:    canvasEnd,
		Width:            width,
	}
	s.Layout = stack.Compute(items, groups, CanvasWidth(width), canvasStart, canvasEnd, cfg, interaction.Gesture{})
	return s
}

// canKeepCanvas reports whether the existing canvas still comfortably
// covers the new visible range: the zoom is unchanged and the range has not
// drifted out of the middle of the window.
func canKeepCanvas(visibleTimeStart, visibleTimeEnd, oldCanvasTimeStart, oldZoom int64) bool {
	newZoom := visibleTimeEnd - visibleTimeStart
	return newZoom == oldZoom &&
		visibleTimeStart >= oldCanvasTimeStart+oldZoom/2 &&
		visibleTimeStart <= oldCanvasTimeStart+oldZoom*3/2 &&
		visibleTimeEnd >= oldCanvasTimeStart+oldZoom*3/2 &&
		visibleTimeEnd <= oldCanvasTimeStart+oldZoom*5/2
}

// Recompute moves the window to a new visible range. The visible bounds
// always update; the canvas bounds and the layout are recomputed only when
// the window cannot be kept or force is set (item/group identity changed).
// The gesture, when active, previews a drag or resize in the new layout.
func Recompute(
	visibleTimeStart, visibleTimeEnd int64,
	force bool,
	items []chart.Item,
	groups []chart.Group,
	cfg chart.Config,
	prev State,
	gesture interaction.Gesture,
) State {
	next := prev
	next.VisibleTimeStart = visibleTimeStart
	next.VisibleTimeEnd = visibleTimeEnd

	oldZoom := prev.VisibleTimeEnd - prev.VisibleTimeStart
	if canKeepCanvas(visibleTimeStart, visibleTimeEnd, prev.CanvasTimeStart, oldZoom) && !force {
		return next
	}

	canvasStart, canvasEnd := CanvasBoundaries(visibleTimeStart, visibleTimeEnd)
	next.CanvasTimeStart = canvasStart
	next.CanvasTimeEnd = canvasEnd
	next.Layout = stack.Compute(items, groups, CanvasWidth(next.Width), canvasStart, canvasEnd, cfg, gesture)
	return next
}

// Zoom computes the visible range after scaling the current span around an
// anchor. offset is the anchor's fraction across the visible width (0.5 is
// the center); the time under the anchor stays fixed. The span is clamped
// to the configured zoom bounds. Feed the result back through Recompute.
func (s State) Zoom(scale, offset float64, cfg chart.Config) (int64, int64) {
	minZoom := cfg.MinZoom
	if minZoom <= 0 {
		minZoom = chart.MinZoom
	}
	maxZoom := cfg.MaxZoom
	if maxZoom <= 0 {
		maxZoom = chart.MaxZoom
	}

	oldZoom := s.VisibleTimeEnd - s.VisibleTimeStart
	newZoom := int64(math.Round(float64(oldZoom) * scale))
	if newZoom < minZoom {
		newZoom = minZoom
	}
	if newZoom > maxZoom {
		newZoom = maxZoom
	}

	newStart := s.VisibleTimeStart + int64(math.Round(float64(oldZoom-newZoom)*offset))
	return newStart, newStart + newZoom
}

// WheelZoom translates a wheel delta at a pixel position into a Zoom call,
// the way pointer gestures feed the controller.
func (s State) WheelZoom(speed, xPosition, deltaY float64, cfg chart.Config) (int64, int64) {
	return s.Zoom(1.0+(speed*deltaY)/500, xPosition/s.Width, cfg)
}

// ShowPeriod validates an absolute visible-range request. Ranges narrower
// than one hour report ok=false and should be ignored by the caller.
func ShowPeriod(from, to int64) (visibleTimeStart, visibleTimeEnd int64, ok bool) {
	if to-from < minShowPeriodSpan {
		return 0, 0, false
	}
	return from, to, true
}

// VerticalCanvas returns a vertical window with one container height of
// buffer above and below the visible region.
func VerticalCanvas(visibleTop, visibleHeight float64) (top, bottom float64) {
	return visibleTop - visibleHeight, visibleTop + 2*visibleHeight
}

// NeedNewVerticalCanvas reports whether the visible region has drifted
// within half a container height of a vertical canvas edge.
func NeedNewVerticalCanvas(visibleTop, visibleHeight, canvasTop, canvasBottom float64) bool {
	threshold := visibleHeight * 0.5
	visibleBottom := visibleTop + visibleHeight
	return visibleTop-canvasTop < threshold || canvasBottom-visibleBottom < threshold
}

// ScrollVertical updates the vertical canvas for a new scroll position,
// recentering only when needed. It reports whether the canvas moved.
func (s State) ScrollVertical(visibleTop, visibleHeight float64) (State, bool) {
	if !NeedNewVerticalCanvas(visibleTop, visibleHeight, s.CanvasTop, s.CanvasBottom) {
		return s, false
	}
	next := s
	next.CanvasTop, next.CanvasBottom = VerticalCanvas(visibleTop, visibleHeight)
	return next, true
}

// VisibleGroups returns the ids of the rows that may intersect the vertical
// canvas. The set deliberately overshoots (row heights can exceed the line
// height when stacked) but never undershoots, so it is safe to drive lazy
// item loading — and only that; exact membership comes from the layout.
func VisibleGroups(groups []chart.Group, groupTops []float64, lineHeight, canvasTop, canvasBottom float64) []chart.Id {
	if len(groups) == 0 || len(groupTops) == 0 {
		return nil
	}
	if lineHeight <= 0 {
		lineHeight = chart.DefaultLineHeight
	}

	// Leftmost row whose top is at or past the canvas top. No match means
	// the whole chart sits above the window; start from the first row.
	first := sort.Search(len(groupTops), func(i int) bool {
		return groupTops[i] >= canvasTop
	})
	if first >= len(groups) {
		first = 0
	}

	canvasHeight := canvasBottom - canvasTop
	lineCount := int(math.Ceil(canvasHeight/lineHeight)) + 1
	last := first + lineCount
	if last > len(groups)-1 {
		last = len(groups) - 1
	}

	ids := make([]chart.Id, 0, last-first+1)
	for i := first; i <= last; i++ {
		ids = append(ids, groups[i].ID)
	}
	return ids
}
