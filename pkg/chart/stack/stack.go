// Package stack computes pixel geometry for the items visible on a canvas:
// horizontal spans from time spans, and greedy vertical stacking of
// colliding items within each row.
package stack

import (
	"tableflip.dev/timeline/pkg/chart"
	"tableflip.dev/timeline/pkg/chart/interaction"
	"tableflip.dev/timeline/pkg/chart/scale"
)

// Zero-width items still get a visible sliver.
const minItemWidth = 3.0

// Touching edges are not collisions; rounding error stays below this.
const collisionEpsilon = 0.001

// ItemDimensions is the computed geometry for one item. Left/Width live in
// canvas pixel space; CollisionLeft/CollisionWidth live in time space, the
// pair of coordinate systems the collision test combines.
type ItemDimensions struct {
	ID chart.Id

	Left  float64
	Width float64

	CollisionLeft  int64
	CollisionWidth int64

	Height float64
	Stack  bool

	// Order is nil for items whose group id has no entry in the group set.
	// Such items stay in the flat list but never join a row.
	Order *chart.GroupOrder

	// Top is only meaningful once Placed is true. The placement pass is the
	// single writer of these two fields.
	Top    float64
	Placed bool
}

// Layout is the full result of one stacking pass. GroupHeights and
// GroupTops are parallel to the group slice.
type Layout struct {
	Items        []ItemDimensions
	Height       float64
	GroupHeights []float64
	GroupTops    []float64
}

// VisibleItems filters items to those overlapping the canvas time range.
func VisibleItems(items []chart.Item, canvasTimeStart, canvasTimeEnd int64) []chart.Item {
	visible := make([]chart.Item, 0, len(items))
	for _, item := range items {
		if item.Start <= canvasTimeEnd && item.End >= canvasTimeStart {
			visible = append(visible, item)
		}
	}
	return visible
}

// Compute lays out every item visible on the canvas. A non-zero gesture
// substitutes the hypothetical geometry of the dragged or resized item
// before anything is measured, which is what drives live previews; the
// caller's items are never mutated.
//
// With zero groups the layout is empty and zero-height. Items referencing
// an unknown group id stay in the flat item list with a nil order but are
// excluded from every row computation.
func Compute(
	items []chart.Item,
	groups []chart.Group,
	canvasWidth float64,
	canvasTimeStart, canvasTimeEnd int64,
	cfg chart.Config,
	gesture interaction.Gesture,
) Layout {
	if len(groups) == 0 {
		return Layout{
			Items:        []ItemDimensions{},
			GroupHeights: []float64{},
			GroupTops:    []float64{},
		}
	}

	sc := scale.Scale{
		CanvasTimeStart: canvasTimeStart,
		CanvasTimeEnd:   canvasTimeEnd,
		CanvasWidth:     canvasWidth,
	}
	orders := chart.BuildGroupOrders(groups)
	lineHeight := cfg.LineHeight
	if lineHeight <= 0 {
		lineHeight = chart.DefaultLineHeight
	}
	itemHeight := cfg.ItemHeight()

	// Phase one: immutable unplaced dimension records.
	visible := VisibleItems(items, canvasTimeStart, canvasTimeEnd)
	dims := make([]ItemDimensions, 0, len(visible))
	for _, item := range visible {
		effective := gesture.Apply(item, groups)
		dims = append(dims, measure(effective, sc, orders, itemHeight))
	}

	// Phase two: a placement arena keyed by item index, filled row by row.
	rows := groupRows(dims, len(groups))
	tops := make([]float64, len(dims))
	placed := make([]bool, len(dims))

	groupHeights := make([]float64, 0, len(groups))
	groupTops := make([]float64, 0, len(groups))
	var currentHeight float64

	for gi, g := range groups {
		groupTop := currentHeight
		stacked := cfg.StackItems
		if g.StackItems != nil {
			stacked = *g.StackItems
		}

		groupHeight := placeRow(dims, rows[gi], stacked, lineHeight, groupTop, tops, placed)

		groupTops = append(groupTops, groupTop)
		effectiveHeight := groupHeight
		if effectiveHeight < lineHeight {
			effectiveHeight = lineHeight
		}
		// A manual height override wins, but placement above already ran:
		// items may overflow a too-small row. Accepted, not corrected.
		if g.Height > 0 {
			effectiveHeight = g.Height
		}
		currentHeight += effectiveHeight
		groupHeights = append(groupHeights, effectiveHeight)
	}

	for i := range dims {
		if placed[i] {
			dims[i].Top = tops[i]
			dims[i].Placed = true
		}
	}

	return Layout{
		Items:        dims,
		Height:       currentHeight,
		GroupHeights: groupHeights,
		GroupTops:    groupTops,
	}
}

// measure computes the unplaced dimensions for one item: its pixel span
// clipped to the canvas, and its unclipped time span for collision checks.
func measure(item chart.Item, sc scale.Scale, orders chart.GroupOrders, itemHeight float64) ItemDimensions {
	effectiveStart := item.Start
	if effectiveStart < sc.CanvasTimeStart {
		effectiveStart = sc.CanvasTimeStart
	}
	effectiveEnd := item.End
	if effectiveEnd > sc.CanvasTimeEnd {
		effectiveEnd = sc.CanvasTimeEnd
	}

	left := sc.TimeToX(effectiveStart)
	width := sc.TimeToX(effectiveEnd) - left
	if width < minItemWidth {
		width = minItemWidth
	}

	dim := ItemDimensions{
		ID:             item.ID,
		Left:           left,
		Width:          width,
		CollisionLeft:  item.Start,
		CollisionWidth: item.End - item.Start,
		Height:         itemHeight,
		Stack:          true,
	}
	if order, ok := orders[item.Group]; ok {
		dim.Order = &order
	}
	return dim
}

// groupRows collects, per group index, the dim indices belonging to that
// row in their original array order.
func groupRows(dims []ItemDimensions, groupCount int) [][]int {
	rows := make([][]int, groupCount)
	for i, dim := range dims {
		if dim.Order == nil {
			continue
		}
		idx := dim.Order.Index
		if idx < 0 || idx >= groupCount {
			continue
		}
		rows[idx] = append(rows[idx], i)
	}
	return rows
}

// placeRow assigns a top position to every item of one row and returns the
// computed row height. Items are processed in their original order; a
// stacked item starts at the row top and is pushed one line below whichever
// earlier item it collides with, re-scanning from the start of the placed
// set so one push can cascade past several neighbours.
func placeRow(dims []ItemDimensions, row []int, stacked bool, lineHeight, groupTop float64, tops []float64, placed []bool) float64 {
	var rowHeight float64

	for pos, di := range row {
		dim := dims[di]
		verticalMargin := (lineHeight - dim.Height) / 2

		if !stacked || !dim.Stack {
			tops[di] = groupTop + verticalMargin
			placed[di] = true
			if rowHeight < lineHeight {
				rowHeight = lineHeight
			}
			if h := dim.Height + 2*verticalMargin; rowHeight < h {
				rowHeight = h
			}
			continue
		}

		tops[di] = groupTop + verticalMargin
		placed[di] = true
		if rowHeight < lineHeight {
			rowHeight = lineHeight
		}

		for {
			collided := -1
			for prev := pos - 1; prev >= 0; prev-- {
				dj := row[prev]
				if !placed[dj] || !dims[dj].Stack {
					continue
				}
				if collides(dims[di], tops[di], dims[dj], tops[dj]) {
					collided = dj
					break
				}
			}
			if collided < 0 {
				break
			}
			tops[di] = tops[collided] + lineHeight
			if h := tops[di] + dim.Height + verticalMargin - groupTop; rowHeight < h {
				rowHeight = h
			}
		}
	}
	return rowHeight
}

// collides is an axis-aligned box test in combined time (horizontal) and
// pixel (vertical) space, with an epsilon so touching edges do not count.
func collides(a ItemDimensions, aTop float64, b ItemDimensions, bTop float64) bool {
	aLeft := float64(a.CollisionLeft)
	aRight := aLeft + float64(a.CollisionWidth)
	bLeft := float64(b.CollisionLeft)
	bRight := bLeft + float64(b.CollisionWidth)

	return aLeft+collisionEpsilon < bRight &&
		aRight-collisionEpsilon > bLeft &&
		aTop+collisionEpsilon < bTop+b.Height &&
		aTop+a.Height-collisionEpsilon > bTop
}
