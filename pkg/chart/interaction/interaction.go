// Package interaction translates an in-progress drag or resize gesture into
// the hypothetical item geometry the layout engine should preview. Nothing
// here mutates caller data; a gesture frame produces shadow values that are
// discarded after one layout pass.
package interaction

import "tableflip.dev/timeline/pkg/chart"

// Gesture is one frame of an in-progress drag or resize. The zero value
// means "no gesture". Abandoning a gesture is simply ceasing to supply one.
type Gesture struct {
	DraggingItem chart.Id
	ResizingItem chart.Id

	// DragTime is the proposed new start time while dragging. The end moves
	// by the same delta.
	DragTime int64

	// NewGroupOrder is the index of the group the dragged item hovers over.
	NewGroupOrder int

	// ResizeEdge and ResizeTime apply while resizing; only the active edge
	// moves.
	ResizeEdge chart.ResizeEdge
	ResizeTime int64
}

// Active reports whether the gesture affects any item at all.
func (g Gesture) Active() bool {
	return g.DraggingItem != "" || g.ResizingItem != ""
}

// Apply returns the item with its hypothetical start, end and group
// substituted when the gesture targets it. All other items pass through
// unchanged. The input item is copied, never mutated.
func (g Gesture) Apply(item chart.Item, groups []chart.Group) chart.Item {
	if !g.Active() {
		return item
	}
	isDragging := item.ID == g.DraggingItem
	isResizing := item.ID == g.ResizingItem
	if !isDragging && !isResizing {
		return item
	}

	start := item.Start
	end := item.End
	if isResizing {
		switch g.ResizeEdge {
		case chart.EdgeLeft:
			start = g.ResizeTime
		case chart.EdgeRight:
			end = g.ResizeTime
		}
	}
	if isDragging {
		span := item.End - item.Start
		start = g.DragTime
		end = g.DragTime + span
		if g.NewGroupOrder >= 0 && g.NewGroupOrder < len(groups) {
			item.Group = groups[g.NewGroupOrder].ID
		}
	}

	item.Start = start
	item.End = end
	return item
}
