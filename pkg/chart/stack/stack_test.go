package stack

import (
	"reflect"
	"testing"

	"tableflip.dev/timeline/pkg/chart"
	"tableflip.dev/timeline/pkg/chart/interaction"
)

func testConfig() chart.Config {
	cfg := chart.DefaultConfig()
	cfg.LineHeight = 30
	cfg.StackItems = true
	return cfg
}

func twoGroups() []chart.Group {
	return []chart.Group{
		{ID: "g0", Title: "First"},
		{ID: "g1", Title: "Second"},
	}
}

func TestOverlappingItemsStackIntoTiers(t *testing.T) {
	items := []chart.Item{
		{ID: "a", Group: "g0", Start: 0, End: 100},
		{ID: "b", Group: "g0", Start: 50, End: 150},
		{ID: "c", Group: "g0", Start: 200, End: 300},
	}

	layout := Compute(items, twoGroups(), 1000, 0, 1000, testConfig(), interaction.Gesture{})

	if len(layout.Items) != 3 {
		t.Fatalf("expected 3 dimension items, got %d", len(layout.Items))
	}
	byID := indexByID(layout.Items)
	a, b, c := byID["a"], byID["b"], byID["c"]

	if !a.Placed || !b.Placed || !c.Placed {
		t.Fatalf("all items should be placed")
	}
	if got := b.Top - a.Top; got != 30 {
		t.Fatalf("colliding items should stack one line apart, got %v", got)
	}
	if c.Top != a.Top {
		t.Fatalf("non-colliding item should share tier one: %v != %v", c.Top, a.Top)
	}
	if layout.GroupHeights[0] <= 30 {
		t.Fatalf("stacked row should grow past one line, got %v", layout.GroupHeights[0])
	}
	if layout.GroupHeights[1] != 30 {
		t.Fatalf("empty row keeps the line height, got %v", layout.GroupHeights[1])
	}
	if layout.Height != layout.GroupHeights[0]+layout.GroupHeights[1] {
		t.Fatalf("total height must be the sum of row heights")
	}
	if layout.GroupTops[1] != layout.GroupHeights[0] {
		t.Fatalf("second row top should sit below the first row")
	}
}

func TestStackedItemsNeverOverlap(t *testing.T) {
	items := []chart.Item{
		{ID: "a", Group: "g0", Start: 0, End: 500},
		{ID: "b", Group: "g0", Start: 100, End: 400},
		{ID: "c", Group: "g0", Start: 150, End: 650},
		{ID: "d", Group: "g0", Start: 150, End: 220},
		{ID: "e", Group: "g0", Start: 390, End: 800},
		{ID: "f", Group: "g0", Start: 800, End: 900},
	}

	layout := Compute(items, twoGroups(), 1000, 0, 1000, testConfig(), interaction.Gesture{})

	for i := range layout.Items {
		for j := range layout.Items {
			if i == j {
				continue
			}
			a, b := layout.Items[i], layout.Items[j]
			if collides(a, a.Top, b, b.Top) {
				t.Fatalf("placed items %s and %s still collide (tops %v, %v)", a.ID, b.ID, a.Top, b.Top)
			}
		}
	}
}

func TestDeterministicOutput(t *testing.T) {
	items := []chart.Item{
		{ID: "a", Group: "g0", Start: 0, End: 300},
		{ID: "b", Group: "g0", Start: 100, End: 400},
		{ID: "c", Group: "g1", Start: 50, End: 250},
		{ID: "d", Group: "g0", Start: 120, End: 500},
	}
	gesture := interaction.Gesture{DraggingItem: "b", DragTime: 150, NewGroupOrder: 1}

	first := Compute(items, twoGroups(), 800, 0, 1000, testConfig(), gesture)
	second := Compute(items, twoGroups(), 800, 0, 1000, testConfig(), gesture)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs must produce identical layouts")
	}
}

func TestDragPreviewMovesItemToHoveredRow(t *testing.T) {
	items := []chart.Item{
		{ID: "a", Group: "g0", Start: 100, End: 200},
		{ID: "b", Group: "g1", Start: 100, End: 200},
	}
	gesture := interaction.Gesture{
		DraggingItem:  "a",
		DragTime:      100 + 3_600,
		NewGroupOrder: 1,
	}

	layout := Compute(items, twoGroups(), 1000, 0, 100_000, testConfig(), gesture)

	a := indexByID(layout.Items)["a"]
	if a.Order == nil || a.Order.Index != 1 {
		t.Fatalf("dragged item should preview in row 1, got %+v", a.Order)
	}
	if a.CollisionLeft != 3_700 {
		t.Fatalf("dragged item should preview at the drag time, got %d", a.CollisionLeft)
	}
	if items[0].Group != "g0" || items[0].Start != 100 {
		t.Fatalf("committed item data must stay untouched: %+v", items[0])
	}
}

func TestResizePreviewMovesOnlyActiveEdge(t *testing.T) {
	items := []chart.Item{{ID: "a", Group: "g0", Start: 1000, End: 2000}}
	gesture := interaction.Gesture{
		ResizingItem: "a",
		ResizeEdge:   chart.EdgeRight,
		ResizeTime:   5000,
	}

	layout := Compute(items, twoGroups(), 1000, 0, 10_000, testConfig(), gesture)

	a := indexByID(layout.Items)["a"]
	if a.CollisionLeft != 1000 || a.CollisionWidth != 4000 {
		t.Fatalf("right resize should stretch only the end: left=%d width=%d", a.CollisionLeft, a.CollisionWidth)
	}
}

func TestOrphanItemExcludedFromRows(t *testing.T) {
	items := []chart.Item{
		{ID: "a", Group: "missing", Start: 0, End: 100},
		{ID: "b", Group: "g0", Start: 0, End: 100},
	}

	layout := Compute(items, twoGroups(), 1000, 0, 1000, testConfig(), interaction.Gesture{})

	if len(layout.Items) != 2 {
		t.Fatalf("orphan must stay in the flat list, got %d items", len(layout.Items))
	}
	orphan := indexByID(layout.Items)["a"]
	if orphan.Order != nil {
		t.Fatalf("orphan should have no group order")
	}
	if orphan.Placed {
		t.Fatalf("orphan must never be placed in a row")
	}
	if layout.GroupHeights[0] != 30 || layout.GroupHeights[1] != 30 {
		t.Fatalf("orphan must not contribute to any row height: %v", layout.GroupHeights)
	}
}

func TestZeroGroupsYieldsEmptyLayout(t *testing.T) {
	items := []chart.Item{{ID: "a", Group: "g0", Start: 0, End: 100}}

	layout := Compute(items, nil, 1000, 0, 1000, testConfig(), interaction.Gesture{})

	if len(layout.Items) != 0 || layout.Height != 0 {
		t.Fatalf("zero groups should produce an empty zero-height layout, got %+v", layout)
	}
}

func TestNoStackRowCentersItems(t *testing.T) {
	cfg := testConfig()
	cfg.StackItems = false

	items := []chart.Item{
		{ID: "a", Group: "g0", Start: 0, End: 100},
		{ID: "b", Group: "g0", Start: 50, End: 150},
	}

	layout := Compute(items, twoGroups(), 1000, 0, 1000, cfg, interaction.Gesture{})

	byID := indexByID(layout.Items)
	a, b := byID["a"], byID["b"]
	if a.Top != b.Top {
		t.Fatalf("unstacked overlapping items share the centered top: %v != %v", a.Top, b.Top)
	}
	wantTop := (30 - cfg.ItemHeight()) / 2
	if a.Top != wantTop {
		t.Fatalf("expected vertically centered top %v, got %v", wantTop, a.Top)
	}
	if layout.GroupHeights[0] != 30 {
		t.Fatalf("unstacked row keeps the line height, got %v", layout.GroupHeights[0])
	}
}

func TestRowStackOverrideBeatsGlobalDefault(t *testing.T) {
	cfg := testConfig()
	cfg.StackItems = false
	stacked := true
	groups := []chart.Group{
		{ID: "g0", StackItems: &stacked},
		{ID: "g1"},
	}
	items := []chart.Item{
		{ID: "a", Group: "g0", Start: 0, End: 100},
		{ID: "b", Group: "g0", Start: 50, End: 150},
	}

	layout := Compute(items, groups, 1000, 0, 1000, cfg, interaction.Gesture{})

	byID := indexByID(layout.Items)
	if byID["b"].Top-byID["a"].Top != 30 {
		t.Fatalf("row override should force stacking")
	}
}

func TestGroupHeightOverrideWins(t *testing.T) {
	groups := []chart.Group{
		{ID: "g0", Height: 12},
		{ID: "g1"},
	}
	items := []chart.Item{
		{ID: "a", Group: "g0", Start: 0, End: 100},
		{ID: "b", Group: "g0", Start: 50, End: 150},
	}

	layout := Compute(items, groups, 1000, 0, 1000, testConfig(), interaction.Gesture{})

	if layout.GroupHeights[0] != 12 {
		t.Fatalf("manual height override must win, got %v", layout.GroupHeights[0])
	}
	// Stacking still ran; the second tier overflows the shortened row.
	if byID := indexByID(layout.Items); byID["b"].Top <= byID["a"].Top {
		t.Fatalf("placement should still use the stacked positions")
	}
	if layout.GroupTops[1] != 12 {
		t.Fatalf("next row should start right below the override")
	}
}

func TestZeroWidthItemGetsMinimumWidth(t *testing.T) {
	items := []chart.Item{{ID: "a", Group: "g0", Start: 500, End: 500}}

	layout := Compute(items, twoGroups(), 1000, 0, 1000, testConfig(), interaction.Gesture{})

	if got := indexByID(layout.Items)["a"].Width; got != 3 {
		t.Fatalf("degenerate items keep a minimum width, got %v", got)
	}
}

func TestItemsClippedToCanvasBounds(t *testing.T) {
	items := []chart.Item{{ID: "a", Group: "g0", Start: -500, End: 2000}}

	layout := Compute(items, twoGroups(), 1000, 0, 1000, testConfig(), interaction.Gesture{})

	a := indexByID(layout.Items)["a"]
	if a.Left != 0 || a.Width != 1000 {
		t.Fatalf("pixel span should clip to the canvas: left=%v width=%v", a.Left, a.Width)
	}
	if a.CollisionLeft != -500 || a.CollisionWidth != 2500 {
		t.Fatalf("time span must stay unclipped for collisions: %d/%d", a.CollisionLeft, a.CollisionWidth)
	}
}

func TestItemsOutsideCanvasAreDropped(t *testing.T) {
	items := []chart.Item{
		{ID: "in", Group: "g0", Start: 100, End: 200},
		{ID: "out", Group: "g0", Start: 5000, End: 6000},
	}

	layout := Compute(items, twoGroups(), 1000, 0, 1000, testConfig(), interaction.Gesture{})

	if len(layout.Items) != 1 || layout.Items[0].ID != "in" {
		t.Fatalf("items outside the canvas window must be filtered: %+v", layout.Items)
	}
}

func TestCascadeStacking(t *testing.T) {
	// Four mutually overlapping items fill four tiers.
	items := []chart.Item{
		{ID: "a", Group: "g0", Start: 0, End: 400},
		{ID: "b", Group: "g0", Start: 10, End: 410},
		{ID: "c", Group: "g0", Start: 20, End: 420},
		{ID: "d", Group: "g0", Start: 30, End: 430},
	}

	layout := Compute(items, twoGroups(), 1000, 0, 1000, testConfig(), interaction.Gesture{})

	byID := indexByID(layout.Items)
	tops := []float64{byID["a"].Top, byID["b"].Top, byID["c"].Top, byID["d"].Top}
	for i := 1; i < len(tops); i++ {
		if tops[i]-tops[i-1] != 30 {
			t.Fatalf("tier %d should sit one line below tier %d: %v", i, i-1, tops)
		}
	}
}

func indexByID(items []ItemDimensions) map[chart.Id]ItemDimensions {
	byID := make(map[chart.Id]ItemDimensions, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return byID
}
