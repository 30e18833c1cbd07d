package timeline

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/timeline/pkg/chart"
	"tableflip.dev/timeline/pkg/tui/events"
)

func sampleGroups() []chart.Group {
	return []chart.Group{
		{ID: "g0", Title: "Engineering"},
		{ID: "g1", Title: "Design"},
	}
}

func sampleItems() []chart.Item {
	return []chart.Item{
		{ID: "a", Group: "g0", Start: 10_000, End: 30_000, Title: "Deploy"},
		{ID: "b", Group: "g1", Start: 20_000, End: 40_000, Title: "Review"},
	}
}

func newTestModel() *Model {
	m := NewModel("chart", sampleItems(), sampleGroups(), 0, 100_000)
	m.SetSize(60, 10)
	return m
}

func press(t *testing.T, m *Model, msg tea.KeyPressMsg) tea.Cmd {
	t.Helper()
	next, cmd := m.Update(msg)
	if next != m {
		t.Fatalf("update must return the same model")
	}
	return cmd
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	return cmd()
}

func TestViewShowsGroupsAndItems(t *testing.T) {
	m := newTestModel()

	view := m.View()
	if !strings.Contains(view, "Engineering") || !strings.Contains(view, "Design") {
		t.Fatalf("sidebar should list the group titles:\n%s", view)
	}
	if !strings.Contains(view, "Deploy") {
		t.Fatalf("wide bars should carry the item title:\n%s", view)
	}
	if got := len(strings.Split(view, "\n")); got != 10 {
		t.Fatalf("view should fill the height, got %d lines", got)
	}
}

func TestPanEmitsTimeChange(t *testing.T) {
	m := newTestModel()

	cmd := press(t, m, tea.KeyPressMsg{Code: tea.KeyRight})
	msg, ok := runCmd(t, cmd).(events.TimeChangeMsg)
	if !ok {
		t.Fatalf("pan should emit a time change")
	}
	if msg.VisibleTimeStart != 10_000 || msg.VisibleTimeEnd != 110_000 {
		t.Fatalf("pan should move a tenth of the span, got [%d, %d]", msg.VisibleTimeStart, msg.VisibleTimeEnd)
	}

	start, end := m.VisibleRange()
	if start != 10_000 || end != 110_000 {
		t.Fatalf("model should track the new range, got [%d, %d]", start, end)
	}
}

func TestZoomInShrinksSpanAroundCenter(t *testing.T) {
	m := newTestModel()

	cmd := press(t, m, tea.KeyPressMsg{Text: "+", Code: '+'})
	msg := runCmd(t, cmd).(events.TimeChangeMsg)

	if msg.VisibleTimeStart != 12_500 || msg.VisibleTimeEnd != 87_500 {
		t.Fatalf("expected [12500, 87500], got [%d, %d]", msg.VisibleTimeStart, msg.VisibleTimeEnd)
	}
}

func TestTabCyclesSelection(t *testing.T) {
	m := newTestModel()

	cmd := press(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	msg := runCmd(t, cmd).(events.ItemSelectMsg)
	if msg.Item != "a" || !msg.Selected {
		t.Fatalf("first tab should select the top-left item, got %+v", msg)
	}

	press(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	if m.Selected() != "b" {
		t.Fatalf("second tab should advance, got %q", m.Selected())
	}

	press(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	if m.Selected() != "a" {
		t.Fatalf("selection should wrap around, got %q", m.Selected())
	}
}

func TestMoveGestureCommitEmitsItemMove(t *testing.T) {
	m := newTestModel()
	press(t, m, tea.KeyPressMsg{Code: tea.KeyTab}) // select "a"

	press(t, m, tea.KeyPressMsg{Text: "m", Code: 'm'})
	if !m.Gesture().Active() {
		t.Fatalf("move key should start a drag gesture")
	}

	// One nudge right, one row down, then commit.
	press(t, m, tea.KeyPressMsg{Code: tea.KeyRight})
	press(t, m, tea.KeyPressMsg{Code: tea.KeyDown})
	cmd := press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	msg, ok := runCmd(t, cmd).(events.ItemMoveMsg)
	if !ok {
		t.Fatalf("commit should emit an item move")
	}
	if msg.Item != "a" || msg.Start != 15_000 || msg.End != 35_000 || msg.Group != "g1" {
		t.Fatalf("unexpected move: %+v", msg)
	}
	if m.Gesture().Active() {
		t.Fatalf("commit should clear the gesture")
	}
	if m.items[0].Start != 10_000 || m.items[0].Group != "g0" {
		t.Fatalf("the widget must not mutate its data, got %+v", m.items[0])
	}
}

func TestResizeGestureCommitEmitsItemResize(t *testing.T) {
	m := newTestModel()
	press(t, m, tea.KeyPressMsg{Code: tea.KeyTab})

	press(t, m, tea.KeyPressMsg{Text: "]", Code: ']'})
	press(t, m, tea.KeyPressMsg{Code: tea.KeyRight})
	cmd := press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	msg, ok := runCmd(t, cmd).(events.ItemResizeMsg)
	if !ok {
		t.Fatalf("commit should emit an item resize")
	}
	if msg.Item != "a" || msg.Edge != chart.EdgeRight || msg.Time != 35_000 {
		t.Fatalf("unexpected resize: %+v", msg)
	}
}

func TestEscapeCancelsGesture(t *testing.T) {
	m := newTestModel()
	press(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	press(t, m, tea.KeyPressMsg{Text: "m", Code: 'm'})

	press(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.Gesture().Active() {
		t.Fatalf("escape should cancel the gesture")
	}
	if cmd := press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Fatalf("enter without a gesture should be a no-op")
	}
}

func TestPermissionsGateGestures(t *testing.T) {
	no := false
	items := []chart.Item{
		{ID: "a", Group: "g0", Start: 10_000, End: 30_000, CanMove: &no},
	}
	m := NewModel("chart", items, sampleGroups(), 0, 100_000)
	m.SetSize(60, 10)

	press(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	press(t, m, tea.KeyPressMsg{Text: "m", Code: 'm'})
	if m.Gesture().Active() {
		t.Fatalf("an immovable item must not start a drag")
	}

	// The default resize mode only allows the right edge.
	press(t, m, tea.KeyPressMsg{Text: "[", Code: '['})
	if m.Gesture().Active() {
		t.Fatalf("left resize must be rejected for right-only items")
	}
	press(t, m, tea.KeyPressMsg{Text: "]", Code: ']'})
	if !m.Gesture().Active() {
		t.Fatalf("right resize should be allowed by default")
	}
}

func TestUnselectableItemsAreSkipped(t *testing.T) {
	no := false
	items := []chart.Item{
		{ID: "a", Group: "g0", Start: 10_000, End: 30_000, CanSelect: &no},
		{ID: "b", Group: "g1", Start: 20_000, End: 40_000},
	}
	m := NewModel("chart", items, sampleGroups(), 0, 100_000)
	m.SetSize(60, 10)

	press(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	if m.Selected() != "b" {
		t.Fatalf("selection should skip unselectable items, got %q", m.Selected())
	}
}

func TestScrollEmitsVisibleGroupsWhenCanvasMoves(t *testing.T) {
	groups := make([]chart.Group, 30)
	for i := range groups {
		groups[i] = chart.Group{ID: chart.Id(rune('a' + i)), Title: "Row"}
	}
	m := NewModel("chart", nil, groups, 0, 100_000)
	m.SetSize(60, 10)

	// Scrolling inside the buffered canvas stays quiet; drifting near the
	// edge recenters and reports the new row window.
	var cmd tea.Cmd
	for i := 0; i < 5; i++ {
		cmd = press(t, m, tea.KeyPressMsg{Code: tea.KeyDown})
	}
	msg, ok := runCmd(t, cmd).(events.VisibleGroupsMsg)
	if !ok {
		t.Fatalf("recentering scroll should report visible groups")
	}
	if len(msg.Groups) == 0 {
		t.Fatalf("row window must not be empty")
	}
}

func TestScrollIsNoOpWhenEverythingFits(t *testing.T) {
	m := newTestModel()
	if cmd := press(t, m, tea.KeyPressMsg{Code: tea.KeyDown}); cmd != nil {
		t.Fatalf("nothing to scroll: no command expected")
	}
	if m.scrollTop != 0 {
		t.Fatalf("scroll top should stay pinned, got %v", m.scrollTop)
	}
}

func TestShowPeriodRejectsNarrowSpans(t *testing.T) {
	m := newTestModel()

	if cmd := m.ShowPeriod(0, 60_000); cmd != nil {
		t.Fatalf("sub-hour requests must be ignored")
	}

	cmd := m.ShowPeriod(0, 7_200_000)
	msg := runCmd(t, cmd).(events.TimeChangeMsg)
	if msg.VisibleTimeStart != 0 || msg.VisibleTimeEnd != 7_200_000 {
		t.Fatalf("valid requests should pass through, got %+v", msg)
	}
}
