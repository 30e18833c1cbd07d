// Package timeline renders an interactive gantt-style chart: rows of
// time-ranged bars with a calendar header, keyboard panning and zooming,
// and drag/resize previews that only become data when committed.
package timeline

import (
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/timeline/pkg/chart"
	"tableflip.dev/timeline/pkg/chart/interaction"
	"tableflip.dev/timeline/pkg/chart/scale"
	"tableflip.dev/timeline/pkg/chart/stack"
	"tableflip.dev/timeline/pkg/chart/timeunit"
	"tableflip.dev/timeline/pkg/chart/window"
	"tableflip.dev/timeline/pkg/tui/events"
	"tableflip.dev/timeline/pkg/tui/ui"
)

// Terminal cells are the pixel unit: one line per stacking tier, bars one
// cell tall.
const (
	defaultSidebarWidth = 16

	// Pan moves a tenth of the visible span; gesture nudges a twentieth.
	panDivisor   = 10
	nudgeDivisor = 20

	zoomInScale  = 0.75
	zoomOutScale = 1.25
)

// Styles controls the chart's presentation.
type Styles struct {
	Header   lipgloss.Style
	Sidebar  lipgloss.Style
	Grid     lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Preview  lipgloss.Style
}

// DefaultStyles returns the stock styling used by the testbed.
func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("248")),
		Sidebar:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Grid:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Item:     lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("74")),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")),
		Preview:  lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("106")),
	}
}

// Model is the timeline widget. It owns the windowed layout state but never
// the data: committed edits are emitted as messages and the host hands back
// new items through SetData.
type Model struct {
	id events.ComponentID

	items  []chart.Item
	groups []chart.Group
	cfg    chart.Config
	steps  timeunit.Steps
	labels timeunit.LabelFormats

	win       window.State
	scrollTop float64

	selected chart.Id
	gesture  interaction.Gesture

	width        int
	height       int
	sidebarWidth int

	styles Styles
}

// NewModel constructs a timeline over the given data, initially showing
// [visibleStart, visibleEnd). Call SetSize before the first View.
func NewModel(id events.ComponentID, items []chart.Item, groups []chart.Group, visibleStart, visibleEnd int64) *Model {
	cfg := chart.DefaultConfig()
	cfg.LineHeight = 1
	cfg.ItemHeightRatio = 1
	cfg.StackItems = true

	return &Model{
		id:           id,
		items:        items,
		groups:       groups,
		cfg:          cfg,
		steps:        timeunit.DefaultSteps(),
		labels:       timeunit.DefaultLabelFormats(),
		win:          window.State{VisibleTimeStart: visibleStart, VisibleTimeEnd: visibleEnd},
		sidebarWidth: defaultSidebarWidth,
		styles:       DefaultStyles(),
	}
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// SetSize resizes the widget and rebuilds the window over the new chart
// width.
func (m *Model) SetSize(width, height int) {
	if m.width == width && m.height == height {
		return
	}
	m.width = width
	m.height = height

	m.win = window.New(m.win.VisibleTimeStart, m.win.VisibleTimeEnd,
		float64(m.chartWidth()), m.items, m.groups, m.cfg)
	m.win.CanvasTop, m.win.CanvasBottom = window.VerticalCanvas(m.scrollTop, float64(m.chartHeight()))
}

// SetData replaces the chart data, typically after the host applied a
// committed edit. Selection is kept when the item still exists.
func (m *Model) SetData(items []chart.Item, groups []chart.Group) {
	m.items = items
	m.groups = groups
	if _, ok := m.itemByID(m.selected); !ok {
		m.selected = ""
	}
	m.relayout()
}

// WithStyles overrides the default styling.
func (m *Model) WithStyles(styles Styles) {
	m.styles = styles
}

// Selected returns the id of the selected item, if any.
func (m *Model) Selected() chart.Id { return m.selected }

// VisibleRange returns the current visible time bounds.
func (m *Model) VisibleRange() (int64, int64) {
	return m.win.VisibleTimeStart, m.win.VisibleTimeEnd
}

// Gesture exposes the in-progress gesture frame, if any.
func (m *Model) Gesture() interaction.Gesture { return m.gesture }

// ShowPeriod jumps the visible range to an absolute request, ignoring
// spans narrower than the chart can meaningfully show.
func (m *Model) ShowPeriod(from, to int64) tea.Cmd {
	start, end, ok := window.ShowPeriod(from, to)
	if !ok {
		return nil
	}
	m.win = window.Recompute(start, end, false, m.items, m.groups, m.cfg, m.win, m.gesture)
	return events.TimeChangeCmd(m.id, start, end)
}

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		return m.handleKey(key)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (ui.Component, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if m.gesture.Active() {
			m.nudgeGesture(-1)
			return m, nil
		}
		return m, m.pan(-1)
	case "right", "l":
		if m.gesture.Active() {
			m.nudgeGesture(1)
			return m, nil
		}
		return m, m.pan(1)
	case "up", "k":
		if m.gesture.DraggingItem != "" {
			m.hoverRow(-1)
			return m, nil
		}
		return m, m.scroll(-1)
	case "down", "j":
		if m.gesture.DraggingItem != "" {
			m.hoverRow(1)
			return m, nil
		}
		return m, m.scroll(1)
	case "+", "=":
		return m, m.zoom(zoomInScale)
	case "-", "_":
		return m, m.zoom(zoomOutScale)
	case "tab":
		return m, m.selectNext(1)
	case "shift+tab":
		return m, m.selectNext(-1)
	case "m":
		m.beginMove()
		return m, nil
	case "[":
		m.beginResize(chart.EdgeLeft)
		return m, nil
	case "]":
		m.beginResize(chart.EdgeRight)
		return m, nil
	case "enter":
		return m, m.commitGesture()
	case "esc":
		m.cancelGesture()
		return m, nil
	}
	return m, nil
}

func (m *Model) chartWidth() int {
	w := m.width - m.sidebarWidth
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) chartHeight() int {
	h := m.height - 1 // header row
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) span() int64 {
	return m.win.VisibleTimeEnd - m.win.VisibleTimeStart
}

func (m *Model) relayout() {
	m.win = window.Recompute(m.win.VisibleTimeStart, m.win.VisibleTimeEnd,
		true, m.items, m.groups, m.cfg, m.win, m.gesture)
}

func (m *Model) pan(direction int64) tea.Cmd {
	delta := direction * m.span() / panDivisor
	start := m.win.VisibleTimeStart + delta
	end := m.win.VisibleTimeEnd + delta
	m.win = window.Recompute(start, end, false, m.items, m.groups, m.cfg, m.win, m.gesture)
	return events.TimeChangeCmd(m.id, start, end)
}

func (m *Model) zoom(scale float64) tea.Cmd {
	start, end := m.win.Zoom(scale, 0.5, m.cfg)
	m.win = window.Recompute(start, end, false, m.items, m.groups, m.cfg, m.win, m.gesture)
	return events.TimeChangeCmd(m.id, start, end)
}

func (m *Model) scroll(direction int) tea.Cmd {
	maxTop := m.win.Layout.Height - float64(m.chartHeight())
	if maxTop < 0 {
		maxTop = 0
	}
	top := m.scrollTop + float64(direction)
	if top < 0 {
		top = 0
	}
	if top > maxTop {
		top = maxTop
	}
	if top == m.scrollTop {
		return nil
	}
	m.scrollTop = top

	next, moved := m.win.ScrollVertical(top, float64(m.chartHeight()))
	if !moved {
		return nil
	}
	m.win = next
	ids := window.VisibleGroups(m.groups, m.win.Layout.GroupTops,
		m.cfg.LineHeight, next.CanvasTop, next.CanvasBottom)
	return events.VisibleGroupsCmd(m.id, ids)
}

// selectNext cycles the selection through the placed items in visual order.
func (m *Model) selectNext(direction int) tea.Cmd {
	candidates := m.selectableDims()
	if len(candidates) == 0 {
		return nil
	}

	current := -1
	for i, dim := range candidates {
		if dim.ID == m.selected {
			current = i
			break
		}
	}
	next := current + direction
	if next < 0 {
		next = len(candidates) - 1
	}
	if next >= len(candidates) {
		next = 0
	}

	m.selected = candidates[next].ID
	id, selected := m.selected, true
	return func() tea.Msg {
		return events.ItemSelectMsg{Component: m.id, Item: id, Selected: selected}
	}
}

func (m *Model) selectableDims() []stack.ItemDimensions {
	dims := make([]stack.ItemDimensions, 0, len(m.win.Layout.Items))
	for _, dim := range m.win.Layout.Items {
		if !dim.Placed {
			continue
		}
		if item, ok := m.itemByID(dim.ID); !ok || !allowSelect(item) {
			continue
		}
		dims = append(dims, dim)
	}
	sort.SliceStable(dims, func(i, j int) bool {
		if dims[i].Top != dims[j].Top {
			return dims[i].Top < dims[j].Top
		}
		return dims[i].Left < dims[j].Left
	})
	return dims
}

func (m *Model) beginMove() {
	item, ok := m.itemByID(m.selected)
	if !ok || !allowMove(item) {
		return
	}
	order := 0
	if o, ok := chart.BuildGroupOrders(m.groups)[item.Group]; ok {
		order = o.Index
	}
	m.gesture = interaction.Gesture{
		DraggingItem:  item.ID,
		DragTime:      item.Start,
		NewGroupOrder: order,
	}
	m.relayout()
}

func (m *Model) beginResize(edge chart.ResizeEdge) {
	item, ok := m.itemByID(m.selected)
	if !ok || !allowResize(item, edge) {
		return
	}
	at := item.Start
	if edge == chart.EdgeRight {
		at = item.End
	}
	m.gesture = interaction.Gesture{
		ResizingItem: item.ID,
		ResizeEdge:   edge,
		ResizeTime:   at,
	}
	m.relayout()
}

func (m *Model) nudgeGesture(direction int64) {
	step := direction * m.span() / nudgeDivisor
	switch {
	case m.gesture.DraggingItem != "":
		m.gesture.DragTime += step
	case m.gesture.ResizingItem != "":
		m.gesture.ResizeTime += step
	default:
		return
	}
	m.relayout()
}

func (m *Model) hoverRow(direction int) {
	item, ok := m.itemByID(m.gesture.DraggingItem)
	if !ok || !allowChangeGroup(item) {
		return
	}
	order := m.gesture.NewGroupOrder + direction
	if order < 0 || order >= len(m.groups) {
		return
	}
	m.gesture.NewGroupOrder = order
	m.relayout()
}

func (m *Model) commitGesture() tea.Cmd {
	if !m.gesture.Active() {
		return nil
	}
	gesture := m.gesture
	m.gesture = interaction.Gesture{}
	m.relayout()

	switch {
	case gesture.DraggingItem != "":
		item, ok := m.itemByID(gesture.DraggingItem)
		if !ok {
			return nil
		}
		moved := gesture.Apply(item, m.groups)
		return func() tea.Msg {
			return events.ItemMoveMsg{
				Component: m.id,
				Item:      moved.ID,
				Start:     moved.Start,
				End:       moved.End,
				Group:     moved.Group,
			}
		}
	case gesture.ResizingItem != "":
		return func() tea.Msg {
			return events.ItemResizeMsg{
				Component: m.id,
				Item:      gesture.ResizingItem,
				Edge:      gesture.ResizeEdge,
				Time:      gesture.ResizeTime,
			}
		}
	}
	return nil
}

func (m *Model) cancelGesture() {
	if !m.gesture.Active() {
		return
	}
	m.gesture = interaction.Gesture{}
	m.relayout()
}

func (m *Model) itemByID(id chart.Id) (chart.Item, bool) {
	if id == "" {
		return chart.Item{}, false
	}
	for _, item := range m.items {
		if item.ID == id {
			return item, true
		}
	}
	return chart.Item{}, false
}

// Interaction permissions follow the chart defaults: movable, selectable,
// group-changeable, right-edge resizable.

func allowSelect(item chart.Item) bool {
	return item.CanSelect == nil || *item.CanSelect
}

func allowMove(item chart.Item) bool {
	return item.CanMove == nil || *item.CanMove
}

func allowChangeGroup(item chart.Item) bool {
	return item.CanChangeGroup == nil || *item.CanChangeGroup
}

func allowResize(item chart.Item, edge chart.ResizeEdge) bool {
	mode := item.CanResize
	if mode == "" {
		mode = chart.ResizeRight
	}
	switch mode {
	case chart.ResizeBoth:
		return true
	case chart.ResizeLeft:
		return edge == chart.EdgeLeft
	case chart.ResizeRight:
		return edge == chart.EdgeRight
	default:
		return false
	}
}

// View renders the header row plus the visible slice of the chart body.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	ticks := m.tickColumns()
	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderHeader(ticks))

	top := int(m.scrollTop)
	for s := 0; s < m.chartHeight(); s++ {
		row := top + s
		lines = append(lines, m.renderSidebarCell(row)+m.renderChartRow(row, ticks))
	}
	return strings.Join(lines, "\n")
}

// tickColumns maps screen columns to grid-line positions for the chosen
// header unit.
func (m *Model) tickColumns() map[int]bool {
	chartWidth := m.chartWidth()
	unit := timeunit.Choose(m.span(), float64(chartWidth), m.steps)
	vis := m.visibleScale()

	ticks := make(map[int]bool)
	timeunit.Iterate(m.win.VisibleTimeStart, m.win.VisibleTimeEnd, unit, m.steps,
		func(intervalStart, intervalEnd int64) {
			x := int(math.Round(vis.TimeToX(intervalStart)))
			if x >= 0 && x < chartWidth {
				ticks[x] = true
			}
		})
	return ticks
}

func (m *Model) visibleScale() scale.Scale {
	return scale.Scale{
		CanvasTimeStart: m.win.VisibleTimeStart,
		CanvasTimeEnd:   m.win.VisibleTimeEnd,
		CanvasWidth:     float64(m.chartWidth()),
	}
}

func (m *Model) renderHeader(ticks map[int]bool) string {
	chartWidth := m.chartWidth()
	unit := timeunit.Choose(m.span(), float64(chartWidth), m.steps)
	vis := m.visibleScale()

	cells := []rune(strings.Repeat(" ", chartWidth))
	timeunit.Iterate(m.win.VisibleTimeStart, m.win.VisibleTimeEnd, unit, m.steps,
		func(intervalStart, intervalEnd int64) {
			x := int(math.Round(vis.TimeToX(intervalStart)))
			cellWidth := vis.TimeToX(intervalEnd) - vis.TimeToX(intervalStart)
			label, err := m.labels.Format(unit, timeunit.WidthClass(cellWidth), time.UnixMilli(intervalStart))
			if err != nil {
				label = ""
			}
			for i, r := range label {
				col := x + i
				if col < 0 || col >= chartWidth {
					break
				}
				cells[col] = r
			}
		})

	corner := padTo(time.UnixMilli(m.win.VisibleTimeStart).Format("2006-01-02"), m.sidebarWidth)
	return m.styles.Sidebar.Render(corner) + m.styles.Header.Render(string(cells))
}

// renderSidebarCell renders the fixed-width row label column: the group
// title on the row's first line, blank fill below it.
func (m *Model) renderSidebarCell(row int) string {
	layout := m.win.Layout
	text := ""
	for i := range m.groups {
		if i >= len(layout.GroupTops) || i >= len(layout.GroupHeights) {
			break
		}
		top := int(layout.GroupTops[i])
		if row < top || row >= top+int(math.Ceil(layout.GroupHeights[i])) {
			continue
		}
		if row == top {
			text = truncate.String(m.groups[i].Title, uint(m.sidebarWidth-1))
		}
		break
	}
	return m.styles.Sidebar.Render(padTo(text, m.sidebarWidth))
}

// renderChartRow paints the bars whose stacking tier is this row, with grid
// ticks in the gaps.
func (m *Model) renderChartRow(row int, ticks map[int]bool) string {
	chartWidth := m.chartWidth()

	// Canvas pixel offset of the visible left edge.
	cs := scale.Scale{
		CanvasTimeStart: m.win.CanvasTimeStart,
		CanvasTimeEnd:   m.win.CanvasTimeEnd,
		CanvasWidth:     window.CanvasWidth(float64(chartWidth)),
	}
	offset := cs.TimeToX(m.win.VisibleTimeStart)

	type span struct {
		dim   stack.ItemDimensions
		left  int
		width int
	}
	spans := make([]span, 0, 4)
	for _, dim := range m.win.Layout.Items {
		if !dim.Placed || int(dim.Top) != row {
			continue
		}
		left := int(math.Round(dim.Left - offset))
		width := int(math.Round(dim.Width))
		if left < 0 {
			width += left
			left = 0
		}
		if left+width > chartWidth {
			width = chartWidth - left
		}
		if width <= 0 || left >= chartWidth {
			continue
		}
		spans = append(spans, span{dim: dim, left: left, width: width})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].left < spans[j].left })

	var b strings.Builder
	cursor := 0
	for _, sp := range spans {
		if sp.left < cursor {
			sp.width -= cursor - sp.left
			sp.left = cursor
			if sp.width <= 0 {
				continue
			}
		}
		if sp.left > cursor {
			b.WriteString(m.renderGap(cursor, sp.left, ticks))
		}
		b.WriteString(m.renderBar(sp.dim, sp.width))
		cursor = sp.left + sp.width
	}
	if cursor < chartWidth {
		b.WriteString(m.renderGap(cursor, chartWidth, ticks))
	}
	return b.String()
}

func (m *Model) renderGap(from, to int, ticks map[int]bool) string {
	cells := make([]rune, 0, to-from)
	for col := from; col < to; col++ {
		if ticks[col] {
			cells = append(cells, '┊')
		} else {
			cells = append(cells, ' ')
		}
	}
	return m.styles.Grid.Render(string(cells))
}

func (m *Model) renderBar(dim stack.ItemDimensions, width int) string {
	style := m.styles.Item
	switch dim.ID {
	case m.gesture.DraggingItem, m.gesture.ResizingItem:
		style = m.styles.Preview
	case m.selected:
		style = m.styles.Selected
	}

	title := ""
	if item, ok := m.itemByID(dim.ID); ok {
		title = item.Title
	}
	if title == "" || width < 4 {
		return style.Render(strings.Repeat("█", width))
	}
	label := truncate.String(title, uint(width-2))
	fill := width - 2 - ansi.PrintableRuneWidth(label)
	return style.Render("▌" + label + strings.Repeat(" ", fill) + "▐")
}

func padTo(s string, width int) string {
	s = truncate.String(s, uint(width))
	if pad := width - ansi.PrintableRuneWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
