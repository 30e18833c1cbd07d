// Package events defines the bubbletea messages the timeline widget emits
// so hosting programs can observe pans, zooms, selections and committed
// item edits without reaching into the component.
package events

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/timeline/pkg/chart"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// TimeChangeMsg is emitted whenever the visible time range moves (pan,
// zoom, or an explicit show-period request).
type TimeChangeMsg struct {
	Component        ComponentID
	VisibleTimeStart int64
	VisibleTimeEnd   int64
}

// Describe renders the range change in a human-friendly format for logs.
func (m TimeChangeMsg) Describe() string {
	return fmt.Sprintf("visible:[%s, %s]",
		time.UnixMilli(m.VisibleTimeStart).Format(time.RFC3339),
		time.UnixMilli(m.VisibleTimeEnd).Format(time.RFC3339))
}

// Source identifies the emitting component for log attribution.
func (m TimeChangeMsg) Source() string { return string(m.Component) }

// ItemSelectMsg is emitted when an item is selected or deselected.
type ItemSelectMsg struct {
	Component ComponentID
	Item      chart.Id
	Selected  bool
}

// Describe renders the selection for logs.
func (m ItemSelectMsg) Describe() string {
	if !m.Selected {
		return "selection cleared"
	}
	return fmt.Sprintf("item:%q", m.Item)
}

// Source identifies the emitting component for log attribution.
func (m ItemSelectMsg) Source() string { return string(m.Component) }

// ItemMoveMsg is emitted when a drag gesture is committed. The widget never
// mutates its own data; the host applies the move and hands back new items.
type ItemMoveMsg struct {
	Component ComponentID
	Item      chart.Id
	Start     int64
	End       int64
	Group     chart.Id
}

// Describe renders the committed move for logs.
func (m ItemMoveMsg) Describe() string {
	return fmt.Sprintf("item:%q start:%d group:%q", m.Item, m.Start, m.Group)
}

// Source identifies the emitting component for log attribution.
func (m ItemMoveMsg) Source() string { return string(m.Component) }

// ItemResizeMsg is emitted when a resize gesture is committed.
type ItemResizeMsg struct {
	Component ComponentID
	Item      chart.Id
	Edge      chart.ResizeEdge
	Time      int64
}

// Describe renders the committed resize for logs.
func (m ItemResizeMsg) Describe() string {
	return fmt.Sprintf("item:%q edge:%s time:%d", m.Item, m.Edge, m.Time)
}

// Source identifies the emitting component for log attribution.
func (m ItemResizeMsg) Source() string { return string(m.Component) }

// VisibleGroupsMsg reports the possibly-visible row set so the host can
// lazily load item data. The set overshoots; it is not an exact membership.
type VisibleGroupsMsg struct {
	Component ComponentID
	Groups    []chart.Id
}

// Describe renders the row set size for logs.
func (m VisibleGroupsMsg) Describe() string {
	return fmt.Sprintf("groups:%d", len(m.Groups))
}

// Source identifies the emitting component for log attribution.
func (m VisibleGroupsMsg) Source() string { return string(m.Component) }

// TimeChangeCmd wraps a TimeChangeMsg in a tea.Cmd.
func TimeChangeCmd(component ComponentID, start, end int64) tea.Cmd {
	return func() tea.Msg {
		return TimeChangeMsg{Component: component, VisibleTimeStart: start, VisibleTimeEnd: end}
	}
}

// VisibleGroupsCmd wraps a VisibleGroupsMsg in a tea.Cmd.
func VisibleGroupsCmd(component ComponentID, groups []chart.Id) tea.Cmd {
	return func() tea.Msg {
		return VisibleGroupsMsg{Component: component, Groups: groups}
	}
}
