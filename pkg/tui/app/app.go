// Package app hosts the timeline widget in a full-screen Bubble Tea
// program. The app owns the dataset document: committed edits arrive as
// messages from the widget, are applied here, persisted, and handed back.
package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/timeline/pkg/chart"
	"tableflip.dev/timeline/pkg/store"
	"tableflip.dev/timeline/pkg/tui/components/timeline"
	"tableflip.dev/timeline/pkg/tui/events"
)

const chartComponent = events.ComponentID("chart")

// Model is the program root: the chart plus a one-line status bar.
type Model struct {
	doc         *store.Document
	persistence store.Persistence

	chart *timeline.Model

	width  int
	height int

	status      string
	statusStyle lipgloss.Style
	errStyle    lipgloss.Style
}

// New constructs the app over a dataset document. The persistence is
// optional; without it edits stay in memory.
func New(doc *store.Document, p store.Persistence) *Model {
	now := time.Now()
	visibleStart := now.Add(-12 * time.Hour).UnixMilli()
	visibleEnd := now.Add(12 * time.Hour).UnixMilli()

	return &Model{
		doc:         doc,
		persistence: p,
		chart:       timeline.NewModel(chartComponent, doc.Items, doc.Groups, visibleStart, visibleEnd),
		status:      "tab select · m move · [ ] resize · enter commit · q quit",
		statusStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		errStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
	}
}

// Run launches the app full screen.
func Run(doc *store.Document, p store.Persistence) error {
	prog := tea.NewProgram(New(doc, p), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chart.SetSize(msg.Width, max(1, msg.Height-1))
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		_, cmd := m.chart.Update(msg)
		return m, cmd

	case events.TimeChangeMsg:
		m.status = "range " + msg.Describe()
		return m, nil

	case events.ItemSelectMsg:
		m.status = "selected " + msg.Describe()
		return m, nil

	case events.VisibleGroupsMsg:
		m.status = msg.Describe()
		return m, nil

	case events.ItemMoveMsg:
		m.applyMove(msg)
		return m, nil

	case events.ItemResizeMsg:
		m.applyResize(msg)
		return m, nil
	}
	return m, nil
}

func (m *Model) applyMove(msg events.ItemMoveMsg) {
	for i := range m.doc.Items {
		if m.doc.Items[i].ID != msg.Item {
			continue
		}
		m.doc.Items[i].Start = msg.Start
		m.doc.Items[i].End = msg.End
		m.doc.Items[i].Group = msg.Group
		break
	}
	m.chart.SetData(m.doc.Items, m.doc.Groups)
	m.persist("moved " + msg.Describe())
}

func (m *Model) applyResize(msg events.ItemResizeMsg) {
	for i := range m.doc.Items {
		if m.doc.Items[i].ID != msg.Item {
			continue
		}
		switch msg.Edge {
		case chart.EdgeLeft:
			m.doc.Items[i].Start = msg.Time
		case chart.EdgeRight:
			m.doc.Items[i].End = msg.Time
		}
		break
	}
	m.chart.SetData(m.doc.Items, m.doc.Groups)
	m.persist("resized " + msg.Describe())
}

func (m *Model) persist(status string) {
	m.status = status
	if m.persistence == nil {
		return
	}
	if err := m.persistence.Store(m.doc); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	style := m.statusStyle
	if len(m.status) >= 5 && m.status[:5] == "save " {
		style = m.errStyle
	}
	return m.chart.View() + "\n" + style.Render(m.status)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
