package main

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/spf13/cobra"

	"tableflip.dev/timeline/pkg/chart"
	"tableflip.dev/timeline/pkg/tui/components/timeline"
	"tableflip.dev/timeline/pkg/tui/events"
)

func newChartCmd(opts *options) *cobra.Command {
	var hours int

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Preview the timeline component",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(*opts, hours)
		},
	}

	cmd.Flags().IntVar(&hours, "hours", 24, "visible span in hours")
	return cmd
}

func runChart(opts options, hours int) error {
	doc := sampleDocument()
	start, end := sampleRange(hours)
	model := &chartModel{
		testbedModel: newTestbedModel(opts),
		doc:          doc,
		chart:        timeline.NewModel("chart", doc.Items, doc.Groups, start, end),
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type chartModel struct {
	testbedModel
	doc   *sampleDoc
	chart *timeline.Model
}

func (m *chartModel) Init() tea.Cmd { return nil }

func (m *chartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.testbedModel.update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.chart.SetSize(m.contentSize())
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		_, cmd := m.chart.Update(msg)
		return m, cmd

	case events.ItemMoveMsg:
		for i := range m.doc.Items {
			if m.doc.Items[i].ID == msg.Item {
				m.doc.Items[i].Start = msg.Start
				m.doc.Items[i].End = msg.End
				m.doc.Items[i].Group = msg.Group
			}
		}
		m.chart.SetData(m.doc.Items, m.doc.Groups)
		return m, nil

	case events.ItemResizeMsg:
		for i := range m.doc.Items {
			if m.doc.Items[i].ID == msg.Item {
				switch msg.Edge {
				case chart.EdgeLeft:
					m.doc.Items[i].Start = msg.Time
				case chart.EdgeRight:
					m.doc.Items[i].End = msg.Time
				}
			}
		}
		m.chart.SetData(m.doc.Items, m.doc.Groups)
		return m, nil
	}
	return m, nil
}

func (m *chartModel) View() string {
	if m.termWidth == 0 || m.termHeight == 0 {
		return "Resizing…"
	}
	view := m.chart.View()
	if log := m.renderLog(); log != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, log)
	}
	return view
}
