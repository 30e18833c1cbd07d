package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/spf13/cobra"

	"tableflip.dev/timeline/pkg/tui/components/eventlog"
)

type options struct {
	full   bool
	width  int
	height int
	events int
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "testbed",
		Short: "Run the chart component testbed harness",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.full, "full", false, "use the full terminal window")
	rootCmd.PersistentFlags().IntVar(&opts.width, "width", 100, "window width when not fullscreen")
	rootCmd.PersistentFlags().IntVar(&opts.height, "height", 24, "window height when not fullscreen")
	rootCmd.PersistentFlags().IntVar(&opts.events, "events", 8, "height of the event log (0 disables)")

	rootCmd.AddCommand(newChartCmd(&opts))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// testbedModel is the shared harness: it sizes the component frame and logs
// every described message below it.
type testbedModel struct {
	fullscreen bool
	maxWidth   int
	maxHeight  int
	logHeight  int

	termWidth  int
	termHeight int

	log *eventlog.Model
}

func newTestbedModel(opts options) testbedModel {
	m := testbedModel{
		fullscreen: opts.full,
		maxWidth:   opts.width,
		maxHeight:  opts.height,
		logHeight:  opts.events,
	}
	if opts.events > 0 {
		m.log = eventlog.NewModel(400)
	}
	return m
}

func (m *testbedModel) update(msg tea.Msg) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.termWidth = size.Width
		m.termHeight = size.Height
		if m.log != nil {
			m.log.SetSize(m.termWidth, m.logFrameHeight())
		}
	}
	if m.log != nil {
		m.log.Record(msg)
	}
}

// contentSize returns the frame dimensions available to the component.
func (m *testbedModel) contentSize() (int, int) {
	width := m.maxWidth
	height := m.maxHeight
	if m.fullscreen || width > m.termWidth {
		width = m.termWidth
	}
	avail := m.termHeight - m.logFrameHeight()
	if m.fullscreen || height > avail {
		height = avail
	}
	if width < 20 {
		width = 20
	}
	if height < 6 {
		height = 6
	}
	return width, height
}

func (m *testbedModel) logFrameHeight() int {
	if m.log == nil {
		return 0
	}
	return m.logHeight + 2 // border rows
}

func (m *testbedModel) renderLog() string {
	if m.log == nil || m.termWidth == 0 {
		return ""
	}
	return m.log.View()
}
