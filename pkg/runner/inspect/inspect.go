// Package inspect renders the computed geometry of a dataset as tables,
// for debugging layouts without opening the UI.
package inspect

import (
	"context"

	"tableflip.dev/timeline/pkg/chart"
	"tableflip.dev/timeline/pkg/chart/timeunit"
	"tableflip.dev/timeline/pkg/chart/window"
	"tableflip.dev/timeline/pkg/printers"
	"tableflip.dev/timeline/pkg/store"
)

// Inspect prints the layout a chart of the given width would compute for
// the visible range.
type Inspect struct {
	Persistence store.Persistence
	Dataset     string

	VisibleStart int64
	VisibleEnd   int64
	Width        float64

	Stack          bool
	ShowCollisions bool
}

// Do loads the dataset, computes the windowed layout and prints it.
func (i *Inspect) Do(ctx context.Context) error {
	doc, err := i.Persistence.Get(ctx, i.Dataset)
	if err != nil {
		return err
	}

	cfg := chart.DefaultConfig()
	cfg.StackItems = i.Stack

	s := window.New(i.VisibleStart, i.VisibleEnd, i.Width, doc.Items, doc.Groups, cfg)

	pp := printers.PrettyPrint{ShowCollisions: i.ShowCollisions}
	pp.Title(doc.Name)
	pp.NewLine()
	pp.HeaderIntervals(i.VisibleStart, i.VisibleEnd, i.Width, timeunit.DefaultSteps())
	pp.Rows(doc.Groups, s.Layout)
	pp.Items(s.Layout)
	return nil
}
