package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/timeline/pkg/chart"
	"tableflip.dev/timeline/pkg/chart/stack"
	"tableflip.dev/timeline/pkg/chart/timeunit"
)

// PrettyPrint renders computed layouts and dataset catalogs to stdout.
type PrettyPrint struct {
	ShowCollisions bool
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

// Datasets prints the stored dataset names.
func (pp *PrettyPrint) Datasets(names []string) {
	if len(names) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}
	t := color.New()
	for _, name := range names {
		_, _ = t.Printf("  %s\n", name)
	}
	_, _ = t.Println("")
}

// Items prints one row per computed item dimension.
func (pp *PrettyPrint) Items(layout stack.Layout) {
	if len(layout.Items) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" no items on canvas\n\n")
		return
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{
		bold.Sprint("ITEM"), bold.Sprint("ROW"),
		bold.Sprint("LEFT"), bold.Sprint("WIDTH"), bold.Sprint("TOP"),
	}
	if pp.ShowCollisions {
		header = append(header, bold.Sprint("T-START"), bold.Sprint("T-SPAN"))
	}
	tbl.AddRow(header...)

	for _, dim := range layout.Items {
		row := "-"
		if dim.Order != nil {
			row = fmt.Sprintf("%d", dim.Order.Index)
		}
		top := faint.Sprint("unplaced")
		if dim.Placed {
			top = fmt.Sprintf("%.2f", dim.Top)
		}
		cells := []interface{}{
			string(dim.ID), row,
			fmt.Sprintf("%.2f", dim.Left), fmt.Sprintf("%.2f", dim.Width), top,
		}
		if pp.ShowCollisions {
			cells = append(cells, fmt.Sprintf("%d", dim.CollisionLeft), fmt.Sprintf("%d", dim.CollisionWidth))
		}
		tbl.AddRow(cells...)
	}
	tbl.RightAlign(2)
	tbl.RightAlign(3)
	tbl.RightAlign(4)

	_, _ = fmt.Fprintln(color.Output, tbl)
	_, _ = fmt.Fprintln(color.Output, "")
}

// Rows prints the per-group geometry summary of a layout.
func (pp *PrettyPrint) Rows(groups []chart.Group, layout stack.Layout) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ROW"), bold.Sprint("GROUP"), bold.Sprint("TOP"), bold.Sprint("HEIGHT"), bold.Sprint("ITEMS"))

	for i, g := range groups {
		if i >= len(layout.GroupTops) || i >= len(layout.GroupHeights) {
			break
		}
		count := 0
		for _, dim := range layout.Items {
			if dim.Order != nil && dim.Order.Index == i {
				count++
			}
		}
		title := g.Title
		if title == "" {
			title = string(g.ID)
		}
		tbl.AddRow(fmt.Sprintf("%d", i), title,
			fmt.Sprintf("%.2f", layout.GroupTops[i]),
			fmt.Sprintf("%.2f", layout.GroupHeights[i]),
			fmt.Sprintf("%d", count))
	}

	_, _ = fmt.Fprintln(color.Output, tbl)

	total := color.New(color.Faint)
	_, _ = total.Printf("total height %.2f\n\n", layout.Height)
}

// HeaderIntervals prints the header grid a visible range would draw.
func (pp *PrettyPrint) HeaderIntervals(visibleStart, visibleEnd int64, width float64, steps timeunit.Steps) {
	unit := timeunit.Choose(visibleEnd-visibleStart, width, steps)

	t := color.New()
	u := color.New(color.FgHiYellow, color.Italic)
	_, _ = t.Print("unit ")
	_, _ = u.Println(string(unit))

	faint := color.New(color.Faint)
	labels := timeunit.DefaultLabelFormats()
	timeunit.Iterate(visibleStart, visibleEnd, unit, steps, func(intervalStart, intervalEnd int64) {
		label, err := labels.Format(unit, timeunit.LabelLong, time.UnixMilli(intervalStart))
		if err != nil {
			label = strings.TrimSpace(time.UnixMilli(intervalStart).Format(time.RFC3339))
		}
		_, _ = t.Printf("  %s", label)
		_, _ = faint.Printf("  [%d, %d)\n", intervalStart, intervalEnd)
	})
	_, _ = t.Println("")
}
