package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// RangeOptions captures the visible time range flags shared by commands.
type RangeOptions struct {
	From  string
	To    string
	Width float64
}

// AddRangeArgs wires the time range flags on the provided command.
func AddRangeArgs(cmd *cobra.Command, o *RangeOptions) {
	cmd.Flags().StringVar(&o.From, "from", "",
		"Start of the visible range (RFC3339 or YYYY-MM-DD). Defaults to twelve hours ago.")
	cmd.Flags().StringVar(&o.To, "to", "",
		"End of the visible range (RFC3339 or YYYY-MM-DD). Defaults to twelve hours from now.")
	cmd.Flags().Float64VarP(&o.Width, "width", "w", 120,
		"Chart width in pixels.")
}

// Resolve turns the flags into unix millisecond bounds.
func (o *RangeOptions) Resolve() (int64, int64, error) {
	now := time.Now()
	from := now.Add(-12 * time.Hour)
	to := now.Add(12 * time.Hour)

	var err error
	if o.From != "" {
		if from, err = parseTime(o.From); err != nil {
			return 0, 0, fmt.Errorf("invalid --from: %w", err)
		}
	}
	if o.To != "" {
		if to, err = parseTime(o.To); err != nil {
			return 0, 0, fmt.Errorf("invalid --to: %w", err)
		}
	}
	if !to.After(from) {
		return 0, 0, fmt.Errorf("--to must be after --from")
	}
	return from.UnixMilli(), to.UnixMilli(), nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}
