package timeunit

import (
	"fmt"
	"time"
)

// LabelWidth buckets how much horizontal room a header interval has, so the
// label can shrink with the cell.
type LabelWidth string

const (
	LabelLong       LabelWidth = "long"
	LabelMediumLong LabelWidth = "mediumLong"
	LabelMedium     LabelWidth = "medium"
	LabelShort      LabelWidth = "short"
)

// LabelFormats maps a unit and width class to a time layout string.
type LabelFormats map[Unit]map[LabelWidth]string

// DefaultLabelFormats covers minute through year. Second is intentionally
// absent: headers that fine are a setup bug, and Format fails hard on them.
func DefaultLabelFormats() LabelFormats {
	return LabelFormats{
		Year: {
			LabelLong:       "2006",
			LabelMediumLong: "2006",
			LabelMedium:     "2006",
			LabelShort:      "06",
		},
		Month: {
			LabelLong:       "January 2006",
			LabelMediumLong: "Jan 2006",
			LabelMedium:     "Jan",
			LabelShort:      "01",
		},
		Day: {
			LabelLong:       "Monday, January 2, 2006",
			LabelMediumLong: "Mon, Jan 2",
			LabelMedium:     "Mon 2",
			LabelShort:      "2",
		},
		Hour: {
			LabelLong:       "Mon Jan 2, 15:00",
			LabelMediumLong: "15:00",
			LabelMedium:     "15:00",
			LabelShort:      "15",
		},
		Minute: {
			LabelLong:       "15:04",
			LabelMediumLong: "15:04",
			LabelMedium:     "15:04",
			LabelShort:      "04",
		},
	}
}

// Format renders the header label for an interval start. A unit or width
// class with no registered layout is a configuration error and fails
// immediately instead of degrading.
func (f LabelFormats) Format(unit Unit, width LabelWidth, t time.Time) (string, error) {
	byWidth, ok := f[unit]
	if !ok {
		return "", fmt.Errorf("timeunit: no label format registered for unit %q", unit)
	}
	layout, ok := byWidth[width]
	if !ok {
		return "", fmt.Errorf("timeunit: no %q label format registered for unit %q", width, unit)
	}
	return t.Format(layout), nil
}

// WidthClass picks the label width bucket for a cell width in pixels.
func WidthClass(cellWidth float64) LabelWidth {
	switch {
	case cellWidth >= 150:
		return LabelLong
	case cellWidth >= 100:
		return LabelMediumLong
	case cellWidth >= 50:
		return LabelMedium
	default:
		return LabelShort
	}
}
