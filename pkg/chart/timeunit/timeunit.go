// Package timeunit picks header/grid granularities for a zoom level and
// iterates time ranges in calendar-snapped steps.
package timeunit

import "time"

// Unit is a header/grid granularity.
type Unit string

const (
	Second Unit = "second"
	Minute Unit = "minute"
	Hour   Unit = "hour"
	Day    Unit = "day"
	Month  Unit = "month"
	Year   Unit = "year"
)

// Steps configures how many units a single grid step spans, per unit.
// A step of 15 for Minute means only :00, :15, :30 and :45 are drawn.
type Steps map[Unit]int

// DefaultSteps uses a step of one for every unit.
func DefaultSteps() Steps {
	return Steps{Second: 1, Minute: 1, Hour: 1, Day: 1, Month: 1, Year: 1}
}

// For returns the configured step for a unit, defaulting to one.
func (s Steps) For(unit Unit) int {
	if s == nil {
		return 1
	}
	if step, ok := s[unit]; ok && step > 0 {
		return step
	}
	return 1
}

// The smallest cell worth drawing a grid line for, in pixels. Raising it
// makes the chart switch to a coarser unit sooner when zooming out.
const minCellWidth = 17.0

// Fixed conversion chain from milliseconds up to years. The month and year
// entries are approximations, not calendar-exact; they only steer the unit
// choice, never the actual interval boundaries.
var unitsAscending = []struct {
	unit    Unit
	divider float64
}{
	{Second, 1000},
	{Minute, 60},
	{Hour, 60},
	{Day, 24},
	{Month, 30},
	{Year, 12},
}

// Choose returns the finest unit whose grid cells stay at least minCellWidth
// wide for the given zoom span and canvas width. Units with a configured
// step above one need three times the cell width so their sparser labels do
// not crowd. Falls back to Year at extreme zoom-out.
func Choose(zoom int64, width float64, steps Steps) Unit {
	span := float64(zoom)
	for _, candidate := range unitsAscending {
		span /= candidate.divider
		step := steps.For(candidate.unit)

		cells := span / float64(step)
		cellWidth := minCellWidth
		if step > 1 {
			cellWidth = 3 * minCellWidth
		}
		if cells < width/cellWidth {
			return candidate.unit
		}
	}
	return Year
}

var nextUnit = map[Unit]Unit{
	Second: Minute,
	Minute: Hour,
	Hour:   Day,
	Day:    Month,
	Month:  Year,
	Year:   Year,
}

// Next returns the one-step-coarser unit. Year is a fixed point.
func Next(unit Unit) Unit {
	if coarser, ok := nextUnit[unit]; ok {
		return coarser
	}
	return Year
}

// Iterate walks [start, end) in steps of the unit, snapped to calendar
// boundaries in the local time zone. See IterateIn.
func Iterate(start, end int64, unit Unit, steps Steps, fn func(intervalStart, intervalEnd int64)) {
	IterateIn(time.Local, start, end, unit, steps, fn)
}

// IterateIn walks [start, end) in steps of the unit within the given time
// zone. The first interval is snapped down to the unit boundary (and, when
// the step is above one, further down to a step multiple), so it may begin
// before start; the last interval may extend past end. Intervals are
// contiguous, which makes header labels and grid lines share identical
// boundaries for the same inputs.
func IterateIn(loc *time.Location, start, end int64, unit Unit, steps Steps, fn func(intervalStart, intervalEnd int64)) {
	if loc == nil {
		loc = time.Local
	}
	step := steps.For(unit)

	cursor := startOf(time.UnixMilli(start).In(loc), unit)
	if step > 1 {
		cursor = snapToStep(cursor, unit, step)
	}

	for cursor.UnixMilli() < end {
		next := advance(cursor, unit, step)
		fn(cursor.UnixMilli(), next.UnixMilli())
		cursor = next
	}
}

// startOf truncates t down to the beginning of the unit.
func startOf(t time.Time, unit Unit) time.Time {
	switch unit {
	case Second:
		return t.Truncate(time.Second)
	case Minute:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	case Hour:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	case Day:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	case Month:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case Year:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	default:
		return t
	}
}

// snapToStep pulls a unit-aligned time further down to a multiple of the
// step within its natural parent, e.g. stepping minutes by 15 lands on
// :00/:15/:30/:45 regardless of where the range begins.
func snapToStep(t time.Time, unit Unit, step int) time.Time {
	switch unit {
	case Second:
		sec := t.Second()
		return t.Add(-time.Duration(sec%step) * time.Second)
	case Minute:
		min := t.Minute()
		return t.Add(-time.Duration(min%step) * time.Minute)
	case Hour:
		hour := t.Hour()
		return t.Add(-time.Duration(hour%step) * time.Hour)
	case Day:
		day := t.Day() - 1
		return t.AddDate(0, 0, -(day % step))
	case Month:
		month := int(t.Month()) - 1
		return t.AddDate(0, -(month % step), 0)
	case Year:
		return t.AddDate(-(t.Year() % step), 0, 0)
	default:
		return t
	}
}

// advance moves t forward by step units, calendar-exact for day and above.
func advance(t time.Time, unit Unit, step int) time.Time {
	switch unit {
	case Second:
		return t.Add(time.Duration(step) * time.Second)
	case Minute:
		return t.Add(time.Duration(step) * time.Minute)
	case Hour:
		return t.Add(time.Duration(step) * time.Hour)
	case Day:
		return t.AddDate(0, 0, step)
	case Month:
		return t.AddDate(0, step, 0)
	case Year:
		return t.AddDate(step, 0, 0)
	default:
		return t
	}
}
