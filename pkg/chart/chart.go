package chart

// Id identifies a group or an item. Callers with numeric ids format them
// into strings once at the boundary.
type Id string

// ResizeMode describes which edges of an item may be resized.
type ResizeMode string

const (
	ResizeNone  ResizeMode = "none"
	ResizeLeft  ResizeMode = "left"
	ResizeRight ResizeMode = "right"
	ResizeBoth  ResizeMode = "both"
)

// ResizeEdge names the edge a resize gesture is acting on.
type ResizeEdge string

const (
	EdgeLeft  ResizeEdge = "left"
	EdgeRight ResizeEdge = "right"
)

// Group is a horizontal lane of the chart. Groups are owned by the caller;
// the layout engine never mutates them.
type Group struct {
	ID         Id     `json:"id"`
	Title      string `json:"title"`
	RightTitle string `json:"rightTitle,omitempty"`

	// Height, when positive, overrides the computed row height. Item
	// placement inside the row still uses the computed stacking positions,
	// so items can overflow a too-small override.
	Height float64 `json:"height,omitempty"`

	// StackItems overrides the chart-wide stacking default for this row.
	StackItems *bool `json:"stackItems,omitempty"`
}

// Item is a time-ranged event assigned to a group. Start and End are unix
// milliseconds; End >= Start is the caller's responsibility. Zero-width
// items are legal and render with a minimum width.
type Item struct {
	ID    Id     `json:"id"`
	Group Id     `json:"group"`
	Start int64  `json:"start_time"`
	End   int64  `json:"end_time"`
	Title string `json:"title,omitempty"`

	// Interaction permissions, consulted by the widget layer before a
	// gesture starts. nil / empty means "use the chart default".
	CanMove        *bool      `json:"canMove,omitempty"`
	CanResize      ResizeMode `json:"canResize,omitempty"`
	CanChangeGroup *bool      `json:"canChangeGroup,omitempty"`
	CanSelect      *bool      `json:"canSelect,omitempty"`
}

// Duration returns the item's time span in milliseconds.
func (it Item) Duration() int64 {
	return it.End - it.Start
}

// GroupOrder locates a group within the caller-supplied group slice.
type GroupOrder struct {
	Index int
	Group Group
}

// GroupOrders maps group ids to their order entry. Rebuild it whenever the
// group slice changes identity.
type GroupOrders map[Id]GroupOrder

// BuildGroupOrders derives the id → order mapping from the group slice.
func BuildGroupOrders(groups []Group) GroupOrders {
	orders := make(GroupOrders, len(groups))
	for i, g := range groups {
		orders[g.ID] = GroupOrder{Index: i, Group: g}
	}
	return orders
}

// Chart-wide defaults shared by the layout engine and the widget layer.
const (
	DefaultLineHeight      = 30.0
	DefaultItemHeightRatio = 0.65
	DefaultStackItems      = false

	// Zoom clamps: one minute up to twenty years, in milliseconds.
	MinZoom = int64(60 * 1000)
	MaxZoom = int64(20 * 366 * 24 * 60 * 60 * 1000)
)

// Config carries the knobs the layout engine needs beyond the data itself.
type Config struct {
	LineHeight      float64
	ItemHeightRatio float64
	StackItems      bool
	MinZoom         int64
	MaxZoom         int64
}

// DefaultConfig returns the chart defaults.
func DefaultConfig() Config {
	return Config{
		LineHeight:      DefaultLineHeight,
		ItemHeightRatio: DefaultItemHeightRatio,
		StackItems:      DefaultStackItems,
		MinZoom:         MinZoom,
		MaxZoom:         MaxZoom,
	}
}

// ItemHeight returns the rendered item height for this config.
func (c Config) ItemHeight() float64 {
	ratio := c.ItemHeightRatio
	if ratio <= 0 {
		ratio = DefaultItemHeightRatio
	}
	line := c.LineHeight
	if line <= 0 {
		line = DefaultLineHeight
	}
	return line * ratio
}
