package ui

import (
	"time"

	"tableflip.dev/timeline/pkg/chart"
	"tableflip.dev/timeline/pkg/store"
)

// DemoDocument builds a small schedule around the current time.
func DemoDocument(name string) *store.Document {
	now := time.Now()
	at := func(h time.Duration) int64 {
		return now.Add(h).UnixMilli()
	}
	fixed := false

	return &store.Document{
		Name: name,
		Groups: []chart.Group{
			{ID: "eng", Title: "Engineering"},
			{ID: "design", Title: "Design"},
			{ID: "ops", Title: "Operations", RightTitle: "on call"},
		},
		Items: []chart.Item{
			{ID: "review", Group: "eng", Title: "Code review",
				Start: at(-4 * time.Hour), End: at(-1 * time.Hour)},
			{ID: "deploy", Group: "eng", Title: "Deploy",
				Start: at(-2 * time.Hour), End: at(1 * time.Hour)},
			{ID: "mocks", Group: "design", Title: "Mockups",
				Start: at(-6 * time.Hour), End: at(2 * time.Hour)},
			{ID: "handoff", Group: "design", Title: "Handoff",
				Start: at(2 * time.Hour), End: at(3 * time.Hour)},
			{ID: "maint", Group: "ops", Title: "Maintenance window",
				Start: at(-1 * time.Hour), End: at(5 * time.Hour),
				CanMove: &fixed, CanResize: chart.ResizeNone},
		},
	}
}
