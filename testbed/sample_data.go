package main

import (
	"time"

	"tableflip.dev/timeline/pkg/chart"
)

type sampleDoc struct {
	Groups []chart.Group
	Items  []chart.Item
}

func sampleRange(hours int) (int64, int64) {
	now := time.Now()
	half := time.Duration(hours) * time.Hour / 2
	return now.Add(-half).UnixMilli(), now.Add(half).UnixMilli()
}

func sampleDocument() *sampleDoc {
	now := time.Now()
	at := func(d time.Duration) int64 {
		return now.Add(d).UnixMilli()
	}
	stacked := true
	pinned := false

	return &sampleDoc{
		Groups: []chart.Group{
			{ID: "backend", Title: "Backend"},
			{ID: "frontend", Title: "Frontend", StackItems: &stacked},
			{ID: "qa", Title: "QA", RightTitle: "2 testers"},
			{ID: "infra", Title: "Infrastructure"},
		},
		Items: []chart.Item{
			{ID: "api", Group: "backend", Title: "API endpoints",
				Start: at(-5 * time.Hour), End: at(-1 * time.Hour)},
			{ID: "schema", Group: "backend", Title: "Schema migration",
				Start: at(-3 * time.Hour), End: at(2 * time.Hour)},
			{ID: "views", Group: "frontend", Title: "Views",
				Start: at(-4 * time.Hour), End: at(1 * time.Hour)},
			{ID: "styles", Group: "frontend", Title: "Styles",
				Start: at(-2 * time.Hour), End: at(3 * time.Hour)},
			{ID: "e2e", Group: "qa", Title: "End to end pass",
				Start: at(1 * time.Hour), End: at(6 * time.Hour)},
			{ID: "freeze", Group: "infra", Title: "Change freeze",
				Start: at(-1 * time.Hour), End: at(8 * time.Hour),
				CanMove: &pinned, CanResize: chart.ResizeNone},
		},
	}
}
