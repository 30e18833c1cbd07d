// Package ui launches the interactive chart over a stored dataset.
package ui

import (
	"context"

	"tableflip.dev/timeline/pkg/store"
	"tableflip.dev/timeline/pkg/tui/app"
)

// UI opens the full-screen chart for one dataset. A dataset that does not
// exist yet is seeded with the demo document so the first run shows
// something to interact with.
type UI struct {
	Persistence store.Persistence
	Dataset     string
}

// Do loads (or seeds) the dataset and runs the program until quit.
func (u *UI) Do(ctx context.Context) error {
	doc, err := u.Persistence.Get(ctx, u.Dataset)
	if err != nil {
		doc = DemoDocument(u.Dataset)
		if err := u.Persistence.Store(doc); err != nil {
			return err
		}
	}
	return app.Run(doc, u.Persistence)
}
