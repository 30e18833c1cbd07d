// Package datasets lists and removes stored dataset documents.
package datasets

import (
	"context"

	"tableflip.dev/timeline/pkg/printers"
	"tableflip.dev/timeline/pkg/store"
)

// Datasets lists the stored dataset names, or deletes one.
type Datasets struct {
	Persistence store.Persistence
	Delete      string
}

// Do runs the list or delete operation.
func (d *Datasets) Do(ctx context.Context) error {
	if d.Delete != "" {
		return d.Persistence.Delete(d.Delete)
	}

	pp := printers.PrettyPrint{}
	pp.Title("Datasets")
	pp.Datasets(d.Persistence.Datasets(ctx))
	return nil
}
