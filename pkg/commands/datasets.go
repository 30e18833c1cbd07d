package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/timeline/pkg/runner/datasets"
	"tableflip.dev/timeline/pkg/store"
)

func addDatasets(topLevel *cobra.Command) {
	remove := ""

	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "list stored datasets",
		Example: `
timeline datasets
timeline datasets --delete "release plan"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			d := datasets.Datasets{Persistence: p, Delete: remove}
			return d.Do(context.Background())
		},
	}

	cmd.Flags().StringVar(&remove, "delete", "", "Delete the named dataset.")

	topLevel.AddCommand(cmd)
}
