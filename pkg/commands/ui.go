package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/timeline/pkg/commands/options"
	"tableflip.dev/timeline/pkg/runner/ui"
	"tableflip.dev/timeline/pkg/store"
)

func addUI(topLevel *cobra.Command) {
	do := &options.DatasetOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive chart",
		Example: `
timeline ui
timeline ui --dataset "release plan"
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			i := ui.UI{Persistence: p, Dataset: do.Name}
			return i.Do(context.Background())
		},
	}

	options.AddDatasetArgs(cmd, do)

	topLevel.AddCommand(cmd)
}
