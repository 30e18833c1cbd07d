package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/timeline/pkg/commands/options"
	"tableflip.dev/timeline/pkg/runner/inspect"
	"tableflip.dev/timeline/pkg/store"
)

func addInspect(topLevel *cobra.Command) {
	do := &options.DatasetOptions{}
	ro := &options.RangeOptions{}
	stack := true
	collisions := false

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "print the computed layout for a dataset",
		Example: `
timeline inspect --dataset "release plan"
timeline inspect --from 2026-08-01 --to 2026-09-01 --width 800
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := ro.Resolve()
			if err != nil {
				return err
			}
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			i := inspect.Inspect{
				Persistence:    p,
				Dataset:        do.Name,
				VisibleStart:   from,
				VisibleEnd:     to,
				Width:          ro.Width,
				Stack:          stack,
				ShowCollisions: collisions,
			}
			return i.Do(context.Background())
		},
	}

	options.AddDatasetArgs(cmd, do)
	options.AddRangeArgs(cmd, ro)
	cmd.Flags().BoolVar(&stack, "stack", true, "Stack colliding items into tiers.")
	cmd.Flags().BoolVar(&collisions, "collisions", false, "Show collision-space spans.")

	topLevel.AddCommand(cmd)
}
