// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// DatasetOptions captures the dataset selection flag shared by commands.
type DatasetOptions struct {
	Name string
}

// AddDatasetArgs wires the dataset flag on the provided command.
func AddDatasetArgs(cmd *cobra.Command, o *DatasetOptions) {
	cmd.Flags().StringVarP(&o.Name, "dataset", "d", "default",
		"Specify the dataset.")
}
