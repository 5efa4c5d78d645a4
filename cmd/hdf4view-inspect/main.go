// Command hdf4view-inspect is a thin debug CLI over pkg/hdf4view: it opens a
// file, runs the full Object Inventory -> Product Classifier -> Metadata
// Rewriter pipeline, and either dumps the resulting catalog or prints one
// requested variable subset. Everything past argument parsing is pkg/hdf4view
// itself; this binary exists only to drive it from a terminal.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/hyrax-data/hdf4view/pkg/hdf4view"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hdf4view-inspect",
		Short: "Inspect HDF4/HDF-EOS2 files through the CF-rewritten catalog",
		Long:  "hdf4view-inspect opens a file through pkg/hdf4view and prints its rewritten catalog or a requested variable subset.",
	}

	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newSubsetCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func openDataset(path string) (*hdf4view.Dataset, error) {
	return hdf4view.Open(context.Background(), path, hdf4view.DefaultOptions())
}
