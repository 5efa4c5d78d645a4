package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyrax-data/hdf4view/internal/inventory"
)

func newInspectCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Dump the rewritten catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := openDataset(args[0])
			if err != nil {
				return err
			}
			defer ds.Close()

			fmt.Println(ds)
			cat := ds.Catalog()
			fmt.Printf("global attributes: %d\n", len(cat.Global.Attrs))
			fmt.Printf("vdata tables: %d\n", len(cat.Vdata))
			fmt.Printf("variables: %d\n\n", len(cat.SDS))

			for _, f := range cat.SDS {
				printField(f, verbose)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "also print attributes and coordinates")
	return cmd
}

func printField(f *inventory.SdsField, verbose bool) {
	dims := make([]string, len(f.Dims))
	for i, d := range f.Dims {
		dims[i] = fmt.Sprintf("%s=%d", d.Name, d.Size)
	}
	fmt.Printf("%-32s %-10s [%s]\n", f.NewName, f.Type, dims)
	if !verbose {
		return
	}
	if f.Coordinates != "" {
		fmt.Printf("    coordinates: %s\n", f.Coordinates)
	}
	if f.Units != "" {
		fmt.Printf("    units: %s\n", f.Units)
	}
	for _, a := range f.Attrs.Attrs {
		fmt.Printf("    attr %s = %q\n", a.Name, string(a.Raw))
	}
}
