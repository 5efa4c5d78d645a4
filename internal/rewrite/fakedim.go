package rewrite

import (
	"fmt"
	"strings"

	"github.com/hyrax-data/hdf4view/internal/classify"
	"github.com/hyrax-data/hdf4view/internal/inventory"
)

func isFakeDimName(name string) bool {
	return strings.HasPrefix(name, "fakeDim")
}

// coalesceFakeDims renames every "fakeDim*" dimension to the name already
// in use for another, non-fake dimension of the same size, if one exists
// anywhere in the catalog (spec.md §4.3 step 1). HDF4 assigns these
// placeholder names independently per SDS, so the substitute is chosen by
// size alone, not by the fake name's suffix number.
func coalesceFakeDims(cat *inventory.Catalog, product classify.SpecialProductType) error {
	sizeToName := make(map[int32]string)
	for _, f := range cat.SDS {
		for _, d := range f.Dims {
			if isFakeDimName(d.Name) {
				continue
			}
			if _, ok := sizeToName[d.Size]; !ok {
				sizeToName[d.Size] = d.Name
			}
		}
	}

	for _, f := range cat.SDS {
		for i, d := range f.Dims {
			if !isFakeDimName(d.Name) {
				continue
			}
			substitute, ok := sizeToName[d.Size]
			if !ok {
				if product != classify.Other {
					return fmt.Errorf("dimension %q of field %q has size %d with no non-fake substitute", d.Name, f.Name, d.Size)
				}
				continue
			}
			f.Dims[i].Name = substitute
		}
	}

	return nil
}
