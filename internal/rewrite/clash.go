package rewrite

import (
	"fmt"

	"github.com/hyrax-data/hdf4view/internal/inventory"
)

// resolveClashes computes final unique names for every SdsField across the
// three disjoint buckets (data variables, lat/lon variables, other
// coordinate variables), appending "_1", "_2", ... to later colliding
// entries in source order, unique across the union of all three buckets
// (spec.md §4.3 step 5).
func resolveClashes(cat *inventory.Catalog) {
	var data, latlon, other []*inventory.SdsField
	for _, f := range cat.SDS {
		switch f.Kind {
		case inventory.FieldLatitude, inventory.FieldLongitude:
			latlon = append(latlon, f)
		case inventory.FieldGeneral:
			data = append(data, f)
		default:
			other = append(other, f)
		}
	}

	used := make(map[string]bool)
	for _, bucket := range [][]*inventory.SdsField{data, latlon, other} {
		for _, f := range bucket {
			f.NewName = uniqueName(f.NewName, used)
			used[f.NewName] = true
		}
	}
}

func uniqueName(name string, used map[string]bool) string {
	if !used[name] {
		return name
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", name, i)
		if !used[candidate] {
			return candidate
		}
	}
}
