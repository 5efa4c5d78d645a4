package rewrite

import (
	"strings"

	"github.com/hyrax-data/hdf4view/internal/inventory"
)

// assignCoordinates emits the CF "coordinates" attribute for every data
// variable, handling the COARDS-1-D and "one shared, one not" suppression
// cases (spec.md §4.3 step 6).
func assignCoordinates(cat *inventory.Catalog) {
	if cat.SuppressCoordinates {
		for _, f := range cat.SDS {
			f.Coordinates = ""
		}
		return
	}

	coardsCV := make(map[string]string)
	for _, f := range cat.SDS {
		if f.IsCoordinateVariable() {
			coardsCV[f.Dims[0].Name] = f.NewName
		}
	}

	type pair struct {
		latName, lonName string
		dims             []string
	}
	var pairs []pair
	var lats, lons []*inventory.SdsField
	for _, f := range cat.SDS {
		switch {
		case f.Kind == inventory.FieldLatitude && f.Rank >= 2:
			lats = append(lats, f)
		case f.Kind == inventory.FieldLongitude && f.Rank >= 2:
			lons = append(lons, f)
		}
	}
	for _, lat := range lats {
		for _, lon := range lons {
			if sameDimNames(lat.Dims, lon.Dims) {
				pairs = append(pairs, pair{latName: lat.NewName, lonName: lon.NewName, dims: dimNames(lat.Dims)})
			}
		}
	}

	for _, f := range cat.SDS {
		if f.Kind != inventory.FieldGeneral {
			continue
		}
		if f.Rank == 1 && len(f.Dims) == 1 && f.Dims[0].Name == f.NewName {
			continue
		}

		fDims := make(map[string]bool, len(f.Dims))
		for _, d := range f.Dims {
			fDims[d.Name] = true
		}

		suppressed := false
		var latlonNames []string
		for _, p := range pairs {
			shared := 0
			for _, d := range p.dims {
				if fDims[d] {
					shared++
				}
			}
			switch shared {
			case 0:
				continue
			case len(p.dims):
				latlonNames = append(latlonNames, p.latName, p.lonName)
			default:
				suppressed = true
			}
		}
		if suppressed {
			f.Coordinates = ""
			continue
		}
		if len(latlonNames) > 0 {
			f.Coordinates = strings.Join(latlonNames, " ")
			continue
		}

		var names []string
		for _, d := range f.Dims {
			if cv, ok := coardsCV[d.Name]; ok {
				names = append(names, cv)
			}
		}
		f.Coordinates = strings.Join(names, " ")
	}
}

func dimNames(dims []inventory.Dimension) []string {
	out := make([]string, len(dims))
	for i, d := range dims {
		out[i] = d.Name
	}
	return out
}

func sameDimNames(a, b []inventory.Dimension) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			return false
		}
	}
	return true
}
