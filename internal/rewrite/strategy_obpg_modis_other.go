package rewrite

import (
	"fmt"
	"strings"

	"github.com/hyrax-data/hdf4view/internal/hdf4"
	"github.com/hyrax-data/hdf4view/internal/inventory"
)

// strategyOBPGL2 relabels every variable's "Number of Pixel Control
// Points" dimension to the true pixel extent given by the file's "Pixels
// per Scan Line" attribute (spec.md §4.3.1). Expanding the stored control
// points to that extent on read is left to pkg/hdf4view.
func strategyOBPGL2(cat *inventory.Catalog) error {
	attr, ok := cat.Global.Get("Pixels per Scan Line")
	if !ok {
		return fmt.Errorf("missing \"Pixels per Scan Line\" attribute")
	}
	vals := hdf4.DecodeSlice[float64](attr.Raw, attr.Type)
	if len(vals) == 0 {
		return fmt.Errorf("empty \"Pixels per Scan Line\" attribute")
	}
	extent := int32(vals[0])

	for _, f := range cat.SDS {
		for i, d := range f.Dims {
			if d.Name == "Number of Pixel Control Points" {
				f.Dims[i].Name = "pixels_per_scan_line"
				f.Dims[i].Size = extent
			}
		}
	}
	return nil
}

// strategyOBPGL3 synthesizes latitude/longitude CVs sized from the file's
// "Number of Lines"/"Number of Columns" dimensions and retargets every
// matching fakeDim to the corresponding name (spec.md §4.3.1).
func strategyOBPGL3(cat *inventory.Catalog) error {
	linesSize, ok1 := dimSizeNamed(cat, "Number of Lines")
	colsSize, ok2 := dimSizeNamed(cat, "Number of Columns")
	if !ok1 || !ok2 {
		return fmt.Errorf("missing \"Number of Lines\"/\"Number of Columns\" dimension")
	}

	cat.SDS = append(cat.SDS,
		linearCV("latitude", linesSize, inventory.FieldLatitude, "degrees_north", func(j int32) float64 {
			return 90 - (float64(j)+0.5)*180/float64(linesSize)
		}),
		linearCV("longitude", colsSize, inventory.FieldLongitude, "degrees_east", func(i int32) float64 {
			return -180 + (float64(i)+0.5)*360/float64(colsSize)
		}),
	)

	for _, f := range cat.SDS {
		for i, d := range f.Dims {
			if !isFakeDimName(d.Name) {
				continue
			}
			switch d.Size {
			case linesSize:
				f.Dims[i].Name = "latitude"
			case colsSize:
				f.Dims[i].Name = "longitude"
			}
		}
	}
	return nil
}

func dimSizeNamed(cat *inventory.Catalog, name string) (int32, bool) {
	for _, f := range cat.SDS {
		for _, d := range f.Dims {
			if d.Name == name {
				return d.Size, true
			}
		}
	}
	return 0, false
}

// strategyMODISArnss builds a size->dim-name map from the existing
// Latitude/Longitude fields and rewrites every other variable's matching-
// size dimensions to use those names (spec.md §4.3.1).
func strategyMODISArnss(cat *inventory.Catalog) error {
	lat := findFieldByName(cat, "Latitude")
	lon := findFieldByName(cat, "Longitude")
	if lat == nil || lon == nil {
		return fmt.Errorf("missing Latitude/Longitude fields")
	}
	lat.Kind = inventory.FieldLatitude
	lon.Kind = inventory.FieldLongitude

	sizeToName := make(map[int32]string)
	for _, d := range lat.Dims {
		sizeToName[d.Size] = d.Name
	}
	for _, d := range lon.Dims {
		if _, ok := sizeToName[d.Size]; !ok {
			sizeToName[d.Size] = d.Name
		}
	}

	for _, f := range cat.SDS {
		if f == lat || f == lon {
			continue
		}
		for i, d := range f.Dims {
			if name, ok := sizeToName[d.Size]; ok {
				f.Dims[i].Name = name
			}
		}
	}
	return nil
}

// strategyOther marks every scaled, self-named rank-1 SDS as a dim-scale
// CV, suppresses all "coordinates" attributes if any such dimension has no
// scale, and strips unambiguous ":EOSGRID" suffixes (MERRA; spec.md
// §4.3.1).
func strategyOther(cat *inventory.Catalog) error {
	anyNoScale := false
	for _, f := range cat.SDS {
		if f.Rank != 1 || len(f.Dims) != 1 || f.Dims[0].Name != f.Name {
			continue
		}
		if f.Dims[0].Scale != hdf4.ScaleTypeNone {
			f.Kind = inventory.FieldDimScale
		} else {
			anyNoScale = true
		}
	}

	stripEOSGridSuffix(cat)

	if anyNoScale {
		cat.SuppressCoordinates = true
	}
	return nil
}

// stripEOSGridSuffix drops a trailing ":EOSGRID" from a field's original
// name wherever the resulting base name does not collide with another
// field's name (spec.md §4.3.1).
func stripEOSGridSuffix(cat *inventory.Catalog) {
	const suffix = ":EOSGRID"
	for _, f := range cat.SDS {
		if !strings.HasSuffix(f.Name, suffix) {
			continue
		}
		base := strings.TrimSuffix(f.Name, suffix)
		if findFieldByName(cat, base) != nil {
			continue
		}
		f.NewName = base
	}
}
