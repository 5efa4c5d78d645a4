package rewrite

import (
	"fmt"

	"github.com/hyrax-data/hdf4view/internal/inventory"
)

// strategyTRMML2V6 splits the 3-D "geolocation" field into 2-D latitude and
// longitude fields sharing the parent's first two dimensions, per spec.md
// §4.3.1. The split fields read through the original SDS, each selecting
// one plane of its trailing (size-2) dimension.
func strategyTRMML2V6(cat *inventory.Catalog) error {
	geo := findFieldByName(cat, "geolocation")
	if geo == nil {
		return fmt.Errorf("TRMM_L2_V6: no \"geolocation\" field present")
	}
	if geo.Rank != 3 || len(geo.Dims) != 3 {
		return fmt.Errorf("TRMM_L2_V6: \"geolocation\" field has rank %d, want 3", geo.Rank)
	}

	dims := geo.Dims[:2]
	lat := &inventory.SdsField{
		Name: "latitude", NewName: "latitude",
		Path: geo.Path, Rank: 2, Type: geo.Type,
		Dims: append([]inventory.Dimension{}, dims...),
		Kind: inventory.FieldLatitude, Units: "degrees_north",
		SourceRef: geo.Ref, SourceComponent: 0,
	}
	lon := &inventory.SdsField{
		Name: "longitude", NewName: "longitude",
		Path: geo.Path, Rank: 2, Type: geo.Type,
		Dims: append([]inventory.Dimension{}, dims...),
		Kind: inventory.FieldLongitude, Units: "degrees_east",
		SourceRef: geo.Ref, SourceComponent: 1,
	}

	replaceField(cat, geo, lat, lon)
	return nil
}

// strategyTRMML3BV6 induces longitude(1440)/latitude(400) CVs from the
// first field whose dims include sizes 1440 and 400, computed on read
// rather than stored (spec.md §4.3.1). L3B grids are 2-D ([400,1440]), so
// unlike L3A/L3C no rank constraint applies here (HDFSP.cc:1355-1371).
func strategyTRMML3BV6(cat *inventory.Catalog) error {
	return inducePixelCenterGrid(cat, 1440, 400, 0)
}

// strategyTRMML3AV6 is the (360, 180) analogue of strategyTRMML3BV6, gated
// on rank > 2 per HDFSP.cc.
func strategyTRMML3AV6(cat *inventory.Catalog) error {
	return inducePixelCenterGrid(cat, 360, 180, 3)
}

// strategyTRMML3CV6 is the (720, 148) analogue with a third, size-19
// dimension promoted to a vertical "height" CV.
func strategyTRMML3CV6(cat *inventory.Catalog) error {
	if err := inducePixelCenterGrid(cat, 720, 148, 3); err != nil {
		return err
	}
	for _, f := range cat.SDS {
		if f.Rank != 3 {
			continue
		}
		for _, d := range f.Dims {
			if d.Size == 19 {
				cat.SDS = append(cat.SDS, linearCV("height", 19, inventory.FieldVertical, "level", func(i int32) float64 {
					return float64(i)
				}))
				return nil
			}
		}
	}
	return nil
}

// inducePixelCenterGrid finds the first field whose rank is at least
// minRank (0 for no constraint) with one dimension of size lonSize and one
// of size latSize, and synthesizes matching longitude/latitude CVs whose
// values are pixel-center coordinates of a global equirectangular grid
// (spec.md §4.3.1's formula).
func inducePixelCenterGrid(cat *inventory.Catalog, lonSize, latSize, minRank int32) error {
	for _, f := range cat.SDS {
		if f.Rank < minRank {
			continue
		}
		var hasLon, hasLat bool
		for _, d := range f.Dims {
			if d.Size == lonSize {
				hasLon = true
			}
			if d.Size == latSize {
				hasLat = true
			}
		}
		if !hasLon || !hasLat {
			continue
		}
		cat.SDS = append(cat.SDS,
			linearCV("longitude", lonSize, inventory.FieldLongitude, "degrees_east", func(i int32) float64 {
				return -180 + (float64(i)+0.5)*360/float64(lonSize)
			}),
			linearCV("latitude", latSize, inventory.FieldLatitude, "degrees_north", func(j int32) float64 {
				return 90 - (float64(j)+0.5)*180/float64(latSize)
			}),
		)
		return nil
	}
	return fmt.Errorf("no field with dims (%d, %d) found", lonSize, latSize)
}

// replaceField removes old from cat.SDS and appends the replacements.
func replaceField(cat *inventory.Catalog, old *inventory.SdsField, replacements ...*inventory.SdsField) {
	for i, f := range cat.SDS {
		if f == old {
			removeFieldAt(cat, i)
			break
		}
	}
	cat.SDS = append(cat.SDS, replacements...)
}
