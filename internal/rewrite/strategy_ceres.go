package rewrite

import (
	"strings"

	"github.com/hyrax-data/hdf4view/internal/classify"
	"github.com/hyrax-data/hdf4view/internal/inventory"
)

// strategyCERAvgSyn keeps the first "Colatitude" and first "Longitude"
// field and drops any later duplicates (spec.md §4.3.1 CER_AVG/CER_SYN).
func strategyCERAvgSyn(cat *inventory.Catalog) error {
	seenColat, seenLon := false, false
	kept := cat.SDS[:0:0]
	for _, f := range cat.SDS {
		switch f.Name {
		case "Colatitude":
			if seenColat {
				continue
			}
			seenColat = true
			f.Kind = inventory.FieldLatitude
			if f.Units == "" {
				f.Units = "degrees"
			}
		case "Longitude":
			if seenLon {
				continue
			}
			seenLon = true
			f.Kind = inventory.FieldLongitude
			if f.Units == "" {
				f.Units = "degrees_east"
			}
		}
		kept = append(kept, f)
	}
	cat.SDS = kept
	return nil
}

// strategyCERRegional condenses the 3-D "regional" lat/lon fields to 1-D by
// keeping only the dimension matching "regional colat*"/"regional long*"
// and discarding the rest (spec.md §4.3.1 CER_ES4/CER_CGEO).
func strategyCERRegional(cat *inventory.Catalog) error {
	for _, f := range cat.SDS {
		if f.Rank != 3 {
			continue
		}
		var kept *inventory.Dimension
		var kind inventory.FieldKind
		for i, d := range f.Dims {
			lower := strings.ToLower(d.Name)
			switch {
			case strings.HasPrefix(lower, "regional colat"):
				kept = &f.Dims[i]
				kind = inventory.FieldLatitude
			case strings.HasPrefix(lower, "regional long"):
				kept = &f.Dims[i]
				kind = inventory.FieldLongitude
			}
		}
		if kept == nil {
			continue
		}
		f.Dims = []inventory.Dimension{*kept}
		f.Rank = 1
		f.Kind = kind
	}
	return nil
}

// strategyCERDaySRB synthesizes a 2-D latitude(180,360)/longitude(180,360)
// nested 1-degree grid and, for CER_SRBAVG3, also a 1-D zonal
// latitudez(180)/longitudez(1) pair (spec.md §4.3.1 CER_CDAY/CER_SRB).
func strategyCERDaySRB(cat *inventory.Catalog, product classify.SpecialProductType) error {
	latDim := inventory.Dimension{Name: "latitude", Size: 180}
	lonDim := inventory.Dimension{Name: "longitude", Size: 360}
	cat.SDS = append(cat.SDS,
		linearCV2D("latitude", latDim, lonDim, inventory.FieldLatitude, "degrees_north", func(row, _ int32) float64 {
			return 90 - (float64(row)+0.5)*1.0
		}),
		linearCV2D("longitude", latDim, lonDim, inventory.FieldLongitude, "degrees_east", func(_, col int32) float64 {
			return -180 + (float64(col)+0.5)*1.0
		}),
	)

	if product == classify.CER_SRBAVG3 {
		cat.SDS = append(cat.SDS,
			linearCV("latitudez", 180, inventory.FieldLatitude, "degrees_north", func(j int32) float64 {
				return 90 - (float64(j)+0.5)*1.0
			}),
			linearCV("longitudez", 1, inventory.FieldLongitude, "degrees_east", func(int32) float64 {
				return 0
			}),
		)
	}
	return nil
}

// strategyCERZavg synthesizes only the zonal latitudez(180)/longitudez(1)
// pair (spec.md §4.3.1 CER_ZAVG).
func strategyCERZavg(cat *inventory.Catalog) error {
	cat.SDS = append(cat.SDS,
		linearCV("latitudez", 180, inventory.FieldLatitude, "degrees_north", func(j int32) float64 {
			return 90 - (float64(j)+0.5)*1.0
		}),
		linearCV("longitudez", 1, inventory.FieldLongitude, "degrees_east", func(int32) float64 {
			return 0
		}),
	)
	return nil
}
