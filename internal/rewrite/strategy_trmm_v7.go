package rewrite

import (
	"fmt"
	"strings"

	"github.com/hyrax-data/hdf4view/internal/inventory"
)

// strategyTRMML2V7 marks the existing Latitude/Longitude fields as CVs and
// rewrites every variable's preliminary new name to drop the leading two
// path components (spec.md §4.3.1). For product 2A12 it also synthesizes a
// vertical "nlayer" CV when that dimension is present with size 28.
func strategyTRMML2V7(cat *inventory.Catalog, cfg Config) error {
	for _, f := range cat.SDS {
		switch f.Name {
		case "Latitude":
			f.Kind = inventory.FieldLatitude
			if f.Units == "" {
				f.Units = "degrees_north"
			}
		case "Longitude":
			f.Kind = inventory.FieldLongitude
			if f.Units == "" {
				f.Units = "degrees_east"
			}
		}
		f.NewName = stripLeadingPathComponents(f.Path, 2, f.Name)
	}

	if cfg.ProductID == "2A12" {
		for _, f := range cat.SDS {
			for _, d := range f.Dims {
				if d.Name == "nlayer" && d.Size == 28 {
					cat.SDS = append(cat.SDS, linearCV("nlayer", 28, inventory.FieldVertical, "level", func(i int32) float64 {
						return float64(i)
					}))
					return nil
				}
			}
		}
	}
	return nil
}

// stripLeadingPathComponents drops the first n slash-separated segments of
// path, then joins what remains with name using "_".
func stripLeadingPathComponents(path string, n int, name string) string {
	segs := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(segs) == 1 && segs[0] == "" {
		segs = nil
	}
	if len(segs) > n {
		segs = segs[n:]
	} else {
		segs = nil
	}
	if len(segs) == 0 {
		return name
	}
	return strings.Join(segs, "_") + "_" + name
}

// strategyTRMML3SV7 parses the single GridHeader attribute and synthesizes
// matching latitude/longitude CVs, after dropping the three input-
// provenance attributes the product carries (spec.md §4.3.1). Product
// 3A26 additionally gets up to three size-6 "nthrsh*" threshold CVs.
func strategyTRMML3SV7(cat *inventory.Catalog, cfg Config) error {
	removeGlobalAttrs(cat, "InputFileNames", "InputAlgorithmVersions", "InputGenerationDateTimes")

	raw, ok := cat.Global.Get("GridHeader")
	if !ok {
		return fmt.Errorf("missing GridHeader attribute")
	}
	gh, err := ParseGridHeader(string(raw.Raw))
	if err != nil {
		return err
	}

	latSize, lonSize := gh.LatSize(), gh.LonSize()
	cat.SDS = append(cat.SDS,
		linearCV("latitude", latSize, inventory.FieldLatitude, "degrees_north", func(j int32) float64 { return gh.LatValue(j) }),
		linearCV("longitude", lonSize, inventory.FieldLongitude, "degrees_east", func(i int32) float64 { return gh.LonValue(i) }),
	)

	if cfg.ProductID == "3A26" {
		seen := make(map[string]bool)
		count := 0
		for _, f := range cat.SDS {
			if count >= 3 {
				break
			}
			for _, d := range f.Dims {
				if count >= 3 {
					break
				}
				if strings.HasPrefix(d.Name, "nthrsh") && d.Size == 6 && !seen[d.Name] {
					seen[d.Name] = true
					count++
					cat.SDS = append(cat.SDS, linearCV(d.Name, 6, inventory.FieldVertical, "threshold", func(i int32) float64 {
						return float64(i)
					}))
				}
			}
		}
	}

	return nil
}

// strategyTRMML3MV7 handles the multi-grid TRMM L3 monthly product: each
// GridHeaderN attribute gets its own dedicated lat/lon CVs, named after the
// dimension they actually describe so distinct grids don't collide, and
// grid 1's variables have their grid-name path suffix stripped (spec.md
// §4.3.1).
func strategyTRMML3MV7(cat *inventory.Catalog) error {
	for i := 1; ; i++ {
		key := fmt.Sprintf("GridHeader%d", i)
		raw, ok := cat.Global.Get(key)
		if !ok {
			break
		}
		gh, err := ParseGridHeader(string(raw.Raw))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		latSize, lonSize := gh.LatSize(), gh.LonSize()
		marker := fmt.Sprintf("/Grid%d/", i)

		madeLat, madeLon := false, false
		for _, f := range cat.SDS {
			if !strings.Contains(f.Path, marker) {
				continue
			}
			for _, d := range f.Dims {
				if d.Size == latSize && !madeLat {
					madeLat = true
					cat.SDS = append(cat.SDS, linearCV(d.Name, latSize, inventory.FieldLatitude, "degrees_north", func(j int32) float64 {
						return gh.LatValue(j)
					}))
				}
				if d.Size == lonSize && !madeLon {
					madeLon = true
					cat.SDS = append(cat.SDS, linearCV(d.Name, lonSize, inventory.FieldLongitude, "degrees_east", func(k int32) float64 {
						return gh.LonValue(k)
					}))
				}
			}
			if i == 1 {
				f.NewName = stripGridSuffix(f.Name, i)
			}
		}
	}
	return nil
}

// stripGridSuffix removes a trailing "_GridN" or "GridN" marker from a
// variable's original name.
func stripGridSuffix(name string, grid int) string {
	suffix := fmt.Sprintf("Grid%d", grid)
	trimmed := strings.TrimSuffix(name, "_"+suffix)
	if trimmed != name {
		return trimmed
	}
	return strings.TrimSuffix(name, suffix)
}

func removeGlobalAttrs(cat *inventory.Catalog, names ...string) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := cat.Global.Attrs[:0:0]
	for _, a := range cat.Global.Attrs {
		if !drop[a.Name] {
			kept = append(kept, a)
		}
	}
	cat.Global.Attrs = kept
}
