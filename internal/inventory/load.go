package inventory

import (
	"fmt"
	"strings"

	"github.com/hyrax-data/hdf4view/internal/hdf4"
)

// LoadCatalog builds a Catalog from an open file handle, reading metadata
// only (spec.md §4.1 "load_catalog").
func LoadCatalog(h *hdf4.Handle, cfg Config) (*Catalog, error) {
	walk, err := walkVgroups(h)
	if err != nil {
		return nil, fmt.Errorf("format error: %w", err)
	}

	sdsPaths := make(map[int32]string, len(walk.sds))
	for _, s := range walk.sds {
		sdsPaths[s.ref] = s.path
	}

	fields, refIndex, dimInfo, err := scanSDS(h, sdsPaths)
	if err != nil {
		return nil, fmt.Errorf("format error: %w", err)
	}

	tables, err := buildVdataTables(h, walk.vdata, cfg)
	if err != nil {
		return nil, fmt.Errorf("format error: %w", err)
	}

	globalAttrs, err := h.GlobalAttributes()
	if err != nil {
		return nil, fmt.Errorf("format error: reading global attributes: %w", err)
	}

	return &Catalog{
		SDS:      fields,
		Vdata:    tables,
		Global:   AttributeSet{Name: "", Attrs: globalAttrs},
		Vgroups:  walk.vgroupSet,
		DimInfo:  dimInfo,
		refIndex: refIndex,
	}, nil
}

// LoadCatalogHybrid is like LoadCatalog, but drops SDS and Vdata objects
// that are already exposed through the HDF-EOS2 grid API, to avoid
// presenting the same data twice (spec.md §4.1 "load_catalog_hybrid").
func LoadCatalogHybrid(h *hdf4.Handle, cfg Config) (*Catalog, error) {
	cat, err := LoadCatalog(h, cfg)
	if err != nil {
		return nil, err
	}

	seenGeoFields := false
	for _, f := range cat.SDS {
		if pathEndsIn(f.Path, geoFieldsGroup) {
			seenGeoFields = true
			break
		}
	}
	if !seenGeoFields {
		for _, v := range cat.Vdata {
			if pathEndsIn(v.Path, geoFieldsGroup) {
				seenGeoFields = true
				break
			}
		}
	}

	keptSDS := cat.SDS[:0:0]
	refIndex := make(map[int32]int, len(cat.SDS))
	for _, f := range cat.SDS {
		if pathEndsIn(f.Path, dataFieldsGroup) || pathEndsIn(f.Path, geoFieldsGroup) {
			continue
		}
		refIndex[f.Ref] = len(keptSDS)
		keptSDS = append(keptSDS, f)
	}
	cat.SDS = keptSDS
	cat.refIndex = refIndex

	keptVdata := cat.Vdata[:0:0]
	for _, v := range cat.Vdata {
		if pathEndsIn(v.Path, geoFieldsGroup) {
			continue
		}
		if seenGeoFields && pathEndsIn(v.Path, dataFieldsGroup) {
			continue
		}
		keptVdata = append(keptVdata, v)
	}
	cat.Vdata = keptVdata

	return cat, nil
}

// pathEndsIn reports whether path's final slash-separated segment equals
// marker.
func pathEndsIn(path, marker string) bool {
	if path == "" {
		return false
	}
	segs := strings.Split(path, "/")
	return segs[len(segs)-1] == marker
}
