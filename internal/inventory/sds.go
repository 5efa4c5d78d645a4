package inventory

import (
	"fmt"

	"github.com/hyrax-data/hdf4view/internal/hdf4"
)

// scanSDS performs spec.md §4.1 step 4: scan every SDS by index, build a
// ref->index map, and for every dimension with no scale variable synthesize
// a "_dim_<i>" AttributeSet carrying at least the dimension's original name.
//
// paths maps an SDS reference number to the vgroup path it was found under
// during the walk (empty string if the SDS was never reached through any
// vgroup).
func scanSDS(h *hdf4.Handle, paths map[int32]string) ([]*SdsField, map[int32]int, map[string]AttributeSet, error) {
	nDatasets, _, err := h.NumSDS()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("read SD file info: %w", err)
	}

	fields := make([]*SdsField, 0, nDatasets)
	refIndex := make(map[int32]int, nDatasets)
	dimInfo := make(map[string]AttributeSet)

	for i := int32(0); i < nDatasets; i++ {
		ref, info, err := h.SDSByIndex(i)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("read SDS %d: %w", i, err)
		}

		dims := make([]Dimension, int(info.Rank))
		for d := int32(0); d < info.Rank; d++ {
			dimRaw, err := h.SDSDim(ref, d)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("read dimension %d of SDS %q: %w", d, info.Name, err)
			}
			size := dimRaw.Size
			if size == 0 {
				size = info.DimSizes[d]
			}
			dims[d] = Dimension{Name: dimRaw.Name, Size: size, Scale: dimRaw.Scale}

			if dimRaw.Scale == hdf4.ScaleTypeNone {
				key := fmt.Sprintf("_dim_%d", d)
				if _, seen := dimInfo[key]; !seen {
					attrs := dimRaw.Attrs
					hasName := false
					for _, a := range attrs {
						if a.Name == "name" {
							hasName = true
							break
						}
					}
					if !hasName {
						attrs = append(attrs, hdf4.Attribute{
							Name:  "name",
							Type:  hdf4.Int8,
							Count: len(dimRaw.Name),
							Raw:   []byte(dimRaw.Name),
						})
					}
					dimInfo[key] = AttributeSet{Name: key, Attrs: attrs}
				}
			}
		}

		attrs, err := h.SDSAttributes(ref, info.NAttrs)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("read attributes of SDS %q: %w", info.Name, err)
		}

		field := &SdsField{
			Name:            info.Name,
			Path:            paths[ref],
			Ref:             ref,
			Rank:            info.Rank,
			Type:            info.Type,
			Dims:            dims,
			Attrs:           AttributeSet{Name: info.Name, Attrs: attrs},
			SourceRef:       ref,
			SourceComponent: -1,
		}
		if units, ok := field.Attrs.Get("units"); ok {
			field.Units = string(units.Raw)
		}

		refIndex[ref] = len(fields)
		fields = append(fields, field)
	}

	return fields, refIndex, dimInfo, nil
}
