package inventory

import (
	"fmt"

	"github.com/hyrax-data/hdf4view/internal/hdf4"
)

// buildVdataTables attaches every raw Vdata reference discovered during the
// walk, applies the "treat as attribute" heuristic (spec.md §4.1's
// EnableVdataToAttr rule), and materializes field values for tables small
// enough to qualify.
func buildVdataTables(h *hdf4.Handle, raw []rawVdata, cfg Config) ([]*VdataTable, error) {
	tables := make([]*VdataTable, 0, len(raw))

	for _, rv := range raw {
		info, err := h.VdataAttach(rv.ref)
		if err != nil {
			return nil, fmt.Errorf("attach vdata %d: %w", rv.ref, err)
		}

		asAttr := cfg.EnableVdataToAttr && info.NRecords <= cfg.VdataAttrThreshold

		fields := make([]VdataField, 0, len(info.Fields))
		for _, f := range info.Fields {
			vf := VdataField{
				Name:    f.Name,
				Type:    f.Type,
				Order:   f.Order,
				Records: info.NRecords,
			}
			if asAttr {
				buf, err := h.VdataReadField(rv.ref, f.Name, f.Type, f.Order, info.NRecords)
				if err != nil {
					return nil, fmt.Errorf("read vdata field %q of %q: %w", f.Name, info.Name, err)
				}
				vf.Materialized = buf
			}
			fields = append(fields, vf)
		}

		tables = append(tables, &VdataTable{
			Name:              info.Name,
			Path:              rv.path,
			Ref:               rv.ref,
			Records:           info.NRecords,
			Fields:            fields,
			TreatAsAttributes: asAttr,
		})
	}

	return tables, nil
}
