package rewrite

import (
	"github.com/hyrax-data/hdf4view/internal/hdf4"
	"github.com/hyrax-data/hdf4view/internal/inventory"
)

// synthesizeMissingCVs adds a synthetic index CV for every dimension that,
// after the product strategy ran, still has no coordinate variable
// (spec.md §4.3 step 3).
func synthesizeMissingCVs(cat *inventory.Catalog) {
	var order []string
	sizes := make(map[string]int32)
	for _, f := range cat.SDS {
		for _, d := range f.Dims {
			if _, ok := sizes[d.Name]; !ok {
				sizes[d.Name] = d.Size
				order = append(order, d.Name)
			}
		}
	}

	for _, name := range order {
		if hasCoordinateVariable(cat, name) {
			continue
		}
		size := sizes[name]
		cat.SDS = append(cat.SDS, &inventory.SdsField{
			Name: name,
			Rank: 1,
			Type: hdf4.Int32,
			Dims: []inventory.Dimension{{Name: name, Size: size}},
			Kind: inventory.FieldSyntheticIndex,
			Units: "level",
			Synthesize: indexSynthesizer(),
		})
	}
}

func hasCoordinateVariable(cat *inventory.Catalog, dimName string) bool {
	for _, f := range cat.SDS {
		if f.Name == dimName && f.Rank == 1 && len(f.Dims) == 1 && f.Dims[0].Name == dimName {
			return true
		}
	}
	return false
}

// indexSynthesizer produces the 0..n-1 index values of a synthetic CV for
// an arbitrary requested hyperslab over its single dimension.
func indexSynthesizer() func(slab hdf4.Hyperslab) ([]float64, error) {
	return func(slab hdf4.Hyperslab) ([]float64, error) {
		start := int32(0)
		stride := int32(1)
		count := int32(0)
		if len(slab.Start) > 0 {
			start = slab.Start[0]
		}
		if len(slab.Stride) > 0 && slab.Stride[0] > 0 {
			stride = slab.Stride[0]
		}
		if len(slab.Count) > 0 {
			count = slab.Count[0]
		}
		out := make([]float64, count)
		for i := int32(0); i < count; i++ {
			out[i] = float64(start + i*stride)
		}
		return out, nil
	}
}
