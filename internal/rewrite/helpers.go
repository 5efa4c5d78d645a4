package rewrite

import (
	"fmt"

	"github.com/hyrax-data/hdf4view/internal/hdf4"
	"github.com/hyrax-data/hdf4view/internal/inventory"
)

// linearCV builds a synthetic rank-1 coordinate variable whose values come
// from valueFn(i) for index i along its single dimension, used by the
// product strategies that compute lat/lon/vertical axes analytically
// instead of reading them from the file (spec.md §4.3.1).
func linearCV(name string, size int32, kind inventory.FieldKind, units string, valueFn func(i int32) float64) *inventory.SdsField {
	return &inventory.SdsField{
		Name:    name,
		NewName: name,
		Rank:    1,
		Type:    hdf4.Float64,
		Dims:    []inventory.Dimension{{Name: name, Size: size}},
		Kind:    kind,
		Units:   units,
		Synthesize: func(slab hdf4.Hyperslab) ([]float64, error) {
			start, stride, count := int32(0), int32(1), size
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
				out[i] = valueFn(start + i*stride)
			}
			return out, nil
		},
	}
}

// linearCV2D builds a synthetic rank-2 coordinate-like field (used for the
// nested-grid CERES lat/lon synthesis) whose values come from
// valueFn(row, col).
func linearCV2D(name string, rowDim, colDim inventory.Dimension, kind inventory.FieldKind, units string, valueFn func(row, col int32) float64) *inventory.SdsField {
	return &inventory.SdsField{
		Name: name, NewName: name, Rank: 2, Type: hdf4.Float64,
		Dims:  []inventory.Dimension{rowDim, colDim},
		Kind:  kind,
		Units: units,
		Synthesize: func(slab hdf4.Hyperslab) ([]float64, error) {
			if len(slab.Count) != 2 {
				return nil, fmt.Errorf("%s: hyperslab must have rank 2, got %d", name, len(slab.Count))
			}
			rowStart, colStart := slab.Start[0], slab.Start[1]
			rowStride, colStride := stride1(slab.Stride, 0), stride1(slab.Stride, 1)
			rows, cols := slab.Count[0], slab.Count[1]
			out := make([]float64, int64(rows)*int64(cols))
			k := 0
			for r := int32(0); r < rows; r++ {
				row := rowStart + r*rowStride
				for c := int32(0); c < cols; c++ {
					col := colStart + c*colStride
					out[k] = valueFn(row, col)
					k++
				}
			}
			return out, nil
		},
	}
}

func stride1(stride []int32, i int) int32 {
	if i < len(stride) && stride[i] > 0 {
		return stride[i]
	}
	return 1
}

// findFieldByName returns the first field in cat.SDS whose original Name
// equals name.
func findFieldByName(cat *inventory.Catalog, name string) *inventory.SdsField {
	for _, f := range cat.SDS {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// removeFieldAt drops the field at the given index from cat.SDS, preserving
// order of the rest.
func removeFieldAt(cat *inventory.Catalog, idx int) {
	cat.SDS = append(cat.SDS[:idx], cat.SDS[idx+1:]...)
}

// dimByName returns the first dimension of f whose Name equals name.
func dimByName(f *inventory.SdsField, name string) (inventory.Dimension, bool) {
	for _, d := range f.Dims {
		if d.Name == name {
			return d, true
		}
	}
	return inventory.Dimension{}, false
}
