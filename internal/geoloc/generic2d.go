package geoloc

// computeGeneric2D handles UTM and any other projection that doesn't need
// fill repair or MISR inversion: a plain per-cell GDij2ll call flattened
// in the order YDimMajor selects.
func computeGeneric2D(desc *ProjectionDescriptor, which Which, offset, stride, count []int32) ([]float64, error) {
	if len(offset) != 2 {
		return nil, &ProjectionError{Op: "computeGeneric2D", Err: errDimCount(2, len(offset))}
	}
	rowIdx, colIdx, err := rowColIndices(desc, offset, stride, count)
	if err != nil {
		return nil, err
	}

	rows, cols := flattenGrid(rowIdx, colIdx, desc.YDimMajor)
	lat, lon, err := desc.Grid.Project(rows, cols)
	if err != nil {
		return nil, &ProjectionError{Op: "GDij2ll", Err: err}
	}
	if which == Lat {
		return lat, nil
	}
	return lon, nil
}

func rowColIndices(desc *ProjectionDescriptor, offset, stride, count []int32) (rowIdx, colIdx []int32, err error) {
	rowIdx = indices(offset[0], stride[0], count[0])
	colIdx = indices(offset[1], stride[1], count[1])
	for _, r := range rowIdx {
		if r < 0 || r >= desc.YDim {
			return nil, nil, &OutOfRange{Dim: "row", Requested: r, Limit: desc.YDim}
		}
	}
	for _, c := range colIdx {
		if c < 0 || c >= desc.XDim {
			return nil, nil, &OutOfRange{Dim: "col", Requested: c, Limit: desc.XDim}
		}
	}
	return rowIdx, colIdx, nil
}

// flattenGrid cross-products the row and column index lists into parallel
// row/col slices, with the slower-varying axis chosen by ydimmajor.
func flattenGrid(rowIdx, colIdx []int32, yDimMajor bool) (rows, cols []int32) {
	n := len(rowIdx) * len(colIdx)
	rows = make([]int32, 0, n)
	cols = make([]int32, 0, n)
	if yDimMajor {
		for _, r := range rowIdx {
			for _, c := range colIdx {
				rows = append(rows, r)
				cols = append(cols, c)
			}
		}
		return rows, cols
	}
	for _, c := range colIdx {
		for _, r := range rowIdx {
			rows = append(rows, r)
			cols = append(cols, c)
		}
	}
	return rows, cols
}
