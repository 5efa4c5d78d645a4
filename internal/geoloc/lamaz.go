package geoloc

import (
	"math"

	"github.com/dhconnelly/rtreego"
)

// computeLAMAZ reconstructs a Lambert Azimuthal (or any other projection
// prone to polar/edge singularities) grid by projecting the whole grid up
// front and repairing invalid cells from their nearest valid neighbor,
// per spec.md §4.4's description of a "recursive diagonal/axial walk from
// the current cell toward the interior". An R-tree over the valid cells
// lets that walk be expressed as an expanding-box spatial query instead of
// a hand-rolled grid walk.
func computeLAMAZ(desc *ProjectionDescriptor, which Which, offset, stride, count []int32) ([]float64, error) {
	if len(offset) != 2 {
		return nil, &ProjectionError{Op: "computeLAMAZ", Err: errDimCount(2, len(offset))}
	}
	rowIdx, colIdx, err := rowColIndices(desc, offset, stride, count)
	if err != nil {
		return nil, err
	}

	lat, lon, err := fullGrid(desc)
	if err != nil {
		return nil, err
	}
	repairLAMAZ(lat, lon, desc)

	out := make([]float64, 0, len(rowIdx)*len(colIdx))
	appendRow := func(r, c int32) {
		i := int(r)*int(desc.XDim) + int(c)
		if which == Lat {
			out = append(out, lat[i])
		} else {
			out = append(out, lon[i])
		}
	}
	if desc.YDimMajor {
		for _, r := range rowIdx {
			for _, c := range colIdx {
				appendRow(r, c)
			}
		}
	} else {
		for _, c := range colIdx {
			for _, r := range rowIdx {
				appendRow(r, c)
			}
		}
	}
	return out, nil
}

// fullGrid projects every (row, col) cell of the grid in one call.
func fullGrid(desc *ProjectionDescriptor) (lat, lon []float64, err error) {
	n := int(desc.YDim) * int(desc.XDim)
	rows := make([]int32, 0, n)
	cols := make([]int32, 0, n)
	for r := int32(0); r < desc.YDim; r++ {
		for c := int32(0); c < desc.XDim; c++ {
			rows = append(rows, r)
			cols = append(cols, c)
		}
	}
	lat, lon, err = desc.Grid.Project(rows, cols)
	if err != nil {
		return nil, nil, &ProjectionError{Op: "GDij2ll", Err: err}
	}
	return lat, lon, nil
}

// gridCell is one valid grid point, indexed spatially by its own (col,
// row) position so that a repair query finds the nearest valid neighbor in
// grid space rather than in lat/lon space.
type gridCell struct {
	row, col int32
	lat, lon float64
}

func (c gridCell) Bounds() rtreego.Rect {
	point := rtreego.Point{float64(c.col), float64(c.row)}
	rect, _ := rtreego.NewRect(point, []float64{1e-9, 1e-9})
	return rect
}

func isInvalidLatLon(lat, lon float64) bool {
	const sentinel = 1e51
	switch {
	case math.IsNaN(lat), math.IsNaN(lon):
		return true
	case math.IsInf(lat, 0), math.IsInf(lon, 0):
		return true
	case math.Abs(lat) > 90, math.Abs(lon) > 180:
		return true
	case math.Abs(lat) >= sentinel, math.Abs(lon) >= sentinel:
		return true
	}
	return false
}

// repairLAMAZ replaces every invalid cell of a full-grid projection with
// its nearest valid neighbor, searched via an expanding bounding box
// around the cell's (col, row) position (spec.md §4.4).
func repairLAMAZ(lat, lon []float64, desc *ProjectionDescriptor) {
	tree := rtreego.NewTree(2, 25, 50)
	var invalid []int
	for r := int32(0); r < desc.YDim; r++ {
		for c := int32(0); c < desc.XDim; c++ {
			i := int(r)*int(desc.XDim) + int(c)
			if isInvalidLatLon(lat[i], lon[i]) {
				invalid = append(invalid, i)
				continue
			}
			tree.Insert(gridCell{row: r, col: c, lat: lat[i], lon: lon[i]})
		}
	}
	if len(invalid) == 0 {
		return
	}

	maxRadius := float64(desc.XDim)
	if float64(desc.YDim) > maxRadius {
		maxRadius = float64(desc.YDim)
	}

	for _, i := range invalid {
		row := int32(i) / desc.XDim
		col := int32(i) % desc.XDim
		cell, ok := nearestValidCell(tree, row, col, maxRadius)
		if !ok {
			continue
		}
		lat[i] = cell.lat
		lon[i] = cell.lon
	}
}

func nearestValidCell(tree *rtreego.Rtree, row, col int32, maxRadius float64) (gridCell, bool) {
	for radius := 1.0; radius <= maxRadius; radius *= 2 {
		point := rtreego.Point{float64(col) - radius, float64(row) - radius}
		rect, err := rtreego.NewRect(point, []float64{2 * radius, 2 * radius})
		if err != nil {
			continue
		}
		hits := tree.SearchIntersect(rect)
		if len(hits) == 0 {
			continue
		}
		best := hits[0].(gridCell)
		bestDist := cellDist2(best, row, col)
		for _, h := range hits[1:] {
			gc := h.(gridCell)
			if d := cellDist2(gc, row, col); d < bestDist {
				bestDist = d
				best = gc
			}
		}
		return best, true
	}
	return gridCell{}, false
}

func cellDist2(c gridCell, row, col int32) float64 {
	dr := float64(c.row - row)
	dc := float64(c.col - col)
	return dr*dr + dc*dc
}
