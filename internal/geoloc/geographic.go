package geoloc

import "math"

// computeGeographicCEA produces the 1-D latitude or longitude profile for
// a rectilinear geographic/CEA grid (spec.md §4.4's projection table: rank
// 1 output for these two projections). Latitude depends only on row,
// longitude only on column, so each is computed along its own axis with
// the other index pinned to 0, then repaired for any unreadable fill rows.
func computeGeographicCEA(desc *ProjectionDescriptor, which Which, offset, stride, count []int32) ([]float64, error) {
	if len(offset) != 1 {
		return nil, &ProjectionError{Op: "computeGeographicCEA", Err: errDimCount(1, len(offset))}
	}

	limit := desc.XDim
	if which == Lat {
		limit = desc.YDim
	}
	idx := indices(offset[0], stride[0], count[0])
	for _, i := range idx {
		if i < 0 || i >= limit {
			return nil, &OutOfRange{Dim: which.String(), Requested: i, Limit: limit}
		}
	}

	rows := make([]int32, len(idx))
	cols := make([]int32, len(idx))
	for i, v := range idx {
		if which == Lat {
			rows[i] = v
		} else {
			cols[i] = v
		}
	}

	lat, lon, err := desc.Grid.Project(rows, cols)
	if err != nil {
		return nil, &ProjectionError{Op: "GDij2ll", Err: err}
	}

	var out []float64
	if which == Lat {
		out = lat
	} else {
		out = lon
	}
	repairUniformStep(out, desc, which)
	return out, nil
}

// validRange returns the inclusive bound a repaired coordinate profile must
// not cross: [-90,90] for latitude, [-180,180] for longitude.
func validRange(which Which) (lo, hi float64) {
	if which == Lat {
		return -90, 90
	}
	return -180, 180
}

// repairUniformStep fills any fill-valued entries of a monotonic,
// uniform-step coordinate profile by extrapolating the detected step from
// the nearest valid neighbor, per spec.md §4.4's geographic fill-value
// repair algorithm. A tail extrapolation that would leave the valid
// lat/lon range is clamped to the boundary instead of being carried past
// it (spec.md §4.4: "reject if the resulting tail would leave the valid
// range"; end-to-end scenario 3: "last value clamped to <= 90").
func repairUniformStep(vals []float64, desc *ProjectionDescriptor, which Which) {
	if !desc.HasFillValue || len(vals) < 2 {
		return
	}
	isFill := func(v float64) bool {
		return math.IsNaN(v) || math.IsInf(v, 0) || v == desc.FillValue
	}

	step := 0.0
	for i := 1; i < len(vals); i++ {
		if !isFill(vals[i]) && !isFill(vals[i-1]) {
			step = vals[i] - vals[i-1]
			break
		}
	}
	if step == 0 {
		return
	}

	lo, hi := validRange(which)
	clamp := func(v float64) float64 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}

	for i := 0; i < len(vals); i++ {
		if !isFill(vals[i]) {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			if !isFill(vals[j]) {
				vals[i] = clamp(vals[j] + step*float64(i-j))
				break
			}
		}
		if isFill(vals[i]) {
			for j := i + 1; j < len(vals); j++ {
				if !isFill(vals[j]) {
					vals[i] = clamp(vals[j] - step*float64(j-i))
					break
				}
			}
		}
	}
}

func errDimCount(want, got int) error {
	return dimCountError{want: want, got: got}
}

type dimCountError struct{ want, got int }

func (e dimCountError) Error() string {
	return "wrong number of dimensions in hyperslab request"
}

func (w Which) String() string {
	if w == Lat {
		return "lat"
	}
	return "lon"
}
