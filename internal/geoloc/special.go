package geoloc

type insufficientExtentError struct{ limit int32 }

func (e insufficientExtentError) Error() string {
	return "grid extent too small to interpolate from corners"
}

func errInsufficientExtent(limit int32) error {
	return insufficientExtentError{limit: limit}
}

type cornerRangeError struct{ field string }

func (e cornerRangeError) Error() string {
	return "corner coordinate " + e.field + " out of range"
}

// validateLargeGeoCorners checks the up-left/low-right corners against the
// valid lat/lon ranges (spec.md §4.4: "Validates corners lie in [-90,90]
// and [-180,180]").
func validateLargeGeoCorners(desc *ProjectionDescriptor) error {
	lons := [2]float64{desc.UpLeft[0], desc.LowRight[0]}
	lats := [2]float64{desc.UpLeft[1], desc.LowRight[1]}
	for _, lon := range lons {
		if lon < -180 || lon > 180 {
			return cornerRangeError{field: "longitude"}
		}
	}
	for _, lat := range lats {
		if lat < -90 || lat > 90 {
			return cornerRangeError{field: "latitude"}
		}
	}
	return nil
}

// computeLargeGeo handles the "non-standard large geographic" special
// format: rather than calling into HDF-EOS2 at all, lat/lon are linearly
// interpolated between the grid's upper-left and lower-right corners using
// the half-cell-centered formula of spec.md §4.4's special_format=1:
// lat(i) = up_left_y + (i+1/2)*(low_right_y - up_left_y)/ydim, symmetrically
// for longitude.
func computeLargeGeo(desc *ProjectionDescriptor, which Which, offset, stride, count []int32) ([]float64, error) {
	if len(offset) != 1 {
		return nil, &ProjectionError{Op: "computeLargeGeo", Err: errDimCount(1, len(offset))}
	}
	if err := validateLargeGeoCorners(desc); err != nil {
		return nil, &ProjectionError{Op: "computeLargeGeo", Err: err}
	}

	var limit int32
	var start, end float64
	if which == Lat {
		limit = desc.YDim
		start, end = desc.UpLeft[1], desc.LowRight[1]
	} else {
		limit = desc.XDim
		start, end = desc.UpLeft[0], desc.LowRight[0]
	}
	if limit < 1 {
		return nil, &ProjectionError{Op: "computeLargeGeo", Err: errInsufficientExtent(limit)}
	}

	idx := indices(offset[0], stride[0], count[0])
	out := make([]float64, len(idx))
	for i, v := range idx {
		if v < 0 || v >= limit {
			return nil, &OutOfRange{Dim: which.String(), Requested: v, Limit: limit}
		}
		out[i] = start + (float64(v)+0.5)*(end-start)/float64(limit)
	}
	return out, nil
}

// computeMOD13C2Like handles the fixed global ±90/±180 half-cell-centered
// format used by MOD13C2-like climate-modeling-grid products (spec.md
// §4.4's special_format=3): a pure formula over XDim/YDim needing no
// library call at all.
func computeMOD13C2Like(desc *ProjectionDescriptor, which Which, offset, stride, count []int32) ([]float64, error) {
	if len(offset) != 1 {
		return nil, &ProjectionError{Op: "computeMOD13C2Like", Err: errDimCount(1, len(offset))}
	}

	var limit int32
	var span float64
	var top float64
	if which == Lat {
		limit = desc.YDim
		span, top = 180, 90
	} else {
		limit = desc.XDim
		span, top = 360, -180
	}

	idx := indices(offset[0], stride[0], count[0])
	out := make([]float64, len(idx))
	step := span / float64(limit)
	for i, v := range idx {
		if v < 0 || v >= limit {
			return nil, &OutOfRange{Dim: which.String(), Requested: v, Limit: limit}
		}
		if which == Lat {
			out[i] = top - (float64(v)+0.5)*step
		} else {
			out[i] = top + (float64(v)+0.5)*step
		}
	}
	return out, nil
}
