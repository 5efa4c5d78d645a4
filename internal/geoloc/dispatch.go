package geoloc

// ComputeLatLon returns the lat or lon values for the requested hyperslab
// of a projection, per spec.md §4.4's compute_latlon contract: the result
// always has exactly count[0]*count[1]*...  elements, the call is
// idempotent and referentially transparent in (desc, which, offset,
// stride, count), and no package-level caching happens here -- that is
// internal/subsetcache's job.
func ComputeLatLon(desc *ProjectionDescriptor, which Which, offset, stride, count []int32) ([]float64, error) {
	var vals []float64
	var err error

	switch {
	case desc.SpecialFormat == 1:
		vals, err = computeLargeGeo(desc, which, offset, stride, count)
	case desc.SpecialFormat == 3:
		vals, err = computeMOD13C2Like(desc, which, offset, stride, count)
	default:
		switch desc.family() {
		case familyGeographicCEA:
			vals, err = computeGeographicCEA(desc, which, offset, stride, count)
		case familySOM:
			vals, err = computeSOM(desc, which, offset, stride, count)
		case familyLAMAZ:
			vals, err = computeLAMAZ(desc, which, offset, stride, count)
		default:
			vals, err = computeGeneric2D(desc, which, offset, stride, count)
		}
	}
	if err != nil {
		return nil, err
	}

	if which == Lon && desc.SpecialLon {
		normalizeLongitudes(vals)
	}

	want := expectedCount(count)
	if int64(len(vals)) != want {
		return nil, &ProjectionError{Op: "ComputeLatLon", Err: errCountMismatch(len(vals), want)}
	}
	return vals, nil
}

func expectedCount(count []int32) int64 {
	n := int64(1)
	for _, c := range count {
		n *= int64(c)
	}
	return n
}

type countMismatchError struct {
	got  int
	want int64
}

func (e countMismatchError) Error() string {
	return "result has wrong element count"
}

func errCountMismatch(got int, want int64) error {
	return countMismatchError{got: got, want: want}
}

// indices expands an (offset, stride, count) triple for one dimension into
// the explicit list of source indices it addresses.
func indices(offset, stride, count int32) []int32 {
	out := make([]int32, count)
	s := stride
	if s <= 0 {
		s = 1
	}
	for i := range out {
		out[i] = offset + int32(i)*s
	}
	return out
}
