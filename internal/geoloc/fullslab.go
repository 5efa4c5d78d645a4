package geoloc

// FullSlab returns the (offset, stride, count) triple that addresses every
// element of which's full, unsubsetted array for this descriptor, per the
// output-rank table of spec.md §4.4. Callers that want to precompute and
// cache a whole grid (internal/subsetcache's lat/lon entries) use this
// instead of hand-deriving the shape from family-specific dimension
// fields.
func (d *ProjectionDescriptor) FullSlab(which Which) (offset, stride, count []int32) {
	switch {
	case d.SpecialFormat == 1, d.SpecialFormat == 3:
		return fullSlab1D(d, which)
	default:
		switch d.family() {
		case familyGeographicCEA:
			return fullSlab1D(d, which)
		case familySOM:
			n := d.NBlock
			if n == 0 {
				n = 180
			}
			return []int32{0, 0, 0}, []int32{1, 1, 1}, []int32{n, d.YDim, d.XDim}
		default: // LAMAZ, generic 2-D
			return []int32{0, 0}, []int32{1, 1}, []int32{d.YDim, d.XDim}
		}
	}
}

func fullSlab1D(d *ProjectionDescriptor, which Which) (offset, stride, count []int32) {
	n := d.XDim
	if which == Lat {
		n = d.YDim
	}
	return []int32{0}, []int32{1}, []int32{n}
}
