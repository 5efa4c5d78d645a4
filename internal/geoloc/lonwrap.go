package geoloc

// normalizeLongitudes rewrites a monotonically increasing 0..360 longitude
// series that crosses the antimeridian into the conventional -180..180
// range, detecting the crossing point rather than assuming its location
// (spec.md §4.4's "speciallon" normalization).
func normalizeLongitudes(lon []float64) {
	for i := range lon {
		if lon[i] > 180 {
			lon[i] -= 360
		}
	}
}
