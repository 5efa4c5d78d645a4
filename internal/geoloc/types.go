// Package geoloc reconstructs latitude/longitude arrays for an HDF-EOS2
// grid or MISR SOM swath from its ProjectionDescriptor, per spec.md §4.4.
// It never touches the cache or the catalog; callers (pkg/hdf4view) own
// both the ProjectionDescriptor's lifetime and any result caching.
package geoloc

import "github.com/hyrax-data/hdf4view/internal/hdf4"

// GCTP projection codes this module dispatches on. Values match the
// HDF-EOS2/GCTP numbering; codes not listed here fall through to the
// generic 2-D path.
const (
	ProjGeographic int32 = 0
	ProjUTM        int32 = 1
	ProjLAMAZ      int32 = 11
	ProjSOM        int32 = 22
	ProjCEA        int32 = 97
)

// Which selects the latitude or longitude half of a projection.
type Which int

const (
	Lat Which = iota
	Lon
)

// ProjectionDescriptor is everything the reconstructor needs to compute
// lat/lon values for one grid or swath, independent of how it was read off
// the file (spec.md §3 ProjectionDescriptor).
type ProjectionDescriptor struct {
	Proj   int32
	Zone   int32
	Sphere int32
	Params [13]float64
	PixReg int32
	Origin int32
	XDim   int32
	YDim   int32

	UpLeft   [2]float64
	LowRight [2]float64

	// YDimMajor, when true, flattens 2-D results with y as the slower-
	// varying (row-major) index; when false, x is slower-varying.
	YDimMajor bool

	// SpecialLon enables the 0..360 -> -180..180 unwrap for a
	// monotonically increasing longitude series that crosses 180.
	SpecialLon bool

	// SpecialFormat selects a fixed-formula reconstruction that bypasses
	// the GCTP/HDF-EOS2 library entirely: 0 = none (use Proj), 1 = "large
	// geographic" linear interpolation from corners, 3 = MOD13C2-like
	// fixed global range.
	SpecialFormat int

	FillValue    float64
	HasFillValue bool

	// Grid is the open HDF-EOS2 grid used for geographic/CEA/LAMAZ/UTM
	// row-column projection. Nil for SOM and the special formats, which
	// don't need it.
	Grid *hdf4.GridHandle

	// SOM-specific fields (spec.md §4.4's "NBLOCK x NOFFSET").
	MisrPath   int32
	NBlock     int32
	NOffset    int32
	MisrParams *hdf4.MISRProjParams
}

// family classifies which reconstruction algorithm a non-special-format
// descriptor uses.
type family int

const (
	familyGeographicCEA family = iota
	familySOM
	familyLAMAZ
	familyGeneric2D
)

func (d *ProjectionDescriptor) family() family {
	switch d.Proj {
	case ProjGeographic, ProjCEA:
		return familyGeographicCEA
	case ProjSOM:
		return familySOM
	case ProjLAMAZ:
		return familyLAMAZ
	default:
		return familyGeneric2D
	}
}
