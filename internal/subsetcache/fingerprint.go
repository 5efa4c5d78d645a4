package subsetcache

import (
	"fmt"
	"strings"

	"github.com/hyrax-data/hdf4view/internal/geoloc"
)

// LatLonKey computes the deterministic fingerprint for a lat/lon cache
// entry, per spec.md §4.5: projection code, zone, sphere, pixel
// registration, origin, (y-size, x-size) ordered to match YDimMajor, the
// four corner coordinates and the 13 GCTP parameters each formatted
// "%17.6f". prefix is the configured cache-file prefix (Config.Prefix).
func LatLonKey(prefix string, desc *geoloc.ProjectionDescriptor) string {
	var b strings.Builder
	b.WriteString(prefix)
	fmt.Fprintf(&b, "p%d_z%d_s%d_r%d_o%d_",
		desc.Proj, desc.Zone, desc.Sphere, desc.PixReg, desc.Origin)

	if desc.YDimMajor {
		fmt.Fprintf(&b, "y%d_x%d_", desc.YDim, desc.XDim)
	} else {
		fmt.Fprintf(&b, "x%d_y%d_", desc.XDim, desc.YDim)
	}

	fmt.Fprintf(&b, "%17.6f_%17.6f_%17.6f_%17.6f_",
		desc.UpLeft[0], desc.UpLeft[1], desc.LowRight[0], desc.LowRight[1])

	for _, p := range desc.Params {
		fmt.Fprintf(&b, "%17.6f_", p)
	}
	return sanitizeKey(b.String())
}

// DataKey computes the fingerprint for a whole-variable raw-data cache
// entry, per spec.md §4.5: "<prefix><sanitized-filename>_<variable-new-name>",
// chosen so that different variables within one file and the same variable
// across different files occupy disjoint cache slots.
func DataKey(prefix, filePath, variableNewName string) string {
	return sanitizeKey(prefix + sanitizeKey(filePath) + "_" + variableNewName)
}

// sanitizeKey strips characters that would be awkward or unsafe in a
// filesystem path component, leaving the fingerprint printable (per
// spec.md §4.5). Every replaced character becomes '_', so inputs that
// differ only in those characters produce the same key.
func sanitizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '_', r == '-', r == '.':
			b.WriteRune(r)
		case r == '/':
			b.WriteRune('_')
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
