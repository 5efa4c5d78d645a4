package geoloc

import "github.com/hyrax-data/hdf4view/internal/hdf4"

// computeSOM reconstructs MISR Space Oblique Mercator geolocation: each
// requested (block, line, sample) triple is inverted to SOM (X, Y) via the
// path's offset table, then to (lat, lon) via the GCTP SOM inverse (spec.md
// §4.4's "misrinv . sominv" algorithm). Full-cube precomputation is an
// optional optimization the spec leaves open; this computes only the
// requested triples.
func computeSOM(desc *ProjectionDescriptor, which Which, offset, stride, count []int32) ([]float64, error) {
	if len(offset) != 3 {
		return nil, &ProjectionError{Op: "computeSOM", Err: errDimCount(3, len(offset))}
	}
	if desc.MisrParams == nil {
		return nil, &ProjectionError{Op: "computeSOM", Err: errMissingMisrParams}
	}

	blocks := indices(offset[0], stride[0], count[0])
	lines := indices(offset[1], stride[1], count[1])
	samples := indices(offset[2], stride[2], count[2])
	for _, b := range blocks {
		if b < 0 || b >= desc.NBlock {
			return nil, &OutOfRange{Dim: "block", Requested: b, Limit: desc.NBlock}
		}
	}

	out := make([]float64, 0, len(blocks)*len(lines)*len(samples))
	for _, b := range blocks {
		for _, ln := range lines {
			for _, sm := range samples {
				somX, somY, err := desc.MisrParams.MisrInv(b, ln, sm)
				if err != nil {
					return nil, &ProjectionError{Op: "misrinv", Err: err}
				}
				lat, lon, err := hdf4.SomInv(somX, somY, desc.Params)
				if err != nil {
					return nil, &ProjectionError{Op: "sominv", Err: err}
				}
				if which == Lat {
					out = append(out, lat)
				} else {
					out = append(out, lon)
				}
			}
		}
	}
	return out, nil
}

type missingMisrParamsError struct{}

func (missingMisrParamsError) Error() string { return "projection descriptor has no MISR SOM offset table" }

var errMissingMisrParams = missingMisrParamsError{}
