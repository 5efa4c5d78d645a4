package hdf4

/*
#cgo LDFLAGS: -lmisrproj
#include "misrproj.h"
*/
import "C"

// MISRProjParams is the MISR SOM offset table for one path, initialized
// once via MisrInit and reused for every (block, line, sample) inversion
// (spec.md §4.4 SOM algorithm).
type MISRProjParams struct {
	handle C.MISRSOM
}

// MisrInit loads the MISR SOM parameter table for the given path number.
func MisrInit(path int32, nBlock, nOffset int32) (*MISRProjParams, error) {
	var h C.MISRSOM
	if C.misr_init(C.int(path), C.int(nBlock), C.int(nOffset), &h) != 0 {
		return nil, &LibraryError{Call: "misr_init"}
	}
	return &MISRProjParams{handle: h}, nil
}

// MisrInv computes SOM (X, Y) for a given (block, line, sample).
func (p *MISRProjParams) MisrInv(block, line, sample int32) (somX, somY float64, err error) {
	var x, y C.double
	if C.misrinv(p.handle, C.int(block), C.double(line), C.double(sample), &x, &y) != 0 {
		return 0, 0, &LibraryError{Call: "misrinv"}
	}
	return float64(x), float64(y), nil
}

// SomInv inverts SOM (X, Y) to (lat, lon) given the GCTP projection
// parameter vector, per spec.md §4.4: "invert to (lat,lon)".
func SomInv(somX, somY float64, params [13]float64) (lat, lon float64, err error) {
	var cparams [13]C.double
	for i, v := range params {
		cparams[i] = C.double(v)
	}
	var clat, clon C.double
	if C.sominv(C.double(somX), C.double(somY), &cparams[0], &clon, &clat) != 0 {
		return 0, 0, &LibraryError{Call: "sominv"}
	}
	return float64(clat), float64(clon), nil
}
