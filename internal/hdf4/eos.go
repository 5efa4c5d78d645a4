package hdf4

/*
#cgo LDFLAGS: -lhdfeos -lGctp
#include <hdf.h>
#include <HdfEosDef.h>
*/
import "C"

import (
	"unsafe"
)

// GridHandle is an open HDF-EOS2 grid within a file, attached via GDattach.
// Unlike Handle (one per file), a GridHandle is scoped to a single named
// grid and is closed independently of the file's SD/V interfaces.
type GridHandle struct {
	file *Handle
	fd   C.int32
	gd   C.int32
}

// OpenGrid opens the HDF-EOS2 interface on the same path as file and
// attaches to the named grid. HDF-EOS2's GDopen is a second, independent
// file descriptor over the same path -- it does not share file.sdID/fileV
// and is not protected by file's mutex. GridHandle holds no lock of its
// own: calls on one GridHandle are not serialized.
func OpenGrid(file *Handle, gridName string) (*GridHandle, error) {
	cpath := C.CString(file.path)
	defer C.free(unsafe.Pointer(cpath))

	fd := C.GDopen(cpath, C.DFACC_READ)
	if int32(fd) == -1 {
		return nil, &LibraryError{Call: "GDopen"}
	}

	cname := C.CString(gridName)
	defer C.free(unsafe.Pointer(cname))

	gd := C.GDattach(fd, cname)
	if int32(gd) == -1 {
		C.GDclose(fd)
		return nil, &LibraryError{Call: "GDattach"}
	}

	return &GridHandle{file: file, fd: fd, gd: gd}, nil
}

// Close detaches the grid and closes the HDF-EOS2 file descriptor.
func (g *GridHandle) Close() error {
	C.GDdetach(g.gd)
	C.GDclose(g.fd)
	return nil
}

// GridInfo is the shape and projection identity of a grid, per spec.md §3
// ProjectionDescriptor.
type GridInfo struct {
	XDim, YDim  int32
	UpLeft      [2]float64 // (x, y)
	LowRight    [2]float64
	Proj        int32
	Zone        int32
	Sphere      int32
	Params      [13]float64
	PixReg      int32
	Origin      int32
}

// Info reads the grid's dimensions, projection, pixel registration, and
// origin in one call.
func (g *GridHandle) Info() (GridInfo, error) {
	var info GridInfo

	var xdim, ydim C.int32
	var upLeft, lowRight [2]C.double
	if C.GDgridinfo(g.gd, &xdim, &ydim, &upLeft[0], &lowRight[0]) == C.FAIL {
		return info, &LibraryError{Call: "GDgridinfo"}
	}
	info.XDim, info.YDim = int32(xdim), int32(ydim)
	info.UpLeft = [2]float64{float64(upLeft[0]), float64(upLeft[1])}
	info.LowRight = [2]float64{float64(lowRight[0]), float64(lowRight[1])}

	var proj, zone, sphere C.int32
	var params [13]C.float64
	if C.GDprojinfo(g.gd, &proj, &zone, &sphere, &params[0]) == C.FAIL {
		return info, &LibraryError{Call: "GDprojinfo"}
	}
	info.Proj, info.Zone, info.Sphere = int32(proj), int32(zone), int32(sphere)
	for i := 0; i < 13; i++ {
		info.Params[i] = float64(params[i])
	}

	var pixReg C.int32
	if C.GDpixreginfo(g.gd, &pixReg) == C.FAIL {
		return info, &LibraryError{Call: "GDpixreginfo"}
	}
	info.PixReg = int32(pixReg)

	var origin C.int32
	if C.GDorigininfo(g.gd, &origin) == C.FAIL {
		return info, &LibraryError{Call: "GDorigininfo"}
	}
	info.Origin = int32(origin)

	return info, nil
}

// FieldInfo describes one data field of the grid (its rank, dims, and
// type), mirroring SDSInfo for plain SDS fields.
type FieldInfo struct {
	Rank     int32
	DimSizes []int32
	Type     DataType
}

// FieldInfo reads the shape of the named field.
func (g *GridHandle) FieldInfo(name string) (FieldInfo, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	var rank, dataType C.int32
	var dimSizes [C.H4_MAX_VAR_DIMS]C.int32
	var dimList [4096]C.char
	if C.GDfieldinfo(g.gd, cname, &rank, &dimSizes[0], &dataType, &dimList[0]) == C.FAIL {
		return FieldInfo{}, &LibraryError{Call: "GDfieldinfo"}
	}
	dt, err := fromNativeType(int32(dataType))
	if err != nil {
		return FieldInfo{}, err
	}
	sizes := make([]int32, int(rank))
	for i := range sizes {
		sizes[i] = int32(dimSizes[i])
	}
	return FieldInfo{Rank: int32(rank), DimSizes: sizes, Type: dt}, nil
}

// ReadField reads a hyperslab of the named field.
func (g *GridHandle) ReadField(name string, dt DataType, slab Hyperslab) ([]byte, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	n := slab.NumElements()
	buf := make([]byte, n*int64(dt.Size()))
	if n == 0 {
		return buf, nil
	}

	rank := len(slab.Start)
	start := make([]C.int32, rank)
	stride := make([]C.int32, rank)
	count := make([]C.int32, rank)
	for i := 0; i < rank; i++ {
		start[i] = C.int32(slab.Start[i])
		stride[i] = C.int32(slab.Stride[i])
		count[i] = C.int32(slab.Count[i])
	}

	if C.GDreadfield(g.gd, cname, &start[0], &stride[0], &count[0], unsafe.Pointer(&buf[0])) == C.FAIL {
		return nil, &LibraryError{Call: "GDreadfield"}
	}
	return buf, nil
}

// Project computes (lat, lon) for the given (row, col) grid coordinates
// using the library's GCTP-backed GDij2ll, per spec.md §4.4's "call the
// underlying HDF-EOS2 library to compute row/column -> lat/lon".
func (g *GridHandle) Project(rows, cols []int32) (lat, lon []float64, err error) {
	n := len(rows)
	lat = make([]float64, n)
	lon = make([]float64, n)
	if n == 0 {
		return lat, lon, nil
	}

	info, err := g.Info()
	if err != nil {
		return nil, nil, err
	}

	crow := make([]C.int32, n)
	ccol := make([]C.int32, n)
	for i := 0; i < n; i++ {
		crow[i] = C.int32(rows[i])
		ccol[i] = C.int32(cols[i])
	}
	clat := make([]C.float64, n)
	clon := make([]C.float64, n)

	var params [13]C.float64
	for i := 0; i < 13; i++ {
		params[i] = C.float64(info.Params[i])
	}

	if C.GDij2ll(
		C.int32(info.Proj), C.int32(info.Zone), &params[0], C.int32(info.Sphere),
		C.int32(info.XDim), C.int32(info.YDim),
		(*C.float64)(unsafe.Pointer(&[2]C.float64{C.double(info.UpLeft[0]), C.double(info.UpLeft[1])}[0])),
		(*C.float64)(unsafe.Pointer(&[2]C.float64{C.double(info.LowRight[0]), C.double(info.LowRight[1])}[0])),
		C.int32(n), &crow[0], &ccol[0], &clon[0], &clat[0],
		C.int32(info.PixReg), C.int32(info.Origin),
	) == C.FAIL {
		return nil, nil, &LibraryError{Call: "GDij2ll"}
	}

	for i := 0; i < n; i++ {
		lat[i] = float64(clat[i])
		lon[i] = float64(clon[i])
	}
	return lat, lon, nil
}
