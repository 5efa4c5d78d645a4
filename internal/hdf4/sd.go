package hdf4

/*
#include <hdf.h>
#include <mfhdf.h>
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// NumSDS returns the number of SDS objects and the number of global
// attributes in the file, per SDfileinfo.
func (h *Handle) NumSDS() (nDatasets, nAttrs int32, err error) {
	err = h.withLock(func() error {
		var nd, na C.int32
		if C.SDfileinfo(C.int32(h.sdID), &nd, &na) == C.FAIL {
			return &LibraryError{Call: "SDfileinfo"}
		}
		nDatasets, nAttrs = int32(nd), int32(na)
		return nil
	})
	return
}

// SDSInfo is the metadata SDgetinfo returns for one SDS, before any
// renaming or reclassification by the rewriter.
type SDSInfo struct {
	Name     string
	Rank     int32
	DimSizes []int32
	Type     DataType
	NAttrs   int32
}

// SDSByIndex opens the index'th SDS (0..nDatasets) and reads its shape,
// type, and attribute count. It does not read bulk data (spec.md §4.1
// load_catalog: "reads metadata only").
func (h *Handle) SDSByIndex(index int32) (ref int32, info SDSInfo, err error) {
	err = h.withLock(func() error {
		sdsID := C.SDselect(C.int32(h.sdID), C.int32(index))
		if sdsID == C.FAIL {
			return &LibraryError{Call: "SDselect"}
		}
		defer C.SDendaccess(sdsID)

		r := C.SDidtoref(sdsID)
		if r == C.FAIL {
			return &LibraryError{Call: "SDidtoref"}
		}
		ref = int32(r)

		var cname [C.H4_MAX_NC_NAME]C.char
		var rank, dataType, nAttrs C.int32
		var dimSizes [C.H4_MAX_VAR_DIMS]C.int32
		if C.SDgetinfo(sdsID, &cname[0], &rank, &dimSizes[0], &dataType, &nAttrs) == C.FAIL {
			return &LibraryError{Call: "SDgetinfo"}
		}

		dt, err := fromNativeType(int32(dataType))
		if err != nil {
			return err
		}

		sizes := make([]int32, int(rank))
		for i := range sizes {
			sizes[i] = int32(dimSizes[i])
		}

		info = SDSInfo{
			Name:     C.GoString(&cname[0]),
			Rank:     int32(rank),
			DimSizes: sizes,
			Type:     dt,
			NAttrs:   int32(nAttrs),
		}
		return nil
	})
	return
}

// SDSDimInfo describes one dimension of an SDS: its original (possibly
// fake, possibly empty) name, its materialized size, and its scale type.
// A size of 0 coming back from the library means "unlimited"; callers must
// replace it with the materialized size before exposing it (spec.md §3
// Dimension invariant).
type SDSDimInfo struct {
	Name      string
	Size      int32
	Scale     ScaleType
	Attrs     []Attribute
}

// SDSDim reads the dimension object for dimension dimIndex of the SDS
// identified by ref, including any attributes attached directly to the
// dimension (used to synthesize a "dim info" AttributeSet when the
// dimension has no scale, per spec.md §4.1 step 4).
func (h *Handle) SDSDim(ref int32, dimIndex int32) (dim SDSDimInfo, err error) {
	err = h.withLock(func() error {
		sdsID := C.SDreftoindex(C.int32(h.sdID), C.int32(ref))
		if sdsID == C.FAIL {
			return &LibraryError{Call: "SDreftoindex"}
		}
		sds := C.SDselect(C.int32(h.sdID), sdsID)
		if sds == C.FAIL {
			return &LibraryError{Call: "SDselect"}
		}
		defer C.SDendaccess(sds)

		dimID := C.SDgetdimid(sds, C.intn(dimIndex))
		if dimID == C.FAIL {
			return &LibraryError{Call: "SDgetdimid"}
		}

		var cname [C.H4_MAX_NC_NAME]C.char
		var size, dataType, nAttrs C.int32
		if C.SDdiminfo(dimID, &cname[0], &size, &dataType, &nAttrs) == C.FAIL {
			return &LibraryError{Call: "SDdiminfo"}
		}

		scale := ScaleTypeNone
		if dataType != 0 {
			if dataType == C.DFNT_CHAR8 || dataType == C.DFNT_CHAR {
				scale = ScaleTypeChar
			} else {
				scale = ScaleTypeNumeric
			}
		}

		attrs, err := readAttrList(int32(nAttrs), func(i int32, name *C.char, dt *C.int32, count *C.int32) C.intn {
			return C.SDattrinfo(dimID, C.intn(i), name, (*C.int32)(dt), count)
		}, func(i int32, buf unsafe.Pointer) C.intn {
			return C.SDreadattr(dimID, C.intn(i), buf)
		})
		if err != nil {
			return err
		}

		dim = SDSDimInfo{
			Name:  C.GoString(&cname[0]),
			Size:  int32(size),
			Scale: scale,
			Attrs: attrs,
		}
		return nil
	})
	return
}

// SDSAttributes reads every attribute attached to the SDS identified by ref.
func (h *Handle) SDSAttributes(ref int32, nAttrs int32) (attrs []Attribute, err error) {
	err = h.withLock(func() error {
		idx := C.SDreftoindex(C.int32(h.sdID), C.int32(ref))
		sds := C.SDselect(C.int32(h.sdID), idx)
		if sds == C.FAIL {
			return &LibraryError{Call: "SDselect"}
		}
		defer C.SDendaccess(sds)

		var err2 error
		attrs, err2 = readAttrList(nAttrs, func(i int32, name *C.char, dt *C.int32, count *C.int32) C.intn {
			return C.SDattrinfo(sds, C.intn(i), name, (*C.int32)(dt), count)
		}, func(i int32, buf unsafe.Pointer) C.intn {
			return C.SDreadattr(sds, C.intn(i), buf)
		})
		return err2
	})
	return
}

// FillValue reads the SDS's _FillValue attribute, if any.
func (h *Handle) FillValue(ref int32, dt DataType) (value float64, ok bool, err error) {
	err = h.withLock(func() error {
		idx := C.SDreftoindex(C.int32(h.sdID), C.int32(ref))
		sds := C.SDselect(C.int32(h.sdID), idx)
		if sds == C.FAIL {
			return &LibraryError{Call: "SDselect"}
		}
		defer C.SDendaccess(sds)

		buf := make([]byte, dt.Size())
		if C.SDgetfillvalue(sds, unsafe.Pointer(&buf[0])) == C.FAIL {
			ok = false
			return nil
		}
		value, err = decodeScalar(buf, dt)
		ok = err == nil
		return nil
	})
	return
}

// ReadHyperslab reads a strided subset of the SDS identified by ref into a
// typed Go slice. The element type is erased into the returned buffer at
// this single boundary (spec.md §9 design note: one generic dispatch point
// rather than one code path per type).
func (h *Handle) ReadHyperslab(ref int32, dt DataType, slab Hyperslab) ([]byte, error) {
	n := slab.NumElements()
	buf := make([]byte, n*int64(dt.Size()))
	err := h.withLock(func() error {
		idx := C.SDreftoindex(C.int32(h.sdID), C.int32(ref))
		sds := C.SDselect(C.int32(h.sdID), idx)
		if sds == C.FAIL {
			return &LibraryError{Call: "SDselect"}
		}
		defer C.SDendaccess(sds)

		rank := len(slab.Start)
		start := make([]C.int32, rank)
		stride := make([]C.int32, rank)
		count := make([]C.int32, rank)
		for i := 0; i < rank; i++ {
			start[i] = C.int32(slab.Start[i])
			stride[i] = C.int32(slab.Stride[i])
			count[i] = C.int32(slab.Count[i])
		}

		if C.SDreaddata(sds, &start[0], &stride[0], &count[0], unsafe.Pointer(&buf[0])) == C.FAIL {
			return &LibraryError{Call: "SDreaddata"}
		}
		return nil
	})
	return buf, err
}

func fromNativeType(native int32) (DataType, error) {
	switch native {
	case C.DFNT_INT8, C.DFNT_CHAR8, C.DFNT_CHAR:
		return Int8, nil
	case C.DFNT_UINT8, C.DFNT_UCHAR8:
		return Uint8, nil
	case C.DFNT_INT16:
		return Int16, nil
	case C.DFNT_UINT16:
		return Uint16, nil
	case C.DFNT_INT32:
		return Int32, nil
	case C.DFNT_UINT32:
		return Uint32, nil
	case C.DFNT_FLOAT32:
		return Float32, nil
	case C.DFNT_FLOAT64:
		return Float64, nil
	default:
		return 0, &ErrUnsupportedType{NativeType: native}
	}
}

// readAttrList is shared by every "enumerate N attributes on some object"
// call site: SDS, dimension, Vdata, Vdata field. infoFn fills in name/type/
// count for index i; readFn fills a pre-sized buffer with the raw bytes.
func readAttrList(
	n int32,
	infoFn func(i int32, name *C.char, dataType *C.int32, count *C.int32) C.intn,
	readFn func(i int32, buf unsafe.Pointer) C.intn,
) ([]Attribute, error) {
	attrs := make([]Attribute, 0, n)
	for i := int32(0); i < n; i++ {
		var cname [C.H4_MAX_NC_NAME]C.char
		var dataType, count C.int32
		if infoFn(i, &cname[0], &dataType, &count) == C.FAIL {
			return nil, &LibraryError{Call: "attrinfo"}
		}
		dt, err := fromNativeType(int32(dataType))
		if err != nil {
			return nil, err
		}
		buf := make([]byte, int(count)*dt.Size())
		if len(buf) > 0 {
			if readFn(i, unsafe.Pointer(&buf[0])) == C.FAIL {
				return nil, &LibraryError{Call: "readattr"}
			}
		}
		attrs = append(attrs, Attribute{
			Name:  C.GoString(&cname[0]),
			Type:  dt,
			Count: int(count),
			Raw:   buf,
		})
	}
	return attrs, nil
}

func decodeScalar(buf []byte, dt DataType) (float64, error) {
	if len(buf) < dt.Size() {
		return 0, fmt.Errorf("hdf4: short buffer for %s scalar", dt)
	}
	return decodeScalarGeneric(buf, dt), nil
}
