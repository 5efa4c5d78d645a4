package hdf4

/*
#include <hdf.h>
#include <mfhdf.h>
*/
import "C"

import "unsafe"

// GlobalAttributes reads the file-level attributes attached to the SD
// interface itself (spec.md §4.1 step 5: "File-level attributes are loaded
// once and attached to the Catalog").
func (h *Handle) GlobalAttributes() (attrs []Attribute, err error) {
	err = h.withLock(func() error {
		var nDatasets, nAttrs C.int32
		if C.SDfileinfo(C.int32(h.sdID), &nDatasets, &nAttrs) == C.FAIL {
			return &LibraryError{Call: "SDfileinfo"}
		}
		var err2 error
		attrs, err2 = readAttrList(int32(nAttrs), func(i int32, name *C.char, dt *C.int32, count *C.int32) C.intn {
			return C.SDattrinfo(C.int32(h.sdID), C.intn(i), name, (*C.int32)(dt), count)
		}, func(i int32, buf unsafe.Pointer) C.intn {
			return C.SDreadattr(C.int32(h.sdID), C.intn(i), buf)
		})
		return err2
	})
	return
}
