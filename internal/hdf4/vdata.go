package hdf4

/*
#include <hdf.h>
*/
import "C"

import (
	"strings"
	"unsafe"
)

// VdataFieldInfo describes one field (column) of a Vdata table.
type VdataFieldInfo struct {
	Name  string
	Type  DataType
	Order int32 // elements per record for this field
}

// VdataInfo is a Vdata's identity and shape, read once at catalog build
// time (spec.md §4.1 step 3 / §3 VdataTable).
type VdataInfo struct {
	Name    string
	Class   string
	IsAttr  bool
	NFields int32
	NRecords int32
	Fields  []VdataFieldInfo
}

// VdataAttach attaches to the Vdata identified by ref and reads its full
// shape. It does not read record data; use VdataReadField for that.
func (h *Handle) VdataAttach(ref int32) (info VdataInfo, err error) {
	err = h.withLock(func() error {
		vd := C.VSattach(C.int32(h.fileV), C.int32(ref), C.CString("r"))
		if int32(vd) == -1 {
			return &LibraryError{Call: "VSattach"}
		}
		defer C.VSdetach(vd)

		var cname, cclass [C.VSNAMELENMAX]C.char
		C.VSgetname(vd, &cname[0])
		C.VSgetclass(vd, &cclass[0])

		isAttr := C.VSisattr(vd) == C.TRUE

		nFields := C.VFnfields(vd)
		nRecords := C.int32(C.VSelts(vd))

		fieldNameList := make([]byte, 4096)
		if C.VSgetfields(vd, (*C.char)(unsafe.Pointer(&fieldNameList[0]))) == C.FAIL {
			return &LibraryError{Call: "VSgetfields"}
		}
		names := strings.Split(strings.TrimRight(string(fieldNameList), "\x00"), ",")

		fields := make([]VdataFieldInfo, 0, int(nFields))
		for i := int32(0); i < int32(nFields); i++ {
			nativeType := C.VFfieldtype(vd, C.intn(i))
			order := C.VFfieldorder(vd, C.intn(i))
			dt, typeErr := fromNativeType(int32(nativeType))
			if typeErr != nil {
				return typeErr
			}
			name := ""
			if int(i) < len(names) {
				name = names[i]
			}
			fields = append(fields, VdataFieldInfo{
				Name:  name,
				Type:  dt,
				Order: int32(order),
			})
		}

		info = VdataInfo{
			Name:     C.GoString(&cname[0]),
			Class:    C.GoString(&cclass[0]),
			IsAttr:   isAttr,
			NFields:  int32(nFields),
			NRecords: int32(nRecords),
			Fields:   fields,
		}
		return nil
	})
	return
}

// VdataReadField reads every record of one field as raw bytes. The caller
// interprets the bytes using the field's DataType and Order (elements per
// record), same generic-dispatch convention as ReadHyperslab.
func (h *Handle) VdataReadField(ref int32, fieldName string, dt DataType, order int32, nRecords int32) ([]byte, error) {
	buf := make([]byte, int(nRecords)*int(order)*dt.Size())
	err := h.withLock(func() error {
		vd := C.VSattach(C.int32(h.fileV), C.int32(ref), C.CString("r"))
		if int32(vd) == -1 {
			return &LibraryError{Call: "VSattach"}
		}
		defer C.VSdetach(vd)

		cfield := C.CString(fieldName)
		defer C.free(unsafe.Pointer(cfield))

		if C.VSsetfields(vd, cfield) == C.FAIL {
			return &LibraryError{Call: "VSsetfields"}
		}
		if C.VSseek(vd, 0) == C.FAIL {
			return &LibraryError{Call: "VSseek"}
		}
		if len(buf) > 0 {
			n := C.VSread(vd, (*C.uint8)(unsafe.Pointer(&buf[0])), C.int32(nRecords), C.FULL_INTERLACE)
			if n == C.FAIL {
				return &LibraryError{Call: "VSread"}
			}
		}
		return nil
	})
	return buf, err
}
