package hdf4

/*
#include <hdf.h>
*/
import "C"

import "unsafe"

// ObjTag identifies one child object of a Vgroup: its HDF4 tag (DFTAG_VG,
// DFTAG_VH, or a numeric-data tag) and reference number.
type ObjTag struct {
	Tag int32
	Ref int32
}

// IsVgroup reports whether this tag identifies a nested Vgroup.
func (t ObjTag) IsVgroup() bool { return t.Tag == int32(C.DFTAG_VG) }

// IsVdata reports whether this tag identifies a Vdata.
func (t ObjTag) IsVdata() bool { return t.Tag == int32(C.DFTAG_VH) }

// IsSDS reports whether this tag identifies a numeric-data (SDS) object.
func (t ObjTag) IsSDS() bool {
	return t.Tag == int32(C.DFTAG_NDG) || t.Tag == int32(C.DFTAG_SDG)
}

// LoneVgroups returns the reference numbers of every Vgroup that is not a
// child of any other Vgroup, per spec.md §4.1 step 1.
func (h *Handle) LoneVgroups() (refs []int32, err error) {
	err = h.withLock(func() error {
		n := C.Vlone(C.int32(h.fileV), nil, 0)
		if n == C.FAIL {
			return &LibraryError{Call: "Vlone"}
		}
		if n == 0 {
			return nil
		}
		buf := make([]C.int32, int(n))
		if C.Vlone(C.int32(h.fileV), &buf[0], C.int32(n)) == C.FAIL {
			return &LibraryError{Call: "Vlone"}
		}
		refs = make([]int32, int(n))
		for i, r := range buf {
			refs[i] = int32(r)
		}
		return nil
	})
	return
}

// VgroupInfo is a Vgroup's name and class, used to filter the internal
// bookkeeping groups HDF-EOS2 and the HDF4 library itself create (spec.md
// §4.1 step 1's ignore set).
type VgroupInfo struct {
	Name    string
	Class   string
	NAttrs  int32
	NFields int32 // number of immediate child tag/ref pairs
}

// VgroupAttach attaches to the Vgroup identified by ref, reads its name,
// class, and children, and detaches again. Returns the children as ObjTags
// so the caller can recurse without holding the Vgroup open.
func (h *Handle) VgroupAttach(ref int32) (info VgroupInfo, children []ObjTag, err error) {
	err = h.withLock(func() error {
		vg := C.Vattach(C.int32(h.fileV), C.int32(ref), C.CString("r"))
		if int32(vg) == -1 {
			return &LibraryError{Call: "Vattach"}
		}
		defer C.Vdetach(vg)

		var cname, cclass [C.VGNAMELENMAX]C.char
		if C.Vgetname(vg, &cname[0]) == C.FAIL {
			return &LibraryError{Call: "Vgetname"}
		}
		if C.Vgetclass(vg, &cclass[0]) == C.FAIL {
			return &LibraryError{Call: "Vgetclass"}
		}

		nAttrs := C.Vnattrs(vg)
		nEntries := C.Vntagrefs(vg)

		info = VgroupInfo{
			Name:    C.GoString(&cname[0]),
			Class:   C.GoString(&cclass[0]),
			NAttrs:  int32(nAttrs),
			NFields: int32(nEntries),
		}

		children = make([]ObjTag, 0, int(nEntries))
		for i := int32(0); i < int32(nEntries); i++ {
			var tag, ref C.int32
			if C.Vgettagref(vg, C.intn(i), &tag, &ref) == C.FAIL {
				return &LibraryError{Call: "Vgettagref"}
			}
			children = append(children, ObjTag{Tag: int32(tag), Ref: int32(ref)})
		}
		return nil
	})
	return
}

// VgroupAttributes reads the attributes attached to the Vgroup identified by
// ref (spec.md §4.1 step 3: "Read its attributes into a named AttributeSet").
func (h *Handle) VgroupAttributes(ref int32, nAttrs int32) (attrs []Attribute, err error) {
	err = h.withLock(func() error {
		vg := C.Vattach(C.int32(h.fileV), C.int32(ref), C.CString("r"))
		if int32(vg) == -1 {
			return &LibraryError{Call: "Vattach"}
		}
		defer C.Vdetach(vg)

		var err2 error
		attrs, err2 = readAttrList(nAttrs, func(i int32, name *C.char, dt *C.int32, count *C.int32) C.intn {
			return C.Vattrinfo(vg, C.intn(i), name, (*C.int32)(dt), count, nil)
		}, func(i int32, buf unsafe.Pointer) C.intn {
			return C.Vgetattr(vg, C.intn(i), buf)
		})
		return err2
	})
	return
}
