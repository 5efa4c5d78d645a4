package hdf4

import "fmt"

// LibraryError wraps a failure returned by the native HDF4/HDF-EOS2 library.
// Call is the C entry point that failed (e.g. "SDselect", "GDattach") so
// callers higher up can decide how fatal the failure is without parsing
// strings.
type LibraryError struct {
	Call   string
	Status int32
}

func (e *LibraryError) Error() string {
	return fmt.Sprintf("hdf4: %s failed (status=%d)", e.Call, e.Status)
}

// ErrNotOpen indicates a call was made against a handle that was already
// closed or never opened.
type ErrNotOpen struct {
	Path string
}

func (e *ErrNotOpen) Error() string {
	return fmt.Sprintf("hdf4: %s is not open", e.Path)
}

// ErrUnsupportedType indicates an SDS or Vdata field uses a native HDF4
// number type outside the closed set this module supports (spec.md §3
// SdsField: element type drawn from {i8,u8,i16,u16,i32,u32,f32,f64}).
type ErrUnsupportedType struct {
	NativeType int32
}

func (e *ErrUnsupportedType) Error() string {
	return fmt.Sprintf("hdf4: unsupported native data type %d", e.NativeType)
}
