package hdf4

/*
#cgo LDFLAGS: -lmfhdf -ldf -ljpeg -lz
#include <hdf.h>
#include <mfhdf.h>

static int32 hdf4_open_sd(const char *path, int32 *sd_id) {
	*sd_id = SDstart(path, DFACC_READ);
	return *sd_id == FAIL ? FAIL : SUCCEED;
}

static int32 hdf4_open_v(const char *path, int32 *file_id) {
	*file_id = Hopen(path, DFACC_READ, 0);
	if (*file_id == FAIL) {
		return FAIL;
	}
	return Vstart(*file_id);
}
*/
import "C"

import (
	"sync"
	"unsafe"
)

// Handle is a process-local handle to one HDF4 file, per spec.md §3
// FileHandle. It owns the SD (scientific dataset) interface id and the
// H/V (vgroup/vdata) interface id, and serializes every call through a
// per-handle mutex since the native library is not reentrant on a single
// handle (spec.md §5).
type Handle struct {
	mu sync.Mutex

	path  string
	sdID  int32
	fileV int32 // Hopen() file id used for the V interface

	closed bool

	// refs supports EnablePassFileID (spec.md §6): when > 0 the enclosing
	// caller retains ownership and Close becomes a no-op until Release
	// brings it back to zero.
	refs int
}

// Open opens path for read-only access and starts both the SD and V
// interfaces. Returns a *LibraryError naming the failed call on failure;
// never panics on a missing or non-HDF4 file.
func Open(path string) (*Handle, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	var sdID C.int32
	if C.hdf4_open_sd(cpath, &sdID) == C.FAIL {
		return nil, &LibraryError{Call: "SDstart", Status: int32(sdID)}
	}

	var fileV C.int32
	if C.hdf4_open_v(cpath, &fileV) == C.FAIL {
		C.SDend(sdID)
		return nil, &LibraryError{Call: "Hopen/Vstart", Status: -1}
	}

	return &Handle{
		path:  path,
		sdID:  int32(sdID),
		fileV: int32(fileV),
	}, nil
}

// Path returns the filesystem path this handle was opened against.
func (h *Handle) Path() string { return h.path }

// Retain increments the handle's external reference count. Used when
// EnablePassFileID is set and an enclosing server wants to keep the handle
// open across many subsetting requests instead of reopening per read (see
// SPEC_FULL.md's PassFileID supplement).
func (h *Handle) Retain() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.refs++
}

// Release decrements the reference count and closes the underlying library
// handles once it reaches zero.
func (h *Handle) Release() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.refs > 0 {
		h.refs--
	}
	if h.refs > 0 {
		return nil
	}
	return h.closeLocked()
}

// Close closes the file's SD and V interfaces. Safe to call multiple times;
// only the first call does any work, matching spec.md §3's "closed exactly
// once" invariant (later calls are a no-op rather than an error, since
// callers under EnablePassFileID cannot always tell if they're last).
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.refs > 0 {
		return nil
	}
	return h.closeLocked()
}

func (h *Handle) closeLocked() error {
	if h.closed {
		return nil
	}
	h.closed = true
	C.Vend(C.int32(h.fileV))
	C.Hclose(C.int32(h.fileV))
	C.SDend(C.int32(h.sdID))
	return nil
}

// withLock runs fn while holding the handle's mutex, returning ErrNotOpen if
// the handle has already been closed. Every hdf4 call that touches the
// library goes through this so concurrent callers on the same Handle never
// interleave library calls (spec.md §5: "HDF4 is serialized per file handle
// by a per-FileHandle mutex").
func (h *Handle) withLock(fn func() error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return &ErrNotOpen{Path: h.path}
	}
	return fn()
}
