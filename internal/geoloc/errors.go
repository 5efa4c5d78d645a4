package geoloc

import "fmt"

// ProjectionError reports a failure inverting or projecting coordinates,
// wrapping whatever the underlying GCTP/HDF-EOS2/MISR call returned.
type ProjectionError struct {
	Op  string
	Err error
}

func (e *ProjectionError) Error() string {
	return fmt.Sprintf("geoloc: %s: %v", e.Op, e.Err)
}

func (e *ProjectionError) Unwrap() error { return e.Err }

// OutOfRange reports a requested offset/stride/count outside the
// projection's grid extent.
type OutOfRange struct {
	Dim          string
	Requested    int32
	Limit        int32
}

func (e *OutOfRange) Error() string {
	return fmt.Sprintf("geoloc: %s index %d out of range (limit %d)", e.Dim, e.Requested, e.Limit)
}
