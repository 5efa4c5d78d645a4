package hdf4

import (
	"encoding/binary"
	"math"
)

// Numeric is the closed set of element types spec.md §3 allows for an
// SdsField or VdataField.
type Numeric interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~float32 | ~float64
}

// DecodeSlice reinterprets a raw little-endian byte buffer produced by
// ReadHyperslab as a slice of T. This is the single generic dispatch point
// spec.md §9 calls for in place of one read/convert code path per HDF4
// native type.
func DecodeSlice[T Numeric](buf []byte, dt DataType) []T {
	n := len(buf) / dt.Size()
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = T(decodeScalarGeneric(buf[i*dt.Size():], dt))
	}
	return out
}

// EncodeFloat64Slice packs vals as little-endian bytes of the given type,
// the inverse of DecodeSlice/decodeScalarGeneric's float64 currency. Used
// wherever a value computed generically (coordinate synthesis, geolocation
// reconstruction) needs to be materialized into a variable's native type
// for caching or for return to a caller.
func EncodeFloat64Slice(vals []float64, dt DataType) []byte {
	buf := make([]byte, len(vals)*dt.Size())
	for i, v := range vals {
		encodeScalarGeneric(buf[i*dt.Size():], v, dt)
	}
	return buf
}

func encodeScalarGeneric(buf []byte, v float64, dt DataType) {
	switch dt {
	case Int8:
		buf[0] = byte(int8(v))
	case Uint8:
		buf[0] = byte(uint8(v))
	case Int16:
		binary.LittleEndian.PutUint16(buf, uint16(int16(v)))
	case Uint16:
		binary.LittleEndian.PutUint16(buf, uint16(v))
	case Int32:
		binary.LittleEndian.PutUint32(buf, uint32(int32(v)))
	case Uint32:
		binary.LittleEndian.PutUint32(buf, uint32(v))
	case Float32:
		binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(v)))
	case Float64:
		binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
	}
}

// decodeScalarGeneric decodes one element of the given type at the start of
// buf into a float64, the common currency used wherever the module needs to
// inspect a single value generically (fill-value comparison, coordinate
// synthesis) without branching on every native type at every call site.
func decodeScalarGeneric(buf []byte, dt DataType) float64 {
	switch dt {
	case Int8:
		return float64(int8(buf[0]))
	case Uint8:
		return float64(buf[0])
	case Int16:
		return float64(int16(binary.LittleEndian.Uint16(buf)))
	case Uint16:
		return float64(binary.LittleEndian.Uint16(buf))
	case Int32:
		return float64(int32(binary.LittleEndian.Uint32(buf)))
	case Uint32:
		return float64(binary.LittleEndian.Uint32(buf))
	case Float32:
		bits := binary.LittleEndian.Uint32(buf)
		return float64(math.Float32frombits(bits))
	case Float64:
		bits := binary.LittleEndian.Uint64(buf)
		return math.Float64frombits(bits)
	default:
		return 0
	}
}
