// Package tensor provides the core tensor types shared by all rill backends.
package tensor

// DType is a constraint for supported tensor element types.
type DType interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Uint8:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	default:
		return "unknown"
	}
}

// AccumulatorType returns the working type a reduction over storage type dt
// accumulates into. Narrow integer storage is widened so that combining up to
// 2^31 elements cannot overflow; floating types accumulate in their own width.
func (dt DataType) AccumulatorType() DataType {
	switch dt {
	case Uint8:
		return Int32
	case Int32:
		return Int64
	case Float32, Float64, Int64:
		return dt
	default:
		panic("unknown data type")
	}
}
