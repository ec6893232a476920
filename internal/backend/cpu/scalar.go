package cpu

import (
	"fmt"

	"github.com/rill-ml/rill/internal/tensor"
)

// AddScalar adds a scalar to every element.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp("addscalar", x, scalar, opAdd)
}

// MulScalar multiplies every element by a scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp("mulscalar", x, scalar, opMul)
}

func (cpu *CPUBackend) scalarOp(name string, x *tensor.RawTensor, scalar any, op binOp) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	switch x.DType() {
	case tensor.Float32:
		ewScalar(result, x, scalarAs[float32](name, scalar), binFn[float32](op))
	case tensor.Float64:
		ewScalar(result, x, scalarAs[float64](name, scalar), binFn[float64](op))
	case tensor.Int32:
		ewScalar(result, x, scalarAs[int32](name, scalar), binFn[int32](op))
	case tensor.Int64:
		ewScalar(result, x, scalarAs[int64](name, scalar), binFn[int64](op))
	case tensor.Uint8:
		ewScalar(result, x, scalarAs[uint8](name, scalar), binFn[uint8](op))
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, x.DType()))
	}
	return result
}

func ewScalar[T tensor.DType](dst, src *tensor.RawTensor, s T, f func(x, y T) T) {
	d, sv := tensor.As[T](dst), tensor.As[T](src)
	for i := range d {
		d[i] = f(sv[i], s)
	}
}

// scalarAs converts a caller-supplied scalar of any common numeric type to T.
func scalarAs[T tensor.DType](name string, s any) T {
	switch v := s.(type) {
	case int:
		return T(v)
	case int32:
		return T(v)
	case int64:
		return T(v)
	case uint8:
		return T(v)
	case float32:
		return T(v)
	case float64:
		return T(v)
	default:
		panic(fmt.Sprintf("%s: unsupported scalar type %T", name, s))
	}
}
