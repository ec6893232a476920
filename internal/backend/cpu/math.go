package cpu

import (
	"fmt"
	"math"

	"github.com/rill-ml/rill/internal/tensor"
)

// Exp computes the element-wise exponential. Floating dtypes only.
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryFloat("exp", x, math.Exp)
}

// Sqrt computes the element-wise square root. Floating dtypes only.
func (cpu *CPUBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unaryFloat("sqrt", x, math.Sqrt)
}

func (cpu *CPUBackend) unaryFloat(name string, x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	switch x.DType() {
	case tensor.Float32:
		d, s := result.AsFloat32(), x.AsFloat32()
		for i := range d {
			d[i] = float32(f(float64(s[i])))
		}
	case tensor.Float64:
		d, s := result.AsFloat64(), x.AsFloat64()
		for i := range d {
			d[i] = f(s[i])
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", name, x.DType()))
	}
	return result
}
