package cpu

import (
	"fmt"

	"github.com/rill-ml/rill/internal/tensor"
)

// Argmax returns the index of the maximum value along the specified
// dimension. Indices do not fit the engine's combine contract (argmax is not
// a plain accumulator fold), so this walks the rows directly.
func (cpu *CPUBackend) Argmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("argmax: dimension %d out of range for %dD tensor", dim, ndim))
	}

	result, err := tensor.NewRaw(reducedShape(shape, dim, false), tensor.Int32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("argmax: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		argmaxDim[float32](x, result, dim)
	case tensor.Float64:
		argmaxDim[float64](x, result, dim)
	case tensor.Int32:
		argmaxDim[int32](x, result, dim)
	case tensor.Int64:
		argmaxDim[int64](x, result, dim)
	case tensor.Uint8:
		argmaxDim[uint8](x, result, dim)
	default:
		panic(fmt.Sprintf("argmax: unsupported dtype %s", x.DType()))
	}
	return result
}

func argmaxDim[T tensor.DType](x, result *tensor.RawTensor, dim int) {
	data := tensor.As[T](x)
	out := tensor.As[int32](result)
	shape, strides := x.Shape(), x.Strides()
	dimSize := shape[dim]
	dimStride := strides[dim]

	for group := range out {
		// Base offset of this row, distributing the group index over the
		// kept dimensions.
		baseIdx := 0
		remaining := group
		for i := len(shape) - 1; i >= 0; i-- {
			if i == dim {
				continue
			}
			baseIdx += (remaining % shape[i]) * strides[i]
			remaining /= shape[i]
		}

		maxVal := data[baseIdx]
		maxIdx := int32(0)
		for i := 1; i < dimSize; i++ {
			if v := data[baseIdx+i*dimStride]; v > maxVal {
				maxVal = v
				//nolint:gosec // G115: dimension extents are < 2^31
				maxIdx = int32(i)
			}
		}
		out[group] = maxIdx
	}
}
