package cpu

import (
	"fmt"

	"github.com/rill-ml/rill/internal/kernel"
	"github.com/rill-ml/rill/internal/tensor"
)

// ReduceDim reduces tensor elements along one dimension.
//
// The tensor is viewed as an (A x B) matrix with B the extent of dim and A
// everything else; physical strides are folded into the engine's read
// function, so non-contiguous reduction dimensions cost one index translation
// per element and nothing more.
//
// Accumulation is widened independently of storage: uint8 sums accumulate in
// int32, int32 sums in int64. Sum results take the accumulator dtype; max and
// min preserve the input dtype; mean is defined for floating dtypes only.
//
// Parameters:
//   - dim: dimension to reduce (supports negative indexing: -1 = last dim)
//   - keepDim: if true, keep the reduced dimension with size 1
func (cpu *CPUBackend) ReduceDim(x *tensor.RawTensor, dim int, mode tensor.ReduceMode, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("reduce %s: dimension %d out of range for %dD tensor", mode, dim, ndim))
	}

	a, b := shape.ReduceView(dim)
	result, err := tensor.NewRaw(reducedShape(shape, dim, keepDim), reduceResultType(x.DType(), mode), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("reduce %s: %v", mode, err))
	}

	switch x.DType() {
	case tensor.Float32:
		out := tensor.As[float32](result)
		runReduce[float32](cpu, x, dim, a, b, mode, func(r int, v float32) { out[r] = v })
		if mode == tensor.ReduceMean {
			divideBy(out, float32(b))
		}
	case tensor.Float64:
		out := tensor.As[float64](result)
		runReduce[float64](cpu, x, dim, a, b, mode, func(r int, v float64) { out[r] = v })
		if mode == tensor.ReduceMean {
			divideBy(out, float64(b))
		}
	case tensor.Int32:
		if mode == tensor.ReduceSum {
			out := tensor.As[int64](result)
			runReduce[int32](cpu, x, dim, a, b, mode, func(r int, v int64) { out[r] = v })
		} else {
			out := tensor.As[int32](result)
			runReduce[int32](cpu, x, dim, a, b, mode, func(r int, v int64) { out[r] = int32(v) })
		}
	case tensor.Int64:
		out := tensor.As[int64](result)
		runReduce[int64](cpu, x, dim, a, b, mode, func(r int, v int64) { out[r] = v })
	case tensor.Uint8:
		if mode == tensor.ReduceSum {
			out := tensor.As[int32](result)
			runReduce[uint8](cpu, x, dim, a, b, mode, func(r int, v int32) { out[r] = v })
		} else {
			out := tensor.As[uint8](result)
			runReduce[uint8](cpu, x, dim, a, b, mode, func(r int, v int32) { out[r] = uint8(v) })
		}
	default:
		panic(fmt.Sprintf("reduce %s: unsupported dtype %s", mode, x.DType()))
	}
	return result
}

// SumDim sums tensor elements along the specified dimension.
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return cpu.ReduceDim(x, dim, tensor.ReduceSum, keepDim)
}

// MeanDim computes the mean of tensor elements along the specified dimension.
func (cpu *CPUBackend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return cpu.ReduceDim(x, dim, tensor.ReduceMean, keepDim)
}

// Sum computes the total sum of all elements (scalar result), as a single-row
// reduction over the flattened tensor.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(tensor.Shape{}, reduceResultType(x.DType(), tensor.ReduceSum), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sum: %v", err))
	}
	n := x.NumElements()

	switch x.DType() {
	case tensor.Float32:
		totalSum[float32, float32](cpu, x, n, tensor.As[float32](result))
	case tensor.Float64:
		totalSum[float64, float64](cpu, x, n, tensor.As[float64](result))
	case tensor.Int32:
		totalSum[int32, int64](cpu, x, n, tensor.As[int64](result))
	case tensor.Int64:
		totalSum[int64, int64](cpu, x, n, tensor.As[int64](result))
	case tensor.Uint8:
		totalSum[uint8, int32](cpu, x, n, tensor.As[int32](result))
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", x.DType()))
	}
	return result
}

// runReduce builds the Op binding storage type S to working type W and
// executes it through the engine. S == W for same-width accumulation.
func runReduce[S tensor.DType, W tensor.DType](cpu *CPUBackend, x *tensor.RawTensor, dim, a, b int, mode tensor.ReduceMode, write func(row int, v W)) {
	op := kernel.Op[W]{
		Read:    flatReader[S, W](x, dim, b),
		Write:   write,
		Combine: combineFn[W](mode),
	}
	kernel.ReduceColumns(op, a, b, cpu.tun)
}

func totalSum[S tensor.DType, W tensor.DType](cpu *CPUBackend, x *tensor.RawTensor, n int, out []W) {
	src := tensor.As[S](x)
	op := kernel.Op[W]{
		Read:    func(flat int) W { return W(src[flat]) },
		Write:   func(_ int, v W) { out[0] = v },
		Combine: func(p, q W) W { return p + q },
	}
	kernel.ReduceColumns(op, 1, n, cpu.tun)
}

// flatReader maps the engine's logical flat index row*B + column to a
// physical element, folding the tensor's strides into the read. Reductions
// over the last dimension of a contiguous tensor skip the translation.
func flatReader[S tensor.DType, W tensor.DType](x *tensor.RawTensor, dim, b int) func(flat int) W {
	src := tensor.As[S](x)
	shape, strides := x.Shape(), x.Strides()

	if dim == len(shape)-1 {
		return func(flat int) W { return W(src[flat]) }
	}

	kept := make([]int, 0, len(shape)-1)
	for i := range shape {
		if i != dim {
			kept = append(kept, i)
		}
	}
	dimStride := strides[dim]
	return func(flat int) W {
		r, c := flat/b, flat%b
		off := c * dimStride
		for i := len(kept) - 1; i >= 0; i-- {
			d := kept[i]
			off += (r % shape[d]) * strides[d]
			r /= shape[d]
		}
		return W(src[off])
	}
}

func combineFn[W tensor.DType](mode tensor.ReduceMode) func(p, q W) W {
	switch mode {
	case tensor.ReduceSum, tensor.ReduceMean:
		return func(p, q W) W { return p + q }
	case tensor.ReduceMax:
		return func(p, q W) W {
			if p > q {
				return p
			}
			return q
		}
	case tensor.ReduceMin:
		return func(p, q W) W {
			if p < q {
				return p
			}
			return q
		}
	default:
		panic(fmt.Sprintf("reduce: unsupported mode %s", mode))
	}
}

// reduceResultType selects the output dtype: sums take the widened
// accumulator type, max/min preserve storage, mean exists for floats only.
func reduceResultType(dt tensor.DataType, mode tensor.ReduceMode) tensor.DataType {
	switch mode {
	case tensor.ReduceSum:
		return dt.AccumulatorType()
	case tensor.ReduceMean:
		if dt != tensor.Float32 && dt != tensor.Float64 {
			panic(fmt.Sprintf("reduce mean: unsupported dtype %s (only float32/float64 supported)", dt))
		}
		return dt
	case tensor.ReduceMax, tensor.ReduceMin:
		return dt
	default:
		panic(fmt.Sprintf("reduce: unsupported mode %d", mode))
	}
}

func reducedShape(shape tensor.Shape, dim int, keepDim bool) tensor.Shape {
	if keepDim {
		out := shape.Clone()
		out[dim] = 1
		return out
	}
	out := make(tensor.Shape, 0, len(shape)-1)
	for i, extent := range shape {
		if i != dim {
			out = append(out, extent)
		}
	}
	return out
}

func divideBy[W float32 | float64](out []W, divisor W) {
	for i := range out {
		out[i] /= divisor
	}
}
