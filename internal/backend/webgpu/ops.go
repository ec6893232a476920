//go:build windows

package webgpu

import (
	"fmt"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/rill-ml/rill/internal/tensor"
)

// Add performs element-wise addition on GPU.
func (b *Backend) Add(a, other *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runBinaryOp(a, other, "add", addShader)
	if err != nil {
		panic("webgpu: Add: " + err.Error())
	}
	return result
}

// Sub performs element-wise subtraction on GPU.
func (b *Backend) Sub(a, other *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runBinaryOp(a, other, "sub", subShader)
	if err != nil {
		panic("webgpu: Sub: " + err.Error())
	}
	return result
}

// Mul performs element-wise multiplication on GPU.
func (b *Backend) Mul(a, other *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runBinaryOp(a, other, "mul", mulShader)
	if err != nil {
		panic("webgpu: Mul: " + err.Error())
	}
	return result
}

// Div performs element-wise division on GPU.
func (b *Backend) Div(a, other *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runBinaryOp(a, other, "div", divShader)
	if err != nil {
		panic("webgpu: Div: " + err.Error())
	}
	return result
}

// AddScalar adds a scalar to every element on GPU.
func (b *Backend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result, err := b.runUnaryOp(x, "scalar_add", scalarAddShader, scalarF32(scalar))
	if err != nil {
		panic("webgpu: AddScalar: " + err.Error())
	}
	return result
}

// MulScalar multiplies every element by a scalar on GPU.
func (b *Backend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result, err := b.runUnaryOp(x, "scalar_mul", scalarMulShader, scalarF32(scalar))
	if err != nil {
		panic("webgpu: MulScalar: " + err.Error())
	}
	return result
}

// Exp computes e^x element-wise on GPU.
func (b *Backend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runUnaryOp(x, "exp", expShader, 0)
	if err != nil {
		panic("webgpu: Exp: " + err.Error())
	}
	return result
}

// Sqrt computes the square root element-wise on GPU.
func (b *Backend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runUnaryOp(x, "sqrt", sqrtShader, 0)
	if err != nil {
		panic("webgpu: Sqrt: " + err.Error())
	}
	return result
}

// Argmax returns the index of the maximum value along the specified
// dimension, one GPU thread per reduced row.
func (b *Backend) Argmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("webgpu: argmax: only float32 is supported, got %s", x.DType()))
	}
	shape := x.Shape()
	ndim := len(shape)
	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("webgpu: argmax: dimension %d out of range for %dD tensor", dim, ndim))
	}

	rows, cols := shape.ReduceView(dim)
	data := gatherRows(x, dim, rows, cols)

	shader := b.compileShader("argmax", argmaxShader)
	pipeline := b.getOrCreatePipeline("argmax", shader)

	bufferInput := b.createBuffer(f32Bytes(data), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufferInput.Release()

	resultSize := uint64(rows * 4)
	bufferResult := b.createOutputBuffer(resultSize)
	defer bufferResult.Release()

	//nolint:gosec // G115: extents are non-negative
	bufferParams := b.uniformU32(uint32(rows), uint32(cols))
	defer bufferParams.Release()

	//nolint:gosec // G115: workgroup count is non-negative
	workgroups := uint32((rows + workgroupSize - 1) / workgroupSize)
	b.dispatch(pipeline, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufferInput, 0, uint64(len(data)*4)),
		wgpu.BufferBindingEntry(1, bufferResult, 0, resultSize),
		wgpu.BufferBindingEntry(2, bufferParams, 0, 16),
	}, workgroups)

	raw, err := b.readBuffer(bufferResult, resultSize)
	if err != nil {
		panic("webgpu: Argmax: " + err.Error())
	}

	result, err := tensor.NewRaw(reducedShape(shape, dim, false), tensor.Int32, tensor.WebGPU)
	if err != nil {
		panic("webgpu: Argmax: " + err.Error())
	}
	copy(result.Data(), raw)
	return result
}

// scalarF32 converts a scalar operand of any supported numeric type to the
// backend's working precision.
func scalarF32(scalar any) float32 {
	switch s := scalar.(type) {
	case float32:
		return s
	case float64:
		return float32(s)
	case int:
		return float32(s)
	case int32:
		return float32(s)
	case int64:
		return float32(s)
	case uint8:
		return float32(s)
	default:
		panic(fmt.Sprintf("webgpu: unsupported scalar type %T", scalar))
	}
}
