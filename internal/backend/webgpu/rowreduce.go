//go:build windows

package webgpu

import (
	"fmt"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/rill-ml/rill/internal/kernel"
	"github.com/rill-ml/rill/internal/tensor"
)

// rowReduceShader generates the WGSL row-reduction kernel for one
// decomposition. The planner's shape is baked into the source: workgroup
// size, threads per row, and the odd scratch row stride all become
// compile-time constants, so each decomposition compiles to its own cached
// pipeline.
//
// WGSL exposes only the full workgroupBarrier tier; the cheaper
// subgroup-lockstep tier the planner accounts for is a per-device
// specialization the portable shader cannot express, so every tree level
// pays the full barrier here.
func rowReduceShader(dec kernel.Decomposition, mode tensor.ReduceMode) string {
	var identity, commit string
	switch mode {
	case tensor.ReduceSum:
		identity = "0.0"
		commit = "scratch[base]"
	case tensor.ReduceMean:
		identity = "0.0"
		commit = "scratch[base] / f32(params.cols)"
	case tensor.ReduceMax:
		identity = "-3.402823466e+38"
		commit = "scratch[base]"
	case tensor.ReduceMin:
		identity = "3.402823466e+38"
		commit = "scratch[base]"
	default:
		panic(fmt.Sprintf("webgpu: reduce: unsupported mode %s", mode))
	}

	combine := func(x, y string) string {
		switch mode {
		case tensor.ReduceMax:
			return fmt.Sprintf("max(%s, %s)", x, y)
		case tensor.ReduceMin:
			return fmt.Sprintf("min(%s, %s)", x, y)
		default:
			return fmt.Sprintf("%s + %s", x, y)
		}
	}

	// Scratch is addressed in f32 words, matching the planner's 32-bit word
	// stride, with the trailing half-group padding included.
	scratchWords := dec.ScratchBytes / 4

	return fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    rows: u32,
    cols: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

var<workgroup> scratch: array<f32, %d>;

@compute @workgroup_size(%d)
fn main(
    @builtin(local_invocation_id) local_id: vec3<u32>,
    @builtin(workgroup_id) workgroup_id: vec3<u32>
) {
    let tid = local_id.x;
    let lane = tid %% %du;
    let row_in_group = tid / %du;
    let row = workgroup_id.x * %du + row_in_group;
    let read_row = min(row, params.rows - 1u);
    let base = row_in_group * %du;

    // Strided local fold over this lane's columns.
    var acc: f32 = %s;
    for (var col = lane; col < params.cols; col = col + %du) {
        acc = %s;
    }
    scratch[base + lane] = acc;
    workgroupBarrier();

    // Tree fold across lanes of the same row. Levels above ThreadsPerRow/2
    // have no participating lanes, so the fold starts at the first live one.
    for (var step: u32 = %du; step >= 1u; step = step >> 1u) {
        if (lane < step) {
            scratch[base + lane] = %s;
        }
        workgroupBarrier();
    }

    if (lane == 0u && row < params.rows) {
        result[row] = %s;
    }
}
`,
		scratchWords,
		dec.GroupSize,
		dec.ThreadsPerRow,
		dec.ThreadsPerRow,
		dec.RowsPerGroup,
		dec.ScratchRowStrideWords,
		identity,
		dec.ThreadsPerRow,
		combine("acc", "input[read_row * params.cols + col]"),
		dec.ThreadsPerRow/2,
		combine("scratch[base + lane]", "scratch[base + lane + step]"),
		commit,
	)
}

// ReduceDim reduces float32 tensor elements along one dimension on the GPU.
//
// The tensor is viewed as an (A x B) matrix with B the extent of dim;
// non-contiguous reduction dimensions are gathered into contiguous rows
// before upload. Output dtype is float32 for all modes.
func (b *Backend) ReduceDim(x *tensor.RawTensor, dim int, mode tensor.ReduceMode, keepDim bool) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("webgpu: reduce %s: only float32 is supported, got %s", mode, x.DType()))
	}
	shape := x.Shape()
	ndim := len(shape)
	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("webgpu: reduce %s: dimension %d out of range for %dD tensor", mode, dim, ndim))
	}

	rows, cols := shape.ReduceView(dim)
	out, err := b.runRowReduce(gatherRows(x, dim, rows, cols), rows, cols, mode)
	if err != nil {
		panic("webgpu: ReduceDim: " + err.Error())
	}

	result, err := tensor.NewRaw(reducedShape(shape, dim, keepDim), tensor.Float32, tensor.WebGPU)
	if err != nil {
		panic("webgpu: ReduceDim: " + err.Error())
	}
	copy(tensor.As[float32](result), out)
	return result
}

// SumDim sums tensor elements along the specified dimension.
func (b *Backend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return b.ReduceDim(x, dim, tensor.ReduceSum, keepDim)
}

// MeanDim computes the mean of tensor elements along the specified dimension.
func (b *Backend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return b.ReduceDim(x, dim, tensor.ReduceMean, keepDim)
}

// Sum computes the total sum of all elements as a single-row reduction over
// the flattened tensor.
func (b *Backend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("webgpu: sum: only float32 is supported, got %s", x.DType()))
	}
	out, err := b.runRowReduce(tensor.As[float32](x), 1, x.NumElements(), tensor.ReduceSum)
	if err != nil {
		panic("webgpu: Sum: " + err.Error())
	}

	result, err := tensor.NewRaw(tensor.Shape{}, tensor.Float32, tensor.WebGPU)
	if err != nil {
		panic("webgpu: Sum: " + err.Error())
	}
	tensor.As[float32](result)[0] = out[0]
	return result
}

// runRowReduce plans the launch, compiles (or reuses) the decomposition's
// shader, and executes one reduction pass over rows x cols.
func (b *Backend) runRowReduce(data []float32, rows, cols int, mode tensor.ReduceMode) ([]float32, error) {
	dec := kernel.Plan(cols, 4, b.tun)

	name := fmt.Sprintf("row_reduce_%s_g%d_t%d", mode, dec.GroupSize, dec.ThreadsPerRow)
	shader := b.compileShader(name, rowReduceShader(dec, mode))
	pipeline := b.getOrCreatePipeline(name, shader)

	bufferInput := b.createBuffer(f32Bytes(data), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufferInput.Release()

	resultSize := uint64(rows * 4)
	bufferResult := b.createOutputBuffer(resultSize)
	defer bufferResult.Release()

	//nolint:gosec // G115: extents are non-negative
	bufferParams := b.uniformU32(uint32(rows), uint32(cols))
	defer bufferParams.Release()

	//nolint:gosec // G115: group count is non-negative
	b.dispatch(pipeline, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufferInput, 0, uint64(len(data)*4)),
		wgpu.BufferBindingEntry(1, bufferResult, 0, resultSize),
		wgpu.BufferBindingEntry(2, bufferParams, 0, 16),
	}, uint32(dec.Groups(rows)))

	raw, err := b.readBuffer(bufferResult, resultSize)
	if err != nil {
		return nil, err
	}
	//nolint:gosec // unsafe.Slice for zero-copy conversion of readback bytes
	return unsafe.Slice((*float32)(unsafe.Pointer(&raw[0])), rows), nil
}

// gatherRows returns x's elements laid out as rows x cols with the reduced
// dimension contiguous. Reductions over the last dimension reuse the
// tensor's storage directly.
func gatherRows(x *tensor.RawTensor, dim, rows, cols int) []float32 {
	shape, strides := x.Shape(), x.Strides()
	src := tensor.As[float32](x)
	if dim == len(shape)-1 {
		return src
	}

	kept := make([]int, 0, len(shape)-1)
	for i := range shape {
		if i != dim {
			kept = append(kept, i)
		}
	}
	dimStride := strides[dim]

	out := make([]float32, rows*cols)
	for r := 0; r < rows; r++ {
		base := 0
		remaining := r
		for i := len(kept) - 1; i >= 0; i-- {
			d := kept[i]
			base += (remaining % shape[d]) * strides[d]
			remaining /= shape[d]
		}
		for c := 0; c < cols; c++ {
			out[r*cols+c] = src[base+c*dimStride]
		}
	}
	return out
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

func f32Bytes(data []float32) []byte {
	if len(data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy upload
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4)
}
