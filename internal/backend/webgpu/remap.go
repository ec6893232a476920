//go:build windows

package webgpu

import (
	"fmt"
	"math"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/rill-ml/rill/internal/tensor"
)

// remapShader resamples an image batch at per-pixel (x, y) coordinates, one
// thread per output pixel across all channels. Layout, border mode, and
// filter arrive through the params uniform; WGSL round() already rounds ties
// to even, matching the nearest-coordinate rule.
const remapShader = `
@group(0) @binding(0) var<storage, read> src: array<f32>;
@group(0) @binding(1) var<storage, read> map_xy: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    n: u32,
    c: u32,
    ih: u32,
    iw: u32,
    oh: u32,
    ow: u32,
    format: u32,
    border: u32,
    interp: u32,
    scalar: f32,
}
@group(0) @binding(3) var<uniform> params: Params;

fn border_index(p: i32, extent: i32) -> i32 {
    var q = p;
    if (q >= 0 && q < extent) {
        return q;
    }
    if (params.border == 1u) {
        return clamp(q, 0, extent - 1);
    }
    if (params.border == 2u) {
        loop {
            if (q < 0) {
                q = -q - 1;
            } else if (q >= extent) {
                q = 2 * extent - q - 1;
            } else {
                break;
            }
        }
        return q;
    }
    q = q % extent;
    if (q < 0) {
        q = q + extent;
    }
    return q;
}

fn src_offset(n_idx: u32, h: u32, w: u32, ch: u32) -> u32 {
    if (params.format == 0u) {
        return ((n_idx * params.c + ch) * params.ih + h) * params.iw + w;
    }
    return ((n_idx * params.ih + h) * params.iw + w) * params.c + ch;
}

fn dst_offset(n_idx: u32, h: u32, w: u32, ch: u32) -> u32 {
    if (params.format == 0u) {
        return ((n_idx * params.c + ch) * params.oh + h) * params.ow + w;
    }
    return ((n_idx * params.oh + h) * params.ow + w) * params.c + ch;
}

fn sample(n_idx: u32, row: i32, col: i32, ch: u32) -> f32 {
    if (params.border == 0u) {
        if (row < 0 || row >= i32(params.ih) || col < 0 || col >= i32(params.iw)) {
            return params.scalar;
        }
        return src[src_offset(n_idx, u32(row), u32(col), ch)];
    }
    let r = border_index(row, i32(params.ih));
    let c = border_index(col, i32(params.iw));
    return src[src_offset(n_idx, u32(r), u32(c), ch)];
}

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx >= params.n * params.oh * params.ow) {
        return;
    }

    let n_idx = idx / (params.oh * params.ow);
    let rem = idx % (params.oh * params.ow);
    let h = rem / params.ow;
    let w = rem % params.ow;

    let xy = (n_idx * params.oh * params.ow + h * params.ow + w) * 2u;
    let x = map_xy[xy];
    let y = map_xy[xy + 1u];

    if (params.interp == 0u) {
        let col = i32(round(x));
        let row = i32(round(y));
        for (var ch: u32 = 0u; ch < params.c; ch = ch + 1u) {
            result[dst_offset(n_idx, h, w, ch)] = sample(n_idx, row, col, ch);
        }
        return;
    }

    let col = i32(floor(x));
    let row = i32(floor(y));
    let v = x - floor(x);
    let u = y - floor(y);
    for (var ch: u32 = 0u; ch < params.c; ch = ch + 1u) {
        let a00 = sample(n_idx, row, col, ch);
        let a01 = sample(n_idx, row, col + 1, ch);
        let a10 = sample(n_idx, row + 1, col, ch);
        let a11 = sample(n_idx, row + 1, col + 1, ch);
        result[dst_offset(n_idx, h, w, ch)] =
            a00 * (1.0 - v) * (1.0 - u) + a01 * (1.0 - u) * v +
            a10 * (1.0 - v) * u + a11 * u * v;
    }
}
`

// Remap resamples src at the coordinates given by mapXY on the GPU.
//
// src is a float32 image batch in NCHW or NHWC layout; mapXY has shape
// [N, OH, OW, 2] holding (x, y) source coordinates per output pixel. The
// output keeps src's layout with spatial size OH x OW.
func (b *Backend) Remap(src, mapXY *tensor.RawTensor, p tensor.RemapParams) *tensor.RawTensor {
	if src.DType() != tensor.Float32 {
		panic(fmt.Sprintf("webgpu: remap: only float32 is supported, got %s", src.DType()))
	}
	s := src.Shape()
	if len(s) != 4 {
		panic(fmt.Sprintf("webgpu: remap: src shape %v, want 4 dimensions", s))
	}
	var n, c, ih, iw int
	switch p.Format {
	case tensor.NCHW:
		n, c, ih, iw = s[0], s[1], s[2], s[3]
	case tensor.NHWC:
		n, c, ih, iw = s[0], s[3], s[1], s[2]
	default:
		panic(fmt.Sprintf("webgpu: remap: unsupported format %s", p.Format))
	}

	ms := mapXY.Shape()
	if len(ms) != 4 || ms[3] != 2 {
		panic(fmt.Sprintf("webgpu: remap: map shape %v, want [N, OH, OW, 2]", ms))
	}
	if ms[0] != n {
		panic(fmt.Sprintf("webgpu: remap: batch mismatch: src %d, map %d", n, ms[0]))
	}
	if mapXY.DType() != tensor.Float32 {
		panic(fmt.Sprintf("webgpu: remap: map dtype %s, want float32", mapXY.DType()))
	}
	oh, ow := ms[1], ms[2]

	var outShape tensor.Shape
	if p.Format == tensor.NCHW {
		outShape = tensor.Shape{n, c, oh, ow}
	} else {
		outShape = tensor.Shape{n, oh, ow, c}
	}

	shader := b.compileShader("remap", remapShader)
	pipeline := b.getOrCreatePipeline("remap", shader)

	bufferSrc := b.createBuffer(src.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufferSrc.Release()
	bufferMap := b.createBuffer(mapXY.Data(), wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufferMap.Release()

	resultSize := uint64(outShape.NumElements() * 4)
	bufferResult := b.createOutputBuffer(resultSize)
	defer bufferResult.Release()

	//nolint:gosec // G115: extents and enum ordinals are non-negative
	bufferParams := b.uniformU32(
		uint32(n), uint32(c), uint32(ih), uint32(iw),
		uint32(oh), uint32(ow), uint32(p.Format), uint32(p.Border),
		uint32(p.Interp), math.Float32bits(p.Scalar),
	)
	defer bufferParams.Release()

	pixels := n * oh * ow
	//nolint:gosec // G115: workgroup count is non-negative
	workgroups := uint32((pixels + workgroupSize - 1) / workgroupSize)
	b.dispatch(pipeline, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufferSrc, 0, uint64(src.ByteSize())),
		wgpu.BufferBindingEntry(1, bufferMap, 0, uint64(mapXY.ByteSize())),
		wgpu.BufferBindingEntry(2, bufferResult, 0, resultSize),
		wgpu.BufferBindingEntry(3, bufferParams, 0, 48),
	}, workgroups)

	raw, err := b.readBuffer(bufferResult, resultSize)
	if err != nil {
		panic("webgpu: Remap: " + err.Error())
	}

	result, err := tensor.NewRaw(outShape, tensor.Float32, tensor.WebGPU)
	if err != nil {
		panic("webgpu: Remap: " + err.Error())
	}
	copy(result.Data(), raw)
	return result
}
