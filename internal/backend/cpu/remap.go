package cpu

import (
	"fmt"
	"math"

	"github.com/rill-ml/rill/internal/parallel"
	"github.com/rill-ml/rill/internal/tensor"
)

// Remap resamples src at the coordinates given by mapXY.
//
// src is an image batch in NCHW or NHWC layout; mapXY has shape
// [N, OH, OW, 2] holding (x, y) source coordinates per output pixel, x along
// the width axis. The output keeps src's layout and dtype with spatial size
// OH x OW. Out-of-range samples are resolved by the border mode; bilinear
// results are rounded to the nearest representable value for integer dtypes.
func (cpu *CPUBackend) Remap(src, mapXY *tensor.RawTensor, p tensor.RemapParams) *tensor.RawTensor {
	n, c, ih, iw := remapSrcDims(src, p.Format)

	ms := mapXY.Shape()
	if len(ms) != 4 || ms[3] != 2 {
		panic(fmt.Sprintf("remap: map shape %v, want [N, OH, OW, 2]", ms))
	}
	if ms[0] != n {
		panic(fmt.Sprintf("remap: batch mismatch: src %d, map %d", n, ms[0]))
	}
	if mapXY.DType() != tensor.Float32 {
		panic(fmt.Sprintf("remap: map dtype %s, want float32", mapXY.DType()))
	}
	oh, ow := ms[1], ms[2]

	var outShape tensor.Shape
	if p.Format == tensor.NCHW {
		outShape = tensor.Shape{n, c, oh, ow}
	} else {
		outShape = tensor.Shape{n, oh, ow, c}
	}
	result, err := tensor.NewRaw(outShape, src.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("remap: %v", err))
	}

	geom := remapGeometry{n: n, c: c, ih: ih, iw: iw, oh: oh, ow: ow, params: p}
	switch src.DType() {
	case tensor.Float32:
		remapRun(tensor.As[float32](src), mapXY.AsFloat32(), tensor.As[float32](result), geom, roundFloat32, cpu.par)
	case tensor.Uint8:
		remapRun(tensor.As[uint8](src), mapXY.AsFloat32(), tensor.As[uint8](result), geom, roundUint8, cpu.par)
	default:
		panic(fmt.Sprintf("remap: unsupported dtype %s (only float32/uint8 supported)", src.DType()))
	}
	return result
}

type remapGeometry struct {
	n, c, ih, iw, oh, ow int
	params               tensor.RemapParams
}

// offset computes the index of pixel (h, w, ch) in one image of height ih and
// width iw for the configured layout.
func (g remapGeometry) offset(h, w, ch, ih, iw int) int {
	if g.params.Format == tensor.NCHW {
		return ch*ih*iw + h*iw + w
	}
	return (h*iw+w)*g.c + ch
}

func remapRun[T tensor.DType](src []T, mapXY []float32, dst []T, g remapGeometry, round func(float32) T, par parallel.Config) {
	srcImage := g.c * g.ih * g.iw
	dstImage := g.c * g.oh * g.ow

	parallel.For(g.n*g.oh, func(job int) {
		n, h := job/g.oh, job%g.oh
		img := src[n*srcImage : (n+1)*srcImage]
		out := dst[n*dstImage : (n+1)*dstImage]
		xy := mapXY[n*g.oh*g.ow*2:]

		for w := 0; w < g.ow; w++ {
			x := xy[(h*g.ow+w)*2]
			y := xy[(h*g.ow+w)*2+1]

			if g.params.Interp == tensor.InterpNearest {
				col := int(roundHalfToEven(x))
				row := int(roundHalfToEven(y))
				for ch := 0; ch < g.c; ch++ {
					out[g.offset(h, w, ch, g.oh, g.ow)] = remapSample(img, g, row, col, ch, round)
				}
				continue
			}

			col := int(math.Floor(float64(x)))
			row := int(math.Floor(float64(y)))
			v := x - float32(col) // width fraction
			u := y - float32(row) // height fraction
			for ch := 0; ch < g.c; ch++ {
				a00 := float32(remapSample(img, g, row, col, ch, round))
				a01 := float32(remapSample(img, g, row, col+1, ch, round))
				a10 := float32(remapSample(img, g, row+1, col, ch, round))
				a11 := float32(remapSample(img, g, row+1, col+1, ch, round))
				out[g.offset(h, w, ch, g.oh, g.ow)] = round(
					a00*(1-v)*(1-u) + a01*(1-u)*v + a10*(1-v)*u + a11*u*v)
			}
		}
	}, par)
}

// remapSample reads pixel (row, col, ch) with border resolution.
func remapSample[T tensor.DType](img []T, g remapGeometry, row, col, ch int, round func(float32) T) T {
	if g.params.Border == tensor.BorderConstant {
		if row < 0 || row >= g.ih || col < 0 || col >= g.iw {
			return round(g.params.Scalar)
		}
	} else {
		row = borderIndex(row, g.ih, g.params.Border)
		col = borderIndex(col, g.iw, g.params.Border)
	}
	return img[g.offset(row, col, ch, g.ih, g.iw)]
}

// borderIndex folds an out-of-range coordinate back into [0, n) for the
// non-constant border modes.
func borderIndex(p, n int, mode tensor.BorderMode) int {
	if p >= 0 && p < n {
		return p
	}
	switch mode {
	case tensor.BorderReplicate:
		if p < 0 {
			return 0
		}
		return n - 1
	case tensor.BorderReflect:
		for p < 0 || p >= n {
			if p < 0 {
				p = -p - 1
			} else {
				p = 2*n - p - 1
			}
		}
		return p
	case tensor.BorderWrap:
		p %= n
		if p < 0 {
			p += n
		}
		return p
	default:
		panic(fmt.Sprintf("remap: unsupported border mode %s", mode))
	}
}

// roundHalfToEven is the nearest-coordinate rounding rule: ties go to the
// even integer, matching banker's rounding.
func roundHalfToEven(f float32) float32 {
	return float32(math.RoundToEven(float64(f)))
}

func roundFloat32(f float32) float32 {
	return f
}

// roundUint8 rounds to nearest and saturates to [0, 255].
func roundUint8(f float32) uint8 {
	r := math.RoundToEven(float64(f))
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}

func remapSrcDims(src *tensor.RawTensor, format tensor.RemapFormat) (n, c, ih, iw int) {
	s := src.Shape()
	if len(s) != 4 {
		panic(fmt.Sprintf("remap: src shape %v, want 4 dimensions", s))
	}
	switch format {
	case tensor.NCHW:
		return s[0], s[1], s[2], s[3]
	case tensor.NHWC:
		return s[0], s[3], s[1], s[2]
	default:
		panic(fmt.Sprintf("remap: unsupported format %s", format))
	}
}
