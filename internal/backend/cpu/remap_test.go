package cpu

import (
	"testing"

	"github.com/rill-ml/rill/internal/tensor"
)

// identityMap builds a [1, h, w, 2] map sampling every pixel at itself.
func identityMap(t *testing.T, h, w int, backend *CPUBackend) *tensor.RawTensor {
	t.Helper()
	vals := make([]float32, h*w*2)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			vals[(y*w+x)*2] = float32(x)
			vals[(y*w+x)*2+1] = float32(y)
		}
	}
	m, err := tensor.FromSlice(tensor.Shape{1, h, w, 2}, vals, backend.Device())
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestRemap_IdentityNCHW(t *testing.T) {
	backend := New()

	src, _ := tensor.FromSlice(tensor.Shape{1, 1, 2, 3}, []float32{1, 2, 3, 4, 5, 6}, backend.Device())
	m := identityMap(t, 2, 3, backend)

	for _, interp := range []tensor.InterpMode{tensor.InterpNearest, tensor.InterpLinear} {
		result := backend.Remap(src, m, tensor.RemapParams{
			Format: tensor.NCHW,
			Border: tensor.BorderConstant,
			Interp: interp,
		})
		if !result.Shape().Equal(tensor.Shape{1, 1, 2, 3}) {
			t.Fatalf("%s: shape %v", interp, result.Shape())
		}
		got := result.AsFloat32()
		for i, want := range []float32{1, 2, 3, 4, 5, 6} {
			if got[i] != want {
				t.Errorf("%s index %d: expected %v, got %v", interp, i, want, got[i])
			}
		}
	}
}

func TestRemap_BilinearMidpoint(t *testing.T) {
	backend := New()

	// 2x2 image; sampling at (0.5, 0.5) averages all four pixels.
	src, _ := tensor.FromSlice(tensor.Shape{1, 1, 2, 2}, []float32{0, 2, 4, 6}, backend.Device())
	m, _ := tensor.FromSlice(tensor.Shape{1, 1, 1, 2}, []float32{0.5, 0.5}, backend.Device())

	result := backend.Remap(src, m, tensor.RemapParams{
		Format: tensor.NCHW,
		Border: tensor.BorderConstant,
		Interp: tensor.InterpLinear,
	})
	if got := result.AsFloat32()[0]; got != 3 {
		t.Errorf("Expected 3, got %v", got)
	}
}

func TestRemap_BorderModes(t *testing.T) {
	backend := New()

	src, _ := tensor.FromSlice(tensor.Shape{1, 1, 1, 3}, []float32{10, 20, 30}, backend.Device())
	// Sample one pixel left of the image at row 0.
	m, _ := tensor.FromSlice(tensor.Shape{1, 1, 1, 2}, []float32{-1, 0}, backend.Device())

	cases := []struct {
		border tensor.BorderMode
		want   float32
	}{
		{tensor.BorderConstant, -7},
		{tensor.BorderReplicate, 10},
		{tensor.BorderReflect, 10}, // -1 reflects to 0
		{tensor.BorderWrap, 30},    // -1 wraps to 2
	}
	for _, tc := range cases {
		result := backend.Remap(src, m, tensor.RemapParams{
			Format: tensor.NCHW,
			Border: tc.border,
			Interp: tensor.InterpNearest,
			Scalar: -7,
		})
		if got := result.AsFloat32()[0]; got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.border, tc.want, got)
		}
	}
}

func TestRemap_NHWCMultiChannel(t *testing.T) {
	backend := New()

	// 1x2x2x2 NHWC image: pixel (y, x) has channels [10*(2y+x), 10*(2y+x)+1].
	vals := []float32{0, 1, 10, 11, 20, 21, 30, 31}
	src, _ := tensor.FromSlice(tensor.Shape{1, 2, 2, 2}, vals, backend.Device())
	// Swap columns: sample (1,0) then (0,0) on row 0, (1,1) then (0,1) on row 1.
	m, _ := tensor.FromSlice(tensor.Shape{1, 2, 2, 2}, []float32{
		1, 0, 0, 0,
		1, 1, 0, 1,
	}, backend.Device())

	result := backend.Remap(src, m, tensor.RemapParams{
		Format: tensor.NHWC,
		Border: tensor.BorderConstant,
		Interp: tensor.InterpNearest,
	})
	got := result.AsFloat32()
	expected := []float32{10, 11, 0, 1, 30, 31, 20, 21}
	for i, exp := range expected {
		if got[i] != exp {
			t.Errorf("Index %d: expected %v, got %v", i, exp, got[i])
		}
	}
}

func TestRemap_Uint8Rounding(t *testing.T) {
	backend := New()

	src, _ := tensor.FromSlice(tensor.Shape{1, 1, 1, 2}, []uint8{10, 21}, backend.Device())
	// Midpoint of 10 and 21 is 15.5; ties round to even 16.
	m, _ := tensor.FromSlice(tensor.Shape{1, 1, 1, 2}, []float32{0.5, 0}, backend.Device())

	result := backend.Remap(src, m, tensor.RemapParams{
		Format: tensor.NCHW,
		Border: tensor.BorderConstant,
		Interp: tensor.InterpLinear,
	})
	if result.DType() != tensor.Uint8 {
		t.Fatalf("Expected uint8 result, got %s", result.DType())
	}
	if got := result.AsUint8()[0]; got != 16 {
		t.Errorf("Expected 16, got %d", got)
	}
}

func TestRemap_RejectsBadMap(t *testing.T) {
	backend := New()
	src, _ := tensor.FromSlice(tensor.Shape{1, 1, 2, 2}, []float32{1, 2, 3, 4}, backend.Device())
	badMap, _ := tensor.FromSlice(tensor.Shape{1, 2, 2}, []float32{0, 0, 0, 0}, backend.Device())

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for malformed map tensor")
		}
	}()
	backend.Remap(src, badMap, tensor.RemapParams{Format: tensor.NCHW})
}
