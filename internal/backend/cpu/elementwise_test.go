package cpu

import (
	"testing"

	"github.com/rill-ml/rill/internal/tensor"
)

func TestAdd_SameShape(t *testing.T) {
	backend := New()

	a, _ := tensor.FromSlice(tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6}, backend.Device())
	b, _ := tensor.FromSlice(tensor.Shape{2, 3}, []float32{10, 20, 30, 40, 50, 60}, backend.Device())

	result := backend.Add(a, b)
	expected := []float32{11, 22, 33, 44, 55, 66}
	got := result.AsFloat32()
	for i, exp := range expected {
		if got[i] != exp {
			t.Errorf("Index %d: expected %v, got %v", i, exp, got[i])
		}
	}
}

func TestAdd_UnrolledTail(t *testing.T) {
	backend := New()

	// 7 elements exercises both the 4-way unrolled body and the tail loop.
	av := []int64{1, 2, 3, 4, 5, 6, 7}
	bv := []int64{10, 10, 10, 10, 10, 10, 10}
	a, _ := tensor.FromSlice(tensor.Shape{7}, av, backend.Device())
	b, _ := tensor.FromSlice(tensor.Shape{7}, bv, backend.Device())

	got := backend.Add(a, b).AsInt64()
	for i := range av {
		if got[i] != av[i]+10 {
			t.Errorf("Index %d: expected %v, got %v", i, av[i]+10, got[i])
		}
	}
}

func TestMul_Broadcast(t *testing.T) {
	backend := New()

	a, _ := tensor.FromSlice(tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6}, backend.Device())
	b, _ := tensor.FromSlice(tensor.Shape{3}, []float32{10, 100, 1000}, backend.Device())

	result := backend.Mul(a, b)
	if !result.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("Expected shape [2, 3], got %v", result.Shape())
	}
	expected := []float32{10, 200, 3000, 40, 500, 6000}
	got := result.AsFloat32()
	for i, exp := range expected {
		if got[i] != exp {
			t.Errorf("Index %d: expected %v, got %v", i, exp, got[i])
		}
	}
}

func TestSub_BroadcastColumn(t *testing.T) {
	backend := New()

	a, _ := tensor.FromSlice(tensor.Shape{2, 2}, []int32{5, 6, 7, 8}, backend.Device())
	b, _ := tensor.FromSlice(tensor.Shape{2, 1}, []int32{1, 2}, backend.Device())

	got := backend.Sub(a, b).AsInt32()
	expected := []int32{4, 5, 5, 6}
	for i, exp := range expected {
		if got[i] != exp {
			t.Errorf("Index %d: expected %v, got %v", i, exp, got[i])
		}
	}
}

func TestDiv(t *testing.T) {
	backend := New()

	a, _ := tensor.FromSlice(tensor.Shape{3}, []float64{10, 20, 30}, backend.Device())
	b, _ := tensor.FromSlice(tensor.Shape{3}, []float64{2, 4, 5}, backend.Device())

	got := backend.Div(a, b).AsFloat64()
	expected := []float64{5, 5, 6}
	for i, exp := range expected {
		if got[i] != exp {
			t.Errorf("Index %d: expected %v, got %v", i, exp, got[i])
		}
	}
}

func TestBinary_DTypeMismatchPanics(t *testing.T) {
	backend := New()
	a, _ := tensor.FromSlice(tensor.Shape{2}, []float32{1, 2}, backend.Device())
	b, _ := tensor.FromSlice(tensor.Shape{2}, []float64{1, 2}, backend.Device())

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for dtype mismatch")
		}
	}()
	backend.Add(a, b)
}

func TestBinary_IncompatibleShapesPanics(t *testing.T) {
	backend := New()
	a, _ := tensor.FromSlice(tensor.Shape{3}, []float32{1, 2, 3}, backend.Device())
	b, _ := tensor.FromSlice(tensor.Shape{4}, []float32{1, 2, 3, 4}, backend.Device())

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for incompatible shapes")
		}
	}()
	backend.Add(a, b)
}

func TestScalarOps(t *testing.T) {
	backend := New()

	x, _ := tensor.FromSlice(tensor.Shape{3}, []float32{1, 2, 3}, backend.Device())

	got := backend.AddScalar(x, 1.5).AsFloat32()
	expected := []float32{2.5, 3.5, 4.5}
	for i, exp := range expected {
		if got[i] != exp {
			t.Errorf("addscalar %d: expected %v, got %v", i, exp, got[i])
		}
	}

	got = backend.MulScalar(x, 2).AsFloat32()
	expected = []float32{2, 4, 6}
	for i, exp := range expected {
		if got[i] != exp {
			t.Errorf("mulscalar %d: expected %v, got %v", i, exp, got[i])
		}
	}
}

func TestExpSqrt(t *testing.T) {
	backend := New()

	x, _ := tensor.FromSlice(tensor.Shape{2}, []float64{0, 1}, backend.Device())
	got := backend.Exp(x).AsFloat64()
	if got[0] != 1 {
		t.Errorf("exp(0): expected 1, got %v", got[0])
	}
	if diff := got[1] - 2.718281828459045; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("exp(1): got %v", got[1])
	}

	y, _ := tensor.FromSlice(tensor.Shape{2}, []float32{4, 9}, backend.Device())
	sq := backend.Sqrt(y).AsFloat32()
	if sq[0] != 2 || sq[1] != 3 {
		t.Errorf("sqrt: expected [2 3], got %v", sq)
	}
}
