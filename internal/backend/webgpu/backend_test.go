//go:build windows

package webgpu

import (
	"strings"
	"testing"

	"github.com/rill-ml/rill/internal/kernel"
	"github.com/rill-ml/rill/internal/tensor"
)

func TestRowReduceShader_BakesDecomposition(t *testing.T) {
	dec := kernel.Plan(128, 4, kernel.DefaultTuning())

	code := rowReduceShader(dec, tensor.ReduceSum)
	for _, want := range []string{
		"@workgroup_size(256)",
		"workgroupBarrier()",
		"var<workgroup> scratch",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("Shader missing %q", want)
		}
	}
	if strings.Contains(code, "%!") {
		t.Error("Shader has unformatted verbs")
	}
}

func TestRowReduceShader_Modes(t *testing.T) {
	dec := kernel.Plan(64, 4, kernel.DefaultTuning())

	maxCode := rowReduceShader(dec, tensor.ReduceMax)
	if !strings.Contains(maxCode, "max(") || !strings.Contains(maxCode, "-3.402823466e+38") {
		t.Error("Max shader missing combine or identity")
	}

	meanCode := rowReduceShader(dec, tensor.ReduceMean)
	if !strings.Contains(meanCode, "/ f32(params.cols)") {
		t.Error("Mean shader missing divide at commit")
	}
}

func TestNew(t *testing.T) {
	backend, err := New()
	if err != nil {
		t.Logf("WebGPU not available: %v", err)
		t.Skip("WebGPU not available on this system")
	}
	defer backend.Release()

	if backend.Name() == "" {
		t.Error("Backend name should not be empty")
	}
	if backend.Device() != tensor.WebGPU {
		t.Errorf("Expected device WebGPU, got %v", backend.Device())
	}
}

func TestReduceDim_GPU(t *testing.T) {
	backend, err := New()
	if err != nil {
		t.Skip("WebGPU not available on this system")
	}
	defer backend.Release()

	x, _ := tensor.FromSlice(tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6}, tensor.WebGPU)

	result := backend.SumDim(x, -1, false)
	got := result.AsFloat32()
	if got[0] != 6 || got[1] != 15 {
		t.Errorf("Expected [6 15], got %v", got)
	}

	mean := backend.MeanDim(x, 1, false).AsFloat32()
	if mean[0] != 2 || mean[1] != 5 {
		t.Errorf("Expected [2 5], got %v", mean)
	}
}

func TestAdd_GPU(t *testing.T) {
	backend, err := New()
	if err != nil {
		t.Skip("WebGPU not available on this system")
	}
	defer backend.Release()

	a, _ := tensor.FromSlice(tensor.Shape{4}, []float32{1, 2, 3, 4}, tensor.WebGPU)
	b, _ := tensor.FromSlice(tensor.Shape{4}, []float32{10, 20, 30, 40}, tensor.WebGPU)

	got := backend.Add(a, b).AsFloat32()
	for i, want := range []float32{11, 22, 33, 44} {
		if got[i] != want {
			t.Errorf("Index %d: expected %v, got %v", i, want, got[i])
		}
	}
}
