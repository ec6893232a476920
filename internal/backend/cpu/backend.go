// Package cpu implements the CPU backend: the reduction engine's CPU
// analogue behind the shared Op contract, plus the peripheral elementwise and
// geometric-transform operators.
package cpu

import (
	"github.com/rill-ml/rill/internal/kernel"
	"github.com/rill-ml/rill/internal/parallel"
	"github.com/rill-ml/rill/internal/tensor"
)

// CPUBackend implements tensor operations on the host CPU.
type CPUBackend struct {
	device tensor.Device
	tun    kernel.Tuning
	par    parallel.Config
}

var _ tensor.Backend = (*CPUBackend)(nil)

// New creates a CPU backend with tuning taken from the environment.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		tun:    kernel.TuningFromEnv(),
		par:    parallel.DefaultConfig(),
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}
