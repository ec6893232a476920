//go:build windows

// Copyright 2026 Rill Kernel Library. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for GPU-accelerated tensor
// operations.
//
// Reduction kernels are generated per launch shape from the same tiling
// planner the CPU backend uses, with the decomposition baked into the WGSL
// source.
//
// Example:
//
//	gpu, err := webgpu.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gpu.Release()
//
//	sums := gpu.SumDim(x, -1, false)
package webgpu

import (
	internalwebgpu "github.com/rill-ml/rill/internal/backend/webgpu"
	"github.com/rill-ml/rill/tensor"
)

// Backend represents the WebGPU backend implementation for GPU-accelerated
// tensor operations.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new WebGPU backend.
//
// This function initializes the WebGPU device and returns a backend ready
// for tensor operations. Call Release() when done to free GPU resources.
//
// Returns an error if WebGPU initialization fails (e.g., no compatible GPU).
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system.
//
// It attempts to acquire a WebGPU adapter to verify that a compatible GPU
// and drivers are present, which allows graceful fallback to the CPU
// backend.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
