// Copyright 2026 Rill Kernel Library. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensor data and backend
// dispatch in the Rill kernel library.
//
// The package defines the core types operator kernels work on:
//   - RawTensor: dense row-major storage with shape, dtype, and device
//   - Backend: interface for device-specific kernel implementations
//   - Shape, DataType, Device: core type definitions
//
// Example:
//
//	backend := cpu.New()
//	x, _ := tensor.FromSlice(tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6}, backend.Device())
//	sums := backend.SumDim(x, -1, false)
package tensor
