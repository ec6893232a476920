// Copyright 2026 Rill Kernel Library. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - A tiled parallel reduction engine shared with the GPU backend's planner
//   - Feature-gated unrolled loops on wide-vector hardware
//   - NumPy-compatible broadcasting for element-wise operations
//
// # Basic Usage
//
//	import (
//	    "github.com/rill-ml/rill/backend/cpu"
//	    "github.com/rill-ml/rill/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x, _ := tensor.FromSlice(tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6}, backend.Device())
//	    sums := backend.SumDim(x, -1, false)
//	}
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each tensor operation is
// isolated and does not share mutable state.
package cpu
