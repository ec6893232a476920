// Copyright 2026 Rill Kernel Library. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/rill-ml/rill/internal/backend/cpu"
	"github.com/rill-ml/rill/tensor"
)

// Backend represents the CPU backend implementation.
//
// The CPU backend provides pure Go implementations of all tensor operations,
// with reductions executed through the shared tiling planner.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Kernel tuning defaults can be overridden with a YAML file named by the
// RILL_TUNING environment variable.
func New() *Backend {
	return internalcpu.New()
}
