// Copyright 2026 Rill Kernel Library. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/rill-ml/rill/internal/tensor"
)

// Backend is the interface compute backends implement. Backends own the
// kernels; tensors are passive data.
type Backend = tensor.Backend

// ReduceMode selects the combining semantics of a dimension reduction.
type ReduceMode = tensor.ReduceMode

// Reduction modes.
const (
	ReduceSum  ReduceMode = tensor.ReduceSum
	ReduceMean ReduceMode = tensor.ReduceMean
	ReduceMax  ReduceMode = tensor.ReduceMax
	ReduceMin  ReduceMode = tensor.ReduceMin
)

// RemapFormat selects the memory layout of remap images.
type RemapFormat = tensor.RemapFormat

// Remap layouts.
const (
	NCHW RemapFormat = tensor.NCHW
	NHWC RemapFormat = tensor.NHWC
)

// BorderMode selects how remap sample coordinates outside the source image
// are resolved.
type BorderMode = tensor.BorderMode

// Border modes.
const (
	BorderConstant  BorderMode = tensor.BorderConstant
	BorderReplicate BorderMode = tensor.BorderReplicate
	BorderReflect   BorderMode = tensor.BorderReflect
	BorderWrap      BorderMode = tensor.BorderWrap
)

// InterpMode selects the remap sampling filter.
type InterpMode = tensor.InterpMode

// Interpolation modes.
const (
	InterpNearest InterpMode = tensor.InterpNearest
	InterpLinear  InterpMode = tensor.InterpLinear
)

// RemapParams bundles the remap operator configuration.
type RemapParams = tensor.RemapParams
