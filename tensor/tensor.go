// Copyright 2026 Rill Kernel Library. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/rill-ml/rill/internal/tensor"
)

// Type aliases for the public API.

// DType is a constraint for tensor element types.
// Supported types: float32, float64, int32, int64, uint8.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	WebGPU Device = tensor.WebGPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// RawTensor is dense row-major tensor storage with shape, dtype, and device
// metadata. Kernels validate at the backend boundary and operate on the
// underlying storage directly.
type RawTensor = tensor.RawTensor

// NewRaw creates a zero-filled tensor of the given shape and dtype.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromSlice creates a tensor from a Go slice, inferring the dtype from the
// element type. The slice length must match the shape's element count.
func FromSlice[T DType](shape Shape, values []T, device Device) (*RawTensor, error) {
	return tensor.FromSlice(shape, values, device)
}

// As returns the tensor's storage viewed as a []T without copying.
// T must match the tensor's dtype.
func As[T DType](r *RawTensor) []T {
	return tensor.As[T](r)
}

// BroadcastShapes computes the broadcast result shape of two operand shapes,
// reporting whether any broadcasting occurs.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
