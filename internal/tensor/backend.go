package tensor

// ReduceMode selects the combining semantics of a dimension reduction.
type ReduceMode int

// Supported reduction modes.
const (
	ReduceSum ReduceMode = iota
	ReduceMean
	ReduceMax
	ReduceMin
)

// String returns a human-readable mode name.
func (m ReduceMode) String() string {
	switch m {
	case ReduceSum:
		return "sum"
	case ReduceMean:
		return "mean"
	case ReduceMax:
		return "max"
	case ReduceMin:
		return "min"
	default:
		return "unknown"
	}
}

// Backend defines the interface compute backends implement. Backends own the
// actual kernels; tensors are passive data. Shape and dtype validation happens
// at this boundary, before any kernel is invoked.
//
// Implementations:
//   - backend/cpu: pure Go with feature-gated unrolled loops
//   - backend/webgpu: GPU compute via WebGPU (windows builds)
type Backend interface {
	// Element-wise binary operations with broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Element-wise operations with a scalar operand.
	AddScalar(x *RawTensor, scalar any) *RawTensor
	MulScalar(x *RawTensor, scalar any) *RawTensor

	// Element-wise math operations.
	Exp(x *RawTensor) *RawTensor
	Sqrt(x *RawTensor) *RawTensor

	// Reduction operations.
	Sum(x *RawTensor) *RawTensor                                           // total sum (scalar result)
	ReduceDim(x *RawTensor, dim int, mode ReduceMode, keepDim bool) *RawTensor // reduce along one dimension
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor                 // ReduceDim with ReduceSum
	MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor                // ReduceDim with ReduceMean
	Argmax(x *RawTensor, dim int) *RawTensor                               // index of maximum along dimension

	// Geometric transform operations.
	Remap(src, mapXY *RawTensor, p RemapParams) *RawTensor

	// Metadata.
	Name() string
	Device() Device
}
