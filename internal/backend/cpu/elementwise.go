package cpu

import (
	"fmt"

	"github.com/rill-ml/rill/internal/tensor"
)

type binOp int

const (
	opAdd binOp = iota
	opSub
	opMul
	opDiv
)

func (o binOp) String() string {
	return [...]string{"add", "sub", "mul", "div"}[o]
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(opAdd, a, b)
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(opSub, a, b)
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(opMul, a, b)
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(opDiv, a, b)
}

func (cpu *CPUBackend) binary(op binOp, a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", op, a.DType(), b.DType()))
	}
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}

	switch a.DType() {
	case tensor.Float32:
		ewBinary(result, a, b, outShape, needsBroadcast, binFn[float32](op))
	case tensor.Float64:
		ewBinary(result, a, b, outShape, needsBroadcast, binFn[float64](op))
	case tensor.Int32:
		ewBinary(result, a, b, outShape, needsBroadcast, binFn[int32](op))
	case tensor.Int64:
		ewBinary(result, a, b, outShape, needsBroadcast, binFn[int64](op))
	case tensor.Uint8:
		ewBinary(result, a, b, outShape, needsBroadcast, binFn[uint8](op))
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, a.DType()))
	}
	return result
}

func binFn[T tensor.DType](op binOp) func(x, y T) T {
	switch op {
	case opAdd:
		return func(x, y T) T { return x + y }
	case opSub:
		return func(x, y T) T { return x - y }
	case opMul:
		return func(x, y T) T { return x * y }
	case opDiv:
		return func(x, y T) T { return x / y }
	default:
		panic("unknown binary op")
	}
}

// ewBinary applies f element-wise. Same-shape operands take the unrolled fast
// path; otherwise output coordinates are mapped back through broadcast
// strides.
func ewBinary[T tensor.DType](dst, a, b *tensor.RawTensor, outShape tensor.Shape, needsBroadcast bool, f func(x, y T) T) {
	d := tensor.As[T](dst)

	if !needsBroadcast && a.Shape().Equal(b.Shape()) {
		av, bv := tensor.As[T](a), tensor.As[T](b)
		n := len(d)
		i := 0
		if wideVectors() {
			for ; i+4 <= n; i += 4 {
				d[i] = f(av[i], bv[i])
				d[i+1] = f(av[i+1], bv[i+1])
				d[i+2] = f(av[i+2], bv[i+2])
				d[i+3] = f(av[i+3], bv[i+3])
			}
		}
		for ; i < n; i++ {
			d[i] = f(av[i], bv[i])
		}
		return
	}

	av, bv := tensor.As[T](a), tensor.As[T](b)
	outStrides := outShape.ComputeStrides()
	aSt := broadcastStrides(a.Shape(), outShape)
	bSt := broadcastStrides(b.Shape(), outShape)

	for flat := range d {
		rem := flat
		ai, bi := 0, 0
		for i, os := range outStrides {
			c := rem / os
			rem %= os
			ai += c * aSt[i]
			bi += c * bSt[i]
		}
		d[flat] = f(av[ai], bv[bi])
	}
}

// broadcastStrides pads src's strides to out's rank, zeroing dimensions that
// broadcast (size 1 or missing) so their coordinate never advances the
// operand offset.
func broadcastStrides(src, out tensor.Shape) []int {
	st := make([]int, len(out))
	ss := src.ComputeStrides()
	offset := len(out) - len(src)
	for i := offset; i < len(out); i++ {
		if src[i-offset] != 1 {
			st[i] = ss[i-offset]
		}
	}
	return st
}
