package kernel

// Op bundles the capabilities a caller supplies to reduce one (A x B) matrix
// view. W is the working (accumulator) type; it may be wider than the storage
// type, e.g. an int32 accumulator over uint8 storage. Physical tensor strides
// are folded into Read, so the engine only ever sees logical flat indices
// row*B + column.
//
// Combine must be associative and commutative up to the numeric tolerance the
// caller accepts: partial results are combined in an order fixed by the
// parallel decomposition, not by column order.
type Op[W any] struct {
	Read    func(flat int) W     // valid for flat indices in [0, A*B)
	Write   func(row int, v W)   // valid for row indices in [0, A)
	Combine func(a, b W) W       // associative, commutative
}

// valid reports whether all three capabilities are present.
func (op Op[W]) valid() bool {
	return op.Read != nil && op.Write != nil && op.Combine != nil
}
