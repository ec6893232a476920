package kernel

import "unsafe"

// scratch is the group-local staging buffer: logically a
// (RowsPerGroup x ThreadsPerRow) matrix of accumulators with a trailing
// padding region of MaxThreadsPerRow/2 slots, so the last folding steps may
// read one step past the last row without a bounds branch. One scratch is
// owned exclusively by one thread-group for the duration of its execution.
//
// The planner states the row stride in 32-bit words (the device bank
// granule); this view rounds it up to whole elements of W, preserving the
// stride >= ThreadsPerRow and padding invariants.
type scratch[W any] struct {
	slots     []W
	rowStride int // elements per row segment
}

func newScratch[W any](dec Decomposition, tun Tuning) scratch[W] {
	var zero W
	accSize := int(unsafe.Sizeof(zero))
	stride := (dec.ScratchRowStrideWords*4 + accSize - 1) / accSize
	return scratch[W]{
		slots:     make([]W, dec.RowsPerGroup*stride+tun.MaxThreadsPerRow/2),
		rowStride: stride,
	}
}

// get reads the slot of lane within row (both group-local).
func (s scratch[W]) get(row, lane int) W {
	return s.slots[row*s.rowStride+lane]
}

// set writes the slot of lane within row (both group-local).
func (s scratch[W]) set(row, lane int, v W) {
	s.slots[row*s.rowStride+lane] = v
}
