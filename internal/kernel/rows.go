package kernel

import (
	"fmt"

	"github.com/rill-ml/rill/internal/parallel"
)

// ReduceRows is the CPU analogue of ReduceColumns: the same Op contract, but
// each row is folded left to right by a single thread and rows fan out across
// workers. With no cooperating lanes there is no scratch staging and the two
// synchronization tiers collapse away entirely.
func ReduceRows[W any](op Op[W], a, b int) {
	if a < 1 || b < 1 {
		panic(fmt.Sprintf("kernel: reduce rows: invalid matrix view %dx%d", a, b))
	}
	if !op.valid() {
		panic("kernel: reduce rows: op needs read, write and combine")
	}
	parallel.For(a, func(r int) {
		base := r * b
		acc := op.Read(base)
		for c := 1; c < b; c++ {
			acc = op.Combine(acc, op.Read(base+c))
		}
		op.Write(r, acc)
	}, execConfig)
}
