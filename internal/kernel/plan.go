package kernel

import "fmt"

// Decomposition is the parallel shape the tiling planner chooses for one
// reduction launch. It is computed once per invocation and immutable
// afterwards.
type Decomposition struct {
	ThreadsPerRow         int // power of two in [1, MaxThreadsPerRow]
	RowsPerGroup          int // GroupSize / ThreadsPerRow
	GroupSize             int // threads per group, fixed by the tuning
	ScratchRowStrideWords int // per-row scratch stride in 32-bit words, always odd
	ScratchBytes          int // total scratch allocation per group, padding included
}

// Groups returns the number of thread-groups launched to cover a rows.
func (d Decomposition) Groups(a int) int {
	return (a + d.RowsPerGroup - 1) / d.RowsPerGroup
}

// Plan chooses the decomposition for rows of colB elements accumulated into a
// working type of accSize bytes.
//
// The thread count per row balances parallel width against idle-lane waste:
// a first pass doubles until threads <= colB < 2*threads (or the cap is hit);
// for small and medium rows a second pass searches the power-of-two,
// subgroup-multiple candidates below that bound for the one wasting the
// fewest iterations of the strided read loop. The factor-of-2 window left by
// the first pass can still hide large waste when colB is small, and the
// handful of remaining candidates makes an exact search cheap.
func Plan(colB, accSize int, tun Tuning) Decomposition {
	if colB < 1 {
		panic(fmt.Sprintf("kernel: plan: column count %d < 1", colB))
	}
	if accSize < 1 {
		panic(fmt.Sprintf("kernel: plan: accumulator size %d < 1", accSize))
	}
	if err := tun.Validate(); err != nil {
		panic(fmt.Sprintf("kernel: plan: %v", err))
	}

	threads := 1
	for threads < tun.MaxThreadsPerRow && threads*2 <= colB {
		threads *= 2
	}
	// Post-condition: threads <= colB, and threads < colB implies either
	// 2*threads > colB or saturation at MaxThreadsPerRow.

	if colB <= 4*tun.MaxThreadsPerRow {
		best, bestWaste := threads, strideWaste(colB, threads)
		for cand := tun.SubgroupSize; cand <= threads; cand *= 2 {
			if w := strideWaste(colB, cand); w < bestWaste {
				best, bestWaste = cand, w
			}
		}
		threads = best
	}

	rows := tun.GroupSize() / threads

	// An odd 32-bit-word stride shares no factor with the power-of-two bank
	// count, so concurrent same-column accesses across rows land in distinct
	// banks.
	words := (threads*accSize + 3) / 4
	if words%2 == 0 {
		words++
	}

	return Decomposition{
		ThreadsPerRow:         threads,
		RowsPerGroup:          rows,
		GroupSize:             tun.GroupSize(),
		ScratchRowStrideWords: words,
		ScratchBytes:          rows*words*4 + accSize*tun.MaxThreadsPerRow/2,
	}
}

// strideWaste counts the idle lane-iterations a row of colB elements pays
// when folded by cand threads at stride cand.
func strideWaste(colB, cand int) int {
	return (cand - colB%cand) % cand
}
