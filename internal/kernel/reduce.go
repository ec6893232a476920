package kernel

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/rill-ml/rill/internal/parallel"
)

// execConfig governs how thread-groups fan out across OS threads.
var execConfig = parallel.DefaultConfig()

// ReduceColumns collapses every row of the (a x b) matrix view seen through
// op to a single value: it plans a decomposition for b and the accumulator
// width, then executes it. Synchronous: when it returns, op.Write has been
// called for every row in [0, a).
func ReduceColumns[W any](op Op[W], a, b int, tun Tuning) {
	var zero W
	Reduce(op, a, b, Plan(b, int(unsafe.Sizeof(zero)), tun), tun)
}

// Reduce executes a previously planned decomposition. One thread-group is
// launched per tile of dec.RowsPerGroup rows; groups are independent and may
// complete in any order. Contract violations are caller bugs and panic.
func Reduce[W any](op Op[W], a, b int, dec Decomposition, tun Tuning) {
	if a < 1 || b < 1 {
		panic(fmt.Sprintf("kernel: reduce: invalid matrix view %dx%d", a, b))
	}
	if !op.valid() {
		panic("kernel: reduce: op needs read, write and combine")
	}
	parallel.Groups(dec.Groups(a), func(g int) {
		runGroup(op, a, b, dec, tun, g)
	}, execConfig)
}

// runGroup executes one thread-group: it allocates the group's scratch and
// runs one goroutine per hardware subgroup. Lanes within a subgroup execute
// in lockstep by construction, which is exactly the ordering guarantee the
// lightweight synchronization tier relies on.
func runGroup[W any](op Op[W], a, b int, dec Decomposition, tun Tuning, group int) {
	sc := newScratch[W](dec, tun)
	subgroups := dec.GroupSize / tun.SubgroupSize
	bar := newBarrier(subgroups)

	if subgroups == 1 {
		subgroupLanes(op, a, b, dec, tun, group, sc, bar, 0)
		return
	}

	var wg sync.WaitGroup
	wg.Add(subgroups)
	for sg := 0; sg < subgroups; sg++ {
		go func(sg int) {
			defer wg.Done()
			subgroupLanes(op, a, b, dec, tun, group, sc, bar, sg)
		}(sg)
	}
	wg.Wait()
}

// subgroupLanes runs the lanes of one subgroup through the kernel phases:
// local fold, stage, tree fold, commit.
func subgroupLanes[W any](op Op[W], a, b int, dec Decomposition, tun Tuning, group int, sc scratch[W], bar *barrier, sg int) {
	t := dec.ThreadsPerRow
	lo := sg * tun.SubgroupSize
	hi := lo + tun.SubgroupSize

	// Local fold and stage: each lane accumulates one column then strides
	// through the rest of its row at stride t. Rows past a-1 in an
	// over-provisioned last group clamp their reads to the final valid row;
	// they are dropped again at commit.
	for lane := lo; lane < hi; lane++ {
		row, laneID := lane/t, lane%t
		readRow := group*dec.RowsPerGroup + row
		if readRow > a-1 {
			readRow = a - 1
		}
		base := readRow * b
		acc := op.Read(base + laneID)
		for c := laneID + t; c < b; c += t {
			acc = op.Combine(acc, op.Read(base+c))
		}
		sc.set(row, laneID, acc)
	}

	// Tree fold: pairwise halving from MaxThreadsPerRow/2 down to 1. While
	// step is at least the subgroup width the neighbor slot may belong to
	// another subgroup, so a group barrier must precede the combine. Below
	// that, reader and neighbor are lanes of the same lockstep subgroup and
	// no barrier is needed.
	for step := tun.MaxThreadsPerRow / 2; step >= 1; step >>= 1 {
		if step >= tun.SubgroupSize {
			bar.wait()
		}
		if t < 2*step {
			continue
		}
		for lane := lo; lane < hi; lane++ {
			row, laneID := lane/t, lane%t
			if laneID < step {
				sc.set(row, laneID, op.Combine(sc.get(row, laneID), sc.get(row, laneID+step)))
			}
		}
	}

	// Commit: lane 0 of each row writes the folded value, skipping rows the
	// tile over-provisioned.
	for lane := lo; lane < hi; lane++ {
		if lane%t != 0 {
			continue
		}
		row := lane / t
		outRow := group*dec.RowsPerGroup + row
		if outRow < a {
			op.Write(outRow, sc.get(row, 0))
		}
	}
}
