package kernel

import "sync"

// barrier is a reusable rendezvous for the subgroup goroutines of one
// thread-group. Every participant calls wait; nobody proceeds until all have
// arrived. It is the group-wide synchronization tier; the lighter
// same-subgroup tier needs no primitive at all here, because the lanes of a
// subgroup execute in lockstep on a single goroutine.
type barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	parties int
	arrived int
	phase   int
}

func newBarrier(parties int) *barrier {
	b := &barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

func (b *barrier) wait() {
	if b.parties < 2 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.arrived++
	if b.arrived == b.parties {
		b.arrived = 0
		b.phase++
		b.cond.Broadcast()
		return
	}
	phase := b.phase
	for b.phase == phase {
		b.cond.Wait()
	}
}
