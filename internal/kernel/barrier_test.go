package kernel

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBarrierPhases(t *testing.T) {
	const parties, phases = 8, 50
	bar := newBarrier(parties)
	var counter atomic.Int64

	var wg sync.WaitGroup
	wg.Add(parties)
	for p := 0; p < parties; p++ {
		go func() {
			defer wg.Done()
			for phase := 0; phase < phases; phase++ {
				counter.Add(1)
				bar.wait()
				// All parties of this phase have incremented before anyone
				// proceeds.
				if got := counter.Load(); got < int64((phase+1)*parties) {
					t.Errorf("phase %d: counter %d below %d", phase, got, (phase+1)*parties)
				}
				bar.wait()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int64(parties*phases), counter.Load())
}

func TestBarrierSingleParty(t *testing.T) {
	bar := newBarrier(1)
	bar.wait() // must not block
	bar.wait()
}
