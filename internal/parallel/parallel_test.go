package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor_CoversRangeExactlyOnce(t *testing.T) {
	const n = 10000
	var hits [n]int32

	For(n, func(i int) {
		atomic.AddInt32(&hits[i], 1)
	}, DefaultConfig())

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times", i, h)
		}
	}
}

func TestFor_SequentialWhenDisabled(t *testing.T) {
	cfg := Config{Enabled: false}

	order := make([]int, 0, 5)
	For(5, func(i int) { order = append(order, i) }, cfg)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestFor_SmallRangeStaysSequential(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinChunk = 64

	// Below MinChunk the callback runs on the calling goroutine, so plain
	// slice appends are safe.
	order := make([]int, 0, 8)
	For(8, func(i int) { order = append(order, i) }, cfg)

	assert.Len(t, order, 8)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, order)
}

func TestGroups_CoversAllGroups(t *testing.T) {
	const n = 37
	var hits [n]int32

	cfg := DefaultConfig()
	Groups(n, func(g int) {
		atomic.AddInt32(&hits[g], 1)
	}, cfg)

	for g, h := range hits {
		assert.EqualValues(t, 1, h, "group %d", g)
	}
}

func TestGroups_TwoGroupsRunConcurrently(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 2}

	var total atomic.Int32
	Groups(2, func(g int) { total.Add(int32(g + 1)) }, cfg)

	assert.EqualValues(t, 3, total.Load())
}
