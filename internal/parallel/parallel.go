// Package parallel provides bounded goroutine fan-out for kernel execution.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Number of worker goroutines to use.
	MinChunk   int  // Minimum items per goroutine to amortize spawn overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
		MinChunk:   64,
	}
}

// For executes f(i) for i in [0, n), splitting the range into contiguous
// chunks across workers. Falls back to sequential execution if parallelism is
// disabled or n is too small to be worth the spawn cost.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinChunk {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunk := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunk)

	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// Groups executes f(g) for g in [0, n) where each item is a coarse unit of
// work (a thread-group dispatch). Unlike For, no minimum chunk applies: even
// two groups are worth running concurrently. At most NumWorkers goroutines
// run at once.
func Groups(n int, f func(g int), cfg Config) {
	if !cfg.Enabled || n < 2 {
		for g := 0; g < n; g++ {
			f(g)
		}
		return
	}

	workers := min(cfg.NumWorkers, n)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for g := w; g < n; g += workers {
				f(g)
			}
		}(w)
	}
	wg.Wait()
}
