package compute

import (
	"runtime"
	"sync"
)

// serialThreshold is the item count below which Run stays on the caller's
// goroutine.
const serialThreshold = 16

type CPUBackend struct {
	workers int
}

// NewCPUBackend returns a backend with the given worker count; workers <= 0
// uses one worker per CPU.
func NewCPUBackend(workers int) *CPUBackend {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &CPUBackend{workers: workers}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Mode() Mode      { return ModeCPU }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}
func (c *CPUBackend) Workers() int    { return c.workers }

func (c *CPUBackend) Run(n, nParticles int, kernel Kernel) *Accumulator {
	if n < serialThreshold || c.workers == 1 {
		acc := NewAccumulator(nParticles)
		for i := 0; i < n; i++ {
			kernel(i, acc)
		}
		return acc
	}
	return c.runParallel(n, nParticles, kernel)
}

// runParallel splits items into contiguous chunks, one per worker, each
// with a private accumulator that is merged after all workers finish.
func (c *CPUBackend) runParallel(n, nParticles int, kernel Kernel) *Accumulator {
	workers := c.workers
	if workers > n {
		workers = n
	}

	local := make([]*Accumulator, workers)
	for w := 0; w < workers; w++ {
		local[w] = NewAccumulator(nParticles)
	}

	var wg sync.WaitGroup
	chunkSize := (n + workers - 1) / workers

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			start := worker * chunkSize
			end := start + chunkSize
			if end > n {
				end = n
			}

			acc := local[worker]
			for i := start; i < end; i++ {
				kernel(i, acc)
			}
		}(w)
	}

	wg.Wait()

	result := local[0]
	for w := 1; w < workers; w++ {
		result.Merge(local[w])
	}
	return result
}
