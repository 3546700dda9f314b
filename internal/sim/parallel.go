package sim

import (
	"sync"

	"github.com/phmalek/hoomd-blue/internal/compute"
	"github.com/phmalek/hoomd-blue/internal/force"
	"github.com/phmalek/hoomd-blue/internal/system"
)

// evaluate runs Compute on every force and returns the accumulators in
// force order. With parallel set each force gets its own goroutine.
func evaluate(forces []force.Component, pd *system.ParticleData, parallel bool) ([]*compute.Accumulator, []error) {
	accs := make([]*compute.Accumulator, len(forces))
	errs := make([]error, len(forces))

	if !parallel {
		for i, f := range forces {
			accs[i], errs[i] = f.Compute(pd)
		}
		return accs, errs
	}

	var wg sync.WaitGroup
	for i, f := range forces {
		wg.Add(1)
		go func(idx int, f force.Component) {
			defer wg.Done()
			accs[idx], errs[idx] = f.Compute(pd)
		}(i, f)
	}
	wg.Wait()

	return accs, errs
}
