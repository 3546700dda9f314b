package sim

import (
	"fmt"

	"github.com/phmalek/hoomd-blue/internal/compute"
)

// Observer sees the summed accumulator after every step.
type Observer interface {
	OnStep(step int, total *compute.Accumulator)
}

// Metric reduces the per-step totals of a run to one number.
type Metric interface {
	Name() string
	Observe(step int, total *compute.Accumulator)
	Value() float64
	Reset()
}

type Config struct {
	Steps int
	// Parallel evaluates independent forces concurrently within a step.
	Parallel      bool
	ValidateState bool
}

type Result struct {
	StepsTaken    int
	Energies      []float64
	Virials       []float64
	ForceEnergies map[string][]float64
	// Final holds the per-particle totals of the last step.
	Final   *compute.Accumulator
	Metrics map[string]float64
	Errors  []error
}

// StepError reports a failure while evaluating one force at one step.
type StepError struct {
	Step  int
	Force string
	Err   error
}

func (e *StepError) Error() string {
	if e.Force == "" {
		return fmt.Sprintf("step %d: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("step %d: %s: %v", e.Step, e.Force, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
