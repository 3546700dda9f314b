package compute

import (
	"fmt"
	"strings"

	"github.com/phmalek/hoomd-blue/internal/md"
)

// Mode is the execution configuration a run was started with.
type Mode int

const (
	ModeUnknown Mode = iota
	ModeCPU
	ModeGPU
)

func (m Mode) String() string {
	switch m {
	case ModeCPU:
		return "cpu"
	case ModeGPU:
		return "gpu"
	default:
		return "unknown"
	}
}

// ParseMode maps "cpu" and "gpu" (any case) to their modes; anything else
// is ModeUnknown.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cpu":
		return ModeCPU
	case "gpu", "cuda":
		return ModeGPU
	default:
		return ModeUnknown
	}
}

// Kernel evaluates work item i and adds its contributions to acc.
type Kernel func(i int, acc *Accumulator)

// Accumulator collects per-particle forces and energies.
type Accumulator struct {
	Force  []md.Vec3
	Energy []float64
	Virial float64
}

func NewAccumulator(n int) *Accumulator {
	return &Accumulator{
		Force:  make([]md.Vec3, n),
		Energy: make([]float64, n),
	}
}

func (a *Accumulator) AddForce(i int, f md.Vec3) {
	a.Force[i] = a.Force[i].Add(f)
}

func (a *Accumulator) AddEnergy(i int, e float64) {
	a.Energy[i] += e
}

// Merge adds o into a. Both must be sized for the same particle count.
func (a *Accumulator) Merge(o *Accumulator) {
	for i := range a.Force {
		a.Force[i] = a.Force[i].Add(o.Force[i])
		a.Energy[i] += o.Energy[i]
	}
	a.Virial += o.Virial
}

func (a *Accumulator) TotalEnergy() float64 {
	sum := 0.0
	for _, e := range a.Energy {
		sum += e
	}
	return sum
}

type Backend interface {
	Name() string
	Mode() Mode
	Available() bool
	// Run evaluates kernel for items [0, n) and returns the summed
	// contributions for nParticles particles. Run blocks until done.
	Run(n, nParticles int, kernel Kernel) *Accumulator
	Cleanup()
}

// Select builds the backend for mode.
func Select(mode Mode) (Backend, error) {
	switch mode {
	case ModeCPU:
		return NewCPUBackend(0), nil
	case ModeGPU:
		return NewGPUBackend(), nil
	default:
		return nil, &md.ConfigurationError{
			Msg:     fmt.Sprintf("unsupported execution mode %q", mode.String()),
			Wrapped: md.ErrUnknownMode,
		}
	}
}

// AutoSelectMode prefers the GPU when a device is present.
func AutoSelectMode() Mode {
	gpu := NewGPUBackend()
	defer gpu.Cleanup()
	if gpu.Available() {
		return ModeGPU
	}
	return ModeCPU
}
