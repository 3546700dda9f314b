package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/phmalek/hoomd-blue/internal/compute"
	"github.com/phmalek/hoomd-blue/internal/force"
	"github.com/phmalek/hoomd-blue/internal/nlist"
	"github.com/phmalek/hoomd-blue/internal/system"
)

// Simulator drives force evaluation over the components registered with a
// system context. Positions are never advanced.
type Simulator struct {
	sys       *system.Context
	nl        *nlist.NeighborList
	metrics   []Metric
	observers []Observer
	logger    *slog.Logger
}

// New builds a simulator. nl may be nil when no pair forces are in use.
func New(sys *system.Context, nl *nlist.NeighborList) *Simulator {
	return &Simulator{
		sys:       sys,
		nl:        nl,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    sys.Logger().With("component", "sim"),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Forces returns the enabled force components in registration order.
func (s *Simulator) Forces() []force.Component {
	out := make([]force.Component, 0)
	for _, c := range s.sys.Computes() {
		if f, ok := c.(force.Component); ok && f.Enabled() {
			out = append(out, f)
		}
	}
	return out
}

// PrepRun validates and binds the coefficients of every enabled force, then
// refreshes the neighbor list cutoffs. The first failure aborts the run.
func (s *Simulator) PrepRun() error {
	for _, f := range s.Forces() {
		if err := f.UpdateCoeffs(); err != nil {
			return err
		}
	}
	if s.nl != nil {
		s.nl.RefreshCutoffs()
	}
	s.logger.Info("run prepared", "forces", len(s.Forces()))
	return nil
}

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if err := s.PrepRun(); err != nil {
		return nil, err
	}

	forces := s.Forces()
	labels := forceLabels(forces)
	pd := s.sys.ParticleData()

	result := &Result{
		Energies:      make([]float64, 0, cfg.Steps),
		Virials:       make([]float64, 0, cfg.Steps),
		ForceEnergies: make(map[string][]float64, len(forces)),
		Metrics:       make(map[string]float64),
		Errors:        make([]error, 0),
	}
	for _, l := range labels {
		result.ForceEnergies[l] = make([]float64, 0, cfg.Steps)
	}
	for _, m := range s.metrics {
		m.Reset()
	}

loop:
	for step := 0; step < cfg.Steps; step++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		accs, errs := evaluate(forces, pd, cfg.Parallel)
		for i, err := range errs {
			if err != nil {
				result.Errors = append(result.Errors, &StepError{Step: step, Force: labels[i], Err: err})
				break loop
			}
		}

		total := compute.NewAccumulator(pd.N())
		for i, acc := range accs {
			total.Merge(acc)
			result.ForceEnergies[labels[i]] = append(result.ForceEnergies[labels[i]], acc.TotalEnergy())
		}

		if cfg.ValidateState && !finite(total) {
			result.Errors = append(result.Errors, &StepError{Step: step, Err: fmt.Errorf("non-finite force or energy")})
			break
		}

		for _, m := range s.metrics {
			m.Observe(step, total)
		}
		for _, obs := range s.observers {
			obs.OnStep(step, total)
		}

		result.Energies = append(result.Energies, total.TotalEnergy())
		result.Virials = append(result.Virials, total.Virial)
		result.Final = total
		result.StepsTaken++
	}

	s.collectMetrics(result)
	s.logger.Info("run finished", "steps", result.StepsTaken, "errors", len(result.Errors))
	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	if s.sys.ParticleData() == nil {
		return fmt.Errorf("system is not initialized")
	}
	return nil
}

func (s *Simulator) collectMetrics(r *Result) {
	for _, m := range s.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
	if r.StepsTaken == 0 {
		return
	}
	sum := 0.0
	for _, e := range r.Energies {
		sum += e
	}
	r.Metrics["mean_energy"] = sum / float64(len(r.Energies))
	r.Metrics["final_energy"] = r.Energies[len(r.Energies)-1]

	maxF := 0.0
	for _, f := range r.Final.Force {
		maxF = math.Max(maxF, f.Norm())
	}
	r.Metrics["max_force"] = maxF

	if vol := s.sys.ParticleData().Box.Volume(); vol > 0 {
		r.Metrics["virial_pressure"] = r.Virials[len(r.Virials)-1] / (3 * vol)
	}
}

// forceLabels names forces for reporting; repeated names get a numeric
// suffix in registration order.
func forceLabels(forces []force.Component) []string {
	seen := make(map[string]int)
	labels := make([]string, len(forces))
	for i, f := range forces {
		name := f.Name()
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s#%d", name, n)
		}
		labels[i] = name
	}
	return labels
}

func finite(acc *compute.Accumulator) bool {
	for i := range acc.Force {
		if !acc.Force[i].IsValid() || math.IsNaN(acc.Energy[i]) || math.IsInf(acc.Energy[i], 0) {
			return false
		}
	}
	return true
}
