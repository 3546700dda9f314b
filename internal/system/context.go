package system

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phmalek/hoomd-blue/internal/compute"
	"github.com/phmalek/hoomd-blue/internal/md"
)

// ErrComputesAttached is returned by Init while forces built against the
// current rosters are still registered. Use Reset instead.
var ErrComputesAttached = errors.New("system: computes still attached")

// Compute is anything registered with the context for evaluation during a
// run. Detach is called once when the context drops the compute on Reset.
type Compute interface {
	Name() string
	Detach()
}

type registration struct {
	name    string
	compute Compute
}

type Context struct {
	logger    *slog.Logger
	mode      compute.Mode
	particles *Roster
	bonds     *Roster
	impropers *Roster
	pdata     *ParticleData

	computes map[uuid.UUID]registration
	order    []uuid.UUID
}

// New returns an empty context. Call Init before building forces.
func New(logger *slog.Logger) *Context {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Context{logger: logger}
	c.clear()
	return c
}

func (c *Context) clear() {
	c.particles, _ = NewRoster(md.KindParticle, nil)
	c.bonds, _ = NewRoster(md.KindBond, nil)
	c.impropers, _ = NewRoster(md.KindImproper, nil)
	c.pdata = &ParticleData{}
	c.computes = make(map[uuid.UUID]registration)
	c.order = nil
}

// Init loads def into the context and records the execution mode. The mode
// is checked by the backend selector, not here.
func (c *Context) Init(def Definition, mode compute.Mode) error {
	if len(c.order) > 0 {
		return fmt.Errorf("init with %d registered: %w", len(c.order), ErrComputesAttached)
	}
	particles, err := NewRoster(md.KindParticle, def.ParticleTypes)
	if err != nil {
		return err
	}
	bonds, err := NewRoster(md.KindBond, def.BondTypes)
	if err != nil {
		return err
	}
	impropers, err := NewRoster(md.KindImproper, def.ImproperTypes)
	if err != nil {
		return err
	}
	pdata, err := buildParticleData(def, particles, bonds, impropers)
	if err != nil {
		return err
	}

	c.particles, c.bonds, c.impropers = particles, bonds, impropers
	c.pdata = pdata
	c.mode = mode

	c.logger.Info("system initialized",
		"particles", pdata.N(),
		"particle_types", particles.Len(),
		"bonds", len(pdata.Bonds),
		"impropers", len(pdata.Impropers),
		"mode", mode.String(),
	)
	return nil
}

// Reset detaches every registered compute, newest first, and then
// reinitializes the context from def.
func (c *Context) Reset(def Definition, mode compute.Mode) error {
	for i := len(c.order) - 1; i >= 0; i-- {
		id := c.order[i]
		reg := c.computes[id]
		delete(c.computes, id)
		reg.compute.Detach()
		c.logger.Debug("compute detached", "name", reg.name, "id", id.String())
	}
	c.clear()
	return c.Init(def, mode)
}

func (c *Context) Logger() *slog.Logger { return c.logger }

func (c *Context) ExecMode() compute.Mode { return c.mode }

func (c *Context) SetExecMode(mode compute.Mode) { c.mode = mode }

func (c *Context) roster(kind md.Kind) *Roster {
	switch kind {
	case md.KindBond:
		return c.bonds
	case md.KindImproper:
		return c.impropers
	default:
		return c.particles
	}
}

func (c *Context) ResolveType(kind md.Kind, name string) (md.TypeID, error) {
	return c.roster(kind).Resolve(name)
}

func (c *Context) TypeName(kind md.Kind, id md.TypeID) string {
	return c.roster(kind).Name(id)
}

func (c *Context) TypeCount(kind md.Kind) int {
	return c.roster(kind).Len()
}

func (c *Context) TypeNames(kind md.Kind) []string {
	return c.roster(kind).Names()
}

func (c *Context) ParticleData() *ParticleData { return c.pdata }

func (c *Context) BondCount() int     { return len(c.pdata.Bonds) }
func (c *Context) ImproperCount() int { return len(c.pdata.Impropers) }

// RegisterCompute adds comp to the active list and returns its handle.
func (c *Context) RegisterCompute(comp Compute, name string) uuid.UUID {
	id := uuid.New()
	c.computes[id] = registration{name: name, compute: comp}
	c.order = append(c.order, id)
	c.logger.Debug("compute registered", "name", name, "id", id.String())
	return id
}

// DeregisterCompute removes the compute registered under id. Detach is not
// called; the caller owns the compute's teardown.
func (c *Context) DeregisterCompute(id uuid.UUID) bool {
	reg, ok := c.computes[id]
	if !ok {
		return false
	}
	delete(c.computes, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.logger.Debug("compute deregistered", "name", reg.name, "id", id.String())
	return true
}

// Computes returns the registered computes in registration order.
func (c *Context) Computes() []Compute {
	out := make([]Compute, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.computes[id].compute)
	}
	return out
}

// ComputeName returns the registration name of id.
func (c *Context) ComputeName(id uuid.UUID) (string, error) {
	reg, ok := c.computes[id]
	if !ok {
		return "", fmt.Errorf("compute %s not registered", id)
	}
	return reg.name, nil
}
