package force

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phmalek/hoomd-blue/internal/coeff"
	"github.com/phmalek/hoomd-blue/internal/compute"
	"github.com/phmalek/hoomd-blue/internal/md"
	"github.com/phmalek/hoomd-blue/internal/system"
)

// Component is a named contributor to the total force.
type Component interface {
	system.Compute

	ID() uuid.UUID
	Kind() md.Kind
	State() State
	Backend() compute.Backend
	Coeffs() *coeff.Table
	RequiredNames() []string
	// Keys enumerates every key that needs coefficients.
	Keys() []md.TypeKey
	KeyLabel(key md.TypeKey) string

	SetCoeff(names []string, params coeff.Set) error
	RemoveCoeff(names ...string) error
	UpdateCoeffs() error

	Enabled() bool
	Enable()
	Disable()

	// Compute evaluates the component on pd, validating coefficients first
	// if they changed since the last UpdateCoeffs.
	Compute(pd *system.ParticleData) (*compute.Accumulator, error)
	Remove() error
}

// variant is the per-family behaviour plugged into base.
type variant interface {
	// check runs eager checks on parameters at set time.
	check(params coeff.Set) error
	// bind hands a validated, default-filled set to the kernel.
	bind(key md.TypeKey, full coeff.Set)
	// committed runs once every key has been bound.
	committed()
	coeffSet(key md.TypeKey, params coeff.Set)
	coeffRemoved(key md.TypeKey)
	evaluate(pd *system.ParticleData) (*compute.Accumulator, error)
	detach()
}

type base struct {
	name     string
	kind     md.Kind
	pairKeys bool
	required []string
	defaults coeff.Set

	ctx     *system.Context
	backend compute.Backend
	table   *coeff.Table
	id      uuid.UUID
	state   State
	enabled bool
	bound   bool
	logger  *slog.Logger

	v variant
}

// newBase runs the construction checks shared by every family: the force
// must apply to at least one entity, and the execution mode must map to a
// backend.
func newBase(ctx *system.Context, name string, kind md.Kind, pairKeys bool, required []string, defaults coeff.Set, applicable int) (*base, error) {
	if applicable == 0 || ctx.TypeCount(kind) == 0 {
		return nil, &md.ConfigurationError{
			Force:   name,
			Msg:     fmt.Sprintf("no %ss are defined", kind),
			Wrapped: md.ErrNoInteractions,
		}
	}

	backend, err := compute.Select(ctx.ExecMode())
	if err != nil {
		if ce, ok := err.(*md.ConfigurationError); ok {
			ce.Force = name
		}
		return nil, err
	}

	return &base{
		name:     name,
		kind:     kind,
		pairKeys: pairKeys,
		required: required,
		defaults: defaults,
		ctx:      ctx,
		backend:  backend,
		table:    coeff.NewTable(),
		state:    Unconfigured,
		enabled:  true,
		logger:   ctx.Logger().With("force", name),
	}, nil
}

// register adds self to the context; called last by each constructor.
func (b *base) register(self system.Compute) {
	b.id = b.ctx.RegisterCompute(self, b.name)
	b.logger = b.logger.With("id", b.id.String())
	b.logger.Info("force created", "backend", b.backend.Name(), "keys", len(b.Keys()))
}

func (b *base) Name() string             { return b.name }
func (b *base) ID() uuid.UUID            { return b.id }
func (b *base) Kind() md.Kind            { return b.kind }
func (b *base) State() State             { return b.state }
func (b *base) Backend() compute.Backend { return b.backend }
func (b *base) Coeffs() *coeff.Table     { return b.table }
func (b *base) Enabled() bool            { return b.enabled && b.state != Destroyed }
func (b *base) RequiredNames() []string  { return append([]string(nil), b.required...) }

func (b *base) Keys() []md.TypeKey {
	n := b.ctx.TypeCount(b.kind)
	if b.pairKeys {
		return md.PairKeys(n)
	}
	return md.SingleKeys(n)
}

func (b *base) KeyLabel(key md.TypeKey) string {
	return key.Label(func(id md.TypeID) string { return b.ctx.TypeName(b.kind, id) })
}

func (b *base) Enable() {
	if b.state != Destroyed {
		b.enabled = true
	}
}

func (b *base) Disable() {
	if b.state != Destroyed {
		b.enabled = false
	}
}

func (b *base) destroyedErr() error {
	return &md.ConfigurationError{Force: b.name, Wrapped: md.ErrDestroyed}
}

// resolve maps type names to a key of the right arity.
func (b *base) resolve(names []string) (md.TypeKey, error) {
	want := 1
	if b.pairKeys {
		want = 2
	}
	if len(names) != want {
		return md.TypeKey{}, &md.ConfigurationError{
			Force:   b.name,
			Msg:     fmt.Sprintf("expected %d type names, got %d", want, len(names)),
			Wrapped: md.ErrInvalidParam,
		}
	}

	ids := make([]md.TypeID, len(names))
	for i, name := range names {
		id, err := b.ctx.ResolveType(b.kind, name)
		if err != nil {
			if ce, ok := err.(*md.ConfigurationError); ok {
				ce.Force = b.name
			}
			return md.TypeKey{}, err
		}
		ids[i] = id
	}

	if b.pairKeys {
		return md.PairKey(ids[0], ids[1]), nil
	}
	return md.SingleKey(ids[0]), nil
}

func (b *base) SetCoeff(names []string, params coeff.Set) error {
	if b.state == Destroyed {
		return b.destroyedErr()
	}
	key, err := b.resolve(names)
	if err != nil {
		return err
	}
	if err := b.v.check(params); err != nil {
		if ce, ok := err.(*md.ConfigurationError); ok {
			ce.Force, ce.Key = b.name, b.KeyLabel(key)
		}
		return err
	}

	b.table.Set(key, params)
	b.v.coeffSet(key, params)
	b.bound = false
	b.refreshState()

	b.logger.Debug("coefficients set", "key", b.KeyLabel(key), "params", params)
	return nil
}

// RemoveCoeff drops the coefficients for one key. Removing an unset key is
// not an error.
func (b *base) RemoveCoeff(names ...string) error {
	if b.state == Destroyed {
		return b.destroyedErr()
	}
	key, err := b.resolve(names)
	if err != nil {
		return err
	}
	if b.table.Remove(key) {
		b.v.coeffRemoved(key)
		b.bound = false
		b.refreshState()
		b.logger.Debug("coefficients removed", "key", b.KeyLabel(key))
	}
	return nil
}

func (b *base) refreshState() {
	if b.state == Destroyed {
		return
	}
	next := Unconfigured
	if b.table.Len() > 0 {
		next = PartiallyConfigured
		if len(coeff.Check(b.table, b.Keys(), b.required)) == 0 {
			next = Configured
		}
	}
	if next != b.state {
		b.logger.Debug("state changed", "from", b.state.String(), "to", next.String())
		b.state = next
	}
}

func (b *base) UpdateCoeffs() error {
	if b.state == Destroyed {
		return b.destroyedErr()
	}

	keys := b.Keys()
	if err := coeff.Validate(b.name, b.table, keys, b.required, b.KeyLabel); err != nil {
		b.logger.Error("coefficient check failed", "error", err)
		return err
	}

	for _, key := range keys {
		set, _ := b.table.Get(key)
		full := b.defaults.Clone()
		for name, v := range set {
			full[name] = v
		}
		b.v.bind(key, full)
	}
	b.v.committed()
	b.bound = true
	b.refreshState()
	return nil
}

func (b *base) Compute(pd *system.ParticleData) (*compute.Accumulator, error) {
	if b.state == Destroyed {
		return nil, b.destroyedErr()
	}
	if !b.enabled {
		return compute.NewAccumulator(pd.N()), nil
	}
	if !b.bound {
		if err := b.UpdateCoeffs(); err != nil {
			return nil, err
		}
	}
	return b.v.evaluate(pd)
}

// Detach moves the component to Destroyed and releases its backend. It does
// not touch the context's registry.
func (b *base) Detach() {
	if b.state == Destroyed {
		return
	}
	b.v.detach()
	b.backend.Cleanup()
	b.state = Destroyed
	b.enabled = false
	b.logger.Info("force removed")
}

// Remove deregisters the component from its context and detaches it.
func (b *base) Remove() error {
	if b.state == Destroyed {
		return b.destroyedErr()
	}
	b.ctx.DeregisterCompute(b.id)
	b.Detach()
	return nil
}

var (
	_ Component = (*PairForce)(nil)
	_ Component = (*BondForce)(nil)
	_ Component = (*ImproperForce)(nil)
)
