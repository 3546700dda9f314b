package force_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/phmalek/hoomd-blue/internal/coeff"
	"github.com/phmalek/hoomd-blue/internal/compute"
	"github.com/phmalek/hoomd-blue/internal/force"
	"github.com/phmalek/hoomd-blue/internal/md"
	"github.com/phmalek/hoomd-blue/internal/nlist"
	"github.com/phmalek/hoomd-blue/internal/potential"
	"github.com/phmalek/hoomd-blue/internal/system"
)

var _ = Describe("PairForce", func() {
	var (
		ctx *system.Context
		nl  *nlist.NeighborList
	)

	BeforeEach(func() {
		ctx = newContext(lattice([]string{"A"}, 6, 1.2, false, false), compute.ModeCPU)
		nl = nlist.New(0.3, quietLogger())
	})

	Describe("construction", func() {
		It("registers with the context and selects the backend", func() {
			gauss, err := force.NewPair(ctx, nl, potential.Gauss{}, 3.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(gauss.Name()).To(Equal("pair.gauss"))
			Expect(gauss.State()).To(Equal(force.Unconfigured))
			Expect(gauss.Backend().Mode()).To(Equal(compute.ModeCPU))
			Expect(ctx.Computes()).To(ConsistOf(gauss))
		})

		It("uses the GPU backend in GPU mode", func() {
			ctx.SetExecMode(compute.ModeGPU)
			gauss, err := force.NewPair(ctx, nl, potential.Gauss{}, 3.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(gauss.Backend().Mode()).To(Equal(compute.ModeGPU))
		})

		It("rejects an unknown execution mode", func() {
			ctx.SetExecMode(compute.ModeUnknown)
			_, err := force.NewPair(ctx, nl, potential.Gauss{}, 3.0)
			Expect(err).To(MatchError(md.ErrUnknownMode))
			Expect(md.IsConfigError(err)).To(BeTrue())
			Expect(ctx.Computes()).To(BeEmpty())
		})

		It("rejects a negative default cutoff", func() {
			_, err := force.NewPair(ctx, nl, potential.Gauss{}, -1)
			Expect(err).To(MatchError(md.ErrInvalidParam))
		})

		It("requires a neighbor list", func() {
			_, err := force.NewPair(ctx, nil, potential.Gauss{}, 3.0)
			Expect(err).To(MatchError(md.ErrInvalidParam))
		})
	})

	Describe("coefficients", func() {
		var gauss *force.PairForce

		BeforeEach(func() {
			var err error
			gauss, err = force.NewPair(ctx, nl, potential.Gauss{}, 3.0)
			Expect(err).NotTo(HaveOccurred())
		})

		It("succeeds once epsilon and sigma are set", func() {
			Expect(gauss.SetPairCoeff("A", "A", coeff.Set{"epsilon": 1.0, "sigma": 1.0})).To(Succeed())
			Expect(gauss.UpdateCoeffs()).To(Succeed())
			Expect(gauss.State()).To(Equal(force.Configured))
		})

		It("fails when epsilon is missing and recovers when it is added", func() {
			Expect(gauss.SetPairCoeff("A", "A", coeff.Set{"sigma": 1.0})).To(Succeed())
			Expect(gauss.State()).To(Equal(force.PartiallyConfigured))

			err := gauss.UpdateCoeffs()
			Expect(err).To(MatchError(md.ErrMissingCoeff))
			Expect(err.Error()).To(ContainSubstring("epsilon"))
			Expect(err.Error()).To(ContainSubstring("pair.gauss"))
			Expect(err.Error()).To(ContainSubstring("(A,A)"))

			Expect(gauss.SetPairCoeff("A", "A", coeff.Set{"epsilon": 1.0})).To(Succeed())
			Expect(gauss.UpdateCoeffs()).To(Succeed())
		})

		It("fails when the pair was never set", func() {
			Expect(gauss.UpdateCoeffs()).To(MatchError(md.ErrMissingCoeff))
		})

		It("is idempotent", func() {
			params := coeff.Set{"epsilon": 1.0, "sigma": 1.0}
			Expect(gauss.SetPairCoeff("A", "A", params)).To(Succeed())
			first, _ := gauss.Coeffs().Get(md.PairKey(0, 0))
			Expect(gauss.SetPairCoeff("A", "A", params)).To(Succeed())
			second, _ := gauss.Coeffs().Get(md.PairKey(0, 0))

			Expect(second).To(Equal(first))
			Expect(gauss.Coeffs().Len()).To(Equal(1))
		})

		It("rejects unknown type names at set time", func() {
			err := gauss.SetPairCoeff("A", "Z", coeff.Set{"epsilon": 1.0})
			Expect(err).To(MatchError(md.ErrUnknownType))
		})

		It("rejects the wrong number of type names", func() {
			err := gauss.SetCoeff([]string{"A"}, coeff.Set{"epsilon": 1.0})
			Expect(err).To(MatchError(md.ErrInvalidParam))
		})

		It("rejects a negative r_cut eagerly", func() {
			err := gauss.SetPairCoeff("A", "A", coeff.Set{"r_cut": -2})
			Expect(err).To(MatchError(md.ErrInvalidParam))
			Expect(gauss.Coeffs().Len()).To(Equal(0))
		})

		It("falls back to partially configured when a key is removed", func() {
			c := newContext(lattice([]string{"A", "B"}, 4, 1.2, false, false), compute.ModeCPU)
			lj, err := force.NewPair(c, nlist.New(0.3, quietLogger()), potential.LJ{}, 2.5)
			Expect(err).NotTo(HaveOccurred())
			for _, pair := range [][2]string{{"A", "A"}, {"A", "B"}, {"B", "B"}} {
				Expect(lj.SetPairCoeff(pair[0], pair[1], coeff.Set{"epsilon": 1.0, "sigma": 1.0})).To(Succeed())
			}
			Expect(lj.UpdateCoeffs()).To(Succeed())
			Expect(lj.State()).To(Equal(force.Configured))

			Expect(lj.RemoveCoeff("B", "A")).To(Succeed())
			Expect(lj.State()).To(Equal(force.PartiallyConfigured))
			Expect(lj.UpdateCoeffs()).To(MatchError(md.ErrMissingCoeff))

			Expect(lj.RemoveCoeff("A", "A")).To(Succeed())
			Expect(lj.RemoveCoeff("B", "B")).To(Succeed())
			Expect(lj.State()).To(Equal(force.Unconfigured))
		})
	})

	Describe("SetParams", func() {
		It("accepts exactly no_shift, shift and xplor", func() {
			gauss, err := force.NewPair(ctx, nl, potential.Gauss{}, 3.0)
			Expect(err).NotTo(HaveOccurred())

			for _, mode := range []string{"no_shift", "shift", "xplor"} {
				Expect(gauss.SetParams(mode)).To(Succeed())
				Expect(gauss.ShiftMode().String()).To(Equal(mode))
			}

			err = gauss.SetParams("blah")
			Expect(err).To(MatchError(md.ErrInvalidParam))
			Expect(gauss.ShiftMode()).To(Equal(potential.XPLOR))
		})
	})

	Describe("neighbor list subscription", func() {
		It("reports the default cutoff, then the override, after refresh", func() {
			gauss, err := force.NewPair(ctx, nl, potential.Gauss{}, 2.5)
			Expect(err).NotTo(HaveOccurred())

			Expect(gauss.SetPairCoeff("A", "A", coeff.Set{"sigma": 1.0, "epsilon": 1.0})).To(Succeed())
			nl.RefreshCutoffs()
			Expect(nl.MaxCutoffPair(0, 0)).To(BeNumerically("~", 2.5, 1e-12))

			Expect(gauss.SetPairCoeff("A", "A", coeff.Set{"r_cut": 2.0})).To(Succeed())
			Expect(nl.MaxCutoffPair(0, 0)).To(BeNumerically("~", 2.5, 1e-12))
			nl.RefreshCutoffs()
			Expect(nl.MaxCutoffPair(0, 0)).To(BeNumerically("~", 2.0, 1e-12))
		})

		It("treats (A,B) and (B,A) as the same pair", func() {
			ctx2 := newContext(lattice([]string{"A", "B"}, 4, 1.2, false, false), compute.ModeCPU)
			for _, order := range [][2]string{{"A", "B"}, {"B", "A"}} {
				nl2 := nlist.New(0, quietLogger())
				lj, err := force.NewPair(ctx2, nl2, potential.LJ{}, 3.0)
				Expect(err).NotTo(HaveOccurred())

				Expect(lj.SetPairCoeff(order[0], order[1], coeff.Set{"r_cut": 1.8})).To(Succeed())
				nl2.RefreshCutoffs()
				Expect(nl2.MaxCutoffPair(0, 1)).To(Equal(1.8))
				Expect(nl2.MaxCutoffPair(1, 0)).To(Equal(1.8))
			}
		})

		It("drops subscriptions when removed", func() {
			gauss, err := force.NewPair(ctx, nl, potential.Gauss{}, 2.5)
			Expect(err).NotTo(HaveOccurred())
			Expect(gauss.Remove()).To(Succeed())

			nl.RefreshCutoffs()
			Expect(nl.MaxCutoffPair(0, 0)).To(BeZero())
			Expect(gauss.State()).To(Equal(force.Destroyed))
			Expect(ctx.Computes()).To(BeEmpty())
		})
	})

	Describe("Compute", func() {
		It("produces zero net force and matches between backends", func() {
			results := map[compute.Mode]*compute.Accumulator{}
			for _, mode := range []compute.Mode{compute.ModeCPU, compute.ModeGPU} {
				c := newContext(lattice([]string{"A", "B"}, 6, 1.1, false, false), mode)
				nlm := nlist.New(0.3, quietLogger())
				lj, err := force.NewPair(c, nlm, potential.LJ{}, 2.5)
				Expect(err).NotTo(HaveOccurred())
				Expect(lj.SetPairCoeff("A", "A", coeff.Set{"epsilon": 1.0, "sigma": 1.0})).To(Succeed())
				Expect(lj.SetPairCoeff("A", "B", coeff.Set{"epsilon": 0.5, "sigma": 1.0})).To(Succeed())
				Expect(lj.SetPairCoeff("B", "B", coeff.Set{"epsilon": 1.0, "sigma": 0.9})).To(Succeed())
				Expect(lj.SetParams("shift")).To(Succeed())
				nlm.RefreshCutoffs()

				acc, err := lj.Compute(c.ParticleData())
				Expect(err).NotTo(HaveOccurred())

				var net md.Vec3
				for _, f := range acc.Force {
					net = net.Add(f)
				}
				Expect(net.Norm()).To(BeNumerically("<", 1e-9))
				results[mode] = acc
			}

			Expect(results[compute.ModeGPU].TotalEnergy()).To(BeNumerically("~", results[compute.ModeCPU].TotalEnergy(), 1e-9))
		})

		It("validates lazily and fails on missing coefficients", func() {
			gauss, err := force.NewPair(ctx, nl, potential.Gauss{}, 2.0)
			Expect(err).NotTo(HaveOccurred())
			_, err = gauss.Compute(ctx.ParticleData())
			Expect(err).To(MatchError(md.ErrMissingCoeff))
		})

		It("evaluates the two-particle Gaussian exactly", func() {
			def := system.Definition{
				Box:           md.NewBox(20, 20, 20),
				ParticleTypes: []string{"A"},
				Positions:     []md.Vec3{{X: 0}, {X: 1}},
				Types:         []string{"A", "A"},
			}
			c := newContext(def, compute.ModeCPU)
			nl2 := nlist.New(0, quietLogger())
			gauss, err := force.NewPair(c, nl2, potential.Gauss{}, 3.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(gauss.SetPairCoeff("A", "A", coeff.Set{"epsilon": 2.0, "sigma": 1.0})).To(Succeed())

			acc, err := gauss.Compute(c.ParticleData())
			Expect(err).NotTo(HaveOccurred())

			v := 2.0 * math.Exp(-0.5)
			Expect(acc.TotalEnergy()).To(BeNumerically("~", v, 1e-12))
			// repulsive: particle 0 is pushed toward -x
			Expect(acc.Force[0].X).To(BeNumerically("~", -v, 1e-12))
			Expect(acc.Force[1].X).To(BeNumerically("~", v, 1e-12))
		})

		It("picks up a raised r_cut without a manual refresh", func() {
			def := system.Definition{
				Box:           md.NewBox(20, 20, 20),
				ParticleTypes: []string{"A"},
				Positions:     []md.Vec3{{X: 0}, {X: 2.5}},
				Types:         []string{"A", "A"},
			}
			c := newContext(def, compute.ModeCPU)
			nl2 := nlist.New(0, quietLogger())
			gauss, err := force.NewPair(c, nl2, potential.Gauss{}, 2.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(gauss.SetPairCoeff("A", "A", coeff.Set{"epsilon": 2.0, "sigma": 1.0})).To(Succeed())

			acc, err := gauss.Compute(c.ParticleData())
			Expect(err).NotTo(HaveOccurred())
			Expect(acc.TotalEnergy()).To(BeZero())

			Expect(gauss.SetPairCoeff("A", "A", coeff.Set{"r_cut": 3.0})).To(Succeed())
			acc, err = gauss.Compute(c.ParticleData())
			Expect(err).NotTo(HaveOccurred())
			Expect(nl2.MaxCutoffPair(0, 0)).To(Equal(3.0))

			_, v, err := gauss.Evaluate(md.PairKey(0, 0), 2.5)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(BeNumerically("~", 2.0*math.Exp(-3.125), 1e-12))
			Expect(acc.TotalEnergy()).To(BeNumerically("~", v, 1e-12))
		})

		It("contributes nothing while disabled", func() {
			gauss, err := force.NewPair(ctx, nl, potential.Gauss{}, 2.0)
			Expect(err).NotTo(HaveOccurred())
			gauss.Disable()

			acc, err := gauss.Compute(ctx.ParticleData())
			Expect(err).NotTo(HaveOccurred())
			Expect(acc.TotalEnergy()).To(BeZero())

			gauss.Enable()
			Expect(gauss.Enabled()).To(BeTrue())
		})
	})
})
