package force_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/phmalek/hoomd-blue/internal/coeff"
	"github.com/phmalek/hoomd-blue/internal/compute"
	"github.com/phmalek/hoomd-blue/internal/force"
	"github.com/phmalek/hoomd-blue/internal/md"
	"github.com/phmalek/hoomd-blue/internal/potential"
)

var _ = Describe("BondForce", func() {
	It("fails to construct when the system has no bonds", func() {
		ctx := newContext(lattice([]string{"A"}, 3, 1.0, false, false), compute.ModeCPU)
		_, err := force.NewBond(ctx, potential.HarmonicBond{})
		Expect(err).To(MatchError(md.ErrNoInteractions))
		Expect(ctx.Computes()).To(BeEmpty())
	})

	It("requires every bond type to be configured", func() {
		ctx := newContext(lattice([]string{"A"}, 3, 1.0, true, false), compute.ModeCPU)
		harmonic, err := force.NewBond(ctx, potential.HarmonicBond{})
		Expect(err).NotTo(HaveOccurred())
		Expect(harmonic.Name()).To(Equal("bond.harmonic"))

		Expect(harmonic.SetCoeff([]string{"backbone"}, coeff.Set{"k": 100})).To(Succeed())
		err = harmonic.UpdateCoeffs()
		Expect(err).To(MatchError(md.ErrMissingCoeff))
		Expect(err.Error()).To(ContainSubstring("r0"))

		Expect(harmonic.SetCoeff([]string{"backbone"}, coeff.Set{"r0": 1.0})).To(Succeed())
		Expect(harmonic.UpdateCoeffs()).To(Succeed())
		Expect(harmonic.State()).To(Equal(force.Configured))
	})

	It("rejects unknown bond types", func() {
		ctx := newContext(lattice([]string{"A"}, 3, 1.0, true, false), compute.ModeCPU)
		harmonic, err := force.NewBond(ctx, potential.HarmonicBond{})
		Expect(err).NotTo(HaveOccurred())
		Expect(harmonic.SetCoeff([]string{"sidechain"}, coeff.Set{"k": 1})).To(MatchError(md.ErrUnknownType))
	})

	It("sums the harmonic energy of every bond", func() {
		const a, k, r0 = 1.2, 50.0, 1.0
		ctx := newContext(lattice([]string{"A"}, 4, a, true, false), compute.ModeCPU)
		harmonic, err := force.NewBond(ctx, potential.HarmonicBond{})
		Expect(err).NotTo(HaveOccurred())
		Expect(harmonic.SetCoeff([]string{"backbone"}, coeff.Set{"k": k, "r0": r0})).To(Succeed())

		acc, err := harmonic.Compute(ctx.ParticleData())
		Expect(err).NotTo(HaveOccurred())

		r := math.Sqrt(a*a + 0.01)
		Expect(acc.TotalEnergy()).To(BeNumerically("~", 2*0.5*k*(r-r0)*(r-r0), 1e-9))

		var net md.Vec3
		for _, f := range acc.Force {
			net = net.Add(f)
		}
		Expect(net.Norm()).To(BeNumerically("<", 1e-9))
		// stretched bond pulls particle 0 toward particle 1 (+y)
		Expect(acc.Force[0].Y).To(BeNumerically(">", 0))
	})

	It("reports an overstretched FENE bond", func() {
		ctx := newContext(lattice([]string{"A"}, 4, 1.2, true, false), compute.ModeCPU)
		fene, err := force.NewBond(ctx, potential.FENE{})
		Expect(err).NotTo(HaveOccurred())
		Expect(fene.SetCoeff([]string{"backbone"}, coeff.Set{"k": 30, "r0": 0.5, "epsilon": 1, "sigma": 1})).To(Succeed())

		_, err = fene.Compute(ctx.ParticleData())
		Expect(err).To(MatchError(potential.ErrBondStretched))
		Expect(err.Error()).To(ContainSubstring("bond.fene"))
	})
})
