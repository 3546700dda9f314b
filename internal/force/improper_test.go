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
	"github.com/phmalek/hoomd-blue/internal/system"
)

// twisted returns four particles whose i-j-k-l dihedral is phi.
func twisted(phi float64) system.Definition {
	return system.Definition{
		Box:           md.NewBox(20, 20, 20),
		ParticleTypes: []string{"A"},
		ImproperTypes: []string{"heme-ang", "heme-out"},
		Positions: []md.Vec3{
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 0, Z: 0},
			{X: 0, Y: 0, Z: 1},
			{X: math.Cos(phi), Y: math.Sin(phi), Z: 1},
		},
		Types: []string{"A", "A", "A", "A"},
		Impropers: []system.ImproperSpec{
			{Type: "heme-ang", Members: [4]int{0, 1, 2, 3}},
		},
	}
}

var _ = Describe("ImproperForce", func() {
	It("fails to construct when the system has no impropers", func() {
		ctx := newContext(lattice([]string{"A"}, 3, 1.0, true, false), compute.ModeCPU)
		_, err := force.NewImproper(ctx, potential.HarmonicImproper{})
		Expect(err).To(MatchError(md.ErrNoInteractions))
	})

	It("fails to construct under an unknown execution mode", func() {
		ctx := newContext(twisted(0.5), compute.ModeCPU)
		ctx.SetExecMode(compute.ModeUnknown)
		_, err := force.NewImproper(ctx, potential.HarmonicImproper{})
		Expect(err).To(MatchError(md.ErrUnknownMode))
	})

	It("needs coefficients for every improper type, used or not", func() {
		ctx := newContext(twisted(0.5), compute.ModeCPU)
		harmonic, err := force.NewImproper(ctx, potential.HarmonicImproper{})
		Expect(err).NotTo(HaveOccurred())

		Expect(harmonic.SetImproperCoeff("heme-ang", coeff.Set{"k": 30, "chi": 1.57})).To(Succeed())
		Expect(harmonic.State()).To(Equal(force.PartiallyConfigured))
		err = harmonic.UpdateCoeffs()
		Expect(err).To(MatchError(md.ErrMissingCoeff))
		Expect(err.Error()).To(ContainSubstring("heme-out"))

		Expect(harmonic.SetImproperCoeff("heme-out", coeff.Set{"k": 10, "chi": 0})).To(Succeed())
		Expect(harmonic.UpdateCoeffs()).To(Succeed())
		Expect(harmonic.State()).To(Equal(force.Configured))
	})

	DescribeTable("evaluates the harmonic energy",
		func(phi, chi0 float64) {
			const k = 30.0
			ctx := newContext(twisted(phi), compute.ModeCPU)
			harmonic, err := force.NewImproper(ctx, potential.HarmonicImproper{})
			Expect(err).NotTo(HaveOccurred())
			Expect(harmonic.SetImproperCoeff("heme-ang", coeff.Set{"k": k, "chi": chi0})).To(Succeed())
			Expect(harmonic.SetImproperCoeff("heme-out", coeff.Set{"k": k, "chi": 0})).To(Succeed())

			acc, err := harmonic.Compute(ctx.ParticleData())
			Expect(err).NotTo(HaveOccurred())

			pd := ctx.ParticleData()
			got, degenerate := potential.Dihedral(
				pd.Pos[0].Sub(pd.Pos[1]), pd.Pos[2].Sub(pd.Pos[1]), pd.Pos[2].Sub(pd.Pos[3]))
			Expect(degenerate).To(BeFalse())
			Expect(math.Abs(got)).To(BeNumerically("~", math.Abs(phi), 1e-9))

			d := got - chi0
			d -= 2 * math.Pi * math.Round(d/(2*math.Pi))
			Expect(acc.TotalEnergy()).To(BeNumerically("~", 0.5*k*d*d, 1e-9))

			var net md.Vec3
			for _, f := range acc.Force {
				net = net.Add(f)
			}
			Expect(net.Norm()).To(BeNumerically("<", 1e-9))
		},
		Entry("at rest", 0.8, 0.8),
		Entry("twisted past the minimum", 1.2, 0.4),
		Entry("across the branch cut", 3.0, -3.0),
	)

	It("is destroyed by a context reset", func() {
		ctx := newContext(twisted(0.5), compute.ModeCPU)
		harmonic, err := force.NewImproper(ctx, potential.HarmonicImproper{})
		Expect(err).NotTo(HaveOccurred())

		Expect(ctx.Reset(twisted(0.7), compute.ModeCPU)).To(Succeed())
		Expect(harmonic.State()).To(Equal(force.Destroyed))
		Expect(harmonic.SetImproperCoeff("heme-ang", coeff.Set{"k": 1, "chi": 0})).To(MatchError(md.ErrDestroyed))
		Expect(ctx.Computes()).To(BeEmpty())
	})
})
