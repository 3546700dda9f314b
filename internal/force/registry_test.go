package force_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/phmalek/hoomd-blue/internal/coeff"
	"github.com/phmalek/hoomd-blue/internal/compute"
	"github.com/phmalek/hoomd-blue/internal/force"
	"github.com/phmalek/hoomd-blue/internal/md"
	"github.com/phmalek/hoomd-blue/internal/nlist"
)

var _ = Describe("Registry", func() {
	var reg *force.Registry

	BeforeEach(func() {
		reg = force.NewRegistry()
	})

	It("lists every variant in order", func() {
		Expect(reg.List()).To(Equal([]string{
			"bond.fene",
			"bond.harmonic",
			"improper.harmonic",
			"pair.gauss",
			"pair.lj",
			"pair.yukawa",
		}))
	})

	It("registers the required names of every variant", func() {
		for _, variant := range reg.List() {
			names, ok := coeff.RequiredNames(variant)
			Expect(ok).To(BeTrue(), variant)
			Expect(names).NotTo(BeEmpty(), variant)
		}
		gauss, ok := coeff.RequiredNames("pair.gauss")
		Expect(ok).To(BeTrue())
		Expect(gauss).To(ConsistOf("epsilon", "sigma"))
	})

	It("builds pair forces with the default cutoff", func() {
		ctx := newContext(lattice([]string{"A"}, 3, 1.0, false, false), compute.ModeCPU)
		comp, err := reg.New("pair.gauss", ctx, force.Options{NList: nlist.New(0.4, quietLogger())})
		Expect(err).NotTo(HaveOccurred())

		pair, ok := comp.(*force.PairForce)
		Expect(ok).To(BeTrue())
		Expect(pair.DefaultRCut()).To(Equal(force.DefaultRCut))
	})

	It("keeps an explicit zero cutoff", func() {
		ctx := newContext(lattice([]string{"A"}, 3, 1.0, false, false), compute.ModeCPU)
		zero := 0.0
		comp, err := reg.New("pair.gauss", ctx, force.Options{NList: nlist.New(0.4, quietLogger()), RCut: &zero})
		Expect(err).NotTo(HaveOccurred())
		Expect(comp.(*force.PairForce).DefaultRCut()).To(BeZero())
	})

	It("returns a nil interface on failure", func() {
		ctx := newContext(lattice([]string{"A"}, 3, 1.0, false, false), compute.ModeCPU)
		comp, err := reg.New("improper.harmonic", ctx, force.Options{})
		Expect(err).To(MatchError(md.ErrNoInteractions))
		Expect(comp).To(BeNil())
	})

	It("rejects unknown variants", func() {
		ctx := newContext(lattice([]string{"A"}, 3, 1.0, false, false), compute.ModeCPU)
		_, err := reg.New("pair.morse", ctx, force.Options{})
		Expect(err).To(MatchError(ContainSubstring("unknown force: pair.morse")))
	})
})
