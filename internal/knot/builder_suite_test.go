package knot_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/knotsim/internal/curve"
	"github.com/san-kum/knotsim/internal/knot"
)

var _ = Describe("Builder", func() {
	var (
		reg *curve.Registry
		b   *knot.Builder
	)

	BeforeEach(func() {
		reg = curve.NewRegistry()
		f, err := reg.Get("torus")
		Expect(err).NotTo(HaveOccurred())
		b = knot.NewBuilder(f, knot.DefaultOptions())
	})

	Context("when empty", func() {
		It("starts with a pending full construction", func() {
			Expect(b.State()).To(Equal(knot.StateEmpty))
			Expect(b.Pending()).To(Equal(knot.RebuildFull))
			Expect(b.Skeleton().Len()).To(BeZero())
		})

		It("constructs on Update", func() {
			sk := b.Update()
			Expect(sk.Len()).To(Equal(61))
			Expect(b.State()).To(Equal(knot.StateConstructed))
		})
	})

	Context("after construction", func() {
		BeforeEach(func() {
			b.Apply()
		})

		It("holds the frame invariants", func() {
			Expect(b.Skeleton().Check(knot.UnitTolerance, knot.OrthoTolerance)).To(Succeed())
		})

		It("reframes in place for shaping changes", func() {
			Expect(b.SetCurvature(0.7)).To(Equal(knot.RebuildReframe))
			Expect(b.SetLoopClosureEnabled(false)).To(Equal(knot.RebuildReframe))

			sk, kind := b.Apply()
			Expect(kind).To(Equal(knot.RebuildReframe))
			Expect(b.State()).To(Equal(knot.StateUpdated))
			Expect(sk.Len()).To(Equal(61))
		})

		It("lets a full rebuild win over a reframe", func() {
			b.SetTwistAngle(45)
			b.SetSampleCount(120)
			Expect(b.Pending()).To(Equal(knot.RebuildFull))

			sk, kind := b.Apply()
			Expect(kind).To(Equal(knot.RebuildFull))
			Expect(sk.Len()).To(Equal(121))
			Expect(b.Options().TwistAngle).To(Equal(45.0))
		})

		It("rebuilds when the curve family changes", func() {
			f, err := reg.Get("lissajous_toric")
			Expect(err).NotTo(HaveOccurred())
			Expect(b.SetCurveFamily(f)).To(Equal(knot.RebuildFull))

			sk, _ := b.Apply()
			Expect(b.Family().Kind).To(Equal(curve.KindLissajousToric))
			Expect(sk.Check(knot.UnitTolerance, knot.OrthoTolerance)).To(Succeed())
		})

		It("closes the loop without a seam", func() {
			raw, fixed := b.Seam()
			Expect(math.Abs(raw)).To(BeNumerically(">", 0.1))
			Expect(fixed).To(BeNumerically("~", raw, 1e-12))

			sk := b.Skeleton()
			first, last := sk.Nodes[0].Normal, sk.Nodes[sk.Len()-1].Normal
			Expect(first.X).To(BeNumerically("~", last.X, 1e-9))
			Expect(first.Y).To(BeNumerically("~", last.Y, 1e-9))
			Expect(first.Z).To(BeNumerically("~", last.Z, 1e-9))
		})

		It("opens the skeleton on request", func() {
			Expect(b.SetLoop(false)).To(Equal(knot.RebuildFull))
			sk, _ := b.Apply()
			Expect(sk.IsLoop).To(BeFalse())
			Expect(sk.Len()).To(Equal(60))
		})
	})
})
