package clearance_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ouroboros-foundation/portal/internal/clearance"
)

func TestClearance(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Clearance Suite")
}

var _ = Describe("Level", func() {
	Describe("Meets", func() {
		It("should be satisfied by equal or higher levels", func() {
			Expect(clearance.LevelSenior.Meets(clearance.LevelSenior)).To(BeTrue())
			Expect(clearance.LevelOverseer.Meets(clearance.LevelProvisional)).To(BeTrue())
			Expect(clearance.LevelProvisional.Meets(clearance.LevelStandard)).To(BeFalse())
		})

		It("should be monotonic: whatever a lower level meets, a higher level meets too", func() {
			for required := clearance.MinLevel; required <= clearance.MaxLevel; required++ {
				for lower := clearance.MinLevel; lower < clearance.MaxLevel; lower++ {
					for higher := lower + 1; higher <= clearance.MaxLevel; higher++ {
						if lower.Meets(required) {
							Expect(higher.Meets(required)).To(BeTrue(),
								"level %d meets %d but level %d does not", lower, required, higher)
						}
					}
				}
			}
		})
	})

	Describe("Normalize", func() {
		It("should pass through in-range levels", func() {
			for l := 0; l <= 5; l++ {
				Expect(clearance.Normalize(l)).To(Equal(clearance.Level(l)))
			}
		})

		It("should fail closed to level 0 for out-of-range values", func() {
			Expect(clearance.Normalize(-1)).To(Equal(clearance.LevelNone))
			Expect(clearance.Normalize(6)).To(Equal(clearance.LevelNone))
			Expect(clearance.Normalize(99)).To(Equal(clearance.LevelNone))
		})
	})

	Describe("Capabilities", func() {
		It("should grow with the level", func() {
			for l := clearance.MinLevel; l < clearance.MaxLevel; l++ {
				lower := l.Capabilities()
				higher := (l + 1).Capabilities()
				Expect(len(higher)).To(BeNumerically(">=", len(lower)))
				for _, c := range lower {
					Expect((l + 1).HasCapability(c)).To(BeTrue())
				}
			}
		})

		It("should reserve administration for level 5", func() {
			Expect(clearance.LevelOverseer.IsAdministrator()).To(BeTrue())
			Expect(clearance.LevelDirector.IsAdministrator()).To(BeFalse())
			Expect(clearance.LevelNone.Capabilities()).To(BeEmpty())
		})
	})
})

var _ = Describe("RequiredClearance", func() {
	It("should map the four documented classes to their fixed minimums", func() {
		Expect(clearance.RequiredClearance(clearance.ClassGreen)).To(Equal(clearance.LevelProvisional))
		Expect(clearance.RequiredClearance(clearance.ClassAmber)).To(Equal(clearance.LevelStandard))
		Expect(clearance.RequiredClearance(clearance.ClassRed)).To(Equal(clearance.LevelDirector))
		Expect(clearance.RequiredClearance(clearance.ClassBlack)).To(Equal(clearance.LevelOverseer))
	})

	It("should default unknown classes to level 1", func() {
		Expect(clearance.RequiredClearance("CHARTREUSE")).To(Equal(clearance.LevelProvisional))
		Expect(clearance.RequiredClearance("")).To(Equal(clearance.LevelProvisional))
	})

	It("should recognize only the documented classes as valid", func() {
		for _, class := range clearance.KnownClasses() {
			Expect(class.IsValid()).To(BeTrue())
		}
		Expect(clearance.SecurityClass("ULTRAVIOLET").IsValid()).To(BeFalse())
	})
})
