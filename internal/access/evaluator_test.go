package access_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ouroboros-foundation/portal/internal/access"
	"github.com/ouroboros-foundation/portal/internal/clearance"
)

func TestAccess(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Access Suite")
}

var _ = Describe("Evaluate", func() {
	var subject access.Subject

	BeforeEach(func() {
		subject = access.Subject{
			ProjectID:     42,
			SecurityClass: clearance.ClassBlack,
		}
	})

	Context("with no rules (baseline gate only)", func() {
		It("should allow a level-5 requester on a BLACK project as researcher", func() {
			decision := access.Evaluate(subject, access.Identity{UserID: 1, Clearance: clearance.LevelOverseer})

			Expect(decision.Allowed).To(BeTrue())
			Expect(decision.Role).To(Equal(access.RoleResearcher))
		})

		It("should deny a level-0 requester on a GREEN project", func() {
			subject.SecurityClass = clearance.ClassGreen

			decision := access.Evaluate(subject, access.Identity{UserID: 1, Clearance: clearance.LevelNone})

			Expect(decision.Allowed).To(BeFalse())
		})
	})

	Context("with explicit rules granting below the classification floor", func() {
		It("should admit a level-0 requester via a matching user rule, with that rule's role", func() {
			subject.Rules = []access.Rule{access.NewUserRule(42, 7, access.RoleConsultant)}

			decision := access.Evaluate(subject, access.Identity{UserID: 7, Clearance: clearance.LevelNone})

			Expect(decision.Allowed).To(BeTrue())
			Expect(decision.Role).To(Equal(access.RoleConsultant))
		})

		It("should not admit a requester whose id does not match the user rule", func() {
			subject.Rules = []access.Rule{access.NewUserRule(42, 7, access.RoleConsultant)}

			decision := access.Evaluate(subject, access.Identity{UserID: 8, Clearance: clearance.LevelNone})

			Expect(decision.Allowed).To(BeFalse())
		})

		It("should match department rules against any of the requester's departments", func() {
			subject.Rules = []access.Rule{access.NewDepartmentRule(42, 3, access.RoleObserver)}

			decision := access.Evaluate(subject, access.Identity{
				UserID:        9,
				Clearance:     clearance.LevelNone,
				DepartmentIDs: []int64{1, 3},
			})

			Expect(decision.Allowed).To(BeTrue())
			Expect(decision.Role).To(Equal(access.RoleObserver))
		})

		It("should match rank rules against the requester's rank", func() {
			subject.Rules = []access.Rule{access.NewRankRule(42, 11, access.RoleObserver)}

			decision := access.Evaluate(subject, access.Identity{UserID: 9, Clearance: clearance.LevelNone, RankID: 11})

			Expect(decision.Allowed).To(BeTrue())
			Expect(decision.Role).To(Equal(access.RoleObserver))
		})

		It("should match clearance rules with >=, not equality", func() {
			subject.Rules = []access.Rule{access.NewClearanceRule(42, clearance.LevelStandard, access.RoleResearcher)}

			Expect(access.Evaluate(subject, access.Identity{UserID: 9, Clearance: clearance.LevelSenior}).Allowed).To(BeTrue())
			Expect(access.Evaluate(subject, access.Identity{UserID: 9, Clearance: clearance.LevelProvisional}).Allowed).To(BeFalse())
		})
	})

	Context("with multiple matching rules", func() {
		It("should resolve ties by role precedence: lead beats observer", func() {
			subject.Rules = []access.Rule{
				access.NewDepartmentRule(42, 3, access.RoleObserver),
				access.NewClearanceRule(42, clearance.LevelStandard, access.RoleLead),
			}

			decision := access.Evaluate(subject, access.Identity{
				UserID:        9,
				Clearance:     clearance.LevelStandard,
				DepartmentIDs: []int64{3},
			})

			Expect(decision.Allowed).To(BeTrue())
			Expect(decision.Role).To(Equal(access.RoleLead))
		})

		It("should let a user-targeted rule set the role even below researcher", func() {
			subject.SecurityClass = clearance.ClassGreen
			subject.Rules = []access.Rule{access.NewUserRule(42, 7, access.RoleObserver)}

			decision := access.Evaluate(subject, access.Identity{UserID: 7, Clearance: clearance.LevelOverseer})

			Expect(decision.Allowed).To(BeTrue())
			Expect(decision.Role).To(Equal(access.RoleObserver))
		})

		It("should keep the researcher baseline when only non-user rules grant less", func() {
			subject.SecurityClass = clearance.ClassGreen
			subject.Rules = []access.Rule{access.NewDepartmentRule(42, 3, access.RoleConsultant)}

			decision := access.Evaluate(subject, access.Identity{
				UserID:        7,
				Clearance:     clearance.LevelOverseer,
				DepartmentIDs: []int64{3},
			})

			Expect(decision.Allowed).To(BeTrue())
			Expect(decision.Role).To(Equal(access.RoleResearcher))
		})
	})

	It("should never revoke baseline access: rules only add", func() {
		subject.SecurityClass = clearance.ClassGreen
		subject.Rules = []access.Rule{access.NewDepartmentRule(42, 99, access.RoleLead)}

		decision := access.Evaluate(subject, access.Identity{UserID: 7, Clearance: clearance.LevelProvisional})

		Expect(decision.Allowed).To(BeTrue())
		Expect(decision.Role).To(Equal(access.RoleResearcher))
	})

	It("should be deterministic for identical snapshots", func() {
		subject.Rules = []access.Rule{
			access.NewDepartmentRule(42, 3, access.RoleObserver),
			access.NewClearanceRule(42, clearance.LevelStandard, access.RoleLead),
		}
		requester := access.Identity{UserID: 9, Clearance: clearance.LevelStandard, DepartmentIDs: []int64{3}}

		first := access.Evaluate(subject, requester)
		second := access.Evaluate(subject, requester)

		Expect(second).To(Equal(first))
	})
})

var _ = Describe("Rule validation", func() {
	It("should accept well-formed rules of every type", func() {
		Expect(access.NewUserRule(1, 2, access.RoleLead).Validate()).To(Succeed())
		Expect(access.NewDepartmentRule(1, 2, access.RoleObserver).Validate()).To(Succeed())
		Expect(access.NewRankRule(1, 2, access.RoleConsultant).Validate()).To(Succeed())
		Expect(access.NewClearanceRule(1, clearance.LevelStandard, access.RoleResearcher).Validate()).To(Succeed())
	})

	It("should default unknown roles to researcher at construction", func() {
		rule := access.NewUserRule(1, 2, "archivist")
		Expect(rule.Role).To(Equal(access.RoleResearcher))
	})

	It("should reject targeted rules without a target id", func() {
		rule := access.Rule{ProjectID: 1, Type: access.RuleTypeUser, Role: access.RoleLead}
		Expect(rule.Validate()).To(HaveOccurred())
	})

	It("should reject clearance rules carrying a target id", func() {
		rule := access.Rule{ProjectID: 1, Type: access.RuleTypeClearance, TargetID: 2, MinClearance: 2, Role: access.RoleLead}
		Expect(rule.Validate()).To(HaveOccurred())
	})

	It("should reject targeted rules carrying a min clearance", func() {
		rule := access.Rule{ProjectID: 1, Type: access.RuleTypeRank, TargetID: 2, MinClearance: 2, Role: access.RoleLead}
		Expect(rule.Validate()).To(HaveOccurred())
	})

	It("should reject unknown rule types", func() {
		rule := access.Rule{ProjectID: 1, Type: "species", TargetID: 2, Role: access.RoleLead}
		Expect(rule.Validate()).To(HaveOccurred())
	})
})
