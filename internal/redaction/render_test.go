package redaction_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ouroboros-foundation/portal/internal/clearance"
	"github.com/ouroboros-foundation/portal/internal/redaction"
)

func TestRedaction(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Redaction Suite")
}

func levelPtr(l clearance.Level) *clearance.Level {
	return &l
}

var _ = Describe("Render", func() {
	var content redaction.Content

	BeforeEach(func() {
		content = redaction.Content{
			MinClearanceToView: levelPtr(clearance.LevelSenior),
			IsRedacted:         true,
			RedactedVersion:    "X",
			Body:               "the specimen remains contained",
			Attachments:        []string{"site-photo-014.jpg"},
		}
	})

	Context("when the viewer meets the threshold", func() {
		It("should return the full content unchanged", func() {
			rendered := redaction.Render(content, clearance.LevelSenior)

			Expect(rendered.Status).To(Equal(redaction.StatusFull))
			Expect(rendered.Body).To(Equal(content.Body))
			Expect(rendered.Attachments).To(Equal(content.Attachments))
		})
	})

	Context("when the viewer is below the threshold", func() {
		It("should substitute the redacted version and withhold attachments entirely", func() {
			rendered := redaction.Render(content, clearance.LevelStandard)

			Expect(rendered.Status).To(Equal(redaction.StatusRedacted))
			Expect(rendered.Body).To(Equal("X"))
			Expect(rendered.Attachments).To(BeEmpty())
		})

		It("should deny when no redacted version exists, without leaking the body", func() {
			content.IsRedacted = false
			content.RedactedVersion = ""

			rendered := redaction.Render(content, clearance.LevelStandard)

			Expect(rendered.Status).To(Equal(redaction.StatusDenied))
			Expect(rendered.Body).To(Equal(redaction.DeniedNotice))
			Expect(rendered.Attachments).To(BeEmpty())
		})

		It("should deny when the redacted flag is set but the substitute text is empty", func() {
			content.RedactedVersion = ""

			rendered := redaction.Render(content, clearance.LevelStandard)

			Expect(rendered.Status).To(Equal(redaction.StatusDenied))
		})
	})

	Context("when the content has no threshold", func() {
		It("should default to level 1", func() {
			content.MinClearanceToView = nil

			Expect(redaction.Render(content, clearance.LevelProvisional).Status).To(Equal(redaction.StatusFull))
			Expect(redaction.Render(content, clearance.LevelNone).Status).To(Equal(redaction.StatusRedacted))
		})
	})

	It("should be idempotent: identical inputs yield identical output", func() {
		first := redaction.Render(content, clearance.LevelStandard)
		second := redaction.Render(content, clearance.LevelStandard)

		Expect(second).To(Equal(first))
	})

	It("should not alias the caller's attachment slice in the full rendering", func() {
		rendered := redaction.Render(content, clearance.LevelOverseer)
		rendered.Attachments[0] = "tampered"

		Expect(content.Attachments[0]).To(Equal("site-photo-014.jpg"))
	})
})
