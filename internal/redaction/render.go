// Package redaction decides what a viewer gets to see of a clearance-gated
// content record: the full record, a pre-written redacted substitute, or a
// denial. Insufficient clearance is a normal outcome here, never an error,
// and rendering has no side effects; view counters and audit trails belong
// to the calling layer.
package redaction

import "github.com/ouroboros-foundation/portal/internal/clearance"

// Status classifies a rendering outcome.
type Status string

const (
	StatusFull     Status = "full"
	StatusRedacted Status = "redacted"
	StatusDenied   Status = "denied"
)

// DeniedNotice is the sentinel body returned on denial instead of the raw
// content. Callers must never substitute the real payload for it.
const DeniedNotice = "insufficient clearance"

// Content is the redactable view of a record. A nil MinClearanceToView means
// the record predates per-record thresholds and defaults to level 1.
type Content struct {
	MinClearanceToView *clearance.Level
	IsRedacted         bool
	RedactedVersion    string
	Body               string
	Attachments        []string
}

// Rendered is what the viewer receives.
type Rendered struct {
	Status      Status
	Body        string
	Attachments []string
}

// Threshold resolves the effective minimum clearance for the content.
func (c Content) Threshold() clearance.Level {
	if c.MinClearanceToView == nil {
		return clearance.LevelProvisional
	}
	return clearance.Normalize(int(*c.MinClearanceToView))
}

// Render applies the viewer's clearance to the content. Below threshold the
// redacted substitute is returned when one exists, with attachments withheld
// entirely; otherwise the denial sentinel. Identical inputs always produce
// identical output.
func Render(content Content, viewer clearance.Level) Rendered {
	if viewer.Meets(content.Threshold()) {
		attachments := make([]string, len(content.Attachments))
		copy(attachments, content.Attachments)
		return Rendered{
			Status:      StatusFull,
			Body:        content.Body,
			Attachments: attachments,
		}
	}

	if content.IsRedacted && content.RedactedVersion != "" {
		return Rendered{
			Status: StatusRedacted,
			Body:   content.RedactedVersion,
		}
	}

	return Rendered{
		Status: StatusDenied,
		Body:   DeniedNotice,
	}
}
