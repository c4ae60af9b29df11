// Package clearance models the Foundation's numeric clearance scale and the
// security classification tiers attached to projects and reports. Everything
// here is a pure lookup or comparison; persistence and session handling live
// elsewhere.
package clearance

// Level is a personnel clearance level on the 0-5 scale.
type Level int

const (
	LevelNone        Level = 0
	LevelProvisional Level = 1
	LevelStandard    Level = 2
	LevelSenior      Level = 3
	LevelDirector    Level = 4
	LevelOverseer    Level = 5

	MinLevel = LevelNone
	MaxLevel = LevelOverseer
)

// Capability tags granted per clearance level. Higher levels carry every
// capability of the levels below them.
const (
	CapabilityView            = "view"
	CapabilitySubmitReports   = "submit_reports"
	CapabilitySubmitProposals = "submit_proposals"
	CapabilityManageRules     = "manage_access_rules"
	CapabilityApproveProposal = "approve_proposals"
	CapabilityAdminister      = "administer"
)

var levelCapabilities = map[Level][]string{
	LevelNone:        {},
	LevelProvisional: {CapabilityView},
	LevelStandard:    {CapabilityView, CapabilitySubmitReports},
	LevelSenior:      {CapabilityView, CapabilitySubmitReports, CapabilitySubmitProposals, CapabilityManageRules},
	LevelDirector:    {CapabilityView, CapabilitySubmitReports, CapabilitySubmitProposals, CapabilityManageRules, CapabilityApproveProposal},
	LevelOverseer:    {CapabilityView, CapabilitySubmitReports, CapabilitySubmitProposals, CapabilityManageRules, CapabilityApproveProposal, CapabilityAdminister},
}

// Normalize clamps an arbitrary integer onto the clearance scale. Unknown or
// out-of-range values fail closed to level 0 so display code always has
// something to render.
func Normalize(level int) Level {
	if level < int(MinLevel) || level > int(MaxLevel) {
		return LevelNone
	}
	return Level(level)
}

// Meets reports whether a holder of this level satisfies the required level.
// Comparison is always >=; exact-level gates are the caller's business.
func (l Level) Meets(required Level) bool {
	return l >= required
}

// Capabilities returns the capability tags for a level. Unknown levels map to
// no capabilities.
func (l Level) Capabilities() []string {
	caps, ok := levelCapabilities[Normalize(int(l))]
	if !ok {
		return []string{}
	}
	out := make([]string, len(caps))
	copy(out, caps)
	return out
}

// HasCapability reports whether the level carries the given capability tag.
func (l Level) HasCapability(capability string) bool {
	for _, c := range l.Capabilities() {
		if c == capability {
			return true
		}
	}
	return false
}

// IsAdministrator reports whether the level may administer personnel records,
// including clearance changes.
func (l Level) IsAdministrator() bool {
	return l.HasCapability(CapabilityAdminister)
}
