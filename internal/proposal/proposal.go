package proposal

import (
	"time"

	"github.com/ouroboros-foundation/portal/internal/access"
	"github.com/ouroboros-foundation/portal/internal/clearance"
	proposalDatamodel "github.com/ouroboros-foundation/portal/internal/core/datamodel/proposal"
	"github.com/ouroboros-foundation/portal/internal/project"
)

// Proposal is a research proposal awaiting review. Approval promotes it into
// a project; the proposal row survives as the audit record of the decision.
type Proposal struct {
	ID            int64                   `json:"id"`
	Title         string                  `json:"title"`
	Summary       string                  `json:"summary"`
	SecurityClass clearance.SecurityClass `json:"security_class"`
	SubmitterID   int64                   `json:"submitter_id"`
	Status        string                  `json:"status"`
	ReviewedBy    *int64                  `json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time              `json:"reviewed_at,omitempty"`
	ProjectID     *int64                  `json:"project_id,omitempty"`

	DepartmentIDs         []int64           `json:"department_ids,omitempty"`
	ClearanceRequirements []clearance.Level `json:"clearance_requirements,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
)

// Reviewed reports whether the proposal has already passed review, in either
// direction. Reviewed proposals are immutable.
func (p *Proposal) Reviewed() bool {
	return p.Status == StatusApproved || p.Status == StatusRejected
}

// Promote derives the project a proposal turns into on approval. It is a pure
// transform: nothing is persisted and the input is not mutated. Each clearance
// requirement becomes a clearance-type access rule on the new project, and the
// rule IDs are left zero for the repository to assign.
func (p *Proposal) Promote() *project.Project {
	now := time.Now()
	proposalID := p.ID

	rules := make([]access.Rule, 0, len(p.ClearanceRequirements))
	for _, min := range p.ClearanceRequirements {
		rules = append(rules, access.NewClearanceRule(0, min, access.RoleResearcher))
	}

	return &project.Project{
		Title:         p.Title,
		Summary:       p.Summary,
		SecurityClass: p.SecurityClass,
		Status:        project.StatusActive,
		CreatorID:     p.SubmitterID,
		ProposalID:    &proposalID,
		AccessRules:   rules,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func NewProposal(submitterID int64, dto CreateProposalDTO) *Proposal {
	now := time.Now()
	class := clearance.SecurityClass(dto.SecurityClass)
	if !class.IsValid() {
		class = clearance.ClassGreen
	}

	requirements := make([]clearance.Level, 0, len(dto.ClearanceRequirements))
	for _, raw := range dto.ClearanceRequirements {
		requirements = append(requirements, clearance.Normalize(raw))
	}

	return &Proposal{
		Title:                 dto.Title,
		Summary:               dto.Summary,
		SecurityClass:         class,
		SubmitterID:           submitterID,
		Status:                StatusSubmitted,
		DepartmentIDs:         dto.DepartmentIDs,
		ClearanceRequirements: requirements,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

func ToDataModel(p *Proposal) *proposalDatamodel.Proposal {
	return &proposalDatamodel.Proposal{
		ID:            p.ID,
		Title:         p.Title,
		Summary:       p.Summary,
		SecurityClass: string(p.SecurityClass),
		SubmitterID:   p.SubmitterID,
		Status:        p.Status,
		ReviewedBy:    p.ReviewedBy,
		ReviewedAt:    p.ReviewedAt,
		ProjectID:     p.ProjectID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func FromDataModel(row *proposalDatamodel.Proposal) *Proposal {
	return &Proposal{
		ID:            row.ID,
		Title:         row.Title,
		Summary:       row.Summary,
		SecurityClass: clearance.SecurityClass(row.SecurityClass),
		SubmitterID:   row.SubmitterID,
		Status:        row.Status,
		ReviewedBy:    row.ReviewedBy,
		ReviewedAt:    row.ReviewedAt,
		ProjectID:     row.ProjectID,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
