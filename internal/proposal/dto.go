package proposal

import (
	"github.com/ouroboros-foundation/portal/internal"
	"github.com/ouroboros-foundation/portal/internal/core/common/validation"
)

type CreateProposalDTO struct {
	Title                 string  `json:"title"`
	Summary               string  `json:"summary"`
	SecurityClass         string  `json:"security_class"`
	DepartmentIDs         []int64 `json:"department_ids,omitempty"`
	ClearanceRequirements []int   `json:"clearance_requirements,omitempty"`
}

func (d CreateProposalDTO) Validate() error {
	if err := validation.ValidateTitle(d.Title); err != nil {
		return err
	}
	for _, level := range d.ClearanceRequirements {
		if err := validation.ValidateClearanceLevel(int64(level)); err != nil {
			return internal.NewValidationError("clearance requirement out of range", internal.ErrCodeInvalidClearance)
		}
	}
	return nil
}

type RejectProposalDTO struct {
	Reason string `json:"reason"`
}

type ApprovalResponse struct {
	Proposal *Proposal       `json:"proposal"`
	Project  *ProjectSummary `json:"project"`
}

type ProjectSummary struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	SecurityClass string `json:"security_class"`
	Status        string `json:"status"`
}

type ProposalListResponse struct {
	Proposals []*Proposal `json:"proposals"`
}
