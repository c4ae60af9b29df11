package invitation

import (
	"strings"

	"github.com/ouroboros-foundation/portal/internal"
	"github.com/ouroboros-foundation/portal/internal/core/common/validation"
)

type IssueInvitationDTO struct {
	Email            string `json:"email"`
	GrantedClearance int    `json:"granted_clearance"`
}

func (d IssueInvitationDTO) Validate() error {
	if !strings.Contains(d.Email, "@") {
		return internal.NewValidationFieldError("email", "email must be a valid address", internal.ErrCodeValidationFailed)
	}
	if err := validation.ValidateClearanceLevel(int64(d.GrantedClearance)); err != nil {
		return err
	}
	return nil
}

type InvitationListResponse struct {
	Invitations []*Invitation `json:"invitations"`
}

// RedemptionResult is what registration consumes: the invited email and the
// clearance the new account starts with.
type RedemptionResult struct {
	Email            string `json:"email"`
	GrantedClearance int    `json:"granted_clearance"`
}
