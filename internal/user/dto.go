package user

import (
	"strings"

	"github.com/ouroboros-foundation/portal/internal"
)

// RegisterDTO carries an invitation-backed registration. The email comes
// from the invitation, not the request.
type RegisterDTO struct {
	InvitationToken string `json:"invitation_token"`
	Name            string `json:"name"`
	Password        string `json:"password"`
}

func (d RegisterDTO) Validate() error {
	if d.InvitationToken == "" {
		return internal.NewValidationFieldError("invitation_token", "invitation_token is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(d.Name) == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	if len(d.Password) < 12 {
		return internal.NewValidationFieldError("password", "password must be at least 12 characters", internal.ErrCodeValidationFailed)
	}
	return nil
}

type SetClearanceDTO struct {
	ClearanceLevel int `json:"clearance_level"`
}

type SetDepartmentsDTO struct {
	DepartmentIDs []int64 `json:"department_ids"`
}

type SetRankDTO struct {
	RankID *int64 `json:"rank_id"`
}

type UserListResponse struct {
	Users []*User `json:"users"`
}
