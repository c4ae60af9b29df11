package user

import (
	"time"

	"github.com/ouroboros-foundation/portal/internal/clearance"
	userDatamodel "github.com/ouroboros-foundation/portal/internal/core/datamodel/user"
)

// User is a portal account. New registrations arrive through an invitation
// and stay pending until an administrator approves them; only approved,
// active accounts can log in.
type User struct {
	ID             int64           `json:"id"`
	Email          string          `json:"email"`
	Name           string          `json:"name"`
	ClearanceLevel clearance.Level `json:"clearance_level"`
	RankID         *int64          `json:"rank_id,omitempty"`
	DepartmentIDs  []int64         `json:"department_ids,omitempty"`
	IsActive       bool            `json:"is_active"`
	IsApproved     bool            `json:"is_approved"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func FromDataModel(row *userDatamodel.User) *User {
	return &User{
		ID:             row.ID,
		Email:          row.Email,
		Name:           row.Name,
		ClearanceLevel: clearance.Normalize(row.ClearanceLevel),
		RankID:         row.RankID,
		IsActive:       row.IsActive,
		IsApproved:     row.IsApproved,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
