package invitation

import (
	"time"

	"github.com/google/uuid"

	"github.com/ouroboros-foundation/portal/internal/clearance"
	invitationDatamodel "github.com/ouroboros-foundation/portal/internal/core/datamodel/invitation"
)

// Invitation is a single-use registration token. Redeeming it yields the
// invited email and the starting clearance the new account receives.
type Invitation struct {
	ID               int64           `json:"id"`
	Token            string          `json:"token"`
	Email            string          `json:"email"`
	GrantedClearance clearance.Level `json:"granted_clearance"`
	IssuedBy         int64           `json:"issued_by"`
	ExpiresAt        time.Time       `json:"expires_at"`
	RedeemedAt       *time.Time      `json:"redeemed_at,omitempty"`
	RedeemedBy       *int64          `json:"redeemed_by,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Expired reports whether the invitation is past its validity window.
func (i *Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// Redeemed reports whether the invitation was already used.
func (i *Invitation) Redeemed() bool {
	return i.RedeemedAt != nil
}

func NewInvitation(issuerID int64, email string, granted clearance.Level, ttl time.Duration) *Invitation {
	now := time.Now()
	return &Invitation{
		Token:            uuid.New().String(),
		Email:            email,
		GrantedClearance: granted,
		IssuedBy:         issuerID,
		ExpiresAt:        now.Add(ttl),
		CreatedAt:        now,
	}
}

func ToDataModel(i *Invitation) *invitationDatamodel.Invitation {
	return &invitationDatamodel.Invitation{
		ID:               i.ID,
		Token:            i.Token,
		Email:            i.Email,
		GrantedClearance: int(i.GrantedClearance),
		IssuedBy:         i.IssuedBy,
		ExpiresAt:        i.ExpiresAt,
		RedeemedAt:       i.RedeemedAt,
		RedeemedBy:       i.RedeemedBy,
		CreatedAt:        i.CreatedAt,
	}
}

func FromDataModel(row *invitationDatamodel.Invitation) *Invitation {
	return &Invitation{
		ID:               row.ID,
		Token:            row.Token,
		Email:            row.Email,
		GrantedClearance: clearance.Normalize(row.GrantedClearance),
		IssuedBy:         row.IssuedBy,
		ExpiresAt:        row.ExpiresAt,
		RedeemedAt:       row.RedeemedAt,
		RedeemedBy:       row.RedeemedBy,
		CreatedAt:        row.CreatedAt,
	}
}
