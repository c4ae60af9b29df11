package postgres

import (
	"time"

	"gorm.io/gorm"

	invitationDatamodel "github.com/ouroboros-foundation/portal/internal/core/datamodel/invitation"
	"github.com/ouroboros-foundation/portal/internal/invitation"
)

// InvitationRepository implements invitation.Repository using GORM.
type InvitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) invitation.Repository {
	return &InvitationRepository{db: db}
}

func (r *InvitationRepository) Create(i *invitation.Invitation) error {
	row := invitation.ToDataModel(i)
	if err := r.db.Table("invitations").Create(row).Error; err != nil {
		return err
	}
	i.ID = row.ID
	return nil
}

func (r *InvitationRepository) GetByToken(token string) (*invitation.Invitation, error) {
	var row invitationDatamodel.Invitation
	if err := r.db.Table("invitations").Where("token = ?", token).First(&row).Error; err != nil {
		return nil, err
	}
	return invitation.FromDataModel(&row), nil
}

func (r *InvitationRepository) GetByIssuer(issuerID int64, limit, offset int) ([]*invitation.Invitation, error) {
	var rows []*invitationDatamodel.Invitation
	err := r.db.Table("invitations").
		Where("issued_by = ?", issuerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	invitations := make([]*invitation.Invitation, 0, len(rows))
	for _, row := range rows {
		invitations = append(invitations, invitation.FromDataModel(row))
	}
	return invitations, nil
}

// MarkRedeemed flips the redemption columns only when they are still empty.
// Two racing redeemers cannot both pass the IS NULL guard.
func (r *InvitationRepository) MarkRedeemed(id int64, redeemerID int64, at time.Time) error {
	result := r.db.Table("invitations").
		Where("id = ? AND redeemed_at IS NULL", id).
		Updates(map[string]interface{}{
			"redeemed_at": at,
			"redeemed_by": redeemerID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
