package postgres

import (
	"time"

	"gorm.io/gorm"

	covenantDatamodel "github.com/ouroboros-foundation/portal/internal/core/datamodel/covenant"
	"github.com/ouroboros-foundation/portal/internal/covenant"
)

// CovenantRepository implements covenant.Repository using GORM.
type CovenantRepository struct {
	db *gorm.DB
}

func NewCovenantRepository(db *gorm.DB) covenant.Repository {
	return &CovenantRepository{db: db}
}

func (r *CovenantRepository) GetSeats() ([]*covenant.Seat, error) {
	var rows []*covenantDatamodel.Seat
	if err := r.db.Table("covenant_seats").Order("number ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	seats := make([]*covenant.Seat, 0, len(rows))
	for _, row := range rows {
		seats = append(seats, covenant.SeatFromDataModel(row))
	}
	return seats, nil
}

func (r *CovenantRepository) GetSeat(seatID int64) (*covenant.Seat, error) {
	var row covenantDatamodel.Seat
	if err := r.db.Table("covenant_seats").Where("id = ?", seatID).First(&row).Error; err != nil {
		return nil, err
	}
	return covenant.SeatFromDataModel(&row), nil
}

func (r *CovenantRepository) GetActiveMembers() ([]*covenant.Member, error) {
	var rows []*covenantDatamodel.Member
	if err := r.db.Table("covenant_members").Where("left_at IS NULL").Order("seat_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	members := make([]*covenant.Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, covenant.MemberFromDataModel(row))
	}
	return members, nil
}

func (r *CovenantRepository) GetActiveMemberByUser(userID int64) (*covenant.Member, error) {
	var row covenantDatamodel.Member
	err := r.db.Table("covenant_members").
		Where("user_id = ? AND left_at IS NULL", userID).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return covenant.MemberFromDataModel(&row), nil
}

func (r *CovenantRepository) GetActiveMemberBySeat(seatID int64) (*covenant.Member, error) {
	var row covenantDatamodel.Member
	err := r.db.Table("covenant_members").
		Where("seat_id = ? AND left_at IS NULL", seatID).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return covenant.MemberFromDataModel(&row), nil
}

func (r *CovenantRepository) CreateMember(userID, seatID int64, at time.Time) (*covenant.Member, error) {
	row := &covenantDatamodel.Member{
		UserID:    userID,
		SeatID:    seatID,
		JoinedAt:  at,
		CreatedAt: at,
	}
	if err := r.db.Table("covenant_members").Create(row).Error; err != nil {
		return nil, err
	}
	return covenant.MemberFromDataModel(row), nil
}

func (r *CovenantRepository) MarkLeft(memberID int64, at time.Time) error {
	return r.db.Table("covenant_members").
		Where("id = ? AND left_at IS NULL", memberID).
		Update("left_at", at).Error
}

func (r *CovenantRepository) CreateInvitation(i *covenant.Invitation) error {
	row := covenant.InvitationToDataModel(i)
	if err := r.db.Table("covenant_invitations").Create(row).Error; err != nil {
		return err
	}
	i.ID = row.ID
	return nil
}

func (r *CovenantRepository) GetInvitationByToken(token string) (*covenant.Invitation, error) {
	var row covenantDatamodel.Invitation
	if err := r.db.Table("covenant_invitations").Where("token = ?", token).First(&row).Error; err != nil {
		return nil, err
	}
	return covenant.InvitationFromDataModel(&row), nil
}

func (r *CovenantRepository) ResolveInvitation(id int64, acceptedAt, declinedAt *time.Time) error {
	result := r.db.Table("covenant_invitations").
		Where("id = ? AND accepted_at IS NULL AND declined_at IS NULL", id).
		Updates(map[string]interface{}{
			"accepted_at": acceptedAt,
			"declined_at": declinedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
