package postgres

import (
	"time"

	"gorm.io/gorm"

	userDatamodel "github.com/ouroboros-foundation/portal/internal/core/datamodel/user"
	"github.com/ouroboros-foundation/portal/internal/user"
)

// UserRepository implements user.Repository using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *user.User, passwordHash string) error {
	now := time.Now()
	row := &userDatamodel.User{
		Email:          u.Email,
		Name:           u.Name,
		PasswordHash:   passwordHash,
		ClearanceLevel: int(u.ClearanceLevel),
		RankID:         u.RankID,
		IsActive:       u.IsActive,
		IsApproved:     u.IsApproved,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := r.db.Table("users").Create(row).Error; err != nil {
		return err
	}
	u.ID = row.ID
	u.CreatedAt = row.CreatedAt
	u.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var row userDatamodel.User
	if err := r.db.Table("users").Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}

	u := user.FromDataModel(&row)
	departmentIDs, err := r.departmentIDs(id)
	if err != nil {
		return nil, err
	}
	u.DepartmentIDs = departmentIDs
	return u, nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var row userDatamodel.User
	err := r.db.Table("users").Where("email = ?", email).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return user.FromDataModel(&row), nil
}

func (r *UserRepository) GetAll(limit, offset int) ([]*user.User, error) {
	return r.list(r.db.Table("users"), limit, offset)
}

func (r *UserRepository) GetPendingApproval(limit, offset int) ([]*user.User, error) {
	return r.list(r.db.Table("users").Where("is_approved = ? AND is_active = ?", false, true), limit, offset)
}

func (r *UserRepository) SetApproved(id int64, approved bool) error {
	return r.updateColumn(id, "is_approved", approved)
}

func (r *UserRepository) SetActive(id int64, active bool) error {
	return r.updateColumn(id, "is_active", active)
}

func (r *UserRepository) SetClearance(id int64, level int) error {
	return r.updateColumn(id, "clearance_level", level)
}

func (r *UserRepository) SetRank(id int64, rankID *int64) error {
	return r.updateColumn(id, "rank_id", rankID)
}

// SetDepartments replaces the membership set wholesale inside a transaction.
func (r *UserRepository) SetDepartments(id int64, departmentIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("user_departments").Where("user_id = ?", id).Delete(&userDatamodel.UserDepartment{}).Error; err != nil {
			return err
		}
		for _, deptID := range departmentIDs {
			row := &userDatamodel.UserDepartment{UserID: id, DepartmentID: deptID, CreatedAt: time.Now()}
			if err := tx.Table("user_departments").Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *UserRepository) departmentIDs(userID int64) ([]int64, error) {
	var rows []*userDatamodel.UserDepartment
	if err := r.db.Table("user_departments").Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.DepartmentID)
	}
	return ids, nil
}

func (r *UserRepository) updateColumn(id int64, column string, value interface{}) error {
	return r.db.Table("users").
		Where("id = ?", id).
		Updates(map[string]interface{}{
			column:       value,
			"updated_at": time.Now(),
		}).Error
}

func (r *UserRepository) list(query *gorm.DB, limit, offset int) ([]*user.User, error) {
	var rows []*userDatamodel.User
	err := query.
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	users := make([]*user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, user.FromDataModel(row))
	}
	return users, nil
}
