package postgres

import (
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"github.com/ouroboros-foundation/portal/internal/auth"
	"github.com/ouroboros-foundation/portal/internal/clearance"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetPasswordForEmail(email string) (string, string, error) {
	var passwordHash string
	var userID string
	query := `SELECT id, password_hash FROM users WHERE email = ? AND is_active = true AND is_approved = true`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return "", "", fmt.Errorf("user not found")
		}
		return "", "", err
	}
	return passwordHash, userID, nil
}

func (r *Repository) GetUserWithClearance(userID int64) (*auth.User, error) {
	var user auth.User
	var level int
	var rankID sql.NullInt64

	query := `SELECT id, email, name, clearance_level, rank_id FROM users WHERE id = ? AND is_active = true`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &level, &rankID); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	user.Clearance = clearance.Normalize(level)
	if rankID.Valid {
		user.RankID = rankID.Int64
	}

	deptQuery := `SELECT department_id FROM user_departments WHERE user_id = ?`

	rows, err := r.db.Raw(deptQuery, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departmentIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		departmentIDs = append(departmentIDs, id)
	}

	user.DepartmentIDs = departmentIDs
	return &user, nil
}
