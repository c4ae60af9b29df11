package user

import "time"

type User struct {
	ID             int64     `gorm:"primaryKey"`
	Email          string    `gorm:"column:email;uniqueIndex;not null"`
	Name           string    `gorm:"column:name;not null"`
	PasswordHash   string    `gorm:"column:password_hash;not null"`
	ClearanceLevel int       `gorm:"column:clearance_level;default:0"`
	RankID         *int64    `gorm:"column:rank_id"`
	IsActive       bool      `gorm:"column:is_active;default:true"`
	IsApproved     bool      `gorm:"column:is_approved;default:false"`
	CreatedAt      time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt      time.Time `gorm:"column:updated_at;default:now()"`
}

type Department struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
}

type Rank struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	Ordinal   int       `gorm:"column:ordinal;not null"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

type UserDepartment struct {
	ID           int64     `gorm:"primaryKey"`
	UserID       int64     `gorm:"column:user_id;not null"`
	DepartmentID int64     `gorm:"column:department_id;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
}
