package project

import "time"

type Project struct {
	ID            int64     `gorm:"primaryKey"`
	Title         string    `gorm:"column:title;not null"`
	Summary       string    `gorm:"column:summary"`
	SecurityClass string    `gorm:"column:security_class;default:GREEN"`
	Status        string    `gorm:"column:status;default:active"`
	CreatorID     int64     `gorm:"column:creator_id;not null"`
	ProposalID    *int64    `gorm:"column:proposal_id;uniqueIndex"`
	CreatedAt     time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt     time.Time `gorm:"column:updated_at;default:now()"`
}

type AccessRule struct {
	ID           int64     `gorm:"primaryKey"`
	ProjectID    int64     `gorm:"column:project_id;not null"`
	AccessType   string    `gorm:"column:access_type;not null"`
	TargetID     *int64    `gorm:"column:target_id"`
	MinClearance *int      `gorm:"column:min_clearance"`
	Role         string    `gorm:"column:role;default:researcher"`
	CreatedBy    int64     `gorm:"column:created_by"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
}

type ProjectAssignment struct {
	ID        int64     `gorm:"primaryKey"`
	ProjectID int64     `gorm:"column:project_id;not null;uniqueIndex:idx_project_user"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_project_user"`
	Role      string    `gorm:"column:role;default:researcher"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}
