package proposal

import "time"

type Proposal struct {
	ID            int64      `gorm:"primaryKey"`
	Title         string     `gorm:"column:title;not null"`
	Summary       string     `gorm:"column:summary"`
	SecurityClass string     `gorm:"column:security_class;default:GREEN"`
	SubmitterID   int64      `gorm:"column:submitter_id;not null"`
	Status        string     `gorm:"column:status;default:submitted"`
	ReviewedBy    *int64     `gorm:"column:reviewed_by"`
	ReviewedAt    *time.Time `gorm:"column:reviewed_at"`
	ProjectID     *int64     `gorm:"column:project_id"`
	CreatedAt     time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;default:now()"`
}

// ProposalDepartment associates a proposal with a sponsoring department;
// the association is copied onto the project at promotion.
type ProposalDepartment struct {
	ID           int64 `gorm:"primaryKey"`
	ProposalID   int64 `gorm:"column:proposal_id;not null"`
	DepartmentID int64 `gorm:"column:department_id;not null"`
}

// ProposalClearance is a clearance requirement the proposal asks for; each
// becomes a clearance-type access rule on the promoted project.
type ProposalClearance struct {
	ID           int64 `gorm:"primaryKey"`
	ProposalID   int64 `gorm:"column:proposal_id;not null"`
	MinClearance int   `gorm:"column:min_clearance;not null"`
}
