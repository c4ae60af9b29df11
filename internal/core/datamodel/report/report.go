package report

import "time"

type Report struct {
	ID                 int64     `gorm:"primaryKey"`
	ProjectID          int64     `gorm:"column:project_id;not null"`
	AuthorID           int64     `gorm:"column:author_id;not null"`
	Title              string    `gorm:"column:title;not null"`
	Body               string    `gorm:"column:body"`
	MinClearanceToView int       `gorm:"column:min_clearance_to_view;default:1"`
	CreatedAt          time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt          time.Time `gorm:"column:updated_at;default:now()"`
}
