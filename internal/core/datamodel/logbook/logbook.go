package logbook

import "time"

type Entry struct {
	ID                 int64     `gorm:"primaryKey"`
	ProjectID          *int64    `gorm:"column:project_id"`
	AuthorID           int64     `gorm:"column:author_id;not null"`
	EntryText          string    `gorm:"column:entry_text;not null"`
	Attachments        string    `gorm:"column:attachments"` // newline-separated storage keys
	MinClearanceToView int       `gorm:"column:min_clearance_to_view;default:1"`
	IsRedacted         bool      `gorm:"column:is_redacted;default:false"`
	RedactedVersion    *string   `gorm:"column:redacted_version"`
	ViewCount          int64     `gorm:"column:view_count;default:0"`
	CreatedAt          time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt          time.Time `gorm:"column:updated_at;default:now()"`
}
