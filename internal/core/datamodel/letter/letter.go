package letter

import "time"

type Letter struct {
	ID          int64      `gorm:"primaryKey"`
	SenderID    *int64     `gorm:"column:sender_id"` // nil for system-issued letters
	RecipientID int64      `gorm:"column:recipient_id;not null"`
	Subject     string     `gorm:"column:subject;not null"`
	Body        string     `gorm:"column:body"`
	ReadAt      *time.Time `gorm:"column:read_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;default:now()"`
}
