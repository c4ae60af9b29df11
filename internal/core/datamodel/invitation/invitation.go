package invitation

import "time"

type Invitation struct {
	ID               int64      `gorm:"primaryKey"`
	Token            string     `gorm:"column:token;uniqueIndex;not null"`
	Email            string     `gorm:"column:email;not null"`
	GrantedClearance int        `gorm:"column:granted_clearance;default:1"`
	IssuedBy         int64      `gorm:"column:issued_by;not null"`
	ExpiresAt        time.Time  `gorm:"column:expires_at;not null"`
	RedeemedAt       *time.Time `gorm:"column:redeemed_at"`
	RedeemedBy       *int64     `gorm:"column:redeemed_by"`
	CreatedAt        time.Time  `gorm:"column:created_at;default:now()"`
}
