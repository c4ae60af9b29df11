package covenant

import "time"

type Seat struct {
	ID        int64     `gorm:"primaryKey"`
	Number    int       `gorm:"column:number;uniqueIndex;not null"`
	Title     string    `gorm:"column:title"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

type Member struct {
	ID        int64      `gorm:"primaryKey"`
	UserID    int64      `gorm:"column:user_id;not null"`
	SeatID    int64      `gorm:"column:seat_id;not null"`
	JoinedAt  time.Time  `gorm:"column:joined_at;default:now()"`
	LeftAt    *time.Time `gorm:"column:left_at"`
	CreatedAt time.Time  `gorm:"column:created_at;default:now()"`
}

type Invitation struct {
	ID         int64      `gorm:"primaryKey"`
	Token      string     `gorm:"column:token;uniqueIndex;not null"`
	UserID     int64      `gorm:"column:user_id;not null"`
	SeatID     int64      `gorm:"column:seat_id;not null"`
	IssuedBy   int64      `gorm:"column:issued_by;not null"`
	ExpiresAt  time.Time  `gorm:"column:expires_at;not null"`
	AcceptedAt *time.Time `gorm:"column:accepted_at"`
	DeclinedAt *time.Time `gorm:"column:declined_at"`
	CreatedAt  time.Time  `gorm:"column:created_at;default:now()"`
}
