package letter

import (
	"time"

	letterDatamodel "github.com/ouroboros-foundation/portal/internal/core/datamodel/letter"
)

// Letter is internal correspondence between personnel. A nil SenderID marks a
// system-issued letter, e.g. the notification sent when a proposal is
// approved.
type Letter struct {
	ID          int64      `json:"id"`
	SenderID    *int64     `json:"sender_id,omitempty"`
	RecipientID int64      `json:"recipient_id"`
	Subject     string     `json:"subject"`
	Body        string     `json:"body"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// VisibleTo reports whether a user may open this letter: its recipient or its
// sender. Level-5 audit access is decided by the service, not here.
func (l *Letter) VisibleTo(userID int64) bool {
	if l.RecipientID == userID {
		return true
	}
	return l.SenderID != nil && *l.SenderID == userID
}

func NewLetter(senderID *int64, recipientID int64, subject, body string) *Letter {
	return &Letter{
		SenderID:    senderID,
		RecipientID: recipientID,
		Subject:     subject,
		Body:        body,
		CreatedAt:   time.Now(),
	}
}

func ToDataModel(l *Letter) *letterDatamodel.Letter {
	return &letterDatamodel.Letter{
		ID:          l.ID,
		SenderID:    l.SenderID,
		RecipientID: l.RecipientID,
		Subject:     l.Subject,
		Body:        l.Body,
		ReadAt:      l.ReadAt,
		CreatedAt:   l.CreatedAt,
	}
}

func FromDataModel(row *letterDatamodel.Letter) *Letter {
	return &Letter{
		ID:          row.ID,
		SenderID:    row.SenderID,
		RecipientID: row.RecipientID,
		Subject:     row.Subject,
		Body:        row.Body,
		ReadAt:      row.ReadAt,
		CreatedAt:   row.CreatedAt,
	}
}
