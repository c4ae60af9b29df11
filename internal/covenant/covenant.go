package covenant

import (
	"time"

	"github.com/google/uuid"

	covenantDatamodel "github.com/ouroboros-foundation/portal/internal/core/datamodel/covenant"
)

// The covenant is a closed sub-organization with a fixed set of numbered
// seats. A member holds exactly one seat; a seat holds at most one active
// member.

type Seat struct {
	ID        int64     `json:"id"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type Member struct {
	ID       int64      `json:"id"`
	UserID   int64      `json:"user_id"`
	SeatID   int64      `json:"seat_id"`
	JoinedAt time.Time  `json:"joined_at"`
	LeftAt   *time.Time `json:"left_at,omitempty"`
}

// Active reports whether the member currently holds their seat.
func (m *Member) Active() bool {
	return m.LeftAt == nil
}

// Invitation binds a prospective member to a specific seat. Like portal
// invitations it expires and resolves exactly once, to accepted or declined.
type Invitation struct {
	ID         int64      `json:"id"`
	Token      string     `json:"token"`
	UserID     int64      `json:"user_id"`
	SeatID     int64      `json:"seat_id"`
	IssuedBy   int64      `json:"issued_by"`
	ExpiresAt  time.Time  `json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	DeclinedAt *time.Time `json:"declined_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (i *Invitation) Resolved() bool {
	return i.AcceptedAt != nil || i.DeclinedAt != nil
}

func (i *Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

func NewInvitation(issuerID, userID, seatID int64, ttl time.Duration) *Invitation {
	now := time.Now()
	return &Invitation{
		Token:     uuid.New().String(),
		UserID:    userID,
		SeatID:    seatID,
		IssuedBy:  issuerID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

func SeatFromDataModel(row *covenantDatamodel.Seat) *Seat {
	return &Seat{
		ID:        row.ID,
		Number:    row.Number,
		Title:     row.Title,
		CreatedAt: row.CreatedAt,
	}
}

func MemberFromDataModel(row *covenantDatamodel.Member) *Member {
	return &Member{
		ID:       row.ID,
		UserID:   row.UserID,
		SeatID:   row.SeatID,
		JoinedAt: row.JoinedAt,
		LeftAt:   row.LeftAt,
	}
}

func InvitationToDataModel(i *Invitation) *covenantDatamodel.Invitation {
	return &covenantDatamodel.Invitation{
		ID:         i.ID,
		Token:      i.Token,
		UserID:     i.UserID,
		SeatID:     i.SeatID,
		IssuedBy:   i.IssuedBy,
		ExpiresAt:  i.ExpiresAt,
		AcceptedAt: i.AcceptedAt,
		DeclinedAt: i.DeclinedAt,
		CreatedAt:  i.CreatedAt,
	}
}

func InvitationFromDataModel(row *covenantDatamodel.Invitation) *Invitation {
	return &Invitation{
		ID:         row.ID,
		Token:      row.Token,
		UserID:     row.UserID,
		SeatID:     row.SeatID,
		IssuedBy:   row.IssuedBy,
		ExpiresAt:  row.ExpiresAt,
		AcceptedAt: row.AcceptedAt,
		DeclinedAt: row.DeclinedAt,
		CreatedAt:  row.CreatedAt,
	}
}
