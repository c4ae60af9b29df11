package covenant

type InviteToSeatDTO struct {
	UserID int64 `json:"user_id"`
	SeatID int64 `json:"seat_id"`
}

type AcceptInvitationDTO struct {
	Token string `json:"token"`
}

// SeatStatus pairs a seat with its current occupant, if any.
type SeatStatus struct {
	Seat       *Seat  `json:"seat"`
	OccupantID *int64 `json:"occupant_id,omitempty"`
}

type SeatListResponse struct {
	Seats []*SeatStatus `json:"seats"`
}

type MemberListResponse struct {
	Members []*Member `json:"members"`
}
