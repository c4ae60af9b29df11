package covenant

import (
	"log/slog"
	"time"

	"github.com/ouroboros-foundation/portal/internal"
	"github.com/ouroboros-foundation/portal/internal/access"
	"github.com/ouroboros-foundation/portal/internal/clearance"
)

// MinClearanceToJoin is the clearance floor for taking a covenant seat.
const MinClearanceToJoin = clearance.LevelStandard

type Repository interface {
	GetSeats() ([]*Seat, error)
	GetSeat(seatID int64) (*Seat, error)
	GetActiveMembers() ([]*Member, error)
	GetActiveMemberByUser(userID int64) (*Member, error)
	GetActiveMemberBySeat(seatID int64) (*Member, error)
	CreateMember(userID, seatID int64, at time.Time) (*Member, error)
	MarkLeft(memberID int64, at time.Time) error
	CreateInvitation(i *Invitation) error
	GetInvitationByToken(token string) (*Invitation, error)
	ResolveInvitation(id int64, acceptedAt, declinedAt *time.Time) error
}

type Service struct {
	repo   Repository
	ttl    time.Duration
	logger *slog.Logger
}

func NewService(repo Repository, ttl time.Duration, logger *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Service{
		repo:   repo,
		ttl:    ttl,
		logger: logger,
	}
}

// ListSeats returns every seat with its occupancy.
func (s *Service) ListSeats() ([]*SeatStatus, error) {
	seats, err := s.repo.GetSeats()
	if err != nil {
		return nil, err
	}
	members, err := s.repo.GetActiveMembers()
	if err != nil {
		return nil, err
	}

	occupants := make(map[int64]int64, len(members))
	for _, m := range members {
		occupants[m.SeatID] = m.UserID
	}

	statuses := make([]*SeatStatus, 0, len(seats))
	for _, seat := range seats {
		status := &SeatStatus{Seat: seat}
		if userID, ok := occupants[seat.ID]; ok {
			status.OccupantID = &userID
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// InviteToSeat invites a user onto a specific seat. Only sitting members or
// administrators may extend covenant invitations, and the seat must be free.
func (s *Service) InviteToSeat(issuer access.Identity, dto InviteToSeatDTO) (*Invitation, error) {
	if !s.mayInvite(issuer) {
		s.logger.Warn("covenant invitation denied", "user_id", issuer.UserID)
		return nil, internal.ErrInsufficientClearance
	}

	if _, err := s.repo.GetSeat(dto.SeatID); err != nil {
		return nil, internal.ErrNoSeatAvailable
	}
	if occupant, err := s.repo.GetActiveMemberBySeat(dto.SeatID); err == nil && occupant != nil {
		return nil, internal.ErrSeatOccupied
	}
	if sitting, err := s.repo.GetActiveMemberByUser(dto.UserID); err == nil && sitting != nil {
		return nil, internal.ErrSeatOccupied.WithDetails("user already holds a seat")
	}

	inv := NewInvitation(issuer.UserID, dto.UserID, dto.SeatID, s.ttl)
	if err := s.repo.CreateInvitation(inv); err != nil {
		s.logger.Error("failed to create covenant invitation", "error", err, "seat_id", dto.SeatID)
		return nil, err
	}

	s.logger.Info("covenant invitation issued",
		"invitation_id", inv.ID,
		"seat_id", dto.SeatID,
		"user_id", dto.UserID,
		"issued_by", issuer.UserID)

	return inv, nil
}

// AcceptInvitation seats the invited user. Joining requires standard
// clearance; the one-seat-per-member and one-member-per-seat invariants are
// re-checked at acceptance because the world may have moved since the invite.
func (s *Service) AcceptInvitation(token string, accepter access.Identity) (*Member, error) {
	inv, err := s.loadOpenInvitation(token)
	if err != nil {
		return nil, err
	}

	if inv.UserID != accepter.UserID {
		return nil, internal.ErrInsufficientClearance
	}
	if !accepter.Clearance.Meets(MinClearanceToJoin) {
		s.logger.Warn("covenant join denied",
			"user_id", accepter.UserID,
			"user_clearance", accepter.Clearance)
		return nil, internal.ErrInsufficientClearance
	}

	if occupant, err := s.repo.GetActiveMemberBySeat(inv.SeatID); err == nil && occupant != nil {
		return nil, internal.ErrSeatOccupied
	}
	if sitting, err := s.repo.GetActiveMemberByUser(accepter.UserID); err == nil && sitting != nil {
		return nil, internal.ErrSeatOccupied.WithDetails("user already holds a seat")
	}

	now := time.Now()
	member, err := s.repo.CreateMember(accepter.UserID, inv.SeatID, now)
	if err != nil {
		s.logger.Error("failed to seat member", "error", err, "seat_id", inv.SeatID)
		return nil, err
	}

	if err := s.repo.ResolveInvitation(inv.ID, &now, nil); err != nil {
		s.logger.Error("failed to resolve covenant invitation", "error", err, "invitation_id", inv.ID)
	}

	s.logger.Info("covenant seat taken",
		"seat_id", inv.SeatID,
		"user_id", accepter.UserID)

	return member, nil
}

// DeclineInvitation resolves the invitation without seating anyone.
func (s *Service) DeclineInvitation(token string, decliner access.Identity) error {
	inv, err := s.loadOpenInvitation(token)
	if err != nil {
		return err
	}
	if inv.UserID != decliner.UserID {
		return internal.ErrInsufficientClearance
	}

	now := time.Now()
	return s.repo.ResolveInvitation(inv.ID, nil, &now)
}

// LeaveSeat vacates the requester's seat.
func (s *Service) LeaveSeat(requester access.Identity) error {
	member, err := s.repo.GetActiveMemberByUser(requester.UserID)
	if err != nil || member == nil {
		return internal.ErrUserNotFound
	}

	if err := s.repo.MarkLeft(member.ID, time.Now()); err != nil {
		s.logger.Error("failed to vacate seat", "error", err, "member_id", member.ID)
		return err
	}

	s.logger.Info("covenant seat vacated", "seat_id", member.SeatID, "user_id", requester.UserID)
	return nil
}

// ListMembers returns the active membership.
func (s *Service) ListMembers() ([]*Member, error) {
	return s.repo.GetActiveMembers()
}

func (s *Service) mayInvite(issuer access.Identity) bool {
	if issuer.Clearance.IsAdministrator() {
		return true
	}
	member, err := s.repo.GetActiveMemberByUser(issuer.UserID)
	return err == nil && member != nil
}

func (s *Service) loadOpenInvitation(token string) (*Invitation, error) {
	inv, err := s.repo.GetInvitationByToken(token)
	if err != nil {
		return nil, internal.ErrInvitationNotFound
	}
	if inv.Resolved() {
		return nil, internal.ErrInvitationUsed
	}
	if inv.Expired(time.Now()) {
		return nil, internal.ErrInvitationExpired
	}
	return inv, nil
}
