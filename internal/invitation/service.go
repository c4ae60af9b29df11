package invitation

import (
	"log/slog"
	"time"

	"github.com/ouroboros-foundation/portal/internal"
	"github.com/ouroboros-foundation/portal/internal/access"
	"github.com/ouroboros-foundation/portal/internal/clearance"
)

type Repository interface {
	Create(i *Invitation) error
	GetByToken(token string) (*Invitation, error)
	GetByIssuer(issuerID int64, limit, offset int) ([]*Invitation, error)
	// MarkRedeemed must only succeed on a not-yet-redeemed row, holding the
	// single-redemption invariant in storage.
	MarkRedeemed(id int64, redeemerID int64, at time.Time) error
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

// IssueInvitation creates a single-use registration token. Issuers need
// senior clearance, and cannot grant a starting clearance above their own.
func (s *Service) IssueInvitation(issuer access.Identity, dto IssueInvitationDTO) (*Invitation, error) {
	if !issuer.Clearance.Meets(clearance.LevelSenior) {
		s.logger.Warn("invitation issue denied",
			"user_id", issuer.UserID,
			"user_clearance", issuer.Clearance)
		return nil, internal.ErrInsufficientClearance
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	granted := clearance.Normalize(dto.GrantedClearance)
	if granted > issuer.Clearance {
		granted = issuer.Clearance
	}

	inv := NewInvitation(issuer.UserID, dto.Email, granted, s.ttl)
	if err := s.repo.Create(inv); err != nil {
		s.logger.Error("failed to create invitation", "error", err, "issuer_id", issuer.UserID)
		return nil, err
	}

	s.logger.Info("invitation issued",
		"invitation_id", inv.ID,
		"issuer_id", issuer.UserID,
		"granted_clearance", granted,
		"expires_at", inv.ExpiresAt)

	return inv, nil
}

// Inspect looks a token up without consuming it, so registration forms can
// pre-fill the invited email.
func (s *Service) Inspect(token string) (*Invitation, error) {
	inv, err := s.repo.GetByToken(token)
	if err != nil {
		return nil, internal.ErrInvitationNotFound
	}
	if inv.Redeemed() {
		return nil, internal.ErrInvitationUsed
	}
	if inv.Expired(time.Now()) {
		return nil, internal.ErrInvitationExpired
	}
	return inv, nil
}

// Redeem consumes the invitation for a freshly registered user. A token
// redeems exactly once; expired and spent tokens are conflicts.
func (s *Service) Redeem(token string, redeemerID int64) (*RedemptionResult, error) {
	inv, err := s.Inspect(token)
	if err != nil {
		return nil, err
	}

	if err := s.repo.MarkRedeemed(inv.ID, redeemerID, time.Now()); err != nil {
		s.logger.Error("failed to redeem invitation", "error", err, "invitation_id", inv.ID)
		return nil, internal.ErrInvitationUsed
	}

	s.logger.Info("invitation redeemed",
		"invitation_id", inv.ID,
		"redeemed_by", redeemerID,
		"granted_clearance", inv.GrantedClearance)

	return &RedemptionResult{
		Email:            inv.Email,
		GrantedClearance: int(inv.GrantedClearance),
	}, nil
}

// ListIssued lists the invitations the requester has issued.
func (s *Service) ListIssued(requester access.Identity, limit, offset int) ([]*Invitation, error) {
	return s.repo.GetByIssuer(requester.UserID, limit, offset)
}
