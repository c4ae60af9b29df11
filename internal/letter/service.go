package letter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ouroboros-foundation/portal/internal"
	"github.com/ouroboros-foundation/portal/internal/access"
	"github.com/ouroboros-foundation/portal/internal/core/events"
)

type Repository interface {
	Create(l *Letter) error
	GetByID(id int64) (*Letter, error)
	GetInbox(recipientID int64, limit, offset int) ([]*Letter, error)
	GetSent(senderID int64, limit, offset int) ([]*Letter, error)
	GetAll(limit, offset int) ([]*Letter, error)
	MarkRead(id int64, at time.Time) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// SendLetter delivers a letter from one user to another.
func (s *Service) SendLetter(sender access.Identity, dto SendLetterDTO) (*Letter, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	senderID := sender.UserID
	l := NewLetter(&senderID, dto.RecipientID, dto.Subject, dto.Body)
	if err := s.repo.Create(l); err != nil {
		s.logger.Error("failed to send letter", "error", err, "sender_id", sender.UserID)
		return nil, err
	}

	s.logger.Info("letter sent",
		"letter_id", l.ID,
		"sender_id", sender.UserID,
		"recipient_id", dto.RecipientID)

	return l, nil
}

// GetLetter opens a letter. Opening marks it read when the reader is the
// recipient; senders and auditors reading a letter do not flip the flag.
func (s *Service) GetLetter(id int64, requester access.Identity) (*Letter, error) {
	l, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrLetterNotFound
	}

	if !l.VisibleTo(requester.UserID) && !requester.Clearance.IsAdministrator() {
		s.logger.Warn("letter access denied", "letter_id", id, "user_id", requester.UserID)
		return nil, internal.ErrInsufficientClearance
	}

	if l.RecipientID == requester.UserID && l.ReadAt == nil {
		now := time.Now()
		if err := s.repo.MarkRead(id, now); err != nil {
			s.logger.Error("failed to mark letter read", "error", err, "letter_id", id)
		} else {
			l.ReadAt = &now
		}
	}

	return l, nil
}

// GetInbox lists the requester's received letters.
func (s *Service) GetInbox(requester access.Identity, limit, offset int) ([]*Letter, error) {
	return s.repo.GetInbox(requester.UserID, limit, offset)
}

// GetSent lists the requester's sent letters.
func (s *Service) GetSent(requester access.Identity, limit, offset int) ([]*Letter, error) {
	return s.repo.GetSent(requester.UserID, limit, offset)
}

// AuditAll lists all correspondence; level-5 only.
func (s *Service) AuditAll(requester access.Identity, limit, offset int) ([]*Letter, error) {
	if !requester.Clearance.IsAdministrator() {
		s.logger.Warn("letter audit denied", "user_id", requester.UserID, "user_clearance", requester.Clearance)
		return nil, internal.ErrInsufficientClearance
	}
	return s.repo.GetAll(limit, offset)
}

// HandleProposalApproved turns a proposal approval into a system letter to
// the submitter. Registered on the event bus at startup.
func (s *Service) HandleProposalApproved(ctx context.Context, event events.Event) error {
	approved, ok := event.(*events.ProposalApprovedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	l := NewLetter(nil, approved.SubmitterID,
		fmt.Sprintf("Proposal approved: %s", approved.Title),
		fmt.Sprintf("Your proposal %q has been approved and promoted to project #%d. You have been assigned as its lead.", approved.Title, approved.ProjectID))

	if err := s.repo.Create(l); err != nil {
		return fmt.Errorf("create approval letter: %w", err)
	}

	s.logger.Info("approval letter delivered",
		"letter_id", l.ID,
		"recipient_id", approved.SubmitterID,
		"project_id", approved.ProjectID)
	return nil
}

// HandleProposalRejected notifies the submitter of a rejection.
func (s *Service) HandleProposalRejected(ctx context.Context, event events.Event) error {
	rejected, ok := event.(*events.ProposalRejectedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	body := "Your proposal was not approved."
	if rejected.Reason != "" {
		body = fmt.Sprintf("Your proposal was not approved. Reviewer's note: %s", rejected.Reason)
	}

	l := NewLetter(nil, rejected.SubmitterID, "Proposal decision", body)
	if err := s.repo.Create(l); err != nil {
		return fmt.Errorf("create rejection letter: %w", err)
	}
	return nil
}
