package proposal

import (
	"context"
	"log/slog"
	"time"

	"github.com/ouroboros-foundation/portal/internal"
	"github.com/ouroboros-foundation/portal/internal/access"
	"github.com/ouroboros-foundation/portal/internal/clearance"
	"github.com/ouroboros-foundation/portal/internal/core/events"
	"github.com/ouroboros-foundation/portal/internal/project"
)

// Repository defines data access for proposals. Promote must run the project
// insert, its access rules, the submitter's lead assignment and the proposal
// status flip in one transaction so a crash cannot leave a half-promoted
// proposal behind.
type Repository interface {
	Create(p *Proposal) error
	GetByID(id int64) (*Proposal, error)
	GetBySubmitter(submitterID int64) ([]*Proposal, error)
	GetPending(limit, offset int) ([]*Proposal, error)
	MarkRejected(p *Proposal) error
	Promote(p *Proposal, proj *project.Project) error
}

type Service struct {
	repo     Repository
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo Repository, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// SubmitProposal files a new proposal. Requires the submit_proposals
// capability (senior clearance and above).
func (s *Service) SubmitProposal(submitter access.Identity, dto CreateProposalDTO) (*Proposal, error) {
	if !submitter.Clearance.HasCapability(clearance.CapabilitySubmitProposals) {
		s.logger.Warn("proposal submission denied",
			"user_id", submitter.UserID,
			"user_clearance", submitter.Clearance)
		return nil, internal.ErrInsufficientClearance
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p := NewProposal(submitter.UserID, dto)
	if err := s.repo.Create(p); err != nil {
		s.logger.Error("failed to create proposal", "error", err, "submitter_id", submitter.UserID)
		return nil, err
	}

	s.logger.Info("proposal submitted",
		"proposal_id", p.ID,
		"submitter_id", submitter.UserID,
		"security_class", p.SecurityClass)

	return p, nil
}

// GetProposal returns a proposal to its submitter or to anyone holding the
// approve_proposals capability.
func (s *Service) GetProposal(id int64, requester access.Identity) (*Proposal, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrProposalNotFound
	}

	if p.SubmitterID != requester.UserID && !requester.Clearance.HasCapability(clearance.CapabilityApproveProposal) {
		s.logger.Warn("proposal access denied", "proposal_id", id, "user_id", requester.UserID)
		return nil, internal.ErrInsufficientClearance
	}

	return p, nil
}

// ListMyProposals returns the requester's own proposals.
func (s *Service) ListMyProposals(requester access.Identity) ([]*Proposal, error) {
	return s.repo.GetBySubmitter(requester.UserID)
}

// ListPending returns submitted proposals awaiting review, for approvers.
func (s *Service) ListPending(requester access.Identity, limit, offset int) ([]*Proposal, error) {
	if !requester.Clearance.HasCapability(clearance.CapabilityApproveProposal) {
		return nil, internal.ErrInsufficientClearance
	}
	return s.repo.GetPending(limit, offset)
}

// ApproveProposal promotes a proposal into a project. Approving a proposal
// that was already approved is a conflict, never a second project: the guard
// fires before any write happens.
func (s *Service) ApproveProposal(ctx context.Context, id int64, approver access.Identity) (*Proposal, *project.Project, error) {
	if !approver.Clearance.HasCapability(clearance.CapabilityApproveProposal) {
		s.logger.Warn("proposal approval denied",
			"proposal_id", id,
			"user_id", approver.UserID,
			"user_clearance", approver.Clearance)
		return nil, nil, internal.ErrInsufficientClearance
	}

	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, nil, internal.ErrProposalNotFound
	}

	if p.Status == StatusApproved {
		s.logger.Warn("double approval blocked", "proposal_id", id, "user_id", approver.UserID)
		return nil, nil, internal.ErrAlreadyApproved
	}
	if p.Status == StatusRejected {
		return nil, nil, internal.ErrInvalidStatus
	}

	proj := p.Promote()

	now := time.Now()
	approverID := approver.UserID
	p.Status = StatusApproved
	p.ReviewedBy = &approverID
	p.ReviewedAt = &now
	p.UpdatedAt = now

	if err := s.repo.Promote(p, proj); err != nil {
		s.logger.Error("failed to promote proposal", "error", err, "proposal_id", id)
		return nil, nil, err
	}
	p.ProjectID = &proj.ID

	s.logger.Info("proposal approved",
		"proposal_id", p.ID,
		"project_id", proj.ID,
		"submitter_id", p.SubmitterID,
		"approver_id", approver.UserID)

	if s.eventBus != nil {
		event := events.NewProposalApprovedEvent(p.ID, proj.ID, p.SubmitterID, approver.UserID, p.Title)
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish approval event", "error", err, "proposal_id", p.ID)
		}
	}

	return p, proj, nil
}

// RejectProposal closes a proposal without promotion. Rejection of an
// already-reviewed proposal is a conflict, same as double approval.
func (s *Service) RejectProposal(ctx context.Context, id int64, approver access.Identity, reason string) (*Proposal, error) {
	if !approver.Clearance.HasCapability(clearance.CapabilityApproveProposal) {
		return nil, internal.ErrInsufficientClearance
	}

	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrProposalNotFound
	}

	if p.Status == StatusApproved {
		return nil, internal.ErrAlreadyApproved
	}
	if p.Status == StatusRejected {
		return nil, internal.ErrInvalidStatus
	}

	now := time.Now()
	approverID := approver.UserID
	p.Status = StatusRejected
	p.ReviewedBy = &approverID
	p.ReviewedAt = &now
	p.UpdatedAt = now

	if err := s.repo.MarkRejected(p); err != nil {
		s.logger.Error("failed to reject proposal", "error", err, "proposal_id", id)
		return nil, err
	}

	s.logger.Info("proposal rejected",
		"proposal_id", p.ID,
		"approver_id", approver.UserID,
		"reason", reason)

	if s.eventBus != nil {
		event := events.NewProposalRejectedEvent(p.ID, p.SubmitterID, approver.UserID, reason)
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish rejection event", "error", err, "proposal_id", p.ID)
		}
	}

	return p, nil
}
