package user

import (
	"context"
	"log/slog"

	"github.com/ouroboros-foundation/portal/internal"
	"github.com/ouroboros-foundation/portal/internal/access"
	"github.com/ouroboros-foundation/portal/internal/clearance"
	"github.com/ouroboros-foundation/portal/internal/core/common/validation"
	"github.com/ouroboros-foundation/portal/internal/core/events"
	"github.com/ouroboros-foundation/portal/internal/invitation"
)

type Repository interface {
	Create(u *User, passwordHash string) error
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	GetAll(limit, offset int) ([]*User, error)
	GetPendingApproval(limit, offset int) ([]*User, error)
	SetApproved(id int64, approved bool) error
	SetActive(id int64, active bool) error
	SetClearance(id int64, level int) error
	SetRank(id int64, rankID *int64) error
	SetDepartments(id int64, departmentIDs []int64) error
}

// InvitationRedeemer is the slice of the invitation service registration
// needs.
type InvitationRedeemer interface {
	Inspect(token string) (*invitation.Invitation, error)
	Redeem(token string, redeemerID int64) (*invitation.RedemptionResult, error)
}

// PasswordHasher abstracts bcrypt so tests stay fast.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Service struct {
	repo        Repository
	invitations InvitationRedeemer
	hasher      PasswordHasher
	eventBus    *events.EventBus
	logger      *slog.Logger
}

func NewService(repo Repository, invitations InvitationRedeemer, hasher PasswordHasher, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		invitations: invitations,
		hasher:      hasher,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// Register creates an account from an invitation. The new account carries
// the invitation's email and granted clearance and stays pending until an
// administrator approves it.
func (s *Service) Register(dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.invitations.Inspect(dto.InvitationToken)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(inv.Email); err == nil && existing != nil {
		return nil, internal.NewConflictError("an account with this email already exists", internal.ErrCodeValidationFailed)
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewInternalError("failed to process registration", err)
	}

	u := &User{
		Email:          inv.Email,
		Name:           dto.Name,
		ClearanceLevel: inv.GrantedClearance,
		IsActive:       true,
		IsApproved:     false,
	}
	if err := s.repo.Create(u, hash); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", inv.Email)
		return nil, err
	}

	if _, err := s.invitations.Redeem(dto.InvitationToken, u.ID); err != nil {
		s.logger.Error("failed to redeem invitation after registration",
			"error", err, "user_id", u.ID)
		return nil, err
	}

	s.logger.Info("user registered",
		"user_id", u.ID,
		"clearance_level", u.ClearanceLevel,
		"invited_by", inv.IssuedBy)

	return u, nil
}

// GetProfile returns one user record, visible to the user themself or an
// administrator.
func (s *Service) GetProfile(id int64, requester access.Identity) (*User, error) {
	if id != requester.UserID && !requester.Clearance.IsAdministrator() {
		return nil, internal.ErrInsufficientClearance
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

// ListUsers is the personnel roster; administrators only.
func (s *Service) ListUsers(requester access.Identity, limit, offset int) ([]*User, error) {
	if !requester.Clearance.IsAdministrator() {
		return nil, internal.ErrInsufficientClearance
	}
	return s.repo.GetAll(limit, offset)
}

// ListPendingApproval lists accounts awaiting approval; administrators only.
func (s *Service) ListPendingApproval(requester access.Identity, limit, offset int) ([]*User, error) {
	if !requester.Clearance.IsAdministrator() {
		return nil, internal.ErrInsufficientClearance
	}
	return s.repo.GetPendingApproval(limit, offset)
}

// ApproveUser activates a pending account; administrators only.
func (s *Service) ApproveUser(id int64, admin access.Identity) error {
	if !admin.Clearance.IsAdministrator() {
		s.logger.Warn("user approval denied", "user_id", admin.UserID)
		return internal.ErrInsufficientClearance
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrUserNotFound
	}

	if err := s.repo.SetApproved(id, true); err != nil {
		s.logger.Error("failed to approve user", "error", err, "target_user_id", id)
		return err
	}

	s.logger.Info("user approved", "target_user_id", id, "approved_by", admin.UserID)
	return nil
}

// DeactivateUser disables an account without deleting its records.
func (s *Service) DeactivateUser(id int64, admin access.Identity) error {
	if !admin.Clearance.IsAdministrator() {
		return internal.ErrInsufficientClearance
	}

	if err := s.repo.SetActive(id, false); err != nil {
		s.logger.Error("failed to deactivate user", "error", err, "target_user_id", id)
		return err
	}

	s.logger.Info("user deactivated", "target_user_id", id, "deactivated_by", admin.UserID)
	return nil
}

// SetClearance changes a user's clearance level. Level-5 administrators
// only; the change is announced on the event bus for audit consumers.
func (s *Service) SetClearance(ctx context.Context, id int64, admin access.Identity, dto SetClearanceDTO) error {
	if !admin.Clearance.IsAdministrator() {
		s.logger.Warn("clearance change denied",
			"target_user_id", id,
			"user_id", admin.UserID,
			"user_clearance", admin.Clearance)
		return internal.ErrInsufficientClearance
	}

	if err := validation.ValidateClearanceLevel(int64(dto.ClearanceLevel)); err != nil {
		return err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return internal.ErrUserNotFound
	}

	newLevel := clearance.Normalize(dto.ClearanceLevel)
	if err := s.repo.SetClearance(id, int(newLevel)); err != nil {
		s.logger.Error("failed to set clearance", "error", err, "target_user_id", id)
		return err
	}

	s.logger.Info("clearance changed",
		"target_user_id", id,
		"old_level", u.ClearanceLevel,
		"new_level", newLevel,
		"changed_by", admin.UserID)

	if s.eventBus != nil {
		event := events.NewClearanceChangedEvent(id, int(u.ClearanceLevel), int(newLevel), admin.UserID)
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish clearance change", "error", err, "target_user_id", id)
		}
	}

	return nil
}

// SetDepartments replaces a user's department memberships; administrators
// only.
func (s *Service) SetDepartments(id int64, admin access.Identity, dto SetDepartmentsDTO) error {
	if !admin.Clearance.IsAdministrator() {
		return internal.ErrInsufficientClearance
	}
	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrUserNotFound
	}
	return s.repo.SetDepartments(id, dto.DepartmentIDs)
}

// SetRank assigns or clears a user's rank; administrators only.
func (s *Service) SetRank(id int64, admin access.Identity, dto SetRankDTO) error {
	if !admin.Clearance.IsAdministrator() {
		return internal.ErrInsufficientClearance
	}
	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrUserNotFound
	}
	return s.repo.SetRank(id, dto.RankID)
}
