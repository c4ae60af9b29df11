package project

import (
	"log/slog"

	"github.com/ouroboros-foundation/portal/internal"
	"github.com/ouroboros-foundation/portal/internal/access"
	"github.com/ouroboros-foundation/portal/internal/clearance"
	"github.com/ouroboros-foundation/portal/internal/core/common/validation"
)

// Repository defines the data access methods for projects. Implementations
// must return the project together with its full rule set so the evaluator
// always sees one consistent snapshot.
type Repository interface {
	Create(project *Project) error
	GetByID(id int64) (*Project, error)
	GetAll(limit, offset int) ([]*Project, error)
	UpdateStatus(id int64, status string) error
	AddRule(rule access.Rule) (access.Rule, error)
	DeleteRule(projectID, ruleID int64) error
	UpsertAssignment(projectID, userID int64, role access.Role) (*Assignment, error)
	GetAssignments(projectID int64) ([]*Assignment, error)
}

// Service handles project business logic
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

// CreateProject creates a project and assigns the creator as lead.
func (s *Service) CreateProject(creator access.Identity, dto CreateProjectDTO) (*Project, error) {
	if err := validation.ValidateTitle(dto.Title); err != nil {
		s.logger.Error("project validation failed", "error", err, "user_id", creator.UserID)
		return nil, err
	}

	proj := NewProject(creator.UserID, dto)
	if err := s.repo.Create(proj); err != nil {
		s.logger.Error("failed to create project", "error", err, "user_id", creator.UserID)
		return nil, err
	}

	if _, err := s.repo.UpsertAssignment(proj.ID, creator.UserID, access.RoleLead); err != nil {
		s.logger.Error("failed to assign creator as lead", "error", err, "project_id", proj.ID)
		return nil, err
	}

	s.logger.Info("project created",
		"project_id", proj.ID,
		"creator_id", creator.UserID,
		"security_class", proj.SecurityClass)

	return proj, nil
}

// GetProject loads a project and runs the access evaluator for the
// requester. Denial is returned as a forbidden AppError, not a panic.
func (s *Service) GetProject(id int64, requester access.Identity) (*Project, access.Decision, error) {
	proj, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get project", "error", err, "project_id", id)
		return nil, access.Decision{}, internal.ErrProjectNotFound
	}

	decision := access.Evaluate(proj.Subject(), requester)
	if !decision.Allowed {
		s.logger.Warn("project access denied",
			"project_id", id,
			"user_id", requester.UserID,
			"user_clearance", requester.Clearance)
		return nil, decision, internal.ErrInsufficientClearance
	}

	return proj, decision, nil
}

// ListVisibleProjects returns the projects the requester may access, with
// the role each decision grants. Expunged projects are hidden from
// non-administrators regardless of clearance.
func (s *Service) ListVisibleProjects(requester access.Identity, limit, offset int) ([]*ProjectListEntry, error) {
	projects, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list projects", "error", err)
		return nil, err
	}

	entries := make([]*ProjectListEntry, 0, len(projects))
	for _, proj := range projects {
		if proj.Status == StatusExpunged && !requester.Clearance.IsAdministrator() {
			continue
		}
		decision := access.Evaluate(proj.Subject(), requester)
		if !decision.Allowed {
			continue
		}
		entries = append(entries, &ProjectListEntry{
			ID:            proj.ID,
			Title:         proj.Title,
			SecurityClass: string(proj.SecurityClass),
			Status:        proj.Status,
			Role:          string(decision.Role),
		})
	}

	return entries, nil
}

// AddAccessRule validates and attaches a rule. Authority: senior clearance
// or the project's creator.
func (s *Service) AddAccessRule(projectID int64, requester access.Identity, dto CreateAccessRuleDTO) (access.Rule, error) {
	proj, err := s.repo.GetByID(projectID)
	if err != nil {
		return access.Rule{}, internal.ErrProjectNotFound
	}

	if !proj.CanManageRules(requester) {
		s.logger.Warn("add access rule denied",
			"project_id", projectID,
			"user_id", requester.UserID,
			"user_clearance", requester.Clearance)
		return access.Rule{}, internal.ErrInsufficientClearance
	}

	rule, err := ruleFromDTO(projectID, dto)
	if err != nil {
		s.logger.Warn("malformed access rule rejected", "project_id", projectID, "error", err)
		return access.Rule{}, internal.ErrInvalidRule.WithCause(err)
	}

	created, err := s.repo.AddRule(rule)
	if err != nil {
		s.logger.Error("failed to persist access rule", "error", err, "project_id", projectID)
		return access.Rule{}, err
	}

	s.logger.Info("access rule added",
		"project_id", projectID,
		"rule_id", created.ID,
		"access_type", created.Type,
		"role", created.Role,
		"created_by", requester.UserID)

	return created, nil
}

// RemoveAccessRule deletes a rule under the same authority as AddAccessRule.
func (s *Service) RemoveAccessRule(projectID, ruleID int64, requester access.Identity) error {
	proj, err := s.repo.GetByID(projectID)
	if err != nil {
		return internal.ErrProjectNotFound
	}

	if !proj.CanManageRules(requester) {
		s.logger.Warn("remove access rule denied",
			"project_id", projectID,
			"rule_id", ruleID,
			"user_id", requester.UserID)
		return internal.ErrInsufficientClearance
	}

	if err := s.repo.DeleteRule(projectID, ruleID); err != nil {
		s.logger.Error("failed to delete access rule", "error", err, "project_id", projectID, "rule_id", ruleID)
		return err
	}

	s.logger.Info("access rule removed", "project_id", projectID, "rule_id", ruleID, "removed_by", requester.UserID)
	return nil
}

// AssignMember upserts a project assignment: a second assignment for the
// same (project, user) pair updates the role instead of duplicating.
func (s *Service) AssignMember(projectID int64, requester access.Identity, dto AssignMemberDTO) (*Assignment, error) {
	proj, err := s.repo.GetByID(projectID)
	if err != nil {
		return nil, internal.ErrProjectNotFound
	}

	if !proj.CanManageRules(requester) {
		s.logger.Warn("assign member denied", "project_id", projectID, "user_id", requester.UserID)
		return nil, internal.ErrInsufficientClearance
	}

	role := access.Role(dto.Role)
	if !role.IsValid() {
		role = access.RoleResearcher
	}

	assignment, err := s.repo.UpsertAssignment(projectID, dto.UserID, role)
	if err != nil {
		s.logger.Error("failed to upsert assignment", "error", err, "project_id", projectID, "user_id", dto.UserID)
		return nil, err
	}

	s.logger.Info("member assigned",
		"project_id", projectID,
		"user_id", dto.UserID,
		"role", role,
		"assigned_by", requester.UserID)

	return assignment, nil
}

// GetMembers lists assignments; visible to anyone the evaluator admits.
func (s *Service) GetMembers(projectID int64, requester access.Identity) ([]*Assignment, error) {
	if _, _, err := s.GetProject(projectID, requester); err != nil {
		return nil, err
	}
	return s.repo.GetAssignments(projectID)
}

// UpdateStatus moves a project between lifecycle statuses. Administrator
// triggered; no transition table is enforced here.
func (s *Service) UpdateStatus(projectID int64, requester access.Identity, status string) error {
	if !requester.Clearance.IsAdministrator() {
		s.logger.Warn("status change denied", "project_id", projectID, "user_id", requester.UserID)
		return internal.ErrInsufficientClearance
	}

	if !ValidStatus(status) {
		return internal.ErrInvalidStatus
	}

	if _, err := s.repo.GetByID(projectID); err != nil {
		return internal.ErrProjectNotFound
	}

	if err := s.repo.UpdateStatus(projectID, status); err != nil {
		s.logger.Error("failed to update project status", "error", err, "project_id", projectID)
		return err
	}

	s.logger.Info("project status updated", "project_id", projectID, "status", status, "updated_by", requester.UserID)
	return nil
}

func ruleFromDTO(projectID int64, dto CreateAccessRuleDTO) (access.Rule, error) {
	role := access.Role(dto.Role)

	var rule access.Rule
	switch access.RuleType(dto.AccessType) {
	case access.RuleTypeUser, access.RuleTypeDepartment, access.RuleTypeRank:
		var target int64
		if dto.TargetID != nil {
			target = *dto.TargetID
		}
		rule = access.Rule{ProjectID: projectID, Type: access.RuleType(dto.AccessType), TargetID: target, Role: role}
		// Carry a stray min clearance through so Validate rejects the
		// malformed shape instead of silently dropping the field.
		if dto.MinClearance != nil {
			rule.MinClearance = clearance.Level(*dto.MinClearance)
		}
		if !role.IsValid() {
			rule.Role = access.RoleResearcher
		}
	case access.RuleTypeClearance:
		var min clearance.Level
		if dto.MinClearance != nil {
			min = clearance.Level(*dto.MinClearance)
		}
		rule = access.NewClearanceRule(projectID, min, role)
		if dto.TargetID != nil {
			rule.TargetID = *dto.TargetID
		}
	default:
		rule = access.Rule{ProjectID: projectID, Type: access.RuleType(dto.AccessType), Role: role}
	}

	if err := rule.Validate(); err != nil {
		return access.Rule{}, err
	}
	return rule, nil
}
