package project

import (
	"time"

	"github.com/ouroboros-foundation/portal/internal/access"
	"github.com/ouroboros-foundation/portal/internal/clearance"
	projectDatamodel "github.com/ouroboros-foundation/portal/internal/core/datamodel/project"
)

type Project struct {
	ID            int64                   `json:"id"`
	Title         string                  `json:"title"`
	Summary       string                  `json:"summary"`
	SecurityClass clearance.SecurityClass `json:"security_class"`
	Status        string                  `json:"status"`
	CreatorID     int64                   `json:"creator_id"`
	ProposalID    *int64                  `json:"proposal_id,omitempty"`
	AccessRules   []access.Rule           `json:"access_rules,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

// Lifecycle statuses. These are administrator-set signals consumed by
// listing and filtering; they do not gate the access evaluator.
const (
	StatusActive    = "active"
	StatusReview    = "review"
	StatusSuspended = "suspended"
	StatusArchived  = "archived"
	StatusExpunged  = "expunged"
)

// MinClearanceToManageRules is the clearance floor for creating or deleting
// access rules on projects one does not own.
const MinClearanceToManageRules = clearance.LevelSenior

func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusReview, StatusSuspended, StatusArchived, StatusExpunged:
		return true
	}
	return false
}

type Assignment struct {
	ID        int64       `json:"id"`
	ProjectID int64       `json:"project_id"`
	UserID    int64       `json:"user_id"`
	Role      access.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Subject projects the domain object onto the evaluator's input shape.
func (p *Project) Subject() access.Subject {
	return access.Subject{
		ProjectID:     p.ID,
		SecurityClass: p.SecurityClass,
		Rules:         p.AccessRules,
	}
}

// CanManageRules reports whether the requester may create or delete access
// rules on this project: senior clearance or the project's creator.
func (p *Project) CanManageRules(requester access.Identity) bool {
	return requester.Clearance.Meets(MinClearanceToManageRules) || requester.UserID == p.CreatorID
}

func NewProject(creatorID int64, dto CreateProjectDTO) *Project {
	now := time.Now()
	class := clearance.SecurityClass(dto.SecurityClass)
	if !class.IsValid() {
		class = clearance.ClassGreen
	}

	return &Project{
		Title:         dto.Title,
		Summary:       dto.Summary,
		SecurityClass: class,
		Status:        StatusActive,
		CreatorID:     creatorID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func ToDataModel(p *Project) *projectDatamodel.Project {
	return &projectDatamodel.Project{
		ID:            p.ID,
		Title:         p.Title,
		Summary:       p.Summary,
		SecurityClass: string(p.SecurityClass),
		Status:        p.Status,
		CreatorID:     p.CreatorID,
		ProposalID:    p.ProposalID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func FromDataModel(p *projectDatamodel.Project) *Project {
	return &Project{
		ID:            p.ID,
		Title:         p.Title,
		Summary:       p.Summary,
		SecurityClass: clearance.SecurityClass(p.SecurityClass),
		Status:        p.Status,
		CreatorID:     p.CreatorID,
		ProposalID:    p.ProposalID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// RuleToDataModel flattens the tagged union onto the access_rules row shape.
func RuleToDataModel(r access.Rule) *projectDatamodel.AccessRule {
	row := &projectDatamodel.AccessRule{
		ID:         r.ID,
		ProjectID:  r.ProjectID,
		AccessType: string(r.Type),
		Role:       string(r.Role),
	}
	switch r.Type {
	case access.RuleTypeClearance:
		min := int(r.MinClearance)
		row.MinClearance = &min
	default:
		target := r.TargetID
		row.TargetID = &target
	}
	return row
}

// RuleFromDataModel lifts an access_rules row back into the tagged union.
func RuleFromDataModel(row *projectDatamodel.AccessRule) access.Rule {
	rule := access.Rule{
		ID:        row.ID,
		ProjectID: row.ProjectID,
		Type:      access.RuleType(row.AccessType),
		Role:      access.Role(row.Role),
	}
	switch rule.Type {
	case access.RuleTypeClearance:
		if row.MinClearance != nil {
			rule.MinClearance = clearance.Normalize(*row.MinClearance)
		}
	default:
		if row.TargetID != nil {
			rule.TargetID = *row.TargetID
		}
	}
	return rule
}

func AssignmentFromDataModel(a *projectDatamodel.ProjectAssignment) *Assignment {
	return &Assignment{
		ID:        a.ID,
		ProjectID: a.ProjectID,
		UserID:    a.UserID,
		Role:      access.Role(a.Role),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
