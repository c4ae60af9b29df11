package postgres

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	projectDatamodel "github.com/ouroboros-foundation/portal/internal/core/datamodel/project"
	"github.com/ouroboros-foundation/portal/internal/access"
	"github.com/ouroboros-foundation/portal/internal/project"
)

// ProjectRepository implements project.Repository using GORM.
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) project.Repository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(p *project.Project) error {
	row := project.ToDataModel(p)
	if err := r.db.Table("projects").Create(row).Error; err != nil {
		return err
	}
	p.ID = row.ID
	return nil
}

// GetByID loads the project and all of its access rules in one call so the
// caller evaluates against a single snapshot.
func (r *ProjectRepository) GetByID(id int64) (*project.Project, error) {
	var row projectDatamodel.Project
	if err := r.db.Table("projects").Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}

	var ruleRows []*projectDatamodel.AccessRule
	if err := r.db.Table("access_rules").Where("project_id = ?", id).Order("id ASC").Find(&ruleRows).Error; err != nil {
		return nil, err
	}

	proj := project.FromDataModel(&row)
	proj.AccessRules = make([]access.Rule, 0, len(ruleRows))
	for _, ruleRow := range ruleRows {
		proj.AccessRules = append(proj.AccessRules, project.RuleFromDataModel(ruleRow))
	}
	return proj, nil
}

func (r *ProjectRepository) GetAll(limit, offset int) ([]*project.Project, error) {
	var rows []*projectDatamodel.Project
	err := r.db.Table("projects").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var ruleRows []*projectDatamodel.AccessRule
	if err := r.db.Table("access_rules").Where("project_id IN ?", ids).Order("id ASC").Find(&ruleRows).Error; err != nil {
		return nil, err
	}

	rulesByProject := make(map[int64][]access.Rule, len(rows))
	for _, ruleRow := range ruleRows {
		rulesByProject[ruleRow.ProjectID] = append(rulesByProject[ruleRow.ProjectID], project.RuleFromDataModel(ruleRow))
	}

	projects := make([]*project.Project, 0, len(rows))
	for _, row := range rows {
		proj := project.FromDataModel(row)
		proj.AccessRules = rulesByProject[row.ID]
		projects = append(projects, proj)
	}
	return projects, nil
}

func (r *ProjectRepository) UpdateStatus(id int64, status string) error {
	return r.db.Table("projects").
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *ProjectRepository) AddRule(rule access.Rule) (access.Rule, error) {
	row := project.RuleToDataModel(rule)
	row.CreatedAt = time.Now()
	if err := r.db.Table("access_rules").Create(row).Error; err != nil {
		return access.Rule{}, err
	}
	rule.ID = row.ID
	return rule, nil
}

func (r *ProjectRepository) DeleteRule(projectID, ruleID int64) error {
	result := r.db.Table("access_rules").
		Where("id = ? AND project_id = ?", ruleID, projectID).
		Delete(&projectDatamodel.AccessRule{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpsertAssignment relies on the (project_id, user_id) unique index: a repeat
// assignment updates the role in place instead of inserting a duplicate.
func (r *ProjectRepository) UpsertAssignment(projectID, userID int64, role access.Role) (*project.Assignment, error) {
	now := time.Now()
	row := &projectDatamodel.ProjectAssignment{
		ProjectID: projectID,
		UserID:    userID,
		Role:      string(role),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.db.Table("project_assignments").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"role": string(role), "updated_at": now}),
		}).
		Create(row).Error
	if err != nil {
		return nil, err
	}

	var saved projectDatamodel.ProjectAssignment
	if err := r.db.Table("project_assignments").
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&saved).Error; err != nil {
		return nil, err
	}

	return project.AssignmentFromDataModel(&saved), nil
}

func (r *ProjectRepository) GetAssignments(projectID int64) ([]*project.Assignment, error) {
	var rows []*projectDatamodel.ProjectAssignment
	if err := r.db.Table("project_assignments").Where("project_id = ?", projectID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	assignments := make([]*project.Assignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, project.AssignmentFromDataModel(row))
	}
	return assignments, nil
}
