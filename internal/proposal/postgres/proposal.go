package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/ouroboros-foundation/portal/internal/clearance"
	proposalDatamodel "github.com/ouroboros-foundation/portal/internal/core/datamodel/proposal"
	"github.com/ouroboros-foundation/portal/internal/project"
	"github.com/ouroboros-foundation/portal/internal/proposal"
)

// ProposalRepository implements proposal.Repository using GORM.
type ProposalRepository struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) proposal.Repository {
	return &ProposalRepository{db: db}
}

func (r *ProposalRepository) Create(p *proposal.Proposal) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		row := proposal.ToDataModel(p)
		if err := tx.Table("proposals").Create(row).Error; err != nil {
			return err
		}
		p.ID = row.ID

		for _, deptID := range p.DepartmentIDs {
			dept := &proposalDatamodel.ProposalDepartment{ProposalID: p.ID, DepartmentID: deptID}
			if err := tx.Table("proposal_departments").Create(dept).Error; err != nil {
				return err
			}
		}
		for _, min := range p.ClearanceRequirements {
			req := &proposalDatamodel.ProposalClearance{ProposalID: p.ID, MinClearance: int(min)}
			if err := tx.Table("proposal_clearances").Create(req).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ProposalRepository) GetByID(id int64) (*proposal.Proposal, error) {
	var row proposalDatamodel.Proposal
	if err := r.db.Table("proposals").Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return r.hydrate(&row)
}

func (r *ProposalRepository) GetBySubmitter(submitterID int64) ([]*proposal.Proposal, error) {
	var rows []*proposalDatamodel.Proposal
	err := r.db.Table("proposals").
		Where("submitter_id = ?", submitterID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.hydrateAll(rows)
}

func (r *ProposalRepository) GetPending(limit, offset int) ([]*proposal.Proposal, error) {
	var rows []*proposalDatamodel.Proposal
	err := r.db.Table("proposals").
		Where("status = ?", proposal.StatusSubmitted).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.hydrateAll(rows)
}

func (r *ProposalRepository) MarkRejected(p *proposal.Proposal) error {
	return r.db.Table("proposals").
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"status":      p.Status,
			"reviewed_by": p.ReviewedBy,
			"reviewed_at": p.ReviewedAt,
			"updated_at":  p.UpdatedAt,
		}).Error
}

// Promote persists an approval atomically: the new project, its access rules,
// the submitter's lead assignment and the proposal's status flip either all
// land or none do. A concurrent approval loses on the status guard inside the
// transaction.
func (r *ProposalRepository) Promote(p *proposal.Proposal, proj *project.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Table("proposals").
			Where("id = ? AND status = ?", p.ID, proposal.StatusSubmitted).
			Updates(map[string]interface{}{
				"status":      p.Status,
				"reviewed_by": p.ReviewedBy,
				"reviewed_at": p.ReviewedAt,
				"updated_at":  p.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		projRow := project.ToDataModel(proj)
		if err := tx.Table("projects").Create(projRow).Error; err != nil {
			return err
		}
		proj.ID = projRow.ID

		for i := range proj.AccessRules {
			proj.AccessRules[i].ProjectID = proj.ID
			ruleRow := project.RuleToDataModel(proj.AccessRules[i])
			ruleRow.CreatedAt = time.Now()
			if err := tx.Table("access_rules").Create(ruleRow).Error; err != nil {
				return err
			}
			proj.AccessRules[i].ID = ruleRow.ID
		}

		assignment := map[string]interface{}{
			"project_id": proj.ID,
			"user_id":    p.SubmitterID,
			"role":       "lead",
			"created_at": time.Now(),
			"updated_at": time.Now(),
		}
		if err := tx.Table("project_assignments").Create(assignment).Error; err != nil {
			return err
		}

		return tx.Table("proposals").
			Where("id = ?", p.ID).
			Update("project_id", proj.ID).Error
	})
}

func (r *ProposalRepository) hydrate(row *proposalDatamodel.Proposal) (*proposal.Proposal, error) {
	p := proposal.FromDataModel(row)

	var deptRows []*proposalDatamodel.ProposalDepartment
	if err := r.db.Table("proposal_departments").Where("proposal_id = ?", row.ID).Find(&deptRows).Error; err != nil {
		return nil, err
	}
	for _, dept := range deptRows {
		p.DepartmentIDs = append(p.DepartmentIDs, dept.DepartmentID)
	}

	var reqRows []*proposalDatamodel.ProposalClearance
	if err := r.db.Table("proposal_clearances").Where("proposal_id = ?", row.ID).Order("min_clearance ASC").Find(&reqRows).Error; err != nil {
		return nil, err
	}
	for _, req := range reqRows {
		p.ClearanceRequirements = append(p.ClearanceRequirements, clearance.Normalize(req.MinClearance))
	}

	return p, nil
}

func (r *ProposalRepository) hydrateAll(rows []*proposalDatamodel.Proposal) ([]*proposal.Proposal, error) {
	proposals := make([]*proposal.Proposal, 0, len(rows))
	for _, row := range rows {
		p, err := r.hydrate(row)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	return proposals, nil
}
