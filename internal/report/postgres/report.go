package postgres

import (
	"gorm.io/gorm"

	reportDatamodel "github.com/ouroboros-foundation/portal/internal/core/datamodel/report"
	"github.com/ouroboros-foundation/portal/internal/report"
)

// ReportRepository implements report.Repository using GORM.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) report.Repository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(rep *report.Report) error {
	row := report.ToDataModel(rep)
	if err := r.db.Table("reports").Create(row).Error; err != nil {
		return err
	}
	rep.ID = row.ID
	return nil
}

func (r *ReportRepository) GetByID(id int64) (*report.Report, error) {
	var row reportDatamodel.Report
	if err := r.db.Table("reports").Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return report.FromDataModel(&row), nil
}

func (r *ReportRepository) GetByProject(projectID int64, limit, offset int) ([]*report.Report, error) {
	var rows []*reportDatamodel.Report
	err := r.db.Table("reports").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	reports := make([]*report.Report, 0, len(rows))
	for _, row := range rows {
		reports = append(reports, report.FromDataModel(row))
	}
	return reports, nil
}
