package postgres

import (
	"gorm.io/gorm"

	logbookDatamodel "github.com/ouroboros-foundation/portal/internal/core/datamodel/logbook"
	"github.com/ouroboros-foundation/portal/internal/logbook"
)

// LogbookRepository implements logbook.Repository using GORM.
type LogbookRepository struct {
	db *gorm.DB
}

func NewLogbookRepository(db *gorm.DB) logbook.Repository {
	return &LogbookRepository{db: db}
}

func (r *LogbookRepository) Create(e *logbook.Entry) error {
	row := logbook.ToDataModel(e)
	if err := r.db.Table("logbook_entries").Create(row).Error; err != nil {
		return err
	}
	e.ID = row.ID
	return nil
}

func (r *LogbookRepository) GetByID(id int64) (*logbook.Entry, error) {
	var row logbookDatamodel.Entry
	if err := r.db.Table("logbook_entries").Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return logbook.FromDataModel(&row), nil
}

func (r *LogbookRepository) GetByAuthor(authorID int64, limit, offset int) ([]*logbook.Entry, error) {
	return r.list(r.db.Table("logbook_entries").Where("author_id = ?", authorID), limit, offset)
}

func (r *LogbookRepository) GetByProject(projectID int64, limit, offset int) ([]*logbook.Entry, error) {
	return r.list(r.db.Table("logbook_entries").Where("project_id = ?", projectID), limit, offset)
}

// IncrementViewCount bumps the counter in SQL so concurrent readers do not
// lose updates to a read-modify-write race.
func (r *LogbookRepository) IncrementViewCount(id int64) error {
	return r.db.Table("logbook_entries").
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *LogbookRepository) list(query *gorm.DB, limit, offset int) ([]*logbook.Entry, error) {
	var rows []*logbookDatamodel.Entry
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*logbook.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, logbook.FromDataModel(row))
	}
	return entries, nil
}
