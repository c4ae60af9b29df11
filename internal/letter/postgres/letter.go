package postgres

import (
	"time"

	"gorm.io/gorm"

	letterDatamodel "github.com/ouroboros-foundation/portal/internal/core/datamodel/letter"
	"github.com/ouroboros-foundation/portal/internal/letter"
)

// LetterRepository implements letter.Repository using GORM.
type LetterRepository struct {
	db *gorm.DB
}

func NewLetterRepository(db *gorm.DB) letter.Repository {
	return &LetterRepository{db: db}
}

func (r *LetterRepository) Create(l *letter.Letter) error {
	row := letter.ToDataModel(l)
	if err := r.db.Table("letters").Create(row).Error; err != nil {
		return err
	}
	l.ID = row.ID
	return nil
}

func (r *LetterRepository) GetByID(id int64) (*letter.Letter, error) {
	var row letterDatamodel.Letter
	if err := r.db.Table("letters").Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return letter.FromDataModel(&row), nil
}

func (r *LetterRepository) GetInbox(recipientID int64, limit, offset int) ([]*letter.Letter, error) {
	return r.list(r.db.Table("letters").Where("recipient_id = ?", recipientID), limit, offset)
}

func (r *LetterRepository) GetSent(senderID int64, limit, offset int) ([]*letter.Letter, error) {
	return r.list(r.db.Table("letters").Where("sender_id = ?", senderID), limit, offset)
}

func (r *LetterRepository) GetAll(limit, offset int) ([]*letter.Letter, error) {
	return r.list(r.db.Table("letters"), limit, offset)
}

func (r *LetterRepository) MarkRead(id int64, at time.Time) error {
	return r.db.Table("letters").
		Where("id = ? AND read_at IS NULL", id).
		Update("read_at", at).Error
}

func (r *LetterRepository) list(query *gorm.DB, limit, offset int) ([]*letter.Letter, error) {
	var rows []*letterDatamodel.Letter
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	letters := make([]*letter.Letter, 0, len(rows))
	for _, row := range rows {
		letters = append(letters, letter.FromDataModel(row))
	}
	return letters, nil
}
