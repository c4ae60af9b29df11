package postgres

import (
	"gorm.io/gorm"

	"github.com/ouroboros-foundation/portal/internal/department"
	userDatamodel "github.com/ouroboros-foundation/portal/internal/core/datamodel/user"
)

// DepartmentRepository implements the department.RepositoryAPI interface using GORM
type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.RepositoryAPI {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) GetAll() ([]*userDatamodel.Department, error) {
	var departments []*userDatamodel.Department
	err := r.db.Table("departments").Order("name ASC").Find(&departments).Error
	return departments, err
}

func (r *DepartmentRepository) GetByID(id int64) (*userDatamodel.Department, error) {
	var dept userDatamodel.Department
	err := r.db.Table("departments").Where("id = ?", id).First(&dept).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &dept, nil
}

func (r *DepartmentRepository) GetByName(name string) (*userDatamodel.Department, error) {
	var dept userDatamodel.Department
	err := r.db.Table("departments").Where("name = ?", name).First(&dept).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &dept, nil
}

func (r *DepartmentRepository) Create(dept *userDatamodel.Department) error {
	return r.db.Table("departments").Create(dept).Error
}

func (r *DepartmentRepository) Update(dept *userDatamodel.Department) error {
	return r.db.Table("departments").Save(dept).Error
}

func (r *DepartmentRepository) Delete(id int64) error {
	return r.db.Table("departments").Where("id = ?", id).Delete(&userDatamodel.Department{}).Error
}

func (r *DepartmentRepository) GetAllRanks() ([]*userDatamodel.Rank, error) {
	var ranks []*userDatamodel.Rank
	err := r.db.Table("ranks").Order("ordinal ASC").Find(&ranks).Error
	return ranks, err
}
