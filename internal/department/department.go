package department

import (
	"time"

	userDatamodel "github.com/ouroboros-foundation/portal/internal/core/datamodel/user"
)

type Department struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type Rank struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Ordinal int    `json:"ordinal"`
}

func (d *Department) IsActiveDepartment() bool {
	return d.IsActive
}

func (d *Department) ToResponse() DepartmentResponse {
	return DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
	}
}

func NewDepartment(name, description string) *Department {
	return &Department{
		Name:        name,
		Description: description,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
}

func ToDataModel(d *Department) *userDatamodel.Department {
	return &userDatamodel.Department{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
	}
}

func FromDataModel(d *userDatamodel.Department) *Department {
	return &Department{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
	}
}

func RankFromDataModel(r *userDatamodel.Rank) *Rank {
	return &Rank{
		ID:      r.ID,
		Name:    r.Name,
		Ordinal: r.Ordinal,
	}
}
