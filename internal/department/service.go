package department

import (
	"log/slog"

	userDatamodel "github.com/ouroboros-foundation/portal/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	GetAll() ([]*userDatamodel.Department, error)
	GetByID(id int64) (*userDatamodel.Department, error)
	GetByName(name string) (*userDatamodel.Department, error)
	Create(department *userDatamodel.Department) error
	Update(department *userDatamodel.Department) error
	Delete(id int64) error
	GetAllRanks() ([]*userDatamodel.Rank, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAllDepartments() ([]DepartmentResponse, error) {
	dataDepartments, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get departments from repository", "error", err)
		return nil, err
	}

	var responses []DepartmentResponse
	for _, dataDepartment := range dataDepartments {
		domainDepartment := FromDataModel(dataDepartment)
		if domainDepartment.IsActiveDepartment() {
			responses = append(responses, domainDepartment.ToResponse())
		}
	}

	s.logger.Info("retrieved departments", "count", len(responses))
	return responses, nil
}

func (s *Service) GetAllRanks() ([]RankResponse, error) {
	dataRanks, err := s.repo.GetAllRanks()
	if err != nil {
		s.logger.Error("failed to get ranks from repository", "error", err)
		return nil, err
	}

	var responses []RankResponse
	for _, dataRank := range dataRanks {
		rank := RankFromDataModel(dataRank)
		responses = append(responses, RankResponse{ID: rank.ID, Name: rank.Name, Ordinal: rank.Ordinal})
	}

	return responses, nil
}

func (s *Service) IsValidDepartment(id int64) bool {
	dataDepartment, err := s.repo.GetByID(id)
	if err != nil || dataDepartment == nil {
		return false
	}
	return dataDepartment.IsActive
}
