package report

import (
	"log/slog"

	"github.com/ouroboros-foundation/portal/internal"
	"github.com/ouroboros-foundation/portal/internal/access"
	"github.com/ouroboros-foundation/portal/internal/clearance"
	"github.com/ouroboros-foundation/portal/internal/project"
	"github.com/ouroboros-foundation/portal/internal/redaction"
)

type Repository interface {
	Create(r *Report) error
	GetByID(id int64) (*Report, error)
	GetByProject(projectID int64, limit, offset int) ([]*Report, error)
}

// ProjectStore is the slice of the project repository the report service
// needs: a project plus its rule snapshot for the evaluator.
type ProjectStore interface {
	GetByID(id int64) (*project.Project, error)
}

type Service struct {
	repo     Repository
	projects ProjectStore
	logger   *slog.Logger
}

func NewService(repo Repository, projects ProjectStore, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		projects: projects,
		logger:   logger,
	}
}

// CreateReport files a report against a project. The author must hold the
// submit_reports capability and pass the project's access evaluation; the
// view threshold is clamped to the author's own clearance.
func (s *Service) CreateReport(projectID int64, author access.Identity, dto CreateReportDTO) (*Report, error) {
	if !author.Clearance.HasCapability(clearance.CapabilitySubmitReports) {
		s.logger.Warn("report submission denied",
			"project_id", projectID,
			"user_id", author.UserID,
			"user_clearance", author.Clearance)
		return nil, internal.ErrInsufficientClearance
	}

	proj, err := s.projects.GetByID(projectID)
	if err != nil {
		return nil, internal.ErrProjectNotFound
	}
	if decision := access.Evaluate(proj.Subject(), author); !decision.Allowed {
		s.logger.Warn("report submission denied by project access",
			"project_id", projectID,
			"user_id", author.UserID)
		return nil, internal.ErrInsufficientClearance
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	r := NewReport(projectID, author.Clearance, author.UserID, dto)
	if err := s.repo.Create(r); err != nil {
		s.logger.Error("failed to create report", "error", err, "project_id", projectID)
		return nil, err
	}

	s.logger.Info("report filed",
		"report_id", r.ID,
		"project_id", projectID,
		"author_id", author.UserID,
		"min_clearance_to_view", r.MinClearanceToView)

	return r, nil
}

// GetReport renders a single report for the requester. Project access is
// checked first; past that gate the redaction engine decides between the
// full body and the denial sentinel.
func (s *Service) GetReport(id int64, requester access.Identity) (*RenderedReport, error) {
	r, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrReportNotFound
	}

	proj, err := s.projects.GetByID(r.ProjectID)
	if err != nil {
		return nil, internal.ErrProjectNotFound
	}
	if decision := access.Evaluate(proj.Subject(), requester); !decision.Allowed {
		s.logger.Warn("report access denied by project access",
			"report_id", id,
			"user_id", requester.UserID)
		return nil, internal.ErrInsufficientClearance
	}

	return renderReport(r, requester.Clearance), nil
}

// ListProjectReports renders every report on a project the requester may
// reach. Below-threshold reports appear in denied form rather than being
// silently dropped, so listings stay stable across clearance levels.
func (s *Service) ListProjectReports(projectID int64, requester access.Identity, limit, offset int) ([]*RenderedReport, error) {
	proj, err := s.projects.GetByID(projectID)
	if err != nil {
		return nil, internal.ErrProjectNotFound
	}
	if decision := access.Evaluate(proj.Subject(), requester); !decision.Allowed {
		return nil, internal.ErrInsufficientClearance
	}

	reports, err := s.repo.GetByProject(projectID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list reports", "error", err, "project_id", projectID)
		return nil, err
	}

	rendered := make([]*RenderedReport, 0, len(reports))
	for _, r := range reports {
		rendered = append(rendered, renderReport(r, requester.Clearance))
	}
	return rendered, nil
}

func renderReport(r *Report, viewer clearance.Level) *RenderedReport {
	out := redaction.Render(r.Content(), viewer)
	return &RenderedReport{
		ID:        r.ID,
		ProjectID: r.ProjectID,
		AuthorID:  r.AuthorID,
		Title:     r.Title,
		Body:      out.Body,
		Status:    string(out.Status),
		CreatedAt: r.CreatedAt,
	}
}
