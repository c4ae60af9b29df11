package logbook

import (
	"log/slog"

	"github.com/ouroboros-foundation/portal/internal"
	"github.com/ouroboros-foundation/portal/internal/access"
	"github.com/ouroboros-foundation/portal/internal/clearance"
	"github.com/ouroboros-foundation/portal/internal/project"
	"github.com/ouroboros-foundation/portal/internal/redaction"
)

type Repository interface {
	Create(e *Entry) error
	GetByID(id int64) (*Entry, error)
	GetByAuthor(authorID int64, limit, offset int) ([]*Entry, error)
	GetByProject(projectID int64, limit, offset int) ([]*Entry, error)
	IncrementViewCount(id int64) error
}

// ProjectStore resolves the project snapshot for project-bound entries.
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

// CreateEntry writes a logbook entry. Project-bound entries require access to
// the project; free-standing entries only require an approved session.
func (s *Service) CreateEntry(author access.Identity, dto CreateEntryDTO) (*Entry, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if dto.ProjectID != nil {
		proj, err := s.projects.GetByID(*dto.ProjectID)
		if err != nil {
			return nil, internal.ErrProjectNotFound
		}
		if decision := access.Evaluate(proj.Subject(), author); !decision.Allowed {
			s.logger.Warn("logbook entry denied by project access",
				"project_id", *dto.ProjectID,
				"user_id", author.UserID)
			return nil, internal.ErrInsufficientClearance
		}
	}

	e := NewEntry(author.Clearance, author.UserID, dto)
	if err := s.repo.Create(e); err != nil {
		s.logger.Error("failed to create logbook entry", "error", err, "author_id", author.UserID)
		return nil, err
	}

	s.logger.Info("logbook entry created",
		"entry_id", e.ID,
		"author_id", author.UserID,
		"is_redacted", e.IsRedacted)

	return e, nil
}

// GetEntry renders one entry for the requester and counts the view. The view
// counter is a storage side effect; rendering itself stays pure, and a failed
// increment never blocks the read.
func (s *Service) GetEntry(id int64, requester access.Identity) (*RenderedEntry, error) {
	e, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrEntryNotFound
	}

	if e.ProjectID != nil {
		proj, err := s.projects.GetByID(*e.ProjectID)
		if err != nil {
			return nil, internal.ErrProjectNotFound
		}
		if decision := access.Evaluate(proj.Subject(), requester); !decision.Allowed {
			return nil, internal.ErrInsufficientClearance
		}
	}

	if err := s.repo.IncrementViewCount(id); err != nil {
		s.logger.Error("failed to count entry view", "error", err, "entry_id", id)
	}

	return renderEntry(e, requester.Clearance), nil
}

// ListMyEntries returns the requester's own entries, always in full: authors
// see their own text regardless of threshold.
func (s *Service) ListMyEntries(requester access.Identity, limit, offset int) ([]*Entry, error) {
	return s.repo.GetByAuthor(requester.UserID, limit, offset)
}

// ListProjectEntries renders the entries on a project for the requester.
func (s *Service) ListProjectEntries(projectID int64, requester access.Identity, limit, offset int) ([]*RenderedEntry, error) {
	proj, err := s.projects.GetByID(projectID)
	if err != nil {
		return nil, internal.ErrProjectNotFound
	}
	if decision := access.Evaluate(proj.Subject(), requester); !decision.Allowed {
		return nil, internal.ErrInsufficientClearance
	}

	entries, err := s.repo.GetByProject(projectID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list logbook entries", "error", err, "project_id", projectID)
		return nil, err
	}

	rendered := make([]*RenderedEntry, 0, len(entries))
	for _, e := range entries {
		rendered = append(rendered, renderEntry(e, requester.Clearance))
	}
	return rendered, nil
}

func renderEntry(e *Entry, viewer clearance.Level) *RenderedEntry {
	out := redaction.Render(e.Content(), viewer)
	return &RenderedEntry{
		ID:          e.ID,
		ProjectID:   e.ProjectID,
		AuthorID:    e.AuthorID,
		Body:        out.Body,
		Attachments: out.Attachments,
		Status:      string(out.Status),
		CreatedAt:   e.CreatedAt,
	}
}
