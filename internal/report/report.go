package report

import (
	"time"

	"github.com/ouroboros-foundation/portal/internal/clearance"
	reportDatamodel "github.com/ouroboros-foundation/portal/internal/core/datamodel/report"
	"github.com/ouroboros-foundation/portal/internal/redaction"
)

// Report is a research report filed against a project. Reports carry no
// pre-written redacted substitute, so a viewer below the threshold is denied
// outright rather than shown a softer version.
type Report struct {
	ID                 int64           `json:"id"`
	ProjectID          int64           `json:"project_id"`
	AuthorID           int64           `json:"author_id"`
	Title              string          `json:"title"`
	Body               string          `json:"body"`
	MinClearanceToView clearance.Level `json:"min_clearance_to_view"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// NewReport builds a report with the view threshold clamped to the author's
// own clearance: nobody may publish a report they could not read themselves.
func NewReport(projectID int64, author clearance.Level, authorID int64, dto CreateReportDTO) *Report {
	now := time.Now()

	min := clearance.Normalize(dto.MinClearanceToView)
	if min == clearance.LevelNone {
		min = clearance.LevelProvisional
	}
	if min > author {
		min = author
	}

	return &Report{
		ProjectID:          projectID,
		AuthorID:           authorID,
		Title:              dto.Title,
		Body:               dto.Body,
		MinClearanceToView: min,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Content projects the report onto the redaction engine's input shape.
func (r *Report) Content() redaction.Content {
	min := r.MinClearanceToView
	return redaction.Content{
		MinClearanceToView: &min,
		Body:               r.Body,
	}
}

func ToDataModel(r *Report) *reportDatamodel.Report {
	return &reportDatamodel.Report{
		ID:                 r.ID,
		ProjectID:          r.ProjectID,
		AuthorID:           r.AuthorID,
		Title:              r.Title,
		Body:               r.Body,
		MinClearanceToView: int(r.MinClearanceToView),
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func FromDataModel(row *reportDatamodel.Report) *Report {
	return &Report{
		ID:                 row.ID,
		ProjectID:          row.ProjectID,
		AuthorID:           row.AuthorID,
		Title:              row.Title,
		Body:               row.Body,
		MinClearanceToView: clearance.Normalize(row.MinClearanceToView),
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}
