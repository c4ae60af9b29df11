package report

import (
	"time"

	"github.com/ouroboros-foundation/portal/internal/core/common/validation"
)

type CreateReportDTO struct {
	Title              string `json:"title"`
	Body               string `json:"body"`
	MinClearanceToView int    `json:"min_clearance_to_view"`
}

func (d CreateReportDTO) Validate() error {
	if err := validation.ValidateTitle(d.Title); err != nil {
		return err
	}
	if err := validation.ValidateBody(d.Body); err != nil {
		return err
	}
	return nil
}

// RenderedReport is the read-path response. Body is the denial sentinel when
// the viewer's clearance falls below the report's threshold.
type RenderedReport struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	AuthorID  int64     `json:"author_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ReportListResponse struct {
	Reports []*RenderedReport `json:"reports"`
}
