package logbook

import (
	"time"

	"github.com/ouroboros-foundation/portal/internal/core/common/validation"
)

type CreateEntryDTO struct {
	ProjectID          *int64   `json:"project_id,omitempty"`
	EntryText          string   `json:"entry_text"`
	Attachments        []string `json:"attachments,omitempty"`
	MinClearanceToView int      `json:"min_clearance_to_view"`
	RedactedVersion    string   `json:"redacted_version,omitempty"`
}

func (d CreateEntryDTO) Validate() error {
	if err := validation.ValidateBody(d.EntryText); err != nil {
		return err
	}
	return nil
}

// RenderedEntry is the read-path response. Status tells the viewer whether
// they got the full text, the redacted substitute, or the denial sentinel;
// attachments are only present on full renders.
type RenderedEntry struct {
	ID          int64     `json:"id"`
	ProjectID   *int64    `json:"project_id,omitempty"`
	AuthorID    int64     `json:"author_id"`
	Body        string    `json:"body"`
	Attachments []string  `json:"attachments,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type EntryListResponse struct {
	Entries []*RenderedEntry `json:"entries"`
}
