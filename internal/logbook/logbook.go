package logbook

import (
	"strings"
	"time"

	"github.com/ouroboros-foundation/portal/internal/clearance"
	logbookDatamodel "github.com/ouroboros-foundation/portal/internal/core/datamodel/logbook"
	"github.com/ouroboros-foundation/portal/internal/redaction"
)

// Entry is a personnel logbook entry. Unlike reports, entries may carry a
// pre-written redacted substitute shown to viewers below the threshold.
type Entry struct {
	ID                 int64           `json:"id"`
	ProjectID          *int64          `json:"project_id,omitempty"`
	AuthorID           int64           `json:"author_id"`
	EntryText          string          `json:"entry_text"`
	Attachments        []string        `json:"attachments,omitempty"`
	MinClearanceToView clearance.Level `json:"min_clearance_to_view"`
	IsRedacted         bool            `json:"is_redacted"`
	RedactedVersion    string          `json:"redacted_version,omitempty"`
	ViewCount          int64           `json:"view_count"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// NewEntry builds an entry with the view threshold clamped to the author's
// clearance, matching the report rule.
func NewEntry(author clearance.Level, authorID int64, dto CreateEntryDTO) *Entry {
	now := time.Now()

	min := clearance.Normalize(dto.MinClearanceToView)
	if min == clearance.LevelNone {
		min = clearance.LevelProvisional
	}
	if min > author {
		min = author
	}

	return &Entry{
		ProjectID:          dto.ProjectID,
		AuthorID:           authorID,
		EntryText:          dto.EntryText,
		Attachments:        dto.Attachments,
		MinClearanceToView: min,
		IsRedacted:         dto.RedactedVersion != "",
		RedactedVersion:    dto.RedactedVersion,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Content projects the entry onto the redaction engine's input shape.
func (e *Entry) Content() redaction.Content {
	min := e.MinClearanceToView
	return redaction.Content{
		MinClearanceToView: &min,
		IsRedacted:         e.IsRedacted,
		RedactedVersion:    e.RedactedVersion,
		Body:               e.EntryText,
		Attachments:        e.Attachments,
	}
}

// Attachments are stored as newline-separated storage keys in one column.

func joinAttachments(attachments []string) string {
	return strings.Join(attachments, "\n")
}

func splitAttachments(stored string) []string {
	if stored == "" {
		return nil
	}
	return strings.Split(stored, "\n")
}

func ToDataModel(e *Entry) *logbookDatamodel.Entry {
	row := &logbookDatamodel.Entry{
		ID:                 e.ID,
		ProjectID:          e.ProjectID,
		AuthorID:           e.AuthorID,
		EntryText:          e.EntryText,
		Attachments:        joinAttachments(e.Attachments),
		MinClearanceToView: int(e.MinClearanceToView),
		IsRedacted:         e.IsRedacted,
		ViewCount:          e.ViewCount,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
	if e.RedactedVersion != "" {
		redacted := e.RedactedVersion
		row.RedactedVersion = &redacted
	}
	return row
}

func FromDataModel(row *logbookDatamodel.Entry) *Entry {
	e := &Entry{
		ID:                 row.ID,
		ProjectID:          row.ProjectID,
		AuthorID:           row.AuthorID,
		EntryText:          row.EntryText,
		Attachments:        splitAttachments(row.Attachments),
		MinClearanceToView: clearance.Normalize(row.MinClearanceToView),
		IsRedacted:         row.IsRedacted,
		ViewCount:          row.ViewCount,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
	if row.RedactedVersion != nil {
		e.RedactedVersion = *row.RedactedVersion
	}
	return e
}
