package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeProposalApproved = "proposal.approved"
	EventTypeProposalRejected = "proposal.rejected"
	EventTypeClearanceChanged = "clearance.changed"
)

type ProposalApprovedEvent struct {
	BaseEvent
	ProposalID  int64  `json:"proposal_id"`
	ProjectID   int64  `json:"project_id"`
	SubmitterID int64  `json:"submitter_id"`
	ApproverID  int64  `json:"approver_id"`
	Title       string `json:"title"`
}

func NewProposalApprovedEvent(proposalID, projectID, submitterID, approverID int64, title string) *ProposalApprovedEvent {
	return &ProposalApprovedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeProposalApproved,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"proposal_id":  proposalID,
				"project_id":   projectID,
				"submitter_id": submitterID,
				"approver_id":  approverID,
				"title":        title,
			},
		},
		ProposalID:  proposalID,
		ProjectID:   projectID,
		SubmitterID: submitterID,
		ApproverID:  approverID,
		Title:       title,
	}
}

type ProposalRejectedEvent struct {
	BaseEvent
	ProposalID  int64  `json:"proposal_id"`
	SubmitterID int64  `json:"submitter_id"`
	ApproverID  int64  `json:"approver_id"`
	Reason      string `json:"reason"`
}

func NewProposalRejectedEvent(proposalID, submitterID, approverID int64, reason string) *ProposalRejectedEvent {
	return &ProposalRejectedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeProposalRejected,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"proposal_id":  proposalID,
				"submitter_id": submitterID,
				"approver_id":  approverID,
				"reason":       reason,
			},
		},
		ProposalID:  proposalID,
		SubmitterID: submitterID,
		ApproverID:  approverID,
		Reason:      reason,
	}
}

type ClearanceChangedEvent struct {
	BaseEvent
	UserID   int64 `json:"user_id"`
	OldLevel int   `json:"old_level"`
	NewLevel int   `json:"new_level"`
	AdminID  int64 `json:"admin_id"`
}

func NewClearanceChangedEvent(userID int64, oldLevel, newLevel int, adminID int64) *ClearanceChangedEvent {
	return &ClearanceChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeClearanceChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":   userID,
				"old_level": oldLevel,
				"new_level": newLevel,
				"admin_id":  adminID,
			},
		},
		UserID:   userID,
		OldLevel: oldLevel,
		NewLevel: newLevel,
		AdminID:  adminID,
	}
}
