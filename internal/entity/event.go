package entity

import (
	"time"

	"github.com/google/uuid"
)

type LeadEventType string

const (
	LeadCreated       LeadEventType = "lead.created"
	LeadStatusChanged LeadEventType = "lead.status_changed"
)

// LeadEvent travels over the event bus and into the notification e-mail.
type LeadEvent struct {
	ID         string        `json:"id"`
	Type       LeadEventType `json:"type"`
	OccurredAt time.Time     `json:"occurred_at"`

	UserID   string     `json:"user_id"`
	Name     string     `json:"name,omitempty"`
	Contact  string     `json:"contact,omitempty"`
	Username string     `json:"username,omitempty"`
	Status   LeadStatus `json:"status"`
	Manager  string     `json:"manager,omitempty"`
	Row      int        `json:"row,omitempty"` // only for status changes
}

func NewLeadCreatedEvent(lead *Lead, at time.Time) LeadEvent {
	rec := lead.Record()
	return LeadEvent{
		ID:         uuid.New().String(),
		Type:       LeadCreated,
		OccurredAt: at,
		UserID:     rec.UserID(),
		Name:       lead.Name,
		Contact:    lead.Contact,
		Username:   lead.Username,
		Status:     lead.Status,
		Manager:    lead.Manager,
	}
}

func NewLeadStatusChangedEvent(row int, userID string, status LeadStatus, manager string, at time.Time) LeadEvent {
	return LeadEvent{
		ID:         uuid.New().String(),
		Type:       LeadStatusChanged,
		OccurredAt: at,
		UserID:     userID,
		Status:     status,
		Manager:    manager,
		Row:        row,
	}
}
