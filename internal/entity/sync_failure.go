package entity

import (
	"time"

	"github.com/google/uuid"
)

// SyncFailure is a lead that reached the local file but not the sheet.
type SyncFailure struct {
	ID         string     `json:"id"`
	UserID     int64      `json:"user_id"`
	Record     Record     `json:"record"`
	Error      string     `json:"error"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

func NewSyncFailure(lead *Lead, cause error, at time.Time) *SyncFailure {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return &SyncFailure{
		ID:        uuid.New().String(),
		UserID:    lead.UserID,
		Record:    lead.Record(),
		Error:     msg,
		CreatedAt: at,
	}
}
