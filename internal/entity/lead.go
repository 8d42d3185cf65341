package entity

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

type LeadStatus string

const (
	StatusNew        LeadStatus = "Новая"
	StatusInProgress LeadStatus = "В работе"
	StatusCompleted  LeadStatus = "Завершён"
	StatusDeclined   LeadStatus = "Отказ"
)

// LeadStatuses is the order the status buttons are shown in.
var LeadStatuses = []LeadStatus{StatusNew, StatusInProgress, StatusCompleted, StatusDeclined}

func (s LeadStatus) Valid() bool {
	for _, known := range LeadStatuses {
		if s == known {
			return true
		}
	}
	return false
}

const (
	NoUsername     = "нет username"
	DefaultManager = "—"
	DateLayout     = "02.01.2006 15:04"
)

var ErrEmptyContact = errors.New("contact is required")

// Lead is one captured contact request.
type Lead struct {
	Name      string     `json:"name"`
	Contact   string     `json:"contact"`
	Username  string     `json:"username"`
	UserID    int64      `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	Status    LeadStatus `json:"status"`
	Comment   string     `json:"comment"`
	Manager   string     `json:"manager"`
}

// Factory
func NewLead(contact, username string, userID int64, createdAt time.Time) (*Lead, error) {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return nil, ErrEmptyContact
	}

	if strings.TrimSpace(username) == "" {
		username = NoUsername
	}

	return &Lead{
		Name:      NameFromContact(contact),
		Contact:   contact,
		Username:  username,
		UserID:    userID,
		CreatedAt: createdAt,
		Status:    StatusNew,
		Comment:   "",
		Manager:   DefaultManager,
	}, nil
}

// NameFromContact returns everything before the first comma, untouched.
func NameFromContact(contact string) string {
	name, _, _ := strings.Cut(contact, ",")
	return name
}

// Record lays the lead out in sheet column order.
func (l *Lead) Record() Record {
	return Record{
		l.Name,
		l.Contact,
		l.Username,
		strconv.FormatInt(l.UserID, 10),
		l.CreatedAt.Format(DateLayout),
		string(l.Status),
		l.Comment,
		l.Manager,
	}
}
