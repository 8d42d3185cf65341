package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/alboomx-bot/internal/entity"
)

//go:embed templates/lead_event.txt
var templates embed.FS

var leadEventTmpl = template.Must(template.ParseFS(templates, "templates/lead_event.txt"))

func NewEmailSender(host string, port int, user, password, from, to string) *EmailSender {
	return &EmailSender{
		Dialer: gomail.NewDialer(host, port, user, password),
		From:   from,
		To:     to,
	}
}

// SendLeadEvent mails one event to the admin address.
func (s *EmailSender) SendLeadEvent(event entity.LeadEvent) error {
	m, err := s.buildMessage(event)
	if err != nil {
		return err
	}

	if err := s.Dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send lead email: %w", err)
	}
	return nil
}

// PublishLeadEvent lets the sender stand in for the queue when no broker is configured.
func (s *EmailSender) PublishLeadEvent(_ context.Context, event entity.LeadEvent) error {
	return s.SendLeadEvent(event)
}

func (s *EmailSender) buildMessage(event entity.LeadEvent) (*gomail.Message, error) {
	var body bytes.Buffer
	if err := leadEventTmpl.Execute(&body, event); err != nil {
		return nil, fmt.Errorf("render lead email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", subject(event))
	m.SetBody("text/plain", body.String())
	return m, nil
}

func subject(event entity.LeadEvent) string {
	switch event.Type {
	case entity.LeadCreated:
		return fmt.Sprintf("📬 Новая заявка: %s", event.Name)
	case entity.LeadStatusChanged:
		if event.UserID == "" {
			return fmt.Sprintf("Статус лида в строке %d: %s", event.Row, event.Status)
		}
		return fmt.Sprintf("Статус лида %s: %s", event.UserID, event.Status)
	default:
		return string(event.Type)
	}
}
