package mail

import "gopkg.in/gomail.v2"

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	Dialer Dialer
	From   string
	To     string
}
