package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// SMTPMailer sends email through an SMTP relay.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string

	// dial is replaced in tests.
	dial func(m *gomail.Message) error
}

// NewSMTPMailer returns a mailer that dials host:port for every message.
func NewSMTPMailer(host string, port int, username, password string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, Username: username, Password: password}
}

// Send delivers msg as multipart/alternative and returns the generated
// Message-ID. gomail has no context support, so the send runs in a goroutine
// and ctx only bounds how long the caller waits.
func (s *SMTPMailer) Send(ctx context.Context, msg Message) (string, error) {
	id := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.Host)

	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", id)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetBody("text/plain", msg.Text)
	m.AddAlternative("text/html", msg.HTML)

	dial := s.dial
	if dial == nil {
		d := gomail.NewDialer(s.Host, s.Port, s.Username, s.Password)
		dial = func(m *gomail.Message) error { return d.DialAndSend(m) }
	}

	done := make(chan error, 1)
	go func() { done <- dial(m) }()

	select {
	case err := <-done:
		if err != nil {
			return "", fmt.Errorf("smtp send: %w", err)
		}
		return id, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
