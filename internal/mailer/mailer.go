// Package mailer delivers contact form submissions over SMTP.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/inkwell-sites/inkwell/internal/config"
	"github.com/inkwell-sites/inkwell/internal/errors"
)

// Message is one contact form submission.
type Message struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

// Sender delivers contact messages. The HTTP layer depends on this interface
// so tests can substitute a fake.
type Sender interface {
	Send(msg Message) error
}

// SMTPSender sends over authenticated SMTP with STARTTLS.
type SMTPSender struct {
	cfg config.MailConfig
}

func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send delivers the message to the configured recipient. The visitor's
// address goes into Reply-To; the envelope sender stays the configured
// account so SPF checks pass.
func (s *SMTPSender) Send(msg Message) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	payload := buildPayload(s.cfg.From, s.cfg.To, msg)
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{s.cfg.To}, payload); err != nil {
		return errors.MailDeliveryFailed(err)
	}
	return nil
}

func buildPayload(from, to string, msg Message) []byte {
	subject := msg.Subject
	if subject == "" {
		subject = "Contact form submission"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	if msg.Email != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.Email)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Name: %s\r\n", msg.Name)
	fmt.Fprintf(&b, "Email: %s\r\n", msg.Email)
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
