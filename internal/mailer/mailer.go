// Package mailer defines the narrow sending capability the campaign handler
// consumes. The concrete provider stays behind the one-method interface so the
// rest of the service never assumes how mail actually leaves the building.
package mailer

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

type Message struct {
	To      []string
	Subject string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender delivers through a plain SMTP relay.
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("no recipients")
	}

	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}

	var body strings.Builder
	body.WriteString("From: " + s.From + "\r\n")
	body.WriteString("To: " + strings.Join(msg.To, ", ") + "\r\n")
	body.WriteString("Subject: " + msg.Subject + "\r\n")
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	body.WriteString("\r\n")
	body.WriteString(msg.HTML)

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	return smtp.SendMail(addr, auth, s.From, msg.To, []byte(body.String()))
}

// LogSender is the dev fallback used when no SMTP relay is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, msg Message) error {
	log.Printf("[MAILER] [INFO] campaign %q would reach %d recipients", msg.Subject, len(msg.To))
	return nil
}
