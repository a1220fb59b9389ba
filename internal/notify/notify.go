// Package notify tells the site operator about new contact messages.
package notify

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"agency-site/internal/domain/contact"

	"github.com/rs/zerolog/log"
)

type Notifier interface {
	NotifyContact(ctx context.Context, m contact.Message) error
}

// LogNotifier is used when no SMTP server is configured.
type LogNotifier struct{}

func (LogNotifier) NotifyContact(_ context.Context, m contact.Message) error {
	log.Info().
		Uint("contact_id", m.ID).
		Str("from", m.Email).
		Msg("New contact message")
	return nil
}

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
	To       string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type SMTPNotifier struct {
	cfg  SMTPConfig
	send sendFunc
}

// NewSMTPNotifier fills From and User from each other when one is unset.
func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	if cfg.User == "" {
		cfg.User = cfg.From
	}
	return &SMTPNotifier{cfg: cfg, send: smtp.SendMail}
}

func (n *SMTPNotifier) NotifyContact(ctx context.Context, m contact.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.cfg.From == "" {
		return errors.New("smtp: no sender configured (SMTP_FROM or SMTP_USER)")
	}

	var auth smtp.Auth
	if n.cfg.Password != "" {
		auth = smtp.PlainAuth("", n.cfg.User, n.cfg.Password, n.cfg.Host)
	}

	addr := n.cfg.Host + ":" + n.cfg.Port
	if err := n.send(addr, auth, n.cfg.From, []string{n.cfg.To}, n.message(m)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", addr, err)
	}
	return nil
}

func (n *SMTPNotifier) message(m contact.Message) []byte {
	subject := "New contact message from " + headerSafe(m.Name)
	body := fmt.Sprintf("Name: %s\nEmail: %s\n\n%s", m.Name, m.Email, m.Message)

	return []byte("Subject: " + subject + "\r\n" +
		"From: " + n.cfg.From + "\r\n" +
		"To: " + n.cfg.To + "\r\n" +
		"Reply-To: " + headerSafe(m.Email) + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")
}

// headerSafe strips line breaks so visitor input cannot add mail headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
