// Package mailer sends transactional mail over SMTP. Mail is treated as a
// best-effort external collaborator: no retries, no queueing.
package mailer

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/smtp"
	"strings"

	"rickbags/internal/config"
)

type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// New returns an SMTP mailer, or a logging no-op when no mail server is
// configured.
func New(cfg config.MailConfig, logger *log.Logger) Mailer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if cfg.Host == "" {
		return &noopMailer{logger: logger}
	}
	return &smtpMailer{cfg: cfg, logger: logger}
}

type smtpMailer struct {
	cfg    config.MailConfig
	logger *log.Logger
}

func (m *smtpMailer) Send(_ context.Context, to []string, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.Sender,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(addr, auth, m.cfg.Sender, to, []byte(msg)); err != nil {
		m.logger.Printf("mailer: send to=%v subject=%q error=%v", to, subject, err)
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

type noopMailer struct {
	logger *log.Logger
}

func (m *noopMailer) Send(_ context.Context, to []string, subject, _ string) error {
	m.logger.Printf("mailer disabled: dropping mail to=%v subject=%q", to, subject)
	return nil
}
