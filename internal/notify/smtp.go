// Package notify provides delivery sinks implementing the alert engine's
// Sender port.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// SMTPSender delivers notifications as e-mail over SMTP with STARTTLS.
type SMTPSender struct {
	host     string
	port     int
	from     string
	password string
	to       string
}

func NewSMTPSender(host string, port int, from, password, to string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		from:     from,
		password: password,
		to:       to,
	}
}

// Send composes and submits one message. The error is the caller's signal
// that nothing was delivered; the alert engine leaves its dedup key
// unmarked in that case.
func (s *SMTPSender) Send(ctx context.Context, subject, body string, html bool) error {
	contentType := "text/plain; charset=\"utf-8\""
	if html {
		contentType = "text/html; charset=\"utf-8\""
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", s.to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: %s\r\n", contentType)
	fmt.Fprintf(&msg, "\r\n%s\r\n", body)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.from, s.password, s.host)

	if err := smtp.SendMail(addr, auth, s.from, []string{s.to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail via %s: %w", addr, err)
	}

	slog.InfoContext(ctx, "Email sent", "to", s.to, "subject", subject)
	return nil
}
