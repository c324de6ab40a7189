package notify

import (
	"context"
	"log/slog"
)

// LogSender is a development sink that records notifications in the log
// instead of delivering them anywhere.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, subject, body string, html bool) error {
	slog.InfoContext(ctx, "Notification (log sink)",
		"subject", subject,
		"html", html,
		"body_bytes", len(body))
	return nil
}
