package notifier

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/ports"
)

// LogNotifier only logs notifications. It never fails.
type LogNotifier struct {
	logger *slog.Logger
}

var _ ports.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "log_notifier")}
}

func (n *LogNotifier) SendEmail(ctx context.Context, email ports.Email) error {
	n.logger.InfoContext(ctx, "email notification",
		"to", email.To,
		"subject", email.Subject,
	)
	return nil
}

func (n *LogNotifier) SendWeb(ctx context.Context, notification ports.WebNotification) error {
	n.logger.InfoContext(ctx, "web notification",
		"target", webKey(notification.Target),
		"title", notification.Title,
		"body", notification.Body,
	)
	return nil
}
