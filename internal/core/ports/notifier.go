package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
)

type Email struct {
	To      string
	Subject string
	Text    string
}

// Target addresses a web notification to one user, every user of a role or
// the staff of one restaurant. Exactly one field is set.
type Target struct {
	UserID       string
	Role         kernel.Role
	RestaurantID string
}

type WebNotification struct {
	Target Target
	Title  string
	Body   string
	Data   map[string]string
}

// Notifier hands notifications to the delivery platform. Failures never
// affect order state; the relay retries them.
type Notifier interface {
	SendEmail(ctx context.Context, email Email) error
	SendWeb(ctx context.Context, notification WebNotification) error
}
