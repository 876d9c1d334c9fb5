// Package notifier publishes notifications to the delivery platform over
// Kafka or RabbitMQ, or only logs them for local runs.
package notifier

import (
	"encoding/json"

	"fooddelivery/internal/core/ports"
)

const (
	KindEmail = "email"
	KindWeb   = "web"
)

// EmailMessage and WebMessage are the wire format read by the notification
// service.
type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

type WebTarget struct {
	UserID       string `json:"userId,omitempty"`
	Role         string `json:"role,omitempty"`
	RestaurantID string `json:"restaurantId,omitempty"`
}

type WebMessage struct {
	Target WebTarget         `json:"target"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}

func encodeEmail(email ports.Email) ([]byte, error) {
	return json.Marshal(EmailMessage{To: email.To, Subject: email.Subject, Text: email.Text})
}

func encodeWeb(n ports.WebNotification) ([]byte, error) {
	return json.Marshal(WebMessage{
		Target: WebTarget{
			UserID:       n.Target.UserID,
			Role:         string(n.Target.Role),
			RestaurantID: n.Target.RestaurantID,
		},
		Title: n.Title,
		Body:  n.Body,
		Data:  n.Data,
	})
}

// webKey keeps notifications for one recipient in order on a partition.
func webKey(t ports.Target) string {
	switch {
	case t.UserID != "":
		return "user:" + t.UserID
	case t.RestaurantID != "":
		return "restaurant:" + t.RestaurantID
	default:
		return "role:" + string(t.Role)
	}
}
