package commands

import (
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/outbox"
	"fooddelivery/internal/core/ports"
)

// NotificationPlan lists the notifications one order event fans out to.
type NotificationPlan struct {
	Emails []ports.Email
	Web    []ports.WebNotification
}

func (p NotificationPlan) Len() int {
	return len(p.Emails) + len(p.Web)
}

// PlanNotifications decides who hears about an order event. Emails are
// skipped when the customer left no address.
//
//	order.created    web to restaurant
//	order.accepted   web + email to customer, web to drivers for human orders
//	order.assigned   web + email to customer, web to restaurant
//	order.delivered  web + email to customer, web to restaurant with the split
//	order.cancelled  email to customer, web to restaurant
func PlanNotifications(e outbox.OrderEvent) (NotificationPlan, error) {
	var plan NotificationPlan
	short := shortID(e.OrderID)
	data := map[string]string{"orderId": e.OrderID, "event": e.Type}

	toCustomer := func(title, body string) {
		plan.Web = append(plan.Web, ports.WebNotification{
			Target: ports.Target{UserID: e.CustomerID}, Title: title, Body: body, Data: data,
		})
	}
	emailCustomer := func(subject, text string) {
		if e.CustomerEmail == "" {
			return
		}
		plan.Emails = append(plan.Emails, ports.Email{To: e.CustomerEmail, Subject: subject, Text: text})
	}
	toRestaurant := func(title, body string, extra map[string]string) {
		d := copyData(data)
		for k, v := range extra {
			d[k] = v
		}
		plan.Web = append(plan.Web, ports.WebNotification{
			Target: ports.Target{RestaurantID: e.RestaurantID}, Title: title, Body: body, Data: d,
		})
	}

	switch order.EventType(e.Type) {
	case order.EventCreated:
		toRestaurant("New order", fmt.Sprintf("Order %s for %s %s is waiting for acceptance.",
			short, e.Total.StringFixed(kernel.MinorUnitExponent), e.Currency), nil)

	case order.EventAccepted:
		toCustomer("Order accepted", fmt.Sprintf("The restaurant accepted order %s.", short))
		emailCustomer("Your order was accepted", greeting(e)+fmt.Sprintf(
			"the restaurant accepted your order %s and is preparing it.", short))
		if order.TransportMode(e.TransportMode) == order.Human {
			plan.Web = append(plan.Web, ports.WebNotification{
				Target: ports.Target{Role: kernel.RoleDriver},
				Title:  "New order available",
				Body:   fmt.Sprintf("Order %s is ready to be claimed.", short),
				Data:   copyData(data),
			})
		}

	case order.EventAssigned:
		body := fmt.Sprintf("Order %s is on its way.", short)
		if e.MissionID != "" {
			body = fmt.Sprintf("Order %s is on its way by drone, arriving in about %d min.", short, (e.ETASeconds+59)/60)
		} else if e.DriverName != "" {
			body = fmt.Sprintf("Order %s is on its way with %s.", short, e.DriverName)
		}
		toCustomer("Order on its way", body)
		toRestaurant("Order picked up", body, nil)
		emailCustomer("Your order is on its way", greeting(e)+body)

	case order.EventDelivered:
		toCustomer("Order delivered", fmt.Sprintf("Order %s was delivered. Enjoy!", short))
		emailCustomer("Your order was delivered", greeting(e)+fmt.Sprintf(
			"order %s was delivered. Please confirm once you have received it.", short))
		var extra map[string]string
		body := fmt.Sprintf("Order %s was delivered.", short)
		if e.Split != nil {
			extra = map[string]string{
				"restaurantShare": e.Split.Restaurant.StringFixed(kernel.MinorUnitExponent),
				"deliveryShare":   e.Split.Delivery.StringFixed(kernel.MinorUnitExponent),
				"adminShare":      e.Split.Admin.StringFixed(kernel.MinorUnitExponent),
				"currency":        e.Currency,
			}
			body = fmt.Sprintf("Order %s was delivered. Your share is %s %s.",
				short, e.Split.Restaurant.StringFixed(kernel.MinorUnitExponent), e.Currency)
		}
		toRestaurant("Order delivered", body, extra)

	case order.EventCancelled:
		reason := ""
		if e.CancelReason != "" {
			reason = " Reason: " + e.CancelReason
		}
		toRestaurant("Order cancelled", fmt.Sprintf("Order %s was cancelled.%s", short, reason), nil)
		emailCustomer("Your order was cancelled", greeting(e)+fmt.Sprintf("order %s was cancelled.%s", short, reason))

	default:
		return NotificationPlan{}, fmt.Errorf("no notification plan for event type %q", e.Type)
	}

	return plan, nil
}

func greeting(e outbox.OrderEvent) string {
	if e.CustomerName == "" {
		return "Hello, "
	}
	return "Hello " + e.CustomerName + ", "
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func copyData(data map[string]string) map[string]string {
	c := make(map[string]string, len(data))
	for k, v := range data {
		c[k] = v
	}
	return c
}
