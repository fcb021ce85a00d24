package services

import (
	"fmt"

	"yumexpress/internal/core/domain/model/kernel"
	"yumexpress/internal/core/domain/model/order"
)

// RoutedNotification names one recipient of a status change message.
// A notification either targets a single recipient by ID or is a broadcast
// to every available driver (Broadcast set, RecipientID nil).
type RoutedNotification struct {
	Role        order.ActorRole
	RecipientID *kernel.UUID
	Broadcast   bool
	Title       string
	Body        string
}

// NotificationRouter is a domain service that decides who is told what when
// an order changes status. It turns a single transition event into the list
// of notifications to deliver.
//
// Routing rules:
//   - The customer and the vendor are notified on every transition
//   - When an order becomes ready, every available driver gets a broadcast
//     inviting them to claim it
//   - When an order is picked up, the claiming driver gets a confirmation
//
// The router is pure: it performs no I/O and holds no state, which keeps
// the routing table trivially testable.
type NotificationRouter struct{}

// NewNotificationRouter creates a new NotificationRouter instance.
func NewNotificationRouter() NotificationRouter {
	return NotificationRouter{}
}

// Route maps a transition event to its recipients. Unknown target statuses
// produce no notifications rather than an error; the transition itself was
// already validated by the aggregate.
func (NotificationRouter) Route(event order.TransitionEvent) []RoutedNotification {
	title, customerBody, vendorBody := messagesFor(event)
	if title == "" {
		return nil
	}

	customerID := event.CustomerID
	vendorID := event.VendorID
	routed := []RoutedNotification{
		{Role: order.RoleCustomer, RecipientID: &customerID, Title: title, Body: customerBody},
		{Role: order.RoleVendor, RecipientID: &vendorID, Title: title, Body: vendorBody},
	}

	switch event.To {
	case order.Ready:
		routed = append(routed, RoutedNotification{
			Role:      order.RoleDriver,
			Broadcast: true,
			Title:     title,
			Body:      fmt.Sprintf("Order #%s is ready for pickup.", event.OrderNumber),
		})
	case order.PickedUp:
		if event.DriverID != nil {
			driverID := *event.DriverID
			routed = append(routed, RoutedNotification{
				Role:        order.RoleDriver,
				RecipientID: &driverID,
				Title:       title,
				Body:        fmt.Sprintf("You claimed order #%s. Head to the vendor for pickup.", event.OrderNumber),
			})
		}
	default:
	}

	return routed
}

// messagesFor returns the title and the customer and vendor bodies for a
// transition. An empty title means the target status has no messages.
func messagesFor(event order.TransitionEvent) (title, customerBody, vendorBody string) {
	number := event.OrderNumber

	switch event.To {
	case order.Confirmed:
		return "Order Confirmed",
			fmt.Sprintf("Your order #%s has been confirmed by the restaurant.", number),
			fmt.Sprintf("Order #%s confirmed.", number)
	case order.Preparing:
		return "Order Being Prepared",
			fmt.Sprintf("Your order #%s is being prepared.", number),
			fmt.Sprintf("Order #%s preparation started.", number)
	case order.Ready:
		return "Order Ready",
			fmt.Sprintf("Your order #%s is ready and waiting for a driver.", number),
			fmt.Sprintf("Order #%s is ready for pickup.", number)
	case order.PickedUp:
		return "Order Picked Up",
			fmt.Sprintf("Your order #%s has been picked up by a driver.", number),
			fmt.Sprintf("Order #%s was picked up.", number)
	case order.InTransit:
		return "Order On The Way",
			fmt.Sprintf("Your order #%s is on the way.", number),
			fmt.Sprintf("Order #%s is in transit.", number)
	case order.Delivered:
		return "Order Delivered",
			fmt.Sprintf("Your order #%s has been delivered. Enjoy your meal!", number),
			fmt.Sprintf("Order #%s was delivered.", number)
	case order.Cancelled:
		return "Order Cancelled",
			fmt.Sprintf("Your order #%s has been cancelled.", number),
			fmt.Sprintf("Order #%s was cancelled.", number)
	default:
		return "", "", ""
	}
}
