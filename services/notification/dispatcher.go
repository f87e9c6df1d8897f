// Package notification turns order status changes into LINE push messages.
// Delivery is fire-and-forget: it runs after the status transaction has
// committed, and a failed push is logged and dropped, never surfaced to the
// caller or rolled back.
package notification

import (
	"context"
	"fmt"

	"rental-booking/logger"
	"rental-booking/models/rental"
)

// Pusher is the external notifier contract (the LINE Messaging API client).
type Pusher interface {
	Push(ctx context.Context, to, text string) error
}

type Dispatcher struct {
	pusher Pusher
}

func NewDispatcher(pusher Pusher) *Dispatcher {
	return &Dispatcher{pusher: pusher}
}

// StatusChanged sends the templated message for the order's new status, if
// that status has one. The order must carry its preloaded Customer. Returns
// immediately; delivery happens on a background goroutine.
func (d *Dispatcher) StatusChanged(order *rental.RentalOrder, note string) {
	text, ok := MessageFor(order.Status, order.Product.Name, order.RentalRef, note)
	if !ok {
		return
	}
	if order.Customer.LineUserID == "" {
		logger.Warning(fmt.Sprintf("Order %s has no LINE identity, skipping notification", order.RentalRef))
		return
	}

	go d.deliver(order.Customer.LineUserID, text, order.RentalRef)
}

// deliver pushes the message and swallows any failure. A booking must keep
// moving even when LINE is unreachable.
func (d *Dispatcher) deliver(to, text, rentalRef string) {
	if err := d.pusher.Push(context.Background(), to, text); err != nil {
		logger.Error(fmt.Sprintf("Failed to send LINE message for order %s", rentalRef), err)
		return
	}
	logger.Success(fmt.Sprintf("Sent LINE message for order %s", rentalRef))
}
