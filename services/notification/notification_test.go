package notification

import (
	"context"
	"errors"
	"sync"
	"testing"

	"rental-booking/models/customer"
	"rental-booking/models/product"
	"rental-booking/models/rental"

	"github.com/stretchr/testify/assert"
)

func TestMessageFor(t *testing.T) {
	t.Run("Approved", func(t *testing.T) {
		text, ok := MessageFor(rental.StatusApproved, "Canon EOS R6", "ORD-20250401-A1B2C3", "")
		assert.True(t, ok)
		assert.Contains(t, text, "approved")
		assert.Contains(t, text, "Canon EOS R6")
		assert.Contains(t, text, "ORD-20250401-A1B2C3")
	})

	t.Run("RejectedWithNote", func(t *testing.T) {
		text, ok := MessageFor(rental.StatusRejected, "Canon EOS R6", "ORD-20250401-A1B2C3", "slip unreadable")
		assert.True(t, ok)
		assert.Contains(t, text, "rejected")
		assert.Contains(t, text, "slip unreadable")
	})

	t.Run("RejectedWithoutNoteUsesFallback", func(t *testing.T) {
		text, ok := MessageFor(rental.StatusRejected, "Canon EOS R6", "ORD-20250401-A1B2C3", "")
		assert.True(t, ok)
		assert.Contains(t, text, "Please contact the shop for details.")
	})

	t.Run("WaitingDelivery", func(t *testing.T) {
		text, ok := MessageFor(rental.StatusWaitingDelivery, "Canon EOS R6", "ORD-20250401-A1B2C3", "")
		assert.True(t, ok)
		assert.Contains(t, text, "ORD-20250401-A1B2C3")
	})

	t.Run("Returned", func(t *testing.T) {
		_, ok := MessageFor(rental.StatusReturned, "Canon EOS R6", "ORD-20250401-A1B2C3", "")
		assert.True(t, ok)
	})

	t.Run("SilentStatuses", func(t *testing.T) {
		for _, status := range []rental.Status{
			rental.StatusPendingPayment,
			rental.StatusWaitingConfirmation,
			rental.StatusInUse,
			rental.StatusCancelled,
		} {
			_, ok := MessageFor(status, "Canon EOS R6", "ORD-20250401-A1B2C3", "")
			assert.False(t, ok, "expected no message for %s", status)
		}
	})
}

type recordingPusher struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (p *recordingPusher) Push(ctx context.Context, to, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, to)
	return p.err
}

func (p *recordingPusher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func TestDispatcher_StatusChanged(t *testing.T) {
	order := func(status rental.Status, lineUserID string) *rental.RentalOrder {
		return &rental.RentalOrder{
			RentalRef: "ORD-20250401-A1B2C3",
			Status:    status,
			Customer:  customer.Customer{LineUserID: lineUserID},
			Product:   product.Product{Name: "Canon EOS R6"},
		}
	}

	t.Run("SilentStatusSendsNothing", func(t *testing.T) {
		pusher := &recordingPusher{}
		d := NewDispatcher(pusher)

		d.StatusChanged(order(rental.StatusWaitingConfirmation, "U123"), "")
		assert.Equal(t, 0, pusher.count())
	})

	t.Run("MissingLineIdentitySkips", func(t *testing.T) {
		pusher := &recordingPusher{}
		d := NewDispatcher(pusher)

		d.StatusChanged(order(rental.StatusApproved, ""), "")
		assert.Equal(t, 0, pusher.count())
	})

	t.Run("DeliverPushesToCustomer", func(t *testing.T) {
		pusher := &recordingPusher{}
		d := NewDispatcher(pusher)

		d.deliver("U123", "hello", "ORD-20250401-A1B2C3")
		assert.Equal(t, 1, pusher.count())
		assert.Equal(t, "U123", pusher.calls[0])
	})

	t.Run("DeliverSwallowsPushFailure", func(t *testing.T) {
		pusher := &recordingPusher{err: errors.New("LINE API returned non-OK status: 429")}
		d := NewDispatcher(pusher)

		// Must not panic or propagate; the failure is logged and dropped.
		d.deliver("U123", "hello", "ORD-20250401-A1B2C3")
		assert.Equal(t, 1, pusher.count())
	})
}
