package orders

import (
	"testing"

	"naturesbasket/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to models.OrderStatus
		want     bool
	}{
		{models.OrderPending, models.OrderConfirmed, true},
		{models.OrderPending, models.OrderCancelled, true},
		{models.OrderConfirmed, models.OrderShipped, true},
		{models.OrderShipped, models.OrderDelivered, true},

		// no skipping ahead
		{models.OrderPending, models.OrderShipped, false},
		{models.OrderPending, models.OrderDelivered, false},
		{models.OrderConfirmed, models.OrderDelivered, false},

		// no going back
		{models.OrderShipped, models.OrderConfirmed, false},
		{models.OrderDelivered, models.OrderPending, false},

		// cancellation only while pending
		{models.OrderConfirmed, models.OrderCancelled, false},
		{models.OrderShipped, models.OrderCancelled, false},
		{models.OrderDelivered, models.OrderCancelled, false},

		// terminal states stay terminal
		{models.OrderCancelled, models.OrderPending, false},
		{models.OrderCancelled, models.OrderConfirmed, false},
		{models.OrderDelivered, models.OrderShipped, false},
	}

	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestTimestampField(t *testing.T) {
	cases := map[models.OrderStatus]string{
		models.OrderConfirmed: "confirmedAt",
		models.OrderShipped:   "shippedAt",
		models.OrderDelivered: "deliveredAt",
		models.OrderCancelled: "cancelledAt",
		models.OrderPending:   "",
	}
	for status, want := range cases {
		if got := TimestampField(status); got != want {
			t.Errorf("TimestampField(%s) = %q, want %q", status, got, want)
		}
	}
}
