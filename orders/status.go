package orders

import "naturesbasket/models"

// The lifecycle is forward-only: pending → confirmed → shipped → delivered,
// with cancellation as the single exit while still pending.
var validNext = map[models.OrderStatus]map[models.OrderStatus]bool{
	models.OrderPending:   {models.OrderConfirmed: true, models.OrderCancelled: true},
	models.OrderConfirmed: {models.OrderShipped: true},
	models.OrderShipped:   {models.OrderDelivered: true},
	models.OrderDelivered: {},
	models.OrderCancelled: {},
}

func CanTransition(from, to models.OrderStatus) bool {
	return validNext[from][to]
}

// TimestampField maps a target status to the lifecycle timestamp it stamps
// on first entry.
func TimestampField(to models.OrderStatus) string {
	switch to {
	case models.OrderConfirmed:
		return "confirmedAt"
	case models.OrderShipped:
		return "shippedAt"
	case models.OrderDelivered:
		return "deliveredAt"
	case models.OrderCancelled:
		return "cancelledAt"
	}
	return ""
}
