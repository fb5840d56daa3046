package models

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderItem is a snapshot of a cart line at order time. It is deliberately
// not live-linked to the product, so later price edits do not rewrite
// history.
type OrderItem struct {
	ProductID string  `json:"productId" bson:"productId"`
	FarmerID  string  `json:"farmerId" bson:"farmerId"`
	Name      string  `json:"name" bson:"name"`
	Unit      string  `json:"unit,omitempty" bson:"unit,omitempty"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	UnitPrice float64 `json:"unitPrice" bson:"unitPrice"`
	Total     float64 `json:"total" bson:"total"`
}

type Order struct {
	OrderID       string      `json:"orderid" bson:"orderid"`
	OrderNumber   string      `json:"orderNumber" bson:"orderNumber"`
	UserID        string      `json:"userId" bson:"userId"`
	Items         []OrderItem `json:"items" bson:"items"`
	Subtotal      float64     `json:"subtotal" bson:"subtotal"`
	ShippingCost  float64     `json:"shippingCost" bson:"shippingCost"`
	PlatformFee   float64     `json:"platformFee" bson:"platformFee"`
	Tax           float64     `json:"tax" bson:"tax"`
	Total         float64     `json:"total" bson:"total"`
	Status        OrderStatus `json:"status" bson:"status"`
	Address       string      `json:"address,omitempty" bson:"address,omitempty"`
	PaymentMethod string      `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`
	CreatedAt     time.Time   `json:"createdAt" bson:"createdAt"`
	ConfirmedAt   *time.Time  `json:"confirmedAt,omitempty" bson:"confirmedAt,omitempty"`
	ShippedAt     *time.Time  `json:"shippedAt,omitempty" bson:"shippedAt,omitempty"`
	DeliveredAt   *time.Time  `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	CancelledAt   *time.Time  `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`
}

// HasFarmer reports whether at least one line item belongs to the farmer.
// Line ownership grants whole-order visibility and status control; splitting
// multi-farmer orders is a product decision that has not been taken.
func (o *Order) HasFarmer(farmerID string) bool {
	for _, it := range o.Items {
		if it.FarmerID == farmerID {
			return true
		}
	}
	return false
}
