package models

import "time"

// CartLine is one (product, quantity) tuple with a price snapshot taken the
// last time the line was touched.
type CartLine struct {
	ProductID string    `json:"productId" bson:"productId"`
	FarmerID  string    `json:"farmerId" bson:"farmerId"`
	Name      string    `json:"name" bson:"name"`
	Unit      string    `json:"unit,omitempty" bson:"unit,omitempty"`
	Quantity  int       `json:"quantity" bson:"quantity"`
	Price     float64   `json:"price" bson:"price"`
	AddedAt   time.Time `json:"addedAt" bson:"addedAt"`
}

// Cart is created lazily, one per customer, and emptied rather than deleted.
type Cart struct {
	UserID    string     `json:"userId" bson:"userId"`
	Items     []CartLine `json:"items" bson:"items"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}
