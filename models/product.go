package models

import (
	"encoding/json"
	"time"
)

type ProductState string

const (
	ProductPending  ProductState = "pending"
	ProductActive   ProductState = "active"
	ProductRejected ProductState = "rejected"
	ProductInactive ProductState = "inactive"
)

func (s ProductState) IsApproved() bool { return s == ProductActive }

type Review struct {
	ReviewID  string    `json:"reviewid" bson:"reviewid"`
	UserID    string    `json:"userid" bson:"userid"`
	Name      string    `json:"name" bson:"name"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type Product struct {
	ProductID   string       `json:"productid" bson:"productid"`
	FarmerID    string       `json:"farmerId" bson:"farmerId"`
	LandID      string       `json:"landid" bson:"landid"`
	Name        string       `json:"name" bson:"name"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Category    string       `json:"category,omitempty" bson:"category,omitempty"`
	Unit        string       `json:"unit,omitempty" bson:"unit,omitempty"`
	Price       float64      `json:"price" bson:"price"`
	Stock       int          `json:"stock" bson:"stock"`
	Sales       int          `json:"sales" bson:"sales"`
	Photo       string       `json:"photo,omitempty" bson:"photo,omitempty"`
	Thumbnail   string       `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Status      ProductState `json:"status" bson:"status"`
	Reviews     []Review     `json:"reviews,omitempty" bson:"reviews,omitempty"`
	AvgRating   float64      `json:"avgRating" bson:"avgRating"`
	RatingCount int          `json:"ratingCount" bson:"ratingCount"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt" bson:"updatedAt"`
}

func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	return json.Marshal(struct {
		alias
		IsApproved bool `json:"isApproved"`
	}{alias(p), p.Status.IsApproved()})
}
