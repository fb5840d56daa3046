package models

import (
	"encoding/json"
	"time"
)

type LandState string

const (
	LandPending  LandState = "pending"
	LandApproved LandState = "approved"
	LandRejected LandState = "rejected"
	LandInactive LandState = "inactive"
)

func (s LandState) IsApproved() bool { return s == LandApproved }

type Land struct {
	LandID      string    `json:"landid" bson:"landid"`
	FarmerID    string    `json:"farmerId" bson:"farmerId"`
	Name        string    `json:"name" bson:"name"`
	Location    string    `json:"location" bson:"location"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Area        float64   `json:"area" bson:"area"`
	AreaUnit    string    `json:"areaUnit,omitempty" bson:"areaUnit,omitempty"`
	SoilType    string    `json:"soilType,omitempty" bson:"soilType,omitempty"`
	Photo       string    `json:"photo,omitempty" bson:"photo,omitempty"`
	Thumbnail   string    `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Status      LandState `json:"status" bson:"status"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// isApproved is derived from Status; older clients still expect the flag.
func (l Land) MarshalJSON() ([]byte, error) {
	type alias Land
	return json.Marshal(struct {
		alias
		IsApproved bool `json:"isApproved"`
	}{alias(l), l.Status.IsApproved()})
}
