package models

import "time"

// Index represents an entity lifecycle message published to Redis.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id"`
	ItemType   string `json:"item_type"`
}

// ActivityItem is one row of the admin activity feed, assembled at read time
// from the land, product and order collections. There is no stored event log.
type ActivityItem struct {
	Type      string    `json:"type"`
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ActorID   string    `json:"actorId"`
	ActorName string    `json:"actorName,omitempty"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
