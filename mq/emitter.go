package mq

import (
	"context"
	"encoding/json"
	"log"

	"naturesbasket/models"
	"naturesbasket/rdx"
)

const eventsChannel = "basket-events"

// Emit publishes an entity lifecycle event to Redis. Fire-and-forget: a
// failed publish is logged, never surfaced to the request.
func Emit(ctx context.Context, eventName string, content models.Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] failed to marshal %s event: %v", eventName, err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), eventsChannel, data).Err(); err != nil {
		log.Printf("[Emit] failed to publish %s event: %v", eventName, err)
	}
}
