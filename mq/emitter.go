package mq

import (
	"context"
	"encoding/json"
	"log"

	"tavolo/feed"
	"tavolo/rdx"
)

const orderEventsChannel = "order-events"

// Emit publishes an order event to Redis. Handlers call this after every
// order insert or status change; failures are logged and never surfaced to
// the guest or staff response.
func Emit(ctx context.Context, event feed.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, orderEventsChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish event to Redis: %v", err)
	}
}

// StartOrderEventWorker subscribes to the order events channel and forwards
// each event into the websocket hub, keyed by restaurant. Running the fan-out
// through Redis keeps every app instance's dashboards in sync.
func StartOrderEventWorker(hub *feed.Hub) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, orderEventsChannel)
	ch := sub.Channel()

	log.Println("[OrderEventWorker] Listening for order events...")

	for msg := range ch {
		var event feed.Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[OrderEventWorker] Failed to parse event: %v", err)
			continue
		}
		if event.RestaurantID == "" {
			continue
		}
		hub.Broadcast(event.RestaurantID, []byte(msg.Payload))
	}
}
