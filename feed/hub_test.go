package feed

import (
	"encoding/json"
	"testing"
	"time"

	"tavolo/models"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
		Room: "rest-1",
	}

	hub.Register(client)

	event := Created(&models.Order{
		OrderID:      "o1",
		Number:       12,
		RestaurantID: "rest-1",
		Name:         "Anna",
		Status:       models.StatusNew,
		PayStatus:    models.PaymentPending,
	})
	data, _ := json.Marshal(event)
	hub.Broadcast("rest-1", data)

	select {
	case got := <-client.Send:
		var decoded Event
		if err := json.Unmarshal(got, &decoded); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if decoded.Type != EventOrderCreated {
			t.Fatalf("expected %s, got %s", EventOrderCreated, decoded.Type)
		}
		if decoded.Number != 12 || decoded.Customer != "Anna" {
			t.Fatalf("toast fields wrong: %+v", decoded)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.Unregister(client)
}

func TestHubTenantIsolation(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	clientA := &Client{Send: make(chan []byte, 10), Room: "rest-a"}
	clientB := &Client{Send: make(chan []byte, 10), Room: "rest-b"}
	hub.Register(clientA)
	hub.Register(clientB)

	hub.Broadcast("rest-a", []byte(`{"type":"order_created"}`))

	select {
	case <-clientA.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message on rest-a")
	}

	select {
	case msg := <-clientB.Send:
		t.Fatalf("rest-b must not receive rest-a events, got %s", msg)
	case <-time.After(100 * time.Millisecond):
		// nothing delivered, as required
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	slow := &Client{Send: make(chan []byte, 1), Room: "rest-1"}
	slow.Send <- []byte("backlog") // buffer full: the next broadcast cannot land
	hub.Register(slow)

	hub.Broadcast("rest-1", []byte("dropped"))
	// Broadcast returns once Run dequeues the message, not once it is
	// processed. The Run loop is sequential, so a second Broadcast returning
	// guarantees the first one was fully handled and the slow client dropped.
	hub.Broadcast("rest-1", []byte("sync"))

	// the buffered message drains first, then the closed channel shows the drop
	select {
	case got := <-slow.Send:
		if string(got) != "backlog" {
			t.Fatalf("unexpected first message %q", got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout draining backlog")
	}
	select {
	case _, ok := <-slow.Send:
		if ok {
			t.Fatal("expected closed channel for dropped client")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for channel close")
	}
}

// After Stop the Run loop is gone; late broadcasts and connects must not
// block on its channels.
func TestHubStoppedHubDoesNotBlock(t *testing.T) {
	hub := NewHub()
	hub.Stop()

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		hub.Broadcast("rest-1", []byte("late"))
		if hub.Register(&Client{Send: make(chan []byte, 1), Room: "rest-1"}) {
			t.Error("register on a stopped hub must fail")
		}
		hub.Unregister(&Client{Send: make(chan []byte, 1), Room: "rest-1"})
	}()

	select {
	case <-finished:
	case <-time.After(1 * time.Second):
		t.Fatal("stopped hub blocked the caller")
	}
}
