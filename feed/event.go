package feed

import "tavolo/models"

const (
	EventOrderCreated = "order_created"
	EventOrderUpdated = "order_updated"
)

// Event is the payload pushed to dashboards. It carries the changed order so
// clients can merge it into their list without a refetch; order_created events
// additionally drive the "new order" toast with Number and Customer.
type Event struct {
	Type         string               `json:"type"`
	RestaurantID string               `json:"restaurantId"`
	OrderID      string               `json:"orderId"`
	Number       int64                `json:"number"`
	Customer     string               `json:"customer,omitempty"`
	Status       models.OrderStatus   `json:"status"`
	PayStatus    models.PaymentStatus `json:"payStatus"`
}

// Created builds an order_created event from a freshly placed order.
func Created(o *models.Order) Event {
	return Event{
		Type:         EventOrderCreated,
		RestaurantID: o.RestaurantID,
		OrderID:      o.OrderID,
		Number:       o.Number,
		Customer:     o.Name,
		Status:       o.Status,
		PayStatus:    o.PayStatus,
	}
}

// Updated builds an order_updated event after a status or payment change.
func Updated(o *models.Order) Event {
	return Event{
		Type:         EventOrderUpdated,
		RestaurantID: o.RestaurantID,
		OrderID:      o.OrderID,
		Number:       o.Number,
		Status:       o.Status,
		PayStatus:    o.PayStatus,
	}
}
