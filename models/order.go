package models

import "time"

// Order status moves forward through a fixed chain; Cancelled is terminal and
// reachable from any non-terminal status. See orders.NextStatus.
type OrderStatus string

const (
	StatusNew       OrderStatus = "new"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

const (
	FulfillmentPickup   = "pickup"
	FulfillmentDelivery = "delivery"
)

const (
	PayMethodCash  = "cash"
	PayMethodCard  = "card"
	PayMethodIdeal = "ideal"
)

// Order is created once at checkout. Subtotal, DeliveryFee and Total are fixed
// at that instant and never recomputed; all amounts are euro cents.
type Order struct {
	OrderID      string        `json:"orderId" bson:"orderid"`
	Number       int64         `json:"number" bson:"number"` // per-restaurant, monotonic, human-facing
	RestaurantID string        `json:"restaurantId" bson:"restaurantid"`
	Name         string        `json:"name" bson:"name"`
	Phone        string        `json:"phone" bson:"phone"`
	Email        string        `json:"email,omitempty" bson:"email,omitempty"`
	Fulfillment  string        `json:"fulfillment" bson:"fulfillment"` // pickup | delivery
	PayMethod    string        `json:"payMethod" bson:"paymethod"`     // cash | card | ideal
	Address      string        `json:"address,omitempty" bson:"address,omitempty"`
	PostalCode   string        `json:"postalCode,omitempty" bson:"postalcode,omitempty"`
	City         string        `json:"city,omitempty" bson:"city,omitempty"`
	Subtotal     int64         `json:"subtotal" bson:"subtotal"`
	DeliveryFee  int64         `json:"deliveryFee" bson:"deliveryfee"`
	Total        int64         `json:"total" bson:"total"`
	Notes        string        `json:"notes,omitempty" bson:"notes,omitempty"`
	EstMinutes   int           `json:"estMinutes" bson:"estminutes"` // copied from settings at order time
	Status       OrderStatus   `json:"status" bson:"status"`
	PayStatus    PaymentStatus `json:"payStatus" bson:"paystatus"`
	CreatedAt    time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// OrderItem is written atomically with its parent order and never mutated
// afterwards. Name and UnitPrice are the cart-line snapshot, not live catalog
// values.
type OrderItem struct {
	OrderID    string `json:"orderId" bson:"orderid"`
	MenuItemID string `json:"menuItemId" bson:"menuitemid"`
	Name       string `json:"name" bson:"name"`
	UnitPrice  int64  `json:"unitPrice" bson:"unitprice"`
	Quantity   int    `json:"quantity" bson:"quantity"`
	Notes      string `json:"notes,omitempty" bson:"notes,omitempty"`
}
