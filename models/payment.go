package models

import "time"

// PaymentSession records the external payment session created for an order so
// the verification step can match the returning guest's session/order pair.
type PaymentSession struct {
	SessionID    string    `json:"sessionId" bson:"sessionid"`
	OrderID      string    `json:"orderId" bson:"orderid"`
	RestaurantID string    `json:"restaurantId" bson:"restaurantid"`
	Amount       int64     `json:"amount" bson:"amount"` // euro cents
	RedirectURL  string    `json:"redirectUrl" bson:"redirecturl"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}
