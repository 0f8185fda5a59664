package models

// OpeningHour is one weekday entry in the weekly hours table.
// Day follows time.Weekday numbering (0 = Sunday).
type OpeningHour struct {
	Day    int    `json:"day" bson:"day"`
	Open   string `json:"open" bson:"open"`   // "HH:MM"
	Close  string `json:"close" bson:"close"` // "HH:MM"; "00:00" means end of day
	Closed bool   `json:"closed" bson:"closed"`
}

// OrderingSettings is per-restaurant configuration, owner-edited and read-only
// to the order lifecycle core.
type OrderingSettings struct {
	RestaurantID       string        `json:"restaurantId" bson:"restaurantid"`
	Enabled            bool          `json:"enabled" bson:"enabled"`
	FulfillmentTypes   []string      `json:"fulfillmentTypes" bson:"fulfillmenttypes"`
	PaymentMethods     []string      `json:"paymentMethods" bson:"paymentmethods"`
	MinimumOrder       int64         `json:"minimumOrder" bson:"minimumorder"` // euro cents
	DeliveryFee        int64         `json:"deliveryFee" bson:"deliveryfee"`   // euro cents
	EstPickupMinutes   int           `json:"estPickupMinutes" bson:"estpickupminutes"`
	EstDeliveryMinutes int           `json:"estDeliveryMinutes" bson:"estdeliveryminutes"`
	Hours              []OpeningHour `json:"hours" bson:"hours"`
}
