package models

// Restaurant carries the fields the order core needs: identity for tenant
// scoping and owner contact for notifications.
type Restaurant struct {
	RestaurantID string `json:"restaurantId" bson:"restaurantid"`
	Name         string `json:"name" bson:"name"`
	OwnerID      string `json:"ownerId" bson:"ownerid"`
	OwnerEmail   string `json:"ownerEmail" bson:"owneremail"`
}

// Plan is the subscription record the billing gate reads.
type Plan struct {
	RestaurantID string `json:"restaurantId" bson:"restaurantid"`
	Tier         string `json:"tier" bson:"tier"`
	Ordering     bool   `json:"ordering" bson:"ordering"`
}
