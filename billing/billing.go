package billing

import (
	"context"

	"tavolo/db"
	"tavolo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CapabilityResolver answers "does this restaurant's current plan include
// ordering?". Checkout, the order dashboard and the settings screen all
// consume the same injected resolver so the three gates cannot drift.
type CapabilityResolver interface {
	OrderingIncluded(ctx context.Context, restaurantID string) (bool, error)
}

// MongoResolver reads the plans collection. A restaurant without a plan
// record is on the free tier and cannot take orders.
type MongoResolver struct{}

func NewMongoResolver() *MongoResolver {
	return &MongoResolver{}
}

func (m *MongoResolver) OrderingIncluded(ctx context.Context, restaurantID string) (bool, error) {
	var plan models.Plan
	err := db.PlansCollection.FindOne(ctx, bson.M{"restaurantid": restaurantID}).Decode(&plan)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return plan.Ordering, nil
}
