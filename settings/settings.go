package settings

import (
	"context"

	"tavolo/db"
	"tavolo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Default settings when a restaurant never configured ordering: disabled,
// nothing accepted, no hours table.
func getDefaultSettings(restaurantID string) models.OrderingSettings {
	return models.OrderingSettings{
		RestaurantID:       restaurantID,
		Enabled:            false,
		FulfillmentTypes:   []string{},
		PaymentMethods:     []string{},
		EstPickupMinutes:   20,
		EstDeliveryMinutes: 45,
		Hours:              []models.OpeningHour{},
	}
}

// MongoStore reads and writes per-restaurant ordering settings. The order
// lifecycle core only ever reads through OrderingSettings.
type MongoStore struct{}

func NewMongoStore() *MongoStore {
	return &MongoStore{}
}

func (m *MongoStore) OrderingSettings(ctx context.Context, restaurantID string) (*models.OrderingSettings, error) {
	var st models.OrderingSettings
	err := db.SettingsCollection.FindOne(ctx, bson.M{"restaurantid": restaurantID}).Decode(&st)
	if err == mongo.ErrNoDocuments {
		st = getDefaultSettings(restaurantID)
		return &st, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (m *MongoStore) SaveOrderingSettings(ctx context.Context, st *models.OrderingSettings) error {
	opts := options.Replace().SetUpsert(true)
	_, err := db.SettingsCollection.ReplaceOne(ctx,
		bson.M{"restaurantid": st.RestaurantID}, st, opts)
	return err
}
