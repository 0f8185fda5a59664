package payments

import (
	"context"
	"errors"

	"tavolo/db"
	"tavolo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrSessionNotFound = errors.New("payment session not found")

// SessionStore persists the session↔order pairing so verification can match
// the ids the returning guest carries.
type SessionStore interface {
	Save(ctx context.Context, s *models.PaymentSession) error
	ByID(ctx context.Context, sessionID string) (*models.PaymentSession, error)
}

type MongoSessionStore struct{}

func NewMongoSessionStore() *MongoSessionStore {
	return &MongoSessionStore{}
}

func (m *MongoSessionStore) Save(ctx context.Context, s *models.PaymentSession) error {
	_, err := db.PaySessionsCollection.InsertOne(ctx, s)
	return err
}

func (m *MongoSessionStore) ByID(ctx context.Context, sessionID string) (*models.PaymentSession, error) {
	var s models.PaymentSession
	err := db.PaySessionsCollection.FindOne(ctx, bson.M{"sessionid": sessionID}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// RestaurantNames resolves a restaurant's display name for the payment
// description.
type RestaurantNames interface {
	Name(ctx context.Context, restaurantID string) (string, error)
}

type MongoRestaurantNames struct{}

func NewMongoRestaurantNames() *MongoRestaurantNames {
	return &MongoRestaurantNames{}
}

func (m *MongoRestaurantNames) Name(ctx context.Context, restaurantID string) (string, error) {
	var rest models.Restaurant
	err := db.RestaurantsCollection.FindOne(ctx, bson.M{"restaurantid": restaurantID}).Decode(&rest)
	if err != nil {
		return "", err
	}
	return rest.Name, nil
}
