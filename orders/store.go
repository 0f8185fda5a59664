package orders

import (
	"context"
	"errors"
	"time"

	"tavolo/db"
	"tavolo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("order not found")
var ErrBadStatus = errors.New("invalid order status")

// MongoStore is the authoritative order store. Checkout, payment confirmation
// and the staff dashboard all go through it.
type MongoStore struct {
	client *mongo.Client
}

func NewMongoStore() *MongoStore {
	return &MongoStore{client: db.Client}
}

// CreateWithItems allocates the next per-restaurant order number and inserts
// the order plus all its items in one transaction, so a half-placed order is
// never visible to staff.
func (s *MongoStore) CreateWithItems(ctx context.Context, o *models.Order, items []models.OrderItem) error {
	sess, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		number, err := s.nextNumber(sc, o.RestaurantID)
		if err != nil {
			return nil, err
		}
		o.Number = number

		if _, err := db.OrdersCollection.InsertOne(sc, o); err != nil {
			return nil, err
		}

		if len(items) > 0 {
			docs := make([]interface{}, 0, len(items))
			for i := range items {
				items[i].OrderID = o.OrderID
				docs = append(docs, items[i])
			}
			if _, err := db.OrderItemsCollection.InsertMany(sc, docs); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

// nextNumber increments the restaurant's order counter and returns the new
// value. Runs inside the checkout transaction.
func (s *MongoStore) nextNumber(ctx context.Context, restaurantID string) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	err := db.CountersCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": "orders:" + restaurantID},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

func (s *MongoStore) ByID(ctx context.Context, orderID string) (*models.Order, error) {
	var o models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *MongoStore) ItemsFor(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	cursor, err := db.OrderItemsCollection.Find(ctx, bson.M{"orderid": orderID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.OrderItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.OrderItem{}
	}
	return items, nil
}

// ByRestaurant lists a restaurant's orders, newest first, optionally filtered
// by status.
func (s *MongoStore) ByRestaurant(ctx context.Context, restaurantID string, status models.OrderStatus, limit, skip int64) ([]models.Order, error) {
	filter := bson.M{"restaurantid": restaurantID}
	if status != "" {
		filter["status"] = status
	}

	findOptions := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(limit).
		SetSkip(skip)

	cursor, err := db.OrdersCollection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Order
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Order{}
	}
	return out, nil
}

// SetStatus writes a new order status. Only statuses from the known set are
// ever written; transition legality is checked by the service before calling
// this. The write itself is last-write-wins: two staff advancing the same
// order concurrently race, which is a documented property of the dashboard,
// not a store bug.
func (s *MongoStore) SetStatus(ctx context.Context, orderID string, to models.OrderStatus) error {
	if !ValidStatus(to) {
		return ErrBadStatus
	}
	res, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderid": orderID},
		bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkPaid flips payment_status to paid. Re-marking paid as paid is a
// harmless no-op, which is what makes verification idempotent in effect.
func (s *MongoStore) MarkPaid(ctx context.Context, orderID string) error {
	res, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderid": orderID},
		bson.M{"$set": bson.M{"paystatus": models.PaymentPaid, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
