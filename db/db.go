package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	RestaurantsCollection *mongo.Collection
	OrdersCollection      *mongo.Collection
	OrderItemsCollection  *mongo.Collection
	CountersCollection    *mongo.Collection
	SettingsCollection    *mongo.Collection
	PaySessionsCollection *mongo.Collection
	PlansCollection       *mongo.Collection
	Client                *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "tavolodb"
	}

	RestaurantsCollection = Client.Database(dbName).Collection("restaurants")
	OrdersCollection = Client.Database(dbName).Collection("orders")
	OrderItemsCollection = Client.Database(dbName).Collection("orderitems")
	CountersCollection = Client.Database(dbName).Collection("counters")
	SettingsCollection = Client.Database(dbName).Collection("ordersettings")
	PaySessionsCollection = Client.Database(dbName).Collection("paysessions")
	PlansCollection = Client.Database(dbName).Collection("plans")
}
