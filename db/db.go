package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection    *mongo.Collection
	LandsCollection   *mongo.Collection
	ProductCollection *mongo.Collection
	CartCollection    *mongo.Collection
	OrdersCollection  *mongo.Collection
	Client            *mongo.Client
)

const connectTimeout = 10 * time.Second

// Initialize MongoDB connection. The driver connects lazily, so startup does
// not depend on the database being up yet.
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "basketdb"
	}

	clientOptions := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(connectTimeout).
		SetSocketTimeout(30 * time.Second).
		SetMaxPoolSize(50)

	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database(dbName)
	UserCollection = database.Collection("users")
	LandsCollection = database.Collection("lands")
	ProductCollection = database.Collection("products")
	CartCollection = database.Collection("carts")
	OrdersCollection = database.Collection("orders")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := createIndexes(ctx); err != nil {
			log.Printf("Failed to create indexes: %v", err)
		}
	}()
}

func createIndexes(ctx context.Context) error {
	// A person may register once per role, so uniqueness is on the pair.
	_, err := UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}, {Key: "role", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_email_role"),
	})
	if err != nil {
		return err
	}

	_, err = CartCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_cart_user"),
	})
	if err != nil {
		return err
	}

	_, err = OrdersCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "items.farmerId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "orderNumber", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_order_number")},
	})
	return err
}
