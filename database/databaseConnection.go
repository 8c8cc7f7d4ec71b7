package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	Meals          = "meals"
	UpcomingMeals  = "upcomingMeals"
	Packages       = "packages"
	Users          = "users"
	Payments       = "payments"
	RequestedMeals = "requestedMeals"
	Reviews        = "reviews"
)

// Connect opens a client using the stable server API and verifies the
// deployment is reachable.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	log.Println("connected to MongoDB")
	return client, nil
}

func OpenCollection(db *mongo.Database, collectionName string) *mongo.Collection {
	return db.Collection(collectionName)
}

// EnsureIndexes creates the indexes lookups depend on. Users are keyed by
// email, so the index is unique.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := OpenCollection(db, Users).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create users.email index: %w", err)
	}

	for _, name := range []string{RequestedMeals, Reviews, Payments} {
		_, err := OpenCollection(db, name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "email", Value: 1}},
		})
		if err != nil {
			return fmt.Errorf("create %s.email index: %w", name, err)
		}
	}
	return nil
}
