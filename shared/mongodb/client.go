// shared/mongodb/client.go
package mongodb

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const appName = "auction-state"

// Client wraps *mongo.Client bound to one database.
type Client struct {
	mongoClient *mongo.Client
	database    string
}

// NewClient connects to connStr and verifies the primary answers before returning.
// ctx bounds both the connect and the ping.
func NewClient(ctx context.Context, connStr, databaseName string) (*Client, error) {
	opts := options.Client().
		ApplyURI(connStr).
		SetAppName(appName).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		if disconnectErr := client.Disconnect(context.Background()); disconnectErr != nil {
			log.Printf("WARN: Failed to disconnect MongoDB client after ping failure: %v", disconnectErr)
		}
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Printf("Successfully connected to MongoDB database %q.", databaseName)
	return &Client{mongoClient: client, database: databaseName}, nil
}

// Collection returns the named collection of the bound database.
func (mc *Client) Collection(collectionName string) *mongo.Collection {
	return mc.mongoClient.Database(mc.database).Collection(collectionName)
}

func (mc *Client) Disconnect(ctx context.Context) error {
	log.Println("Disconnecting from MongoDB...")
	return mc.mongoClient.Disconnect(ctx)
}
