// auction/store/mongo_store.go
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ftotnem/auction-state/shared/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps every resource as one document of a collection, keyed by _id.
type MongoStore struct {
	collection *mongo.Collection
	disconnect func(context.Context) error
}

// documentRecord is the persisted shape; the body is kept as text so the
// caller's key order and number formatting survive.
type documentRecord struct {
	Name      string    `bson:"_id"`
	Body      string    `bson:"body"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore takes ownership of client; Close disconnects it.
func NewMongoStore(client *mongodb.Client, collectionName string) *MongoStore {
	return &MongoStore{
		collection: client.Collection(collectionName),
		disconnect: client.Disconnect,
	}
}

// newCollectionStore works on a collection whose client the caller owns.
func newCollectionStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{collection: collection}
}

func (ms *MongoStore) Load(ctx context.Context, resource Resource) ([]byte, error) {
	if err := checkResource(resource); err != nil {
		return nil, err
	}
	var rec documentRecord
	err := ms.collection.FindOne(ctx, bson.M{"_id": resource.Key()}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, resource)
		}
		return nil, fmt.Errorf("failed to load %s: %w", resource, err)
	}
	return checkLoaded(resource, []byte(rec.Body))
}

func (ms *MongoStore) Save(ctx context.Context, resource Resource, doc []byte) error {
	data, err := formatDocument(resource, doc)
	if err != nil {
		return err
	}
	filter := bson.M{"_id": resource.Key()}
	update := bson.M{"$set": bson.M{"body": string(data), "updated_at": time.Now()}}
	if _, err := ms.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to save %s: %w", resource, err)
	}
	return nil
}

func (ms *MongoStore) Exists(ctx context.Context, resource Resource) (bool, error) {
	if err := checkResource(resource); err != nil {
		return false, err
	}
	n, err := ms.collection.CountDocuments(ctx, bson.M{"_id": resource.Key()}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", resource, err)
	}
	return n > 0, nil
}

func (ms *MongoStore) Close() error {
	if ms.disconnect == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return ms.disconnect(ctx)
}
