package blob

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection holding blobs.
const CollectionName = "kv"

type kvDoc struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Mongo keeps each key as one document in the kv collection.
// The client is owned by the caller.
type Mongo struct {
	c *mongo.Collection
}

// NewMongo returns a backend on db.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{c: db.Collection(CollectionName)}
}

// Load implements Backend.
func (m *Mongo) Load(ctx context.Context, key string) ([]byte, error) {
	var doc kvDoc
	err := m.c.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return doc.Value, nil
}

// Save implements Backend.
func (m *Mongo) Save(ctx context.Context, key string, data []byte) error {
	update := bson.M{"$set": bson.M{"value": data, "updated_at": time.Now().UTC()}}
	opts := options.Update().SetUpsert(true)
	if _, err := m.c.UpdateOne(ctx, bson.M{"_id": key}, update, opts); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Close implements Backend.
func (m *Mongo) Close() error { return nil }
