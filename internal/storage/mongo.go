package storage

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoDocument is the persisted shape of a document record.
type mongoDocument struct {
	ID        string    `bson:"id"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"createdAt"`
}

// MongoBackend implements Backend on top of a MongoDB collection, one
// document per id (key-value table style).
type MongoBackend struct {
	client *mongo.Client
	col    *mongo.Collection
}

// NewMongoBackend wraps an already-connected client. Caller owns the client
// lifecycle (Disconnect).
func NewMongoBackend(client *mongo.Client, database, collection string) *MongoBackend {
	col := client.Database(database).Collection(collection)
	// ensure an index on "id" for fast lookups (id is expected unique)
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	col.Indexes().CreateOne(context.Background(), idxModel)
	return &MongoBackend{client: client, col: col}
}

func (m *MongoBackend) Name() string { return "mongodb" }

// Put upserts the record so retries and overwrites land on one durable copy.
func (m *MongoBackend) Put(ctx context.Context, id, content string) error {
	set := bson.M{"content": content, "createdAt": time.Now().UTC()}
	opts := options.Update().SetUpsert(true)
	_, err := m.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts)
	return err
}

func (m *MongoBackend) Get(ctx context.Context, id string) (string, error) {
	var d mongoDocument
	err := m.col.FindOne(ctx, bson.M{"id": id}).Decode(&d)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", ErrNotFound
		}
		return "", err
	}
	return d.Content, nil
}

func (m *MongoBackend) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}
