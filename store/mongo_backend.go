package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const documentID = "silentsos"

// MongoBackend stores the whole document as a single MongoDB document, so the
// load/mutate/save discipline is unchanged.
type MongoBackend struct {
	client     *mongo.Client
	collection *mongo.Collection
}

type mongoDocument struct {
	ID       string `bson:"_id"`
	Document `bson:",inline"`
}

// NewMongoBackend connects and pings the server before returning.
func NewMongoBackend(ctx context.Context, uri, database, collection string) (*MongoBackend, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}
	return &MongoBackend{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

func (b *MongoBackend) Load(ctx context.Context) (*Document, error) {
	var stored mongoDocument
	err := b.collection.FindOne(ctx, bson.M{"_id": documentID}).Decode(&stored)
	if errors.Is(err, mongo.ErrNoDocuments) {
		doc := NewDocument()
		if err := b.Save(ctx, doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb load: %w", err)
	}
	doc := stored.Document
	doc.normalize()
	return &doc, nil
}

func (b *MongoBackend) Save(ctx context.Context, doc *Document) error {
	_, err := b.collection.ReplaceOne(ctx,
		bson.M{"_id": documentID},
		mongoDocument{ID: documentID, Document: *doc},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongodb save: %w", err)
	}
	return nil
}

func (b *MongoBackend) Close(ctx context.Context) error {
	return b.client.Disconnect(ctx)
}
