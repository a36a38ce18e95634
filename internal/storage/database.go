package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/IshaanNene/pbg/internal/types"
)

// MongoStorage upserts the guide document into a MongoDB collection, one
// document per guide name.
type MongoStorage struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewMongoStorage connects and pings the server.
func NewMongoStorage(ctx context.Context, uri, database, collection string, logger *slog.Logger) (*MongoStorage, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, &types.StorageError{Backend: "mongodb", Err: fmt.Errorf("connect: %w", err)}
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, &types.StorageError{Backend: "mongodb", Err: fmt.Errorf("ping: %w", err)}
	}

	return &MongoStorage{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     logger.With("component", "mongo_storage"),
	}, nil
}

func (s *MongoStorage) Name() string { return "mongodb" }

// Store replaces the stored guide of the same name. Only JSON bodies can be stored.
func (s *MongoStorage) Store(ctx context.Context, doc *Document) error {
	bdoc, err := guideDocument(doc, time.Now().UTC())
	if err != nil {
		return &types.StorageError{Backend: s.Name(), Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	res, err := s.collection.ReplaceOne(ctx, bson.M{"name": doc.Guide}, bdoc, options.Replace().SetUpsert(true))
	if err != nil {
		return &types.StorageError{Backend: s.Name(), Err: fmt.Errorf("replace: %w", err)}
	}

	s.logger.Info("guide stored in mongodb",
		"guide", doc.Guide,
		"matched", res.MatchedCount,
		"upserted", res.UpsertedCount,
	)
	return nil
}

// guideDocument converts a rendered JSON guide to BSON and stamps it.
func guideDocument(doc *Document, now time.Time) (bson.M, error) {
	if doc.Format != "json" {
		return nil, fmt.Errorf("cannot store %s output, only json", doc.Format)
	}

	var m bson.M
	if err := bson.UnmarshalExtJSON(doc.Body, false, &m); err != nil {
		return nil, fmt.Errorf("decode rendered guide: %w", err)
	}
	m["_updated"] = now
	return m, nil
}

func (s *MongoStorage) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
