package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/meermanr/whathifi/internal/review"
)

const (
	DefaultConnectTimeout = 30 * time.Second
	DefaultDBOpTimeout    = 10 * time.Second
)

// Mongo keeps the review corpus in a MongoDB collection, one document per
// record, keyed by URL through a unique index.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *log.Logger
}

func NewMongo(parentCtx context.Context, uri, dbName, collName string, logger *log.Logger) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(parentCtx, DefaultConnectTimeout)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	s := &Mongo{
		client: client,
		coll:   client.Database(dbName).Collection(collName),
		logger: logger,
	}

	// ensure indexes are present (best-effort)
	if err := s.ensureIndexes(context.Background()); err != nil {
		logger.Printf("warning: could not ensure indexes: %v", err)
	}
	return s, nil
}

func (s *Mongo) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "url", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *Mongo) Exists(parentCtx context.Context, url string) (bool, error) {
	ctx, cancel := context.WithTimeout(parentCtx, DefaultDBOpTimeout)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err := s.coll.FindOne(ctx, bson.M{"url": url}, opts).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find record: %w", err)
	}
	return true, nil
}

func (s *Mongo) Insert(parentCtx context.Context, rec *review.Record) error {
	ctx, cancel := context.WithTimeout(parentCtx, DefaultDBOpTimeout)
	defer cancel()

	_, err := s.coll.InsertOne(ctx, rec)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("insert %s: %w", rec.URL, review.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("insert %s: %w", rec.URL, err)
	}
	return nil
}

func (s *Mongo) Count(parentCtx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(parentCtx, DefaultDBOpTimeout)
	defer cancel()

	n, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

func (s *Mongo) ScanAll(ctx context.Context) ([]review.Record, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []review.Record
	for cursor.Next(ctx) {
		var rec review.Record
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		records = append(records, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return records, nil
}
