// Package mongo persists conversation turns and status checks in MongoDB.
// One store implements both the chat.TurnLog and status.Store interfaces.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/curryhouse/menubot/backend/internal/config"
	"github.com/curryhouse/menubot/backend/internal/model/chat"
	"github.com/curryhouse/menubot/backend/internal/model/status"
)

const (
	turnsCollection  = "chat_conversations"
	statusCollection = "status_checks"
)

// Store wraps a MongoDB database holding the append-only collections.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore dials MongoDB and verifies the connection.
func NewStore(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("MONGO_URL is required for the mongo store")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return &Store{client: client, db: client.Database(cfg.Database)}, nil
}

// Close releases the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Append implements chat.TurnLog with a single insert per turn.
func (s *Store) Append(ctx context.Context, turn chat.Turn) error {
	if _, err := s.db.Collection(turnsCollection).InsertOne(ctx, turn); err != nil {
		return fmt.Errorf("mongo append turn: %w", err)
	}
	return nil
}

// Insert implements status.Store.
func (s *Store) Insert(ctx context.Context, check status.Check) error {
	if _, err := s.db.Collection(statusCollection).InsertOne(ctx, check); err != nil {
		return fmt.Errorf("mongo insert status check: %w", err)
	}
	return nil
}

// List implements status.Store, returning checks in insertion order.
func (s *Store) List(ctx context.Context, limit int) ([]status.Check, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.db.Collection(statusCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo list status checks: %w", err)
	}
	defer cursor.Close(ctx)

	var out []status.Check
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("mongo decode status checks: %w", err)
	}
	return out, nil
}
