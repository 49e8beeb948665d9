package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/example/adoreshop/pkg/config"
	"github.com/example/adoreshop/pkg/studio"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const journalService = "storefront"

// MongoRepository journals storefront events. Storefronts only write to it;
// the gateway reads it back as cart history.
type MongoRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoRepository(ctx context.Context, cfg *config.MongoDBConfig) (*MongoRepository, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	return &MongoRepository{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (m *MongoRepository) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *MongoRepository) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// AuditLog is one journal document.
type AuditLog struct {
	ID        string    `bson:"_id,omitempty"`
	Service   string    `bson:"service"`
	Action    string    `bson:"action"`
	EntityID  string    `bson:"entity_id"`
	Data      bson.M    `bson:"data"`
	CreatedAt time.Time `bson:"created_at"`
}

func newAuditLog(e studio.Event) *AuditLog {
	data := bson.M{}
	for k, v := range e.Data {
		data[k] = v
	}
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}
	return &AuditLog{
		Service:   journalService,
		Action:    string(e.Type),
		EntityID:  e.ClientID,
		Data:      data,
		CreatedAt: at.UTC(),
	}
}

// RecordEvent implements studio.EventSink.
func (m *MongoRepository) RecordEvent(ctx context.Context, e studio.Event) error {
	if _, err := m.collection.InsertOne(ctx, newAuditLog(e)); err != nil {
		return fmt.Errorf("failed to journal %s: %w", e.Type, err)
	}
	return nil
}

// GetAuditLogs returns the newest journal entries of one client.
func (m *MongoRepository) GetAuditLogs(ctx context.Context, clientID string, limit int64) ([]*AuditLog, error) {
	filter := bson.M{"entity_id": clientID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer cursor.Close(ctx)

	var logs []*AuditLog
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("failed to decode journal: %w", err)
	}

	return logs, nil
}
