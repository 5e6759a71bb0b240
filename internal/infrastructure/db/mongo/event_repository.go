package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/immoconnect/listing-api/internal/core/domain"
)

const collectionPropertyEvents = "property_events"

// PropertyEventRepository persists the mutation audit trail.
type PropertyEventRepository struct {
	col *mongo.Collection
}

func NewPropertyEventRepository(db *mongo.Database) *PropertyEventRepository {
	return &PropertyEventRepository{col: db.Collection(collectionPropertyEvents)}
}

type eventDoc struct {
	PropertyID string    `bson:"property_id"`
	AgentID    string    `bson:"agent_id"`
	Action     string    `bson:"action"`
	At         time.Time `bson:"at"`
}

func (r *PropertyEventRepository) Insert(ctx context.Context, event *domain.PropertyEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := eventDoc{
		PropertyID: event.PropertyID,
		AgentID:    event.AgentID,
		Action:     string(event.Action),
		At:         event.At,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert property event: %w", err)
	}
	return nil
}

// ListByProperty returns the audit trail of one property, oldest first.
func (r *PropertyEventRepository) ListByProperty(ctx context.Context, propertyID string) ([]*domain.PropertyEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "at", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"property_id": propertyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list property events: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []eventDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode property events: %w", err)
	}

	events := make([]*domain.PropertyEvent, len(docs))
	for i, d := range docs {
		events[i] = &domain.PropertyEvent{
			PropertyID: d.PropertyID,
			AgentID:    d.AgentID,
			Action:     domain.PropertyAction(d.Action),
			At:         d.At,
		}
	}
	return events, nil
}
