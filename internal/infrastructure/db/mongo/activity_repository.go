package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lateshow/lateshow-api/internal/core/domain"
	"github.com/lateshow/lateshow-api/internal/core/ports"
)

const activityCollection = "activity_events"

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	db *mongo.Database
}

func NewActivityRepository(db *mongo.Database) ports.ActivityRepository {
	return &ActivityRepository{db: db}
}

// Insert appends one audit record to the activity_events collection.
func (r *ActivityRepository) Insert(ctx context.Context, a domain.Activity) error {
	_, err := r.db.Collection(activityCollection).InsertOne(ctx, activityDocument(a))
	return err
}

func activityDocument(a domain.Activity) bson.M {
	doc := bson.M{
		"action":      a.Action,
		"resource":    a.Resource,
		"resource_id": a.ResourceID,
		"occurred_at": a.OccurredAt.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if a.Actor != "" {
		doc["actor"] = a.Actor
	}
	return doc
}
