package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
)

const collectionActivities = "activities"

// ActivityRepository is the append-only store for the engagement trail.
type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivities)}
}

func (r *ActivityRepository) Insert(ctx context.Context, activity *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, activity); err != nil {
		return wrapErr("insert activity", err)
	}
	return nil
}

// EnsureIndexes creates the actor timeline index.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "actor_id", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	return err
}
