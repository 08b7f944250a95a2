package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
)

const collectionFollows = "follows"

// FollowRepository stores directed follow edges. The unique compound index
// on (follower_id, followed_id) turns Insert into an atomic insert-if-absent:
// concurrent follows for the same pair cannot both succeed.
type FollowRepository struct {
	col *mongo.Collection
}

func NewFollowRepository(db *mongo.Database) *FollowRepository {
	return &FollowRepository{col: db.Collection(collectionFollows)}
}

func (r *FollowRepository) Insert(ctx context.Context, edge *domain.FollowEdge) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, edge)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyFollowing
		}
		return wrapErr("insert follow", err)
	}
	return nil
}

func (r *FollowRepository) Delete(ctx context.Context, followerID, followedID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"follower_id": followerID, "followed_id": followedID})
	if err != nil {
		return wrapErr("delete follow", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFollowing
	}
	return nil
}

func (r *FollowRepository) Exists(ctx context.Context, followerID, followedID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"follower_id": followerID, "followed_id": followedID})
	if err != nil {
		return false, wrapErr("check follow", err)
	}
	return n > 0, nil
}

func (r *FollowRepository) ListByFollower(ctx context.Context, followerID string) ([]*domain.FollowEdge, error) {
	return r.list(ctx, bson.M{"follower_id": followerID})
}

func (r *FollowRepository) ListByFollowed(ctx context.Context, followedID string) ([]*domain.FollowEdge, error) {
	return r.list(ctx, bson.M{"followed_id": followedID})
}

func (r *FollowRepository) list(ctx context.Context, filter bson.M) ([]*domain.FollowEdge, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// Sorted by followed_at so pages stay in a stable order.
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "followed_at", Value: 1}}))
	if err != nil {
		return nil, wrapErr("list follows", err)
	}
	defer cur.Close(ctx)

	var edges []*domain.FollowEdge
	for cur.Next(ctx) {
		var edge domain.FollowEdge
		if err := cur.Decode(&edge); err != nil {
			return nil, wrapErr("decode follow", err)
		}
		edges = append(edges, &edge)
	}
	if err := cur.Err(); err != nil {
		return nil, wrapErr("list follows", err)
	}
	return edges, nil
}

func (r *FollowRepository) CountFollowers(ctx context.Context, followedID string) (int64, error) {
	return r.count(ctx, bson.M{"followed_id": followedID})
}

func (r *FollowRepository) CountFollowing(ctx context.Context, followerID string) (int64, error) {
	return r.count(ctx, bson.M{"follower_id": followerID})
}

func (r *FollowRepository) count(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, wrapErr("count follows", err)
	}
	return n, nil
}

// EnsureIndexes creates the unique compound index that enforces at most one
// edge per ordered pair.
func (r *FollowRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "follower_id", Value: 1}, {Key: "followed_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "followed_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
