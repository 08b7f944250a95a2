package ports

import (
	"context"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
)

// FollowService manages the social follow graph.
type FollowService interface {
	Follow(ctx context.Context, followerID, followedID string) (*domain.FollowEdge, error)
	Unfollow(ctx context.Context, followerID, followedID string) error
	ListFollowing(ctx context.Context, userID string) ([]*domain.FollowEdge, error)
	ListFollowers(ctx context.Context, userID string) ([]*domain.FollowEdge, error)
	IsFollowing(ctx context.Context, followerID, followedID string) (bool, error)
	FollowerCount(ctx context.Context, userID string) (int64, error)
	FollowingCount(ctx context.Context, userID string) (int64, error)
}
