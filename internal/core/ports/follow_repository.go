package ports

import (
	"context"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
)

// FollowRepository defines persistence for directed follow edges.
// At most one edge exists per ordered (follower, followed) pair; the storage
// layer enforces this atomically (insert-if-absent, not check-then-act) and
// surfaces violations as domain.ErrAlreadyFollowing.
type FollowRepository interface {
	Insert(ctx context.Context, edge *domain.FollowEdge) error
	// Delete removes the edge, returning domain.ErrNotFollowing when absent.
	Delete(ctx context.Context, followerID, followedID string) error
	Exists(ctx context.Context, followerID, followedID string) (bool, error)
	// ListByFollower returns edges where the user follows others.
	ListByFollower(ctx context.Context, followerID string) ([]*domain.FollowEdge, error)
	// ListByFollowed returns edges where the user is being followed.
	ListByFollowed(ctx context.Context, followedID string) ([]*domain.FollowEdge, error)
	CountFollowers(ctx context.Context, followedID string) (int64, error)
	CountFollowing(ctx context.Context, followerID string) (int64, error)
}
