package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
)

type stubFollowRepo struct {
	insertFn         func(ctx context.Context, edge *domain.FollowEdge) error
	deleteFn         func(ctx context.Context, followerID, followedID string) error
	existsFn         func(ctx context.Context, followerID, followedID string) (bool, error)
	listByFollowerFn func(ctx context.Context, followerID string) ([]*domain.FollowEdge, error)
	listByFollowedFn func(ctx context.Context, followedID string) ([]*domain.FollowEdge, error)
	countFollowersFn func(ctx context.Context, followedID string) (int64, error)
	countFollowingFn func(ctx context.Context, followerID string) (int64, error)
}

func (s *stubFollowRepo) Insert(ctx context.Context, edge *domain.FollowEdge) error {
	if s.insertFn == nil {
		return nil
	}
	return s.insertFn(ctx, edge)
}

func (s *stubFollowRepo) Delete(ctx context.Context, followerID, followedID string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, followerID, followedID)
}

func (s *stubFollowRepo) Exists(ctx context.Context, followerID, followedID string) (bool, error) {
	if s.existsFn == nil {
		return false, nil
	}
	return s.existsFn(ctx, followerID, followedID)
}

func (s *stubFollowRepo) ListByFollower(ctx context.Context, followerID string) ([]*domain.FollowEdge, error) {
	if s.listByFollowerFn == nil {
		return nil, nil
	}
	return s.listByFollowerFn(ctx, followerID)
}

func (s *stubFollowRepo) ListByFollowed(ctx context.Context, followedID string) ([]*domain.FollowEdge, error) {
	if s.listByFollowedFn == nil {
		return nil, nil
	}
	return s.listByFollowedFn(ctx, followedID)
}

func (s *stubFollowRepo) CountFollowers(ctx context.Context, followedID string) (int64, error) {
	if s.countFollowersFn == nil {
		return 0, nil
	}
	return s.countFollowersFn(ctx, followedID)
}

func (s *stubFollowRepo) CountFollowing(ctx context.Context, followerID string) (int64, error) {
	if s.countFollowingFn == nil {
		return 0, nil
	}
	return s.countFollowingFn(ctx, followerID)
}

type captureRecorder struct {
	activities []domain.Activity
}

func (c *captureRecorder) Record(a domain.Activity) {
	c.activities = append(c.activities, a)
}

func knownUsersRepo(ids ...string) *stubUserRepo {
	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	return &stubUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			if known[id] {
				return &domain.User{ID: id, IsActive: true}, nil
			}
			return nil, domain.ErrUserNotFound
		},
	}
}

func TestFollowService_Follow(t *testing.T) {
	recorder := &captureRecorder{}
	svc := NewFollowService(&stubFollowRepo{}, knownUsersRepo("u1", "u2"), recorder, zerolog.Nop())

	edge, err := svc.Follow(context.Background(), "u1", "u2")
	if err != nil {
		t.Fatalf("follow: %v", err)
	}
	if edge.FollowerID != "u1" || edge.FollowedID != "u2" {
		t.Fatalf("unexpected edge: %+v", edge)
	}
	if edge.FollowedAt.IsZero() {
		t.Fatalf("expected FollowedAt to be set")
	}
	if len(recorder.activities) != 1 || recorder.activities[0].Verb != domain.ActivityFollow {
		t.Fatalf("expected one follow activity, got %+v", recorder.activities)
	}
}

func TestFollowService_Follow_Self(t *testing.T) {
	svc := NewFollowService(&stubFollowRepo{}, knownUsersRepo("u1"), nil, zerolog.Nop())

	if _, err := svc.Follow(context.Background(), "u1", "u1"); !errors.Is(err, domain.ErrSelfFollow) {
		t.Fatalf("expected ErrSelfFollow, got %v", err)
	}
}

func TestFollowService_Follow_UnknownUser(t *testing.T) {
	svc := NewFollowService(&stubFollowRepo{}, knownUsersRepo("u1"), nil, zerolog.Nop())

	if _, err := svc.Follow(context.Background(), "u1", "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for unknown followed, got %v", err)
	}
	if _, err := svc.Follow(context.Background(), "ghost", "u1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for unknown follower, got %v", err)
	}
}

func TestFollowService_Follow_AlreadyFollowing(t *testing.T) {
	recorder := &captureRecorder{}
	repo := &stubFollowRepo{
		insertFn: func(ctx context.Context, edge *domain.FollowEdge) error {
			return domain.ErrAlreadyFollowing
		},
	}
	svc := NewFollowService(repo, knownUsersRepo("u1", "u2"), recorder, zerolog.Nop())

	if _, err := svc.Follow(context.Background(), "u1", "u2"); !errors.Is(err, domain.ErrAlreadyFollowing) {
		t.Fatalf("expected ErrAlreadyFollowing, got %v", err)
	}
	if len(recorder.activities) != 0 {
		t.Fatalf("expected no activity on failed follow")
	}
}

func TestFollowService_Unfollow_NotFollowing(t *testing.T) {
	repo := &stubFollowRepo{
		deleteFn: func(ctx context.Context, followerID, followedID string) error {
			return domain.ErrNotFollowing
		},
	}
	svc := NewFollowService(repo, knownUsersRepo("u1", "u2"), nil, zerolog.Nop())

	if err := svc.Unfollow(context.Background(), "u1", "u2"); !errors.Is(err, domain.ErrNotFollowing) {
		t.Fatalf("expected ErrNotFollowing, got %v", err)
	}
}

func TestFollowService_Counts(t *testing.T) {
	repo := &stubFollowRepo{
		countFollowersFn: func(ctx context.Context, followedID string) (int64, error) {
			return 3, nil
		},
		countFollowingFn: func(ctx context.Context, followerID string) (int64, error) {
			return 5, nil
		},
	}
	svc := NewFollowService(repo, knownUsersRepo("u1"), nil, zerolog.Nop())

	followers, err := svc.FollowerCount(context.Background(), "u1")
	if err != nil {
		t.Fatalf("follower count: %v", err)
	}
	if followers != 3 {
		t.Fatalf("expected 3 followers, got %d", followers)
	}

	following, err := svc.FollowingCount(context.Background(), "u1")
	if err != nil {
		t.Fatalf("following count: %v", err)
	}
	if following != 5 {
		t.Fatalf("expected 5 following, got %d", following)
	}
}

func TestFollowService_ListFollowing_RetriesTimeout(t *testing.T) {
	calls := 0
	repo := &stubFollowRepo{
		listByFollowerFn: func(ctx context.Context, followerID string) ([]*domain.FollowEdge, error) {
			calls++
			if calls == 1 {
				return nil, domain.ErrStorageTimeout
			}
			return []*domain.FollowEdge{{FollowerID: followerID, FollowedID: "u2"}}, nil
		},
	}
	svc := NewFollowService(repo, knownUsersRepo("u1"), nil, zerolog.Nop())

	edges, err := svc.ListFollowing(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list following: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected a single retry, got %d calls", calls)
	}
	if len(edges) != 1 {
		t.Fatalf("expected one edge, got %d", len(edges))
	}
}
