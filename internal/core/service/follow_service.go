package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
	"github.com/dreamblog/dreamblog-api/internal/core/ports"
)

// FollowService manages the directed follow graph. Edge uniqueness is not
// checked here: the repository's insert is atomic (unique compound index)
// and reports domain.ErrAlreadyFollowing itself, so two concurrent follows
// for the same pair can never both succeed.
type FollowService struct {
	repo     ports.FollowRepository
	users    ports.UserRepository
	recorder ports.ActivityRecorder
	log      zerolog.Logger
}

func NewFollowService(repo ports.FollowRepository, users ports.UserRepository, recorder ports.ActivityRecorder, log zerolog.Logger) *FollowService {
	return &FollowService{repo: repo, users: users, recorder: recorder, log: log}
}

// Follow creates the edge follower→followed. Both ids must reference
// existing users.
func (s *FollowService) Follow(ctx context.Context, followerID, followedID string) (*domain.FollowEdge, error) {
	if followerID == followedID {
		return nil, domain.ErrSelfFollow
	}

	if _, err := s.users.FindByID(ctx, followerID); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, followedID); err != nil {
		return nil, err
	}

	edge := &domain.FollowEdge{
		FollowerID: followerID,
		FollowedID: followedID,
		FollowedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, edge); err != nil {
		return nil, err
	}

	s.record(domain.Activity{ActorID: followerID, Verb: domain.ActivityFollow, SubjectID: followedID, Timestamp: edge.FollowedAt})
	s.log.Info().Str("follower_id", followerID).Str("followed_id", followedID).Msg("follow created")
	return edge, nil
}

// Unfollow removes the edge follower→followed, failing with
// domain.ErrNotFollowing when it does not exist.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followedID string) error {
	if err := s.repo.Delete(ctx, followerID, followedID); err != nil {
		return err
	}
	s.record(domain.Activity{ActorID: followerID, Verb: domain.ActivityUnfollow, SubjectID: followedID, Timestamp: time.Now().UTC()})
	return nil
}

func (s *FollowService) ListFollowing(ctx context.Context, userID string) ([]*domain.FollowEdge, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	var edges []*domain.FollowEdge
	err := retryOnTimeout(ctx, func() error {
		var lerr error
		edges, lerr = s.repo.ListByFollower(ctx, userID)
		return lerr
	})
	return edges, err
}

func (s *FollowService) ListFollowers(ctx context.Context, userID string) ([]*domain.FollowEdge, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	var edges []*domain.FollowEdge
	err := retryOnTimeout(ctx, func() error {
		var lerr error
		edges, lerr = s.repo.ListByFollowed(ctx, userID)
		return lerr
	})
	return edges, err
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	return s.repo.Exists(ctx, followerID, followedID)
}

func (s *FollowService) FollowerCount(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := retryOnTimeout(ctx, func() error {
		var cerr error
		n, cerr = s.repo.CountFollowers(ctx, userID)
		return cerr
	})
	return n, err
}

func (s *FollowService) FollowingCount(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := retryOnTimeout(ctx, func() error {
		var cerr error
		n, cerr = s.repo.CountFollowing(ctx, userID)
		return cerr
	})
	return n, err
}

func (s *FollowService) record(a domain.Activity) {
	if s.recorder != nil {
		s.recorder.Record(a)
	}
}
