package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
	"github.com/dreamblog/dreamblog-api/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns the consumer side of the engagement trail:
// it persists activities handed over by the dispatcher workers.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

func (s *activityService) Process(ctx context.Context, activity domain.Activity) error {
	if err := s.repo.Insert(ctx, &activity); err != nil {
		return fmt.Errorf("process activity: %w", err)
	}

	s.log.Debug().
		Str("actor_id", activity.ActorID).
		Str("verb", activity.Verb).
		Str("subject_id", activity.SubjectID).
		Msg("activity recorded")
	return nil
}
