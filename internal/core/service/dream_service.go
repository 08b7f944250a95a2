package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
	"github.com/dreamblog/dreamblog-api/internal/core/ports"
)

// DreamService covers dream CRUD and the reaction ledger. Reaction writes go
// through the repository's atomic replace-or-insert, so the embedded array
// never accumulates two entries for one user even under concurrent requests.
type DreamService struct {
	repo     ports.DreamRepository
	recorder ports.ActivityRecorder
	log      zerolog.Logger
}

func NewDreamService(repo ports.DreamRepository, recorder ports.ActivityRecorder, log zerolog.Logger) *DreamService {
	return &DreamService{repo: repo, recorder: recorder, log: log}
}

func (s *DreamService) Create(ctx context.Context, caller domain.Identity, in ports.CreateDreamInput) (*domain.Dream, error) {
	visibility := in.Visibility
	if visibility == "" {
		visibility = domain.VisibilityPublic
	}

	now := time.Now().UTC()
	dream := &domain.Dream{
		AuthorID:    caller.UserID,
		Title:       in.Title,
		Content:     in.Content,
		Tags:        in.Tags,
		Visibility:  visibility,
		Reactions:   []domain.Reaction{},
		CreatedAt:   now,
		LastUpdated: now,
	}

	created, err := s.repo.Create(ctx, dream)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("dream_id", created.ID).Str("author_id", caller.UserID).Msg("dream created")
	return created, nil
}

func (s *DreamService) Get(ctx context.Context, id string) (*domain.Dream, error) {
	var dream *domain.Dream
	err := retryOnTimeout(ctx, func() error {
		var ferr error
		dream, ferr = s.repo.FindByID(ctx, id)
		return ferr
	})
	return dream, err
}

func (s *DreamService) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Dream, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}

func (s *DreamService) ListPublic(ctx context.Context) ([]*domain.Dream, error) {
	return s.repo.ListPublic(ctx)
}

// Update edits a dream's content. Only the author or an admin may edit.
func (s *DreamService) Update(ctx context.Context, caller domain.Identity, id string, in ports.UpdateDreamInput) (*domain.Dream, error) {
	dream, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dream.AuthorID != caller.UserID && !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	if in.Title != nil {
		dream.Title = *in.Title
	}
	if in.Content != nil {
		dream.Content = *in.Content
	}
	if in.Tags != nil {
		dream.Tags = *in.Tags
	}
	if in.Visibility != nil {
		dream.Visibility = *in.Visibility
	}
	dream.LastUpdated = time.Now().UTC()

	if err := s.repo.Update(ctx, dream); err != nil {
		return nil, err
	}
	return dream, nil
}

// Delete removes a dream and, with it, its embedded reactions.
func (s *DreamService) Delete(ctx context.Context, caller domain.Identity, id string) error {
	dream, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if dream.AuthorID != caller.UserID && !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("dream_id", id).Str("deleted_by", caller.UserID).Msg("dream deleted")
	return nil
}

// React records the user's single current reaction on a dream, replacing any
// previous one. Kind is validated against the accepted set and stored in
// lower case.
func (s *DreamService) React(ctx context.Context, dreamID, userID, kind string) error {
	normalized, err := domain.NormalizeReactionKind(kind)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := s.repo.SetReaction(ctx, dreamID, userID, normalized, now); err != nil {
		return err
	}

	s.record(domain.Activity{ActorID: userID, Verb: domain.ActivityReact, SubjectID: dreamID, Kind: normalized, Timestamp: now})
	return nil
}

// Unreact removes the user's reaction. A user with no reaction is a no-op,
// not an error.
func (s *DreamService) Unreact(ctx context.Context, dreamID, userID string) error {
	if err := s.repo.RemoveReaction(ctx, dreamID, userID); err != nil {
		return err
	}
	s.record(domain.Activity{ActorID: userID, Verb: domain.ActivityUnreact, SubjectID: dreamID, Timestamp: time.Now().UTC()})
	return nil
}

func (s *DreamService) HasReacted(ctx context.Context, dreamID, userID string) (bool, error) {
	dream, err := s.Get(ctx, dreamID)
	if err != nil {
		return false, err
	}
	return dream.HasReaction(userID), nil
}

func (s *DreamService) CountByKind(ctx context.Context, dreamID, kind string) (int, error) {
	dream, err := s.Get(ctx, dreamID)
	if err != nil {
		return 0, err
	}
	return dream.ReactionCount(kind), nil
}

func (s *DreamService) TotalCount(ctx context.Context, dreamID string) (int, error) {
	dream, err := s.Get(ctx, dreamID)
	if err != nil {
		return 0, err
	}
	return dream.TotalReactionCount(), nil
}

func (s *DreamService) record(a domain.Activity) {
	if s.recorder != nil {
		s.recorder.Record(a)
	}
}
