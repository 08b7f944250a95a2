package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
	"github.com/dreamblog/dreamblog-api/internal/core/ports"
)

// CommentService handles the comment flows around dreams.
type CommentService struct {
	repo   ports.CommentRepository
	dreams ports.DreamRepository
	log    zerolog.Logger
}

func NewCommentService(repo ports.CommentRepository, dreams ports.DreamRepository, log zerolog.Logger) *CommentService {
	return &CommentService{repo: repo, dreams: dreams, log: log}
}

func (s *CommentService) Add(ctx context.Context, caller domain.Identity, dreamID, content string) (*domain.Comment, error) {
	if _, err := s.dreams.FindByID(ctx, dreamID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		DreamID:   dreamID,
		UserID:    caller.UserID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	return s.repo.Create(ctx, comment)
}

func (s *CommentService) ListByDream(ctx context.Context, dreamID string) ([]*domain.Comment, error) {
	if _, err := s.dreams.FindByID(ctx, dreamID); err != nil {
		return nil, err
	}
	return s.repo.ListByDream(ctx, dreamID)
}

// Delete removes a comment. Only its author or an admin may delete.
func (s *CommentService) Delete(ctx context.Context, caller domain.Identity, commentID string) error {
	comment, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != caller.UserID && !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, commentID)
}
