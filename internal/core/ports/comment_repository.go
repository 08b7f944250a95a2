package ports

import (
	"context"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
)

// CommentRepository defines persistence for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	// ListByDream returns comments in ascending creation order.
	ListByDream(ctx context.Context, dreamID string) ([]*domain.Comment, error)
	Delete(ctx context.Context, id string) error
}

// CommentService covers the comment flows around dreams.
type CommentService interface {
	Add(ctx context.Context, caller domain.Identity, dreamID, content string) (*domain.Comment, error)
	ListByDream(ctx context.Context, dreamID string) ([]*domain.Comment, error)
	Delete(ctx context.Context, caller domain.Identity, commentID string) error
}
