package ports

import (
	"context"
	"time"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
)

// DreamRepository defines persistence for dreams and their embedded
// reactions. SetReaction and RemoveReaction operate atomically on the
// reactions array so concurrent calls for the same (dream, user) pair
// converge to at most one stored reaction.
type DreamRepository interface {
	Create(ctx context.Context, dream *domain.Dream) (*domain.Dream, error)
	FindByID(ctx context.Context, id string) (*domain.Dream, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*domain.Dream, error)
	ListPublic(ctx context.Context) ([]*domain.Dream, error)
	Update(ctx context.Context, dream *domain.Dream) error
	Delete(ctx context.Context, id string) error
	// SetReaction replaces the user's existing reaction or appends a new one.
	SetReaction(ctx context.Context, dreamID, userID, kind string, at time.Time) error
	// RemoveReaction pulls the user's reaction; absence is not an error.
	RemoveReaction(ctx context.Context, dreamID, userID string) error
}
