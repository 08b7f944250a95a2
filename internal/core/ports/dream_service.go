package ports

import (
	"context"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
)

// CreateDreamInput carries a new dream's content.
type CreateDreamInput struct {
	Title      string
	Content    string
	Tags       []string
	Visibility string
}

// UpdateDreamInput is a partial dream update; nil means "leave alone".
type UpdateDreamInput struct {
	Title      *string
	Content    *string
	Tags       *[]string
	Visibility *string
}

// DreamService covers dream CRUD and the reaction ledger.
type DreamService interface {
	Create(ctx context.Context, caller domain.Identity, in CreateDreamInput) (*domain.Dream, error)
	Get(ctx context.Context, id string) (*domain.Dream, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*domain.Dream, error)
	ListPublic(ctx context.Context) ([]*domain.Dream, error)
	Update(ctx context.Context, caller domain.Identity, id string, in UpdateDreamInput) (*domain.Dream, error)
	Delete(ctx context.Context, caller domain.Identity, id string) error

	// React inserts or replaces the caller's reaction on a dream.
	React(ctx context.Context, dreamID, userID, kind string) error
	// Unreact removes the caller's reaction; a no-op when none exists.
	Unreact(ctx context.Context, dreamID, userID string) error
	HasReacted(ctx context.Context, dreamID, userID string) (bool, error)
	// CountByKind matches kind case-insensitively.
	CountByKind(ctx context.Context, dreamID, kind string) (int, error)
	TotalCount(ctx context.Context, dreamID string) (int, error)
}
