package ports

import (
	"context"
	"time"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
)

// ListUsersFilter carries pagination for the admin user listing.
type ListUsersFilter struct {
	Page  int // 1-based
	Limit int // capped at 100 by the service
}

// UserRepository defines persistence operations for user accounts.
// Uniqueness of username and email is enforced by the storage layer; Create
// surfaces violations as domain.ErrUsernameTaken / domain.ErrEmailTaken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	// SetLastLogin records a successful authentication as a single atomic write.
	SetLastLogin(ctx context.Context, id string, at time.Time) error
	// SetActive flips the activation flag.
	SetActive(ctx context.Context, id string, active bool) error
	// List returns a page of users and the total count.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
}
