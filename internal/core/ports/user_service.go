package ports

import (
	"context"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
)

// RegisterInput holds everything needed to create an account. AdminKey is
// only consulted when Role is admin.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
	AdminKey  string
}

// UpdateUserInput is a partial profile update. Nil pointers mean "leave the
// field alone"; username and email changes go through taken checks.
type UpdateUserInput struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Country   *string
	City      *string
}

// UserService covers registration, login, and account management.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Authenticate verifies a username/password pair and records last login.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	// Login authenticates and mints a signed token for the username.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Update(ctx context.Context, caller domain.Identity, userID string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, caller domain.Identity, userID string) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// Activate toggles the isActive flag and returns the new value.
	Activate(ctx context.Context, caller domain.Identity, username string) (bool, error)
	List(ctx context.Context, caller domain.Identity, filter ListUsersFilter) ([]*domain.User, int64, error)
}
