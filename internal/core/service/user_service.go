package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
	"github.com/dreamblog/dreamblog-api/internal/core/ports"
)

// LoginThrottle abstracts the failed-attempt counter (Redis). A nil checker
// disables throttling; check errors are logged and ignored so a Redis outage
// never locks users out.
type LoginThrottle interface {
	IsBlocked(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// UserService implements registration, login, and account management.
type UserService struct {
	repo     ports.UserRepository
	codec    *TokenCodec
	throttle LoginThrottle
	adminKey string
	log      zerolog.Logger
}

func NewUserService(repo ports.UserRepository, codec *TokenCodec, throttle LoginThrottle, adminKey string, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, codec: codec, throttle: throttle, adminKey: adminKey, log: log}
}

// Register creates an account after checking the username and email are
// free. The password is hashed before it ever touches the repository; the
// unique indexes on the users collection remain as a backstop against a
// concurrent registration winning the race between check and insert.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}
	if role == domain.RoleAdmin && (s.adminKey == "" || in.AdminKey != s.adminKey) {
		return nil, domain.ErrForbidden
	}

	if _, err := s.repo.FindByUsername(ctx, in.Username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Authenticate verifies a username/password pair. bcrypt's comparison is
// constant-time. A successful login records lastLogin as a side effect.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.repo.SetLastLogin(ctx, user.ID, now); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to record last login")
	} else {
		user.LastLogin = &now
	}

	return user, nil
}

// Login authenticates and mints a token with the username as subject.
// Unknown-user and bad-password outcomes collapse into ErrInvalidCredentials
// so responses do not reveal which usernames exist.
func (s *UserService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.IsBlocked(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("login throttle check failed, proceeding")
		} else if blocked {
			return "", nil, domain.ErrInvalidCredentials
		}
	}

	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		if s.throttle != nil && (errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrUserNotFound)) {
			if terr := s.throttle.RecordFailure(ctx, username); terr != nil {
				s.log.Warn().Err(terr).Str("username", username).Msg("failed to record login failure")
			}
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	token, err := s.codec.Issue(user.Username, time.Now().UTC())
	if err != nil {
		return "", nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("failed to reset login throttle")
		}
	}

	s.log.Info().Str("username", user.Username).Msg("user logged in")
	return token, user, nil
}

// Update applies a partial profile update. Username and email changes are
// compared against the incoming values and go through taken checks before
// being applied.
func (s *UserService) Update(ctx context.Context, caller domain.Identity, userID string, in ports.UpdateUserInput) (*domain.User, error) {
	if caller.UserID != userID && !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil && *in.Username != user.Username {
		if _, err := s.repo.FindByUsername(ctx, *in.Username); err == nil {
			return nil, domain.ErrUsernameTaken
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Username = *in.Username
	}
	if in.Email != nil && *in.Email != user.Email {
		if _, err := s.repo.FindByEmail(ctx, *in.Email); err == nil {
			return nil, domain.ErrEmailTaken
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Email = *in.Email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.Country != nil {
		user.Country = *in.Country
	}
	if in.City != nil {
		user.City = *in.City
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account. Only the account owner or an admin may delete.
func (s *UserService) Delete(ctx context.Context, caller domain.Identity, userID string) error {
	if caller.UserID != userID && !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Str("deleted_by", caller.UserID).Msg("user deleted")
	return nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user *domain.User
	err := retryOnTimeout(ctx, func() error {
		var ferr error
		user, ferr = s.repo.FindByID(ctx, id)
		return ferr
	})
	return user, err
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user *domain.User
	err := retryOnTimeout(ctx, func() error {
		var ferr error
		user, ferr = s.repo.FindByUsername(ctx, username)
		return ferr
	})
	return user, err
}

// Activate toggles the isActive flag and returns the new value. Admin only.
func (s *UserService) Activate(ctx context.Context, caller domain.Identity, username string) (bool, error) {
	if !caller.IsAdmin() {
		return false, domain.ErrForbidden
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return false, err
	}

	next := !user.IsActive
	if err := s.repo.SetActive(ctx, user.ID, next); err != nil {
		return false, err
	}

	s.log.Info().Str("username", username).Bool("active", next).Msg("user activation toggled")
	return next, nil
}

// List returns a page of users. Admin only.
func (s *UserService) List(ctx context.Context, caller domain.Identity, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	if !caller.IsAdmin() {
		return nil, 0, domain.ErrForbidden
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 100
	}
	return s.repo.List(ctx, filter)
}
