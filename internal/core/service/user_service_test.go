package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
	"github.com/dreamblog/dreamblog-api/internal/core/ports"
)

type stubUserRepo struct {
	createFn         func(ctx context.Context, user *domain.User) (*domain.User, error)
	findByIDFn       func(ctx context.Context, id string) (*domain.User, error)
	findByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	findByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	updateFn         func(ctx context.Context, user *domain.User) error
	deleteFn         func(ctx context.Context, id string) error
	setLastLoginFn   func(ctx context.Context, id string, at time.Time) error
	setActiveFn      func(ctx context.Context, id string, active bool) error
	listFn           func(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error)
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if s.createFn == nil {
		return user, nil
	}
	return s.createFn(ctx, user)
}

func (s *stubUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if s.findByIDFn == nil {
		return nil, domain.ErrUserNotFound
	}
	return s.findByIDFn(ctx, id)
}

func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if s.findByUsernameFn == nil {
		return nil, domain.ErrUserNotFound
	}
	return s.findByUsernameFn(ctx, username)
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.findByEmailFn == nil {
		return nil, domain.ErrUserNotFound
	}
	return s.findByEmailFn(ctx, email)
}

func (s *stubUserRepo) Update(ctx context.Context, user *domain.User) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, user)
}

func (s *stubUserRepo) Delete(ctx context.Context, id string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, id)
}

func (s *stubUserRepo) SetLastLogin(ctx context.Context, id string, at time.Time) error {
	if s.setLastLoginFn == nil {
		return nil
	}
	return s.setLastLoginFn(ctx, id, at)
}

func (s *stubUserRepo) SetActive(ctx context.Context, id string, active bool) error {
	if s.setActiveFn == nil {
		return nil
	}
	return s.setActiveFn(ctx, id, active)
}

func (s *stubUserRepo) List(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	if s.listFn == nil {
		return nil, 0, nil
	}
	return s.listFn(ctx, filter)
}

type stubThrottle struct {
	blocked  bool
	failures int
	resets   int
}

func (s *stubThrottle) IsBlocked(ctx context.Context, username string) (bool, error) {
	return s.blocked, nil
}

func (s *stubThrottle) RecordFailure(ctx context.Context, username string) error {
	s.failures++
	return nil
}

func (s *stubThrottle) Reset(ctx context.Context, username string) error {
	s.resets++
	return nil
}

func newTestUserService(repo ports.UserRepository, throttle LoginThrottle) *UserService {
	codec := NewTokenCodec("test-secret", time.Hour)
	return NewUserService(repo, codec, throttle, "admin-key", zerolog.Nop())
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(hash)
}

func TestUserService_Register_Defaults(t *testing.T) {
	var stored *domain.User
	repo := &stubUserRepo{
		createFn: func(ctx context.Context, user *domain.User) (*domain.User, error) {
			stored = user
			user.ID = "u1"
			return user, nil
		},
	}
	svc := newTestUserService(repo, nil)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22!",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %q", user.Role)
	}
	if !user.IsActive {
		t.Fatalf("expected new account to be active")
	}
	if stored.PasswordHash == "hunter22!" || stored.PasswordHash == "" {
		t.Fatalf("password stored without hashing")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter22!")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_Register_UsernameTaken(t *testing.T) {
	repo := &stubUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: "u1", Username: username}, nil
		},
	}
	svc := newTestUserService(repo, nil)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22!",
	})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserService_Register_EmailTaken(t *testing.T) {
	repo := &stubUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "u1", Email: email}, nil
		},
	}
	svc := newTestUserService(repo, nil)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22!",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_Register_AdminRequiresKey(t *testing.T) {
	svc := newTestUserService(&stubUserRepo{}, nil)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "root",
		Email:    "root@example.com",
		Password: "hunter22!",
		Role:     domain.RoleAdmin,
		AdminKey: "wrong",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for wrong admin key, got %v", err)
	}

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "root",
		Email:    "root@example.com",
		Password: "hunter22!",
		Role:     domain.RoleAdmin,
		AdminKey: "admin-key",
	})
	if err != nil {
		t.Fatalf("register admin: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %q", user.Role)
	}
}

func TestUserService_Login_Success(t *testing.T) {
	hash := mustHash(t, "hunter22!")
	lastLoginSet := false
	repo := &stubUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: "u1", Username: username, PasswordHash: hash, IsActive: true}, nil
		},
		setLastLoginFn: func(ctx context.Context, id string, at time.Time) error {
			lastLoginSet = true
			return nil
		},
	}
	throttle := &stubThrottle{}
	svc := newTestUserService(repo, throttle)

	token, user, err := svc.Login(context.Background(), "alice", "hunter22!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
	if !lastLoginSet {
		t.Fatalf("expected last login to be recorded")
	}
	if user.LastLogin == nil {
		t.Fatalf("expected LastLogin to be populated")
	}
	if throttle.resets != 1 {
		t.Fatalf("expected throttle reset once, got %d", throttle.resets)
	}

	subject, err := svc.codec.Verify(token, time.Now().UTC())
	if err != nil {
		t.Fatalf("verify minted token: %v", err)
	}
	if subject != "alice" {
		t.Fatalf("expected subject alice, got %q", subject)
	}
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	hash := mustHash(t, "hunter22!")
	repo := &stubUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: "u1", Username: username, PasswordHash: hash}, nil
		},
	}
	throttle := &stubThrottle{}
	svc := newTestUserService(repo, throttle)

	_, _, err := svc.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if throttle.failures != 1 {
		t.Fatalf("expected one recorded failure, got %d", throttle.failures)
	}
}

func TestUserService_Login_UnknownUserCollapses(t *testing.T) {
	svc := newTestUserService(&stubUserRepo{}, nil)

	_, _, err := svc.Login(context.Background(), "ghost", "whatever1")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestUserService_Login_Throttled(t *testing.T) {
	hash := mustHash(t, "hunter22!")
	repo := &stubUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: "u1", Username: username, PasswordHash: hash}, nil
		},
	}
	svc := newTestUserService(repo, &stubThrottle{blocked: true})

	_, _, err := svc.Login(context.Background(), "alice", "hunter22!")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected throttled login to fail with ErrInvalidCredentials, got %v", err)
	}
}

// A profile update that keeps the current username must not trip the taken
// check against the user's own record, and a changed username must be
// compared against the incoming value rather than the stored one.
func TestUserService_Update_UsernameComparison(t *testing.T) {
	existing := &domain.User{ID: "u1", Username: "alice", Email: "alice@example.com"}
	repo := &stubUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			u := *existing
			return &u, nil
		},
		findByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			if username == "taken" {
				return &domain.User{ID: "u2", Username: "taken"}, nil
			}
			return nil, domain.ErrUserNotFound
		},
	}
	svc := newTestUserService(repo, nil)
	caller := domain.Identity{UserID: "u1", Username: "alice", Role: domain.RoleUser}

	// Same username: no conflict even though FindByUsername would return the
	// caller's own record.
	same := "alice"
	bio := "dreamer"
	user, err := svc.Update(context.Background(), caller, "u1", ports.UpdateUserInput{Username: &same, Bio: &bio})
	if err != nil {
		t.Fatalf("update with unchanged username: %v", err)
	}
	if user.Bio != "dreamer" {
		t.Fatalf("expected bio applied, got %q", user.Bio)
	}

	// New, free username: applied.
	fresh := "alice2"
	user, err = svc.Update(context.Background(), caller, "u1", ports.UpdateUserInput{Username: &fresh})
	if err != nil {
		t.Fatalf("update to free username: %v", err)
	}
	if user.Username != "alice2" {
		t.Fatalf("expected username changed, got %q", user.Username)
	}

	// Taken username: rejected.
	taken := "taken"
	if _, err := svc.Update(context.Background(), caller, "u1", ports.UpdateUserInput{Username: &taken}); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserService_Update_Forbidden(t *testing.T) {
	svc := newTestUserService(&stubUserRepo{}, nil)
	caller := domain.Identity{UserID: "u2", Role: domain.RoleUser}

	bio := "x"
	if _, err := svc.Update(context.Background(), caller, "u1", ports.UpdateUserInput{Bio: &bio}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserService_Activate_Toggles(t *testing.T) {
	repo := &stubUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: "u1", Username: username, IsActive: true}, nil
		},
	}
	svc := newTestUserService(repo, nil)

	admin := domain.Identity{UserID: "a1", Role: domain.RoleAdmin}
	active, err := svc.Activate(context.Background(), admin, "alice")
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if active {
		t.Fatalf("expected toggle from active to inactive")
	}

	user := domain.Identity{UserID: "u2", Role: domain.RoleUser}
	if _, err := svc.Activate(context.Background(), user, "alice"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}
}

func TestUserService_List_AdminOnly(t *testing.T) {
	var gotFilter ports.ListUsersFilter
	repo := &stubUserRepo{
		listFn: func(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
			gotFilter = filter
			return []*domain.User{{ID: "u1"}}, 1, nil
		},
	}
	svc := newTestUserService(repo, nil)

	if _, _, err := svc.List(context.Background(), domain.Identity{Role: domain.RoleUser}, ports.ListUsersFilter{}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}

	users, total, err := svc.List(context.Background(), domain.Identity{Role: domain.RoleAdmin}, ports.ListUsersFilter{Page: 0, Limit: 500})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 1 || total != 1 {
		t.Fatalf("unexpected result: %d users, total %d", len(users), total)
	}
	if gotFilter.Page != 1 || gotFilter.Limit != 100 {
		t.Fatalf("expected filter normalised to page 1 limit 100, got %+v", gotFilter)
	}
}
