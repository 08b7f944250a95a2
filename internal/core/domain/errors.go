package domain

import "errors"

// Sentinel errors shared across the service and storage layers. Callers
// match them with errors.Is; the HTTP boundary maps them to status codes.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrDreamNotFound   = errors.New("dream not found")
	ErrCommentNotFound = errors.New("comment not found")

	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already taken")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")

	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")

	ErrInvalidReaction = errors.New("invalid reaction kind")
)

// Token verification failures. The authentication gate treats all three the
// same way (anonymous fallthrough); they stay distinct for logging and tests.
var (
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
)

// ErrStorageTimeout marks a storage call that exceeded its deadline. It is
// the only error kind callers may retry automatically.
var ErrStorageTimeout = errors.New("storage operation timed out")
