package domain

import (
	"errors"
	"fmt"
	"testing"
)

// The error catalogue is matched with errors.Is throughout the services and
// the HTTP error handler; every sentinel must survive wrapping and never
// alias another.
func TestErrorSentinels(t *testing.T) {
	sentinels := []error{
		ErrUserNotFound,
		ErrDreamNotFound,
		ErrCommentNotFound,
		ErrUsernameTaken,
		ErrEmailTaken,
		ErrInvalidCredentials,
		ErrForbidden,
		ErrSelfFollow,
		ErrAlreadyFollowing,
		ErrNotFollowing,
		ErrInvalidReaction,
		ErrTokenMalformed,
		ErrTokenSignatureInvalid,
		ErrTokenExpired,
		ErrStorageTimeout,
	}

	for i, err := range sentinels {
		if err == nil || err.Error() == "" {
			t.Fatalf("sentinel %d is nil or has no message", i)
		}
		wrapped := fmt.Errorf("find user: %w", err)
		if !errors.Is(wrapped, err) {
			t.Fatalf("%v: wrapping breaks errors.Is", err)
		}
		for j, other := range sentinels {
			if i != j && errors.Is(err, other) {
				t.Fatalf("%v aliases %v", err, other)
			}
		}
	}
}
