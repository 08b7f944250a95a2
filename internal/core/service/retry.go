package service

import (
	"context"
	"errors"

	"github.com/dreamblog/dreamblog-api/internal/core/domain"
)

// storageAttempts bounds automatic retries of timed-out storage calls.
// Timeouts are the only retryable error kind; everything else is terminal
// for the current request.
const storageAttempts = 2

func retryOnTimeout(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < storageAttempts; attempt++ {
		err = fn()
		if !errors.Is(err, domain.ErrStorageTimeout) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
	}
	return err
}
