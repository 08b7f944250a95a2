// Package redis backs the login throttle with a shared Redis instance and
// exposes the connectivity helpers the readiness probe relies on.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 5 * time.Second

// Config captures the settings for the throttle's Redis connection. The
// throttle keys are namespaced, so a dedicated DB is optional.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect initialises a Redis client and verifies it is reachable before
// handing it out. A failed ping here aborts startup; once running, Redis
// outages are tolerated (the throttle degrades to allowing logins).
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	if err := Healthcheck(ctx, client, timeout); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}

// Healthcheck pings the client within the given timeout. Shared between
// startup and the readiness probe so both judge connectivity the same way.
func Healthcheck(ctx context.Context, client *redis.Client, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
