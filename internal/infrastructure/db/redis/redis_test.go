package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestHealthcheck_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	if err := Healthcheck(context.Background(), client, 200*time.Millisecond); err == nil {
		t.Fatalf("expected ping against unreachable server to fail")
	}
}

func TestConnect_UnreachableServer(t *testing.T) {
	start := time.Now()
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	if err == nil {
		t.Fatalf("expected connect to fail")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("connect did not respect its timeout, took %v", elapsed)
	}
}
