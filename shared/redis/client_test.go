package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := NewRedisClient([]string{mr.Addr()}, "")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer rdb.Close()

	if err := rdb.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := mr.Get("k"); got != "v" {
		t.Fatalf("expected v, got %q", got)
	}
}

func TestNewRedisClientErrors(t *testing.T) {
	if _, err := NewRedisClient(nil, ""); err == nil {
		t.Fatal("expected error for empty address list")
	}

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	if _, err := NewRedisClient([]string{addr}, ""); err == nil {
		t.Fatal("expected error for unreachable server")
	}
}
