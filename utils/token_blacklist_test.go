package utils

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestBlacklistWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	SetRedisForTesting(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer SetRedisForTesting(nil)

	token := "redis-backed-token"
	BlacklistToken(token, time.Now().Add(time.Hour))

	if !IsTokenBlacklisted(token) {
		t.Fatal("token not blacklisted")
	}
	if IsTokenBlacklisted("some-other-token") {
		t.Fatal("unrelated token reported as blacklisted")
	}

	// Redis entries expire with the token.
	mr.FastForward(2 * time.Hour)
	if IsTokenBlacklisted(token) {
		t.Fatal("token still blacklisted after expiry")
	}
}

func TestBlacklistInMemoryFallback(t *testing.T) {
	SetRedisForTesting(nil)

	token := "memory-token"
	BlacklistToken(token, time.Now().Add(time.Hour))
	if !IsTokenBlacklisted(token) {
		t.Fatal("token not blacklisted via in-memory fallback")
	}

	BlacklistToken("already-expired", time.Now().Add(-time.Minute))
	if IsTokenBlacklisted("already-expired") {
		t.Fatal("expired token should never enter the blacklist")
	}
}
