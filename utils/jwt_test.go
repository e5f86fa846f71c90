package utils

import (
	"testing"
	"time"

	"github.com/Marcelmutsaarts/Dialink/config"
)

func TestTokenRoundTrip(t *testing.T) {
	config.SetForTesting(config.AppConfig{JWTSecret: "test-secret"})

	token, err := GenerateToken("u-123", "alice", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "u-123" || claims.Username != "alice" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	config.SetForTesting(config.AppConfig{JWTSecret: "test-secret"})

	if _, err := ParseToken("not.a.token"); err == nil {
		t.Fatal("expected an error for a malformed token")
	}
}
