package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken("user-1", "requester", time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	sub, role, err := ExtractActorFromToken(token)
	if err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}
	if sub != "user-1" || role != "requester" {
		t.Fatalf("unexpected claims: sub=%q role=%q", sub, role)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken("user-1", "requester", -time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if _, _, err := ExtractActorFromToken(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken("user-1", "requester", time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if _, _, err := ExtractActorFromToken(token + "x"); err == nil {
		t.Fatalf("expected tampered token to be rejected")
	}
}

func TestHashToken(t *testing.T) {
	t.Parallel()

	h := HashToken("some-token")
	if len(h) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(h))
	}
	if h != HashToken("some-token") {
		t.Fatalf("hash must be deterministic")
	}
	if h == HashToken("other-token") {
		t.Fatalf("different tokens must not collide")
	}
}
