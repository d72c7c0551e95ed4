package auth

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"
)

func TestHMACStrategyRoundTrip(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Hour})

	token, err := strategy.IssueToken(42)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	userID, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if userID != 42 {
		t.Fatalf("userID = %d, want 42", userID)
	}
}

func TestHMACStrategyRejectsTampering(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Hour})

	token, err := strategy.IssueToken(42)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("decode token: %v", err)
	}
	// Swap the user id, keep the original signature.
	tampered := base64.StdEncoding.EncodeToString(append([]byte("1"), raw[2:]...))

	if _, err := strategy.ParseToken(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestHMACStrategyRejectsGarbage(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Hour})

	for _, token := range []string{"", "not-base64!!", base64.StdEncoding.EncodeToString([]byte("no:colons"))} {
		if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q err = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestHMACStrategyRejectsExpired(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: -time.Hour})

	token, err := strategy.IssueToken(42)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken for an expired token", err)
	}
}

func TestHMACStrategyRejectsForeignSecret(t *testing.T) {
	issuer := NewHMACStrategy("secret-a", Options{TTL: time.Hour})
	verifier := NewHMACStrategy("secret-b", Options{TTL: time.Hour})

	token, err := issuer.IssueToken(42)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := verifier.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken across secrets", err)
	}
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("secret")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "secret" {
		t.Fatal("password stored in the clear")
	}

	if err := hasher.Compare(hash, "secret"); err != nil {
		t.Fatalf("Compare with correct password: %v", err)
	}
	if err := hasher.Compare(hash, "wrong"); err == nil {
		t.Fatal("Compare accepted a wrong password")
	}
}
