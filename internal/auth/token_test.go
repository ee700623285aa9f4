package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", time.Hour)

	token, exp, err := tm.Issue("user-123", "user@example.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if until := time.Until(exp); until < 59*time.Minute || until > time.Hour {
		t.Fatalf("expiry %v not within configured window", until)
	}

	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.Subject != "user-123" {
		t.Fatalf("subject mismatch: got %q want %q", claims.Subject, "user-123")
	}
	if claims.Email != "user@example.com" {
		t.Fatalf("email mismatch: got %q want %q", claims.Email, "user@example.com")
	}
}

func TestTokenManager_VerifyExpired(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", time.Hour)

	// Sign a token whose validity window has already elapsed.
	past := time.Now().Add(-2 * time.Hour)
	claims := &Claims{
		Email: "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing expired token: %v", err)
	}

	if _, err := tm.Verify(expired); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenManager_VerifyWrongSecret(t *testing.T) {
	t.Parallel()

	token, _, err := NewTokenManager("right-secret", time.Hour).Issue("u1", "u1@example.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := NewTokenManager("wrong-secret", time.Hour).Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenManager_VerifyTamperedPayload(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", time.Hour)
	token, _, err := tm.Issue("u1", "u1@example.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	parts := strings.Split(token, ".")
	parts[1] = "eyJzdWIiOiJzb21lb25lLWVsc2UifQ"
	if _, err := tm.Verify(strings.Join(parts, ".")); err == nil {
		t.Fatal("expected error for tampered payload, got nil")
	}
}

func TestTokenManager_VerifyMalformed(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", time.Hour)

	if _, err := tm.Verify("not.a.jwt"); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
	if _, err := tm.Verify(""); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for empty token, got %v", err)
	}
}
