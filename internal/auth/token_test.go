package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer("super-secret", time.Hour)
	userID := uuid.New()

	tok, err := issuer.Issue(userID, "alice01", "user")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := issuer.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("userID mismatch: got %s want %s", claims.UserID, userID)
	}
	if claims.Username != "alice01" {
		t.Fatalf("username mismatch: got %q", claims.Username)
	}
	if claims.Role != "user" {
		t.Fatalf("role mismatch: got %q", claims.Role)
	}
}

func TestIssue_ValidityWindowIsOneHour(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer("super-secret", time.Hour)
	tok, err := issuer.Issue(uuid.New(), "alice01", "user")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := issuer.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got := claims.Expiry.Sub(claims.IssuedAt); got != time.Hour {
		t.Fatalf("validity window: got %v want %v", got, time.Hour)
	}
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	t.Parallel()

	issued := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewIssuer("super-secret", time.Hour)
	issuer.now = func() time.Time { return issued }

	tok, err := issuer.Issue(uuid.New(), "alice01", "user")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	issuer.now = func() time.Time { return issued.Add(59 * time.Minute) }
	if _, err := issuer.Verify(tok); err != nil {
		t.Fatalf("token rejected 59 minutes after issue: %v", err)
	}

	// Validity is strictly before expiry
	issuer.now = func() time.Time { return issued.Add(time.Hour) }
	if _, err := issuer.Verify(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken exactly at expiry, got %v", err)
	}

	issuer.now = func() time.Time { return issued.Add(61 * time.Minute) }
	if _, err := issuer.Verify(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken 61 minutes after issue, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer("secret", -1*time.Second)
	tok, err := issuer.Issue(uuid.New(), "alice01", "user")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := issuer.Verify(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewIssuer("right-secret", time.Hour).Issue(uuid.New(), "alice01", "user")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := NewIssuer("wrong-secret", time.Hour).Verify(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := NewIssuer("k", time.Hour).Verify("not.a.jwt"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}
