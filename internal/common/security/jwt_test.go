package security

import (
	"testing"
	"time"

	"staynest/internal/platform/config"
)

func initTestJWT(t *testing.T, secret string, exp time.Duration) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey: []byte(secret),
		JWTExp: exp,
	}
	InitJWT()
}

func TestGenerateAndVerifyToken(t *testing.T) {
	initTestJWT(t, "test-secret", time.Hour)

	token, err := GenerateToken("user-123", "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken() returned empty string")
	}

	claims, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken() unexpected error: %v", err)
	}

	userID, err := GetUserIDFromClaims(claims)
	if err != nil {
		t.Fatalf("GetUserIDFromClaims() unexpected error: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("user_id claim = %q, want %q", userID, "user-123")
	}

	email, err := GetEmailFromClaims(claims)
	if err != nil {
		t.Fatalf("GetEmailFromClaims() unexpected error: %v", err)
	}
	if email != "alice@example.com" {
		t.Errorf("email claim = %q, want %q", email, "alice@example.com")
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	initTestJWT(t, "test-secret", time.Hour)

	if _, err := VerifyToken("not-a-token"); err == nil {
		t.Error("VerifyToken() expected error for structural garbage")
	}
	if _, err := VerifyToken(""); err == nil {
		t.Error("VerifyToken() expected error for empty token")
	}
}

func TestVerifyTokenTampered(t *testing.T) {
	initTestJWT(t, "test-secret", time.Hour)

	token, err := GenerateToken("user-123", "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	// Mutate a single character in the payload segment
	mid := len(token) / 2
	mutated := byte('A')
	if token[mid] == 'A' {
		mutated = 'B'
	}
	tampered := token[:mid] + string(mutated) + token[mid+1:]
	if tampered == token {
		t.Fatal("tampering did not change the token")
	}

	if _, err := VerifyToken(tampered); err == nil {
		t.Error("VerifyToken() expected error for tampered token")
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	initTestJWT(t, "correct-secret", time.Hour)
	token, err := GenerateToken("user-123", "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	initTestJWT(t, "wrong-secret", time.Hour)
	if _, err := VerifyToken(token); err == nil {
		t.Error("VerifyToken() expected error for token signed with another secret")
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	initTestJWT(t, "test-secret", -time.Minute)

	token, err := GenerateToken("user-123", "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	if _, err := VerifyToken(token); err == nil {
		t.Error("VerifyToken() expected error for stale token")
	}
}
