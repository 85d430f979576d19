package auth

import (
	"testing"
	"time"
)

func testManager(expiry time.Duration) *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret: "test-secret-do-not-use",
		Expiry: expiry,
		Issuer: "admin-console-test",
	})
}

func TestTokenRoundTrip(t *testing.T) {
	m := testManager(time.Hour)

	token, err := m.GenerateToken(42, "ops_lead", 2, 917)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.AdminID != 42 {
		t.Errorf("AdminID = %d, want 42", claims.AdminID)
	}
	if claims.Username != "ops_lead" {
		t.Errorf("Username = %q, want ops_lead", claims.Username)
	}
	if claims.RoleLevel != 2 {
		t.Errorf("RoleLevel = %d, want 2", claims.RoleLevel)
	}
	if claims.LoginLogID != 917 {
		t.Errorf("LoginLogID = %d, want 917", claims.LoginLogID)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	m := testManager(-time.Minute)

	token, err := m.GenerateToken(1, "root", 1, 0)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := m.ValidateToken(token); err != ErrExpiredToken {
		t.Errorf("ValidateToken error = %v, want ErrExpiredToken", err)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	m := testManager(time.Hour)
	other := NewJWTManager(JWTConfig{Secret: "different-secret", Expiry: time.Hour, Issuer: "admin-console-test"})

	token, err := m.GenerateToken(1, "root", 1, 0)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("token signed with one secret validated by another")
	}
}
