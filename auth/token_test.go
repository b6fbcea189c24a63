package auth

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateAccessToken("ada", 42, time.Now().Add(time.Hour), secret)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := ParseAccessToken(token, secret)
	if err != nil {
		t.Fatalf("Failed to parse token: %v", err)
	}
	if claims.Name != "ada" {
		t.Errorf("Unexpected name %q", claims.Name)
	}
	if claims.Subject != "42" {
		t.Errorf("Unexpected subject %q", claims.Subject)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken("ada", 42, time.Now().Add(time.Hour), []byte("secret-a"))
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if _, err := ParseAccessToken(token, []byte("secret-b")); err == nil {
		t.Fatal("Expected error for wrong secret")
	}
}

func TestAccessTokenExpired(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateAccessToken("ada", 42, time.Now().Add(-time.Hour), secret)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if _, err := ParseAccessToken(token, secret); err == nil {
		t.Fatal("Expected error for expired token")
	}
}
