package util

import (
	"testing"
)

func TestConvertStringToInt32(t *testing.T) {
	v, err := ConvertStringToInt32("42")
	if err != nil {
		t.Fatalf("Error converting: %v", err)
	}
	if v != 42 {
		t.Errorf("Expected 42, but got: %d", v)
	}

	if _, err := ConvertStringToInt32("not-a-number"); err == nil {
		t.Error("Expected error for non-numeric input")
	}
	if _, err := ConvertStringToInt32("99999999999"); err == nil {
		t.Error("Expected error for overflow")
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"alice@example.com", "a.b+tag@sub.example.org"}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("Expected %s to be valid", email)
		}
	}

	invalid := []string{"", "not-an-email", "@example.com", "alice@"}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("Expected %s to be invalid", email)
		}
	}
}

func TestRandomToken(t *testing.T) {
	a, err := RandomToken(32)
	if err != nil {
		t.Fatalf("Error generating token: %v", err)
	}
	if len(a) != 64 {
		t.Errorf("Expected 64 hex chars, but got: %d", len(a))
	}

	b, err := RandomToken(32)
	if err != nil {
		t.Fatalf("Error generating token: %v", err)
	}
	if a == b {
		t.Error("Expected two tokens to differ")
	}
}

func TestHasPrefixes(t *testing.T) {
	if !HasPrefixes("/api/v1/books", "/api/v1", "/opds") {
		t.Error("Expected prefix match")
	}
	if HasPrefixes("/healthcheck", "/api/v1", "/opds") {
		t.Error("Expected no prefix match")
	}
}
