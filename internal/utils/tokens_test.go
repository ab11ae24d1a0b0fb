package utils

import "testing"

func TestNewRefreshToken(t *testing.T) {
	a, err := NewRefreshToken(32)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}

	b, err := NewRefreshToken(32)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if a == b {
		t.Error("tokens should be unique")
	}
}

func TestNewRefreshTokenDefaultsSize(t *testing.T) {
	tok, err := NewRefreshToken(0)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if len(tok) != 64 {
		t.Errorf("expected default 256-bit token, got %d hex chars", len(tok))
	}
}
