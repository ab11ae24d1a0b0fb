package services

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	auth := NewAuthService()

	hash, err := auth.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", hash)
	}
	if err := auth.CheckPassword(hash, "hunter22"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := auth.CheckPassword(hash, "hunter23"); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestHashIsSalted(t *testing.T) {
	auth := NewAuthService()

	h1, err := auth.HashPassword("same-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h2, err := auth.HashPassword("same-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ")
	}
}
