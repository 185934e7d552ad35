package auth_test

import (
	"testing"

	"github.com/pandu-magang/pandu-backend/internal/pkg/auth"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("Pandu#2025")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "Pandu#2025" {
		t.Fatal("hash equals the plaintext password")
	}

	if !auth.CheckPassword(hash, "Pandu#2025") {
		t.Error("CheckPassword with correct password = false, want true")
	}
	if auth.CheckPassword(hash, "wrong-password") {
		t.Error("CheckPassword with wrong password = true, want false")
	}
}
