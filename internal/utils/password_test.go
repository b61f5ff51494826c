package utils

import (
	"testing"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret1" {
		t.Fatal("hash must not equal the password")
	}
	if !CheckPasswordHash("secret1", hash) {
		t.Error("correct password should verify")
	}
	if CheckPasswordHash("secret2", hash) {
		t.Error("wrong password should not verify")
	}
}
