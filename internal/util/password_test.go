package util

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "" || hash == "s3cret-pass" {
		t.Fatalf("expected irreversible hash, got %q", hash)
	}
	if !VerifyPassword("s3cret-pass", hash) {
		t.Fatalf("expected password verification to succeed")
	}
	if VerifyPassword("wrong-pass", hash) {
		t.Fatalf("expected password verification to fail for wrong password")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	second, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct hashes for the same password")
	}
}

func TestHashPasswordEmptyInput(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatalf("expected error when password empty")
	}
	if VerifyPassword("", "some-hash") {
		t.Fatalf("expected verification to fail for empty password")
	}
}
