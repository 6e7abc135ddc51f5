package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plain password")
	}

	if err := VerifyPassword(hash, "s3cret-pass"); err != nil {
		t.Errorf("expected matching password to verify: %v", err)
	}
	if err := VerifyPassword(hash, "wrong-pass"); err == nil {
		t.Error("expected mismatched password to fail")
	}
}

func TestHashPasswordSalts(t *testing.T) {
	first, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	second, err := HashPassword("same-input")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if first == second {
		t.Error("expected distinct hashes for the same input")
	}
}
