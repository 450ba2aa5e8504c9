package account

import "testing"

func TestHashPasswordVerifies(t *testing.T) {
	hash, err := HashPassword("espresso")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "espresso" {
		t.Fatal("expected hash to differ from plaintext")
	}
	if !VerifyPassword(hash, "espresso") {
		t.Fatal("expected matching password to verify")
	}
	if VerifyPassword(hash, "latte") {
		t.Fatal("expected wrong password to fail")
	}
}

func TestVerifyPasswordRejectsGarbageHash(t *testing.T) {
	if VerifyPassword("not-a-hash", "espresso") {
		t.Fatal("expected malformed hash to fail verification")
	}
}
