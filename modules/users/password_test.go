package users

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasherWithCost(bcrypt.MinCost)

	hash, err := hasher.Hash("correct horse battery")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatal("Hash() returned the plaintext password")
	}

	if !hasher.Verify("correct horse battery", hash) {
		t.Error("Verify() = false for the right password")
	}
	if hasher.Verify("wrong password", hash) {
		t.Error("Verify() = true for a wrong password")
	}
	if hasher.Verify("correct horse battery", "not-a-hash") {
		t.Error("Verify() = true for a malformed hash")
	}
}

func TestPasswordHasher_UniqueHashes(t *testing.T) {
	hasher := NewPasswordHasherWithCost(bcrypt.MinCost)

	first, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if first == second {
		t.Error("Hash() produced identical hashes, salt is missing")
	}
}

func TestNewPasswordHasherWithCost_OutOfRange(t *testing.T) {
	if got := NewPasswordHasherWithCost(0).cost; got != bcrypt.DefaultCost {
		t.Errorf("cost = %v, want %v", got, bcrypt.DefaultCost)
	}
	if got := NewPasswordHasherWithCost(bcrypt.MaxCost + 1).cost; got != bcrypt.DefaultCost {
		t.Errorf("cost = %v, want %v", got, bcrypt.DefaultCost)
	}
	if got := NewPasswordHasher().cost; got != DefaultBcryptCost {
		t.Errorf("cost = %v, want %v", got, DefaultBcryptCost)
	}
}
