package credential

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hasher := NewHasher()
	hash, err := hasher.Hash("abcdefg")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "abcdefg" {
		t.Fatal("expected hash to differ from plaintext")
	}
	if !hasher.Verify("abcdefg", hash) {
		t.Fatal("expected matching password to verify")
	}
	if hasher.Verify("wrong-pass", hash) {
		t.Fatal("expected mismatching password to fail")
	}
}

func TestHashIsSalted(t *testing.T) {
	hasher := NewHasher()
	first, err := hasher.Hash("abcdefg")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := hasher.Hash("abcdefg")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct salts to produce distinct hashes")
	}
}

func TestHashUsesFixedCost(t *testing.T) {
	hasher := NewHasher()
	hash, err := hasher.Hash("abcdefg")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$08$") {
		t.Fatalf("expected bcrypt cost 8 prefix, got %q", hash[:7])
	}
}

func TestZeroValueHasherStillHashes(t *testing.T) {
	var hasher Hasher
	hash, err := hasher.Hash("abcdefg")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !hasher.Verify("abcdefg", hash) {
		t.Fatal("expected zero-value hasher to verify its own hash")
	}
}
