package auth

import "testing"

func TestHasherHashAndVerify(t *testing.T) {
	hasher := NewHasher(4)

	hash, err := hasher.Hash("pw1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "pw1" {
		t.Fatalf("hash must not equal plaintext")
	}
	if !hasher.Verify("pw1", hash) {
		t.Fatalf("expected password to verify against its own hash")
	}
	if hasher.Verify("pw2", hash) {
		t.Fatalf("expected different password to fail verification")
	}
}

func TestHasherSaltsPerCall(t *testing.T) {
	hasher := NewHasher(4)

	first, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if first == second {
		t.Fatalf("two hashes of the same plaintext must differ")
	}
	if !hasher.Verify("same-password", first) || !hasher.Verify("same-password", second) {
		t.Fatalf("both hashes must verify against the plaintext")
	}
}

func TestHasherMalformedHashNeverMatches(t *testing.T) {
	hasher := NewHasher(4)

	if hasher.Verify("anything", "not-a-bcrypt-hash") {
		t.Fatalf("malformed stored hash must never match")
	}
	if hasher.Verify("anything", "") {
		t.Fatalf("empty stored hash must never match")
	}
}

func TestHasherClampsBadCost(t *testing.T) {
	hasher := NewHasher(99)

	hash, err := hasher.Hash("pw")
	if err != nil {
		t.Fatalf("hash with clamped cost: %v", err)
	}
	if !hasher.Verify("pw", hash) {
		t.Fatalf("expected hash from clamped cost to verify")
	}
}
